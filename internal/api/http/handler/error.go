package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bryanmylee/LetsMeetService/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

var errorStatuses = []struct {
	err    error
	status int
}{
	{model.ErrInvalidInput, http.StatusBadRequest},
	{model.ErrDuplicateUser, http.StatusBadRequest},
	{model.ErrMalformedToken, http.StatusBadRequest},
	{model.ErrUserNotFound, http.StatusUnauthorized},
	{model.ErrInvalidPassword, http.StatusUnauthorized},
	{model.ErrMissingToken, http.StatusUnauthorized},
	{model.ErrMissingAuthHeader, http.StatusUnauthorized},
	{model.ErrInvalidToken, http.StatusUnauthorized},
	{model.ErrTokenExpired, http.StatusUnauthorized},
	{model.ErrTokenRevoked, http.StatusForbidden},
	{model.ErrForbidden, http.StatusForbidden},
}

// StatusFor maps a session error to an HTTP status and a message safe to return to clients.
func StatusFor(err error) (int, string) {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return http.StatusRequestEntityTooLarge, "request body too large"
	}
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status, e.err.Error()
		}
	}
	return http.StatusInternalServerError, "internal server error"
}

// WriteError writes err as a JSON error body.
func WriteError(w http.ResponseWriter, err error) {
	status, msg := StatusFor(err)
	WriteJSON(w, status, errorResponse{Error: msg})
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
