package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bryanmylee/LetsMeetService/internal/logger"
	"github.com/bryanmylee/LetsMeetService/internal/metrics"
	"github.com/bryanmylee/LetsMeetService/internal/model"
	"github.com/bryanmylee/LetsMeetService/internal/service"
)

// SessionService is the session layer used by the HTTP handlers.
type SessionService interface {
	Signup(ctx context.Context, eventID, username, password string, isAdmin bool) (model.TokenPair, error)
	Login(ctx context.Context, eventID, username, password string) (model.TokenPair, error)
	Refresh(ctx context.Context, eventID, refreshToken string) (model.TokenPair, error)
	Logout(ctx context.Context, eventID, username string) error
	LogoutByToken(ctx context.Context, eventID, refreshToken string) error
	Authorize(header string) (model.Identity, error)
}

// Observer counts session operations by outcome.
type Observer interface {
	ObserveSession(operation, outcome string)
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupResponse struct {
	EventID     string `json:"eventId"`
	AccessToken string `json:"accessToken"`
}

type accessResponse struct {
	AccessToken string `json:"accessToken"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Session serves the per-event session endpoints.
type Session struct {
	sessionService SessionService
	contextManager model.ContextManager
	cookie         *RefreshCookie
	observer       Observer
	logger         *logger.Logger
}

// NewSession creates new Session handler.
func NewSession(
	sessionService SessionService,
	contextManager model.ContextManager,
	cookie *RefreshCookie,
	observer Observer,
	logger *logger.Logger,
) *Session {
	return &Session{
		sessionService: sessionService,
		contextManager: contextManager,
		cookie:         cookie,
		observer:       observer,
		logger:         logger,
	}
}

// Signup handles POST /{eventId}/new_user.
func (h *Session) Signup(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")

	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, "signup", err)
		return
	}

	pair, err := h.sessionService.Signup(r.Context(), eventID, req.Username, req.Password, false)
	if err != nil {
		h.fail(w, "signup", err)
		return
	}

	h.cookie.Set(w, r, eventID, pair.RefreshToken)
	h.observer.ObserveSession("signup", metrics.OutcomeSuccess)
	WriteJSON(w, http.StatusOK, signupResponse{EventID: eventID, AccessToken: pair.AccessToken})
}

// Login handles POST /{eventId}/login.
func (h *Session) Login(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")

	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, "login", err)
		return
	}

	pair, err := h.sessionService.Login(r.Context(), eventID, req.Username, req.Password)
	if err != nil {
		h.fail(w, "login", err)
		return
	}

	h.cookie.Set(w, r, eventID, pair.RefreshToken)
	h.observer.ObserveSession("login", metrics.OutcomeSuccess)
	WriteJSON(w, http.StatusOK, accessResponse{AccessToken: pair.AccessToken})
}

// Refresh handles POST /{eventId}/refresh_token.
func (h *Session) Refresh(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")

	pair, err := h.sessionService.Refresh(r.Context(), eventID, h.cookie.Read(r))
	if err != nil {
		h.fail(w, "refresh", err)
		return
	}

	h.cookie.Set(w, r, eventID, pair.RefreshToken)
	h.observer.ObserveSession("refresh", metrics.OutcomeSuccess)
	WriteJSON(w, http.StatusOK, accessResponse{AccessToken: pair.AccessToken})
}

// Logout handles POST /{eventId}/logout. The cookie is always cleared. The
// stored refresh token is revoked when the request carries the refresh cookie
// or an access token of the event; failures there are logged, not returned.
func (h *Session) Logout(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")

	if err := h.revoke(r, eventID); err != nil {
		h.logger.Warn("Session handler: logout revocation failed",
			"event_id", eventID,
			"error", err.Error())
		h.observer.ObserveSession("logout", outcome(err))
	} else {
		h.observer.ObserveSession("logout", metrics.OutcomeSuccess)
	}

	h.cookie.Clear(w, r, eventID)
	WriteJSON(w, http.StatusOK, messageResponse{Message: "Logged out"})
}

func (h *Session) revoke(r *http.Request, eventID string) error {
	if token := h.cookie.Read(r); token != "" {
		return h.sessionService.LogoutByToken(r.Context(), eventID, token)
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return nil
	}
	identity, err := h.sessionService.Authorize(header)
	if err != nil {
		return err
	}
	if err := service.RequireSubject(identity, eventID, ""); err != nil {
		return err
	}
	return h.sessionService.Logout(r.Context(), eventID, identity.Username)
}

// EventSession handles GET /{eventId}/session.
func (h *Session) EventSession(w http.ResponseWriter, r *http.Request) {
	h.session(w, r, r.PathValue("eventId"), "")
}

// UserSession handles GET /{eventId}/{username}/session.
func (h *Session) UserSession(w http.ResponseWriter, r *http.Request) {
	h.session(w, r, r.PathValue("eventId"), r.PathValue("username"))
}

func (h *Session) session(w http.ResponseWriter, r *http.Request, eventID, username string) {
	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		h.fail(w, "authorize", model.ErrMissingAuthHeader)
		return
	}
	if err := service.RequireSubject(identity, eventID, username); err != nil {
		h.logger.Info("Session handler: identity outside requested scope",
			"event_id", eventID,
			"username", identity.Username)
		h.fail(w, "authorize", err)
		return
	}

	h.observer.ObserveSession("authorize", metrics.OutcomeSuccess)
	WriteJSON(w, http.StatusOK, identity)
}

func (h *Session) fail(w http.ResponseWriter, operation string, err error) {
	status, _ := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Session handler: request failed",
			"operation", operation,
			"error", err.Error())
	}
	h.observer.ObserveSession(operation, outcome(err))
	WriteError(w, err)
}

func outcome(err error) string {
	if status, _ := StatusFor(err); status >= http.StatusInternalServerError {
		return metrics.OutcomeError
	}
	return metrics.OutcomeRejected
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		return fmt.Errorf("%w: malformed request body", model.ErrInvalidInput)
	}
	return nil
}
