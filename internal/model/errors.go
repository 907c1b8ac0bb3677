package model

import "errors"

var (
	// ErrNotFound is returned by stores when a record does not exist.
	ErrNotFound = errors.New("not found")

	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUser     = errors.New("username already taken")
	ErrInvalidPassword   = errors.New("password invalid")
	ErrInvalidInput      = errors.New("invalid input")
	ErrMissingToken      = errors.New("refresh token not found")
	ErrMissingAuthHeader = errors.New("authentication not found")
	ErrMalformedToken    = errors.New("token malformed")
	ErrInvalidToken      = errors.New("token invalid")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenRevoked      = errors.New("refresh token revoked")
	ErrForbidden         = errors.New("not authorized")
)
