package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bryanmylee/LetsMeetService/internal/logger"
	"github.com/bryanmylee/LetsMeetService/internal/model"
)

// SessionService defines the session operations exposed over gRPC.
type SessionService interface {
	Signup(ctx context.Context, eventID, username, password string, isAdmin bool) (model.TokenPair, error)
	Login(ctx context.Context, eventID, username, password string) (model.TokenPair, error)
	Refresh(ctx context.Context, eventID, refreshToken string) (model.TokenPair, error)
	LogoutByToken(ctx context.Context, eventID, refreshToken string) error
}

// Session handles gRPC endpoints for event sessions.
type Session struct {
	UnimplementedSessionServer
	sessionService SessionService
	contextManager model.ContextManager
	logger         *logger.Logger
}

var _ SessionServer = (*Session)(nil)

// NewSession creates a new Session handler.
func NewSession(sessionService SessionService, contextManager model.ContextManager, logger *logger.Logger) *Session {
	return &Session{
		sessionService: sessionService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Signup registers a participant and returns its first token pair.
func (h *Session) Signup(ctx context.Context, req *SignupRequest) (*SessionResponse, error) {
	h.logger.Debug("Session handler: processing signup request",
		"event_id", req.EventID,
		"username", req.Username)

	pair, err := h.sessionService.Signup(ctx, req.EventID, req.Username, req.Password, false)
	if err != nil {
		return nil, h.fail("Session handler: signup failed", err,
			"event_id", req.EventID,
			"username", req.Username)
	}

	return &SessionResponse{EventID: req.EventID, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// Login verifies credentials and returns a token pair.
func (h *Session) Login(ctx context.Context, req *LoginRequest) (*SessionResponse, error) {
	h.logger.Debug("Session handler: processing login request",
		"event_id", req.EventID,
		"username", req.Username)

	pair, err := h.sessionService.Login(ctx, req.EventID, req.Username, req.Password)
	if err != nil {
		return nil, h.fail("Session handler: login failed", err,
			"event_id", req.EventID,
			"username", req.Username)
	}

	return &SessionResponse{EventID: req.EventID, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// Refresh exchanges a refresh token for a new pair.
func (h *Session) Refresh(ctx context.Context, req *RefreshRequest) (*SessionResponse, error) {
	h.logger.Debug("Session handler: processing token refresh request",
		"event_id", req.EventID)

	pair, err := h.sessionService.Refresh(ctx, req.EventID, req.RefreshToken)
	if err != nil {
		return nil, h.fail("Session handler: token refresh failed", err,
			"event_id", req.EventID)
	}

	return &SessionResponse{EventID: req.EventID, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// Logout revokes the session of the presented refresh token.
func (h *Session) Logout(ctx context.Context, req *LogoutRequest) (*LogoutResponse, error) {
	h.logger.Debug("Session handler: processing logout request",
		"event_id", req.EventID)

	if err := h.sessionService.LogoutByToken(ctx, req.EventID, req.RefreshToken); err != nil {
		return nil, h.fail("Session handler: logout failed", err,
			"event_id", req.EventID)
	}

	return &LogoutResponse{Message: "Logged out"}, nil
}

// Whoami returns the identity of the authenticated caller.
func (h *Session) Whoami(ctx context.Context, _ *WhoamiRequest) (*IdentityResponse, error) {
	identity, ok := h.contextManager.GetIdentityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, model.ErrMissingAuthHeader.Error())
	}

	return &IdentityResponse{
		EventID:  identity.EventID,
		Username: identity.Username,
		IsAdmin:  identity.IsAdmin,
	}, nil
}

// fail maps err to a status and logs it. Rejected calls are routine and log
// at Info; only Internal failures log at Error.
func (h *Session) fail(msg string, err error, args ...any) error {
	st := handleError(err)
	args = append(args, "code", status.Code(st).String(), "error", err.Error())
	if status.Code(st) == codes.Internal {
		h.logger.Error(msg, args...)
	} else {
		h.logger.Info(msg, args...)
	}
	return st
}
