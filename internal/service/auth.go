package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bryanmylee/LetsMeetService/internal/logger"
	"github.com/bryanmylee/LetsMeetService/internal/model"
)

// Auth manages event user sessions: signup, login, token rotation and logout.
type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenService *TokenService
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	refreshTokenStore model.RefreshTokenStore,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenService: NewTokenService(tokenManager, refreshTokenStore, logger),
		logger:       logger,
	}
}

// Signup registers a new user on an event and opens a session for it.
func (a *Auth) Signup(ctx context.Context, eventID, username, password string, isAdmin bool) (model.TokenPair, error) {
	a.logger.Debug("Auth service: signing up user",
		"event_id", eventID,
		"username", username)

	if err := validateCredentials(eventID, username, password); err != nil {
		return model.TokenPair{}, err
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"event_id", eventID,
			"username", username,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := model.User{
		EventID:      eventID,
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrDuplicateUser) {
			a.logger.Info("Auth service: username already taken",
				"event_id", eventID,
				"username", username)
			return model.TokenPair{}, model.ErrDuplicateUser
		}
		a.logger.Error("Auth service: failed to create user",
			"event_id", eventID,
			"username", username,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("failed to create user: %w", err)
	}

	pair, err := a.tokenService.Issue(ctx, user.Identity())
	if err != nil {
		a.logger.Error("Auth service: failed to issue tokens",
			"event_id", eventID,
			"username", username,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	a.logger.Info("Auth service: user signed up",
		"event_id", eventID,
		"username", username)
	return pair, nil
}

// Login verifies credentials and issues a new token pair. Any refresh token
// issued earlier for the user stops working.
func (a *Auth) Login(ctx context.Context, eventID, username, password string) (model.TokenPair, error) {
	if err := validateCredentials(eventID, username, password); err != nil {
		return model.TokenPair{}, err
	}

	user, err := a.userStore.GetByUsername(ctx, eventID, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Info("Auth service: login for unknown user",
				"event_id", eventID,
				"username", username)
			return model.TokenPair{}, model.ErrUserNotFound
		}
		a.logger.Error("Auth service: failed to get user",
			"event_id", eventID,
			"username", username,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("failed to get user: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		a.logger.Info("Auth service: invalid password",
			"event_id", eventID,
			"username", username)
		return model.TokenPair{}, model.ErrInvalidPassword
	}

	pair, err := a.tokenService.Issue(ctx, user.Identity())
	if err != nil {
		a.logger.Error("Auth service: failed to issue tokens",
			"event_id", eventID,
			"username", username,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return pair, nil
}

// Refresh rotates the presented refresh token.
func (a *Auth) Refresh(ctx context.Context, eventID, refreshToken string) (model.TokenPair, error) {
	pair, err := a.tokenService.Refresh(ctx, eventID, refreshToken)
	if err != nil {
		a.logger.Info("Auth service: refresh rejected",
			"event_id", eventID,
			"error", err.Error())
		return model.TokenPair{}, err
	}
	return pair, nil
}

// Logout ends the session of a user.
func (a *Auth) Logout(ctx context.Context, eventID, username string) error {
	if err := a.tokenService.Revoke(ctx, eventID, username); err != nil {
		a.logger.Error("Auth service: failed to revoke session",
			"event_id", eventID,
			"username", username,
			"error", err.Error())
		return err
	}
	return nil
}

// LogoutByToken ends the session the refresh token belongs to, if it is still current.
func (a *Auth) LogoutByToken(ctx context.Context, eventID, refreshToken string) error {
	if err := a.tokenService.RevokeByToken(ctx, eventID, refreshToken); err != nil {
		a.logger.Info("Auth service: logout without a valid session",
			"event_id", eventID,
			"error", err.Error())
		return err
	}
	return nil
}

// Authorize resolves the identity of an Authorization header value.
func (a *Auth) Authorize(header string) (model.Identity, error) {
	return a.tokenService.Authorize(header)
}

// RequireSubject checks that identity belongs to eventID and, when username
// is not empty, to that user.
func RequireSubject(identity model.Identity, eventID, username string) error {
	if identity.EventID != eventID {
		return model.ErrForbidden
	}
	if username != "" && identity.Username != username {
		return model.ErrForbidden
	}
	return nil
}

func validateCredentials(eventID, username, password string) error {
	if strings.TrimSpace(eventID) == "" || strings.TrimSpace(username) == "" || password == "" {
		return model.ErrInvalidInput
	}
	return nil
}
