package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bryanmylee/LetsMeetService/internal/logger"
	"github.com/bryanmylee/LetsMeetService/internal/model"
)

// TokenService provides high-level operations for issuing, refreshing,
// and revoking tokens. It composes the TokenManager and RefreshTokenStore.
type TokenService struct {
	manager model.TokenManager
	store   model.RefreshTokenStore
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, store model.RefreshTokenStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, store: store, logger: logger}
}

// Issue mints a token pair for identity and stores the refresh token,
// replacing whatever token the user held before.
func (s *TokenService) Issue(ctx context.Context, identity model.Identity) (model.TokenPair, error) {
	access, err := s.manager.GenerateAccessToken(identity)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue access: %w", err)
	}

	refresh, err := s.manager.GenerateRefreshToken(identity)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue refresh: %w", err)
	}

	if err := s.store.SetRefreshToken(ctx, identity.EventID, identity.Username, refresh); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.TokenPair{}, model.ErrUserNotFound
		}
		return model.TokenPair{}, fmt.Errorf("persist refresh: %w", err)
	}

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges the presented refresh token for a new pair. The presented
// token must be exactly the one on record; it is replaced on success.
func (s *TokenService) Refresh(ctx context.Context, eventID, presentedRefresh string) (model.TokenPair, error) {
	if presentedRefresh == "" {
		return model.TokenPair{}, model.ErrMissingToken
	}

	identity, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return model.TokenPair{}, err
	}
	if identity.EventID != eventID {
		s.logger.Info("Token service: refresh token presented for another event",
			"event_id", eventID,
			"token_event_id", identity.EventID)
		return model.TokenPair{}, model.ErrInvalidToken
	}

	stored, err := s.store.GetRefreshToken(ctx, identity.EventID, identity.Username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.TokenPair{}, model.ErrUserNotFound
		}
		return model.TokenPair{}, fmt.Errorf("load refresh: %w", err)
	}

	if stored != presentedRefresh {
		s.logger.Warn("Token service: revoked refresh token presented",
			"event_id", identity.EventID,
			"username", identity.Username)
		return model.TokenPair{}, model.ErrTokenRevoked
	}

	return s.Issue(ctx, identity)
}

// Revoke clears the stored refresh token of a user.
func (s *TokenService) Revoke(ctx context.Context, eventID, username string) error {
	if err := s.store.ClearRefreshToken(ctx, eventID, username); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrUserNotFound
		}
		return fmt.Errorf("clear refresh: %w", err)
	}
	return nil
}

// RevokeByToken clears the stored refresh token when presentedRefresh is the
// current one. A stale token leaves the newer session alone.
func (s *TokenService) RevokeByToken(ctx context.Context, eventID, presentedRefresh string) error {
	if presentedRefresh == "" {
		return model.ErrMissingToken
	}

	identity, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return err
	}
	if identity.EventID != eventID {
		return model.ErrInvalidToken
	}

	stored, err := s.store.GetRefreshToken(ctx, identity.EventID, identity.Username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrUserNotFound
		}
		return fmt.Errorf("load refresh: %w", err)
	}
	if stored != presentedRefresh {
		return nil
	}

	return s.Revoke(ctx, identity.EventID, identity.Username)
}

// Authorize resolves the identity behind an "Authorization: Bearer <token>" header value.
func (s *TokenService) Authorize(header string) (model.Identity, error) {
	token, err := bearerToken(header)
	if err != nil {
		return model.Identity{}, err
	}
	return s.manager.ParseAccessToken(token)
}

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", model.ErrMissingAuthHeader
	}

	scheme, token, _ := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return "", model.ErrMalformedToken
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", model.ErrMissingAuthHeader
	}
	return token, nil
}
