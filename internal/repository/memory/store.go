// Package memory keeps event users in process memory. Data is lost on restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bryanmylee/LetsMeetService/internal/model"
)

type key struct {
	eventID  string
	username string
}

// Store implements UserStore and RefreshTokenStore over a map.
type Store struct {
	mu    sync.RWMutex
	users map[key]model.User
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		users: make(map[key]model.User),
		now:   time.Now,
	}
}

func (s *Store) Create(ctx context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{user.EventID, user.Username}
	if _, ok := s.users[k]; ok {
		return model.ErrDuplicateUser
	}

	now := s.now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	s.users[k] = user
	return nil
}

func (s *Store) GetByUsername(ctx context.Context, eventID, username string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[key{eventID, username}]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

func (s *Store) GetRefreshToken(ctx context.Context, eventID, username string) (string, error) {
	user, err := s.GetByUsername(ctx, eventID, username)
	if err != nil {
		return "", err
	}
	return user.RefreshToken, nil
}

func (s *Store) SetRefreshToken(ctx context.Context, eventID, username, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key{eventID, username}
	user, ok := s.users[k]
	if !ok {
		return model.ErrNotFound
	}
	user.RefreshToken = token
	user.UpdatedAt = s.now().UTC()
	s.users[k] = user
	return nil
}

func (s *Store) ClearRefreshToken(ctx context.Context, eventID, username string) error {
	return s.SetRefreshToken(ctx, eventID, username, "")
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}
