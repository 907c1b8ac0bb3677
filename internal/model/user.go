package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for event users.
type UserStore interface {
	Create(ctx context.Context, user User) error
	GetByUsername(ctx context.Context, eventID, username string) (User, error)
}

// User is a participant of a single event. Usernames are unique per event.
type User struct {
	EventID      string
	Username     string
	PasswordHash string
	IsAdmin      bool
	RefreshToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the token claims for the user.
func (u User) Identity() Identity {
	return Identity{EventID: u.EventID, Username: u.Username, IsAdmin: u.IsAdmin}
}
