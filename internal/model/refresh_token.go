package model

import "context"

// RefreshTokenStore keeps the single outstanding refresh token of each event user.
//
// GetRefreshToken returns ErrNotFound when the user does not exist and an empty
// string when the user exists but holds no token. Writes touch only the token
// field of the user record; concurrent writers race and the last one wins.
type RefreshTokenStore interface {
	GetRefreshToken(ctx context.Context, eventID, username string) (string, error)
	SetRefreshToken(ctx context.Context, eventID, username, token string) error
	ClearRefreshToken(ctx context.Context, eventID, username string) error
}
