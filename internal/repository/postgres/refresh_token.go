package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bryanmylee/LetsMeetService/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

// RefreshTokenRepository reads and writes the refresh_token column of event_users.
type RefreshTokenRepository struct {
	db DBTX
}

func NewRefreshTokenRepository(db DBTX) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) GetRefreshToken(ctx context.Context, eventID, username string) (string, error) {
	const query = `
        SELECT refresh_token FROM event_users WHERE event_id = $1 AND username = $2
    `
	var token sql.NullString
	err := r.db.QueryRowContext(ctx, query, eventID, username).Scan(&token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("failed to get refresh token: %w", err)
	}
	return token.String, nil
}

func (r *RefreshTokenRepository) SetRefreshToken(ctx context.Context, eventID, username, token string) error {
	const query = `
        UPDATE event_users SET refresh_token = $3, updated_at = NOW()
        WHERE event_id = $1 AND username = $2
    `
	return r.update(ctx, query, "set", eventID, username, token)
}

func (r *RefreshTokenRepository) ClearRefreshToken(ctx context.Context, eventID, username string) error {
	const query = `
        UPDATE event_users SET refresh_token = NULL, updated_at = NOW()
        WHERE event_id = $1 AND username = $2
    `
	return r.update(ctx, query, "clear", eventID, username)
}

func (r *RefreshTokenRepository) update(ctx context.Context, query, op string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s refresh token: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s refresh token: %w", op, err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
