package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bryanmylee/LetsMeetService/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByUsername(ctx context.Context, eventID, username string) (model.User, error) {
	query := `SELECT event_id, username, password_hash, is_admin, refresh_token, created_at, updated_at
			  FROM event_users WHERE event_id = $1 AND username = $2`

	var (
		user    model.User
		refresh sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, eventID, username).Scan(
		&user.EventID, &user.Username, &user.PasswordHash, &user.IsAdmin, &refresh,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}
	user.RefreshToken = refresh.String

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) error {
	query := `INSERT INTO event_users (event_id, username, password_hash, is_admin, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (event_id, username) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query,
		user.EventID, user.Username, user.PasswordHash, user.IsAdmin,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	if n == 0 {
		return model.ErrDuplicateUser
	}

	return nil
}
