package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanmylee/LetsMeetService/internal/model"
)

const (
	selectTokenQuery = `(?s)^\s*SELECT\s+refresh_token\s+FROM\s+event_users\s+WHERE\s+event_id\s*=\s*\$1\s+AND\s+username\s*=\s*\$2\s*$`
	setTokenQuery    = `(?s)^\s*UPDATE\s+event_users\s+SET\s+refresh_token\s*=\s*\$3,\s*updated_at\s*=\s*NOW\(\)\s+WHERE\s+event_id\s*=\s*\$1\s+AND\s+username\s*=\s*\$2\s*$`
	clearTokenQuery  = `(?s)^\s*UPDATE\s+event_users\s+SET\s+refresh_token\s*=\s*NULL,\s*updated_at\s*=\s*NOW\(\)\s+WHERE\s+event_id\s*=\s*\$1\s+AND\s+username\s*=\s*\$2\s*$`
)

func TestRefreshTokenRepository_Get(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(selectTokenQuery).WithArgs("xy12", "alice").
			WillReturnRows(sqlmock.NewRows([]string{"refresh_token"}).AddRow("rt"))

		token, err := NewRefreshTokenRepository(db).GetRefreshToken(context.Background(), "xy12", "alice")
		require.NoError(t, err)
		assert.Equal(t, "rt", token)
	})

	t.Run("null", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(selectTokenQuery).WithArgs("xy12", "alice").
			WillReturnRows(sqlmock.NewRows([]string{"refresh_token"}).AddRow(nil))

		token, err := NewRefreshTokenRepository(db).GetRefreshToken(context.Background(), "xy12", "alice")
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("no user", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(selectTokenQuery).WithArgs("xy12", "alice").WillReturnError(sql.ErrNoRows)

		_, err := NewRefreshTokenRepository(db).GetRefreshToken(context.Background(), "xy12", "alice")
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestRefreshTokenRepository_Set(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(setTokenQuery).WithArgs("xy12", "alice", "rt").WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewRefreshTokenRepository(db).SetRefreshToken(context.Background(), "xy12", "alice", "rt"))
	})

	t.Run("no user", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(setTokenQuery).WithArgs("xy12", "alice", "rt").WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewRefreshTokenRepository(db).SetRefreshToken(context.Background(), "xy12", "alice", "rt")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(setTokenQuery).WillReturnError(errors.New("db down"))

		err := NewRefreshTokenRepository(db).SetRefreshToken(context.Background(), "xy12", "alice", "rt")
		require.EqualError(t, err, "failed to set refresh token: db down")
	})
}

func TestRefreshTokenRepository_Clear(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(clearTokenQuery).WithArgs("xy12", "alice").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewRefreshTokenRepository(db).ClearRefreshToken(context.Background(), "xy12", "alice"))
}

func TestConnection_PingWithoutPool(t *testing.T) {
	c := &Connection{}
	require.Error(t, c.Ping(context.Background()))
	require.NoError(t, c.Close())
}
