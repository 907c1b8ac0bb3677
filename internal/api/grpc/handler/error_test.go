package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bryanmylee/LetsMeetService/internal/model"
)

func TestHandleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       error
		wantCode codes.Code
		wantMsg  string
	}{
		{
			name:     "invalid input -> InvalidArgument",
			in:       model.ErrInvalidInput,
			wantCode: codes.InvalidArgument,
			wantMsg:  "invalid input",
		},
		{
			name:     "duplicate -> AlreadyExists",
			in:       model.ErrDuplicateUser,
			wantCode: codes.AlreadyExists,
			wantMsg:  "username already taken",
		},
		{
			name:     "wrapped expiry -> Unauthenticated",
			in:       fmt.Errorf("failed to parse refresh token: %w", model.ErrTokenExpired),
			wantCode: codes.Unauthenticated,
			wantMsg:  "token expired",
		},
		{
			name:     "revoked -> PermissionDenied",
			in:       model.ErrTokenRevoked,
			wantCode: codes.PermissionDenied,
			wantMsg:  "refresh token revoked",
		},
		{
			name:     "other -> Internal",
			in:       errors.New("boom"),
			wantCode: codes.Internal,
			wantMsg:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := handleError(tt.in)
			st, ok := status.FromError(err)
			assert.True(t, ok)
			assert.Equal(t, tt.wantCode, st.Code())
			assert.Equal(t, tt.wantMsg, st.Message())
		})
	}
}
