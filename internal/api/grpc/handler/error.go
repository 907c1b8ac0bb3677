package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bryanmylee/LetsMeetService/internal/model"
)

var errorCodes = []struct {
	err  error
	code codes.Code
}{
	{model.ErrInvalidInput, codes.InvalidArgument},
	{model.ErrMalformedToken, codes.InvalidArgument},
	{model.ErrDuplicateUser, codes.AlreadyExists},
	{model.ErrUserNotFound, codes.Unauthenticated},
	{model.ErrInvalidPassword, codes.Unauthenticated},
	{model.ErrMissingToken, codes.Unauthenticated},
	{model.ErrMissingAuthHeader, codes.Unauthenticated},
	{model.ErrInvalidToken, codes.Unauthenticated},
	{model.ErrTokenExpired, codes.Unauthenticated},
	{model.ErrTokenRevoked, codes.PermissionDenied},
	{model.ErrForbidden, codes.PermissionDenied},
}

func handleError(err error) error {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return status.Error(e.code, e.err.Error())
		}
	}
	return status.Error(codes.Internal, "internal server error")
}
