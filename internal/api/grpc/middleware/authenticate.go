package middleware

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/bryanmylee/LetsMeetService/internal/logger"
	"github.com/bryanmylee/LetsMeetService/internal/model"
)

// Authorizer resolves an identity from an authorization header value.
type Authorizer interface {
	Authorize(header string) (model.Identity, error)
}

// Authenticate validates bearer tokens and injects the identity into context.
type Authenticate struct {
	authorizer     Authorizer
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authorizer Authorizer, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authorizer: authorizer, contextManager: contextManager, logger: logger}
}

// AuthFunc reads the authorization metadata, validates the access token and
// returns a context carrying the identity.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get("authorization"); len(values) > 0 {
			header = values[0]
		}
	}

	identity, err := m.authorizer.Authorize(header)
	if err != nil {
		m.logger.Debug("gRPC authentication failed", "error", err.Error())
		if errors.Is(err, model.ErrMalformedToken) {
			return nil, status.Error(codes.InvalidArgument, model.ErrMalformedToken.Error())
		}
		if errors.Is(err, model.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, model.ErrTokenExpired.Error())
		}
		if errors.Is(err, model.ErrMissingAuthHeader) {
			return nil, status.Error(codes.Unauthenticated, model.ErrMissingAuthHeader.Error())
		}
		return nil, status.Error(codes.Unauthenticated, model.ErrInvalidToken.Error())
	}

	return m.contextManager.SetIdentityToContext(ctx, identity), nil
}
