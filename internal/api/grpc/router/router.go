package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"

	"github.com/bryanmylee/LetsMeetService/internal/api/grpc/handler"
	"github.com/bryanmylee/LetsMeetService/internal/api/grpc/middleware"
	"github.com/bryanmylee/LetsMeetService/internal/logger"
	"github.com/bryanmylee/LetsMeetService/internal/model"
)

// SessionService is what the router needs from the session layer.
type SessionService interface {
	handler.SessionService
	middleware.Authorizer
}

// Router builds the gRPC server for session operations.
type Router struct {
	sessionService SessionService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	sessionService SessionService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		sessionService: sessionService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// requiresAccessToken reports whether a method needs a bearer access token.
// Session lifecycle calls authenticate with credentials or a refresh token.
func requiresAccessToken(_ context.Context, c interceptors.CallMeta) bool {
	return c.FullMethod() == handler.SessionWhoamiMethod
}

// Register builds a gRPC server with logging and authentication interceptors
// and the Session service registered.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.sessionService, r.contextManager, r.logger)

	opts = append(opts,
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAccessToken),
			),
		),
	)
	s := grpc.NewServer(opts...)

	sessionHandler := handler.NewSession(r.sessionService, r.contextManager, r.logger)
	handler.RegisterSessionServer(s, sessionHandler)

	return s
}
