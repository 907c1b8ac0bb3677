package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/bryanmylee/LetsMeetService/internal/logger"
)

// Logging is a unary interceptor that logs gRPC calls and their outcome.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleGRPC logs method, peer, duration and status for each unary call.
func (l *Logging) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	remote := "unknown"
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		remote = p.Addr.String()
	}

	resp, err := handler(ctx, req)

	code := codes.OK
	if err != nil {
		if st, ok := status.FromError(err); ok {
			code = st.Code()
		} else {
			code = codes.Internal
		}
	}

	args := []any{
		"method", info.FullMethod,
		"peer", remote,
		"duration_ms", time.Since(start).Milliseconds(),
		"status", code.String(),
	}

	switch {
	case err == nil:
		l.logger.Info("gRPC call completed", args...)
	case code == codes.Internal || code == codes.Unknown:
		l.logger.Error("gRPC call failed", append(args, "error", err.Error())...)
	default:
		// Client errors are expected traffic.
		l.logger.Warn("gRPC call rejected", append(args, "error", err.Error())...)
	}

	return resp, err
}
