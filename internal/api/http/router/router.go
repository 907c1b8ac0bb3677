package router

import (
	"net/http"
	"strings"

	"github.com/bryanmylee/LetsMeetService/internal/api/http/handler"
	"github.com/bryanmylee/LetsMeetService/internal/api/http/middleware"
	"github.com/bryanmylee/LetsMeetService/internal/config"
	"github.com/bryanmylee/LetsMeetService/internal/logger"
	"github.com/bryanmylee/LetsMeetService/internal/metrics"
	"github.com/bryanmylee/LetsMeetService/internal/model"
)

// Router builds the HTTP handler tree for session operations.
type Router struct {
	cfg            *config.Config
	sessionService handler.SessionService
	contextManager model.ContextManager
	store          model.Pinger
	metrics        *metrics.Metrics
	limiter        *middleware.RateLimiter
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	cfg *config.Config,
	sessionService handler.SessionService,
	contextManager model.ContextManager,
	store model.Pinger,
	metrics *metrics.Metrics,
	limiter *middleware.RateLimiter,
	logger *logger.Logger,
) *Router {
	return &Router{
		cfg:            cfg,
		sessionService: sessionService,
		contextManager: contextManager,
		store:          store,
		metrics:        metrics,
		limiter:        limiter,
		logger:         logger,
	}
}

// Register returns the root handler, mounted under the configured base path.
func (r *Router) Register() http.Handler {
	mux := http.NewServeMux()
	r.registerSessionRoutes(mux)
	r.registerProbeRoutes(mux)

	var root http.Handler = mux
	if base := strings.TrimRight(r.cfg.HTTP.BasePath, "/"); base != "" {
		outer := http.NewServeMux()
		outer.Handle(base+"/", http.StripPrefix(base, mux))
		root = outer
	}

	logging := middleware.NewLogging(r.logger)
	return middleware.RequestID(
		logging.Handle(
			middleware.CORS(r.cfg.HTTP.ClientHosts)(
				middleware.MaxBodyBytes(r.cfg.HTTP.MaxBodyBytes)(root),
			),
		),
	)
}

func (r *Router) registerSessionRoutes(mux *http.ServeMux) {
	cookie := handler.NewRefreshCookie(r.cfg.Cookie, r.cfg.Auth.RefreshTTL)
	session := handler.NewSession(r.sessionService, r.contextManager, cookie, r.metrics, r.logger)
	authenticate := middleware.NewAuthenticate(r.sessionService, r.contextManager, r.logger)

	limited := func(h http.HandlerFunc) http.Handler { return r.limiter.Handle(h) }
	authed := func(h http.HandlerFunc) http.Handler { return authenticate.Handle(h) }

	r.handle(mux, "POST /{eventId}/new_user", limited(session.Signup))
	r.handle(mux, "POST /{eventId}/login", limited(session.Login))
	r.handle(mux, "POST /{eventId}/refresh_token", limited(session.Refresh))
	r.handle(mux, "POST /{eventId}/logout", http.HandlerFunc(session.Logout))
	r.handle(mux, "GET /{eventId}/session", authed(session.EventSession))
	r.handle(mux, "GET /{eventId}/{username}/session", authed(session.UserSession))
}

func (r *Router) registerProbeRoutes(mux *http.ServeMux) {
	health := handler.NewHealth(r.store, r.logger)

	r.handle(mux, "GET /healthz", http.HandlerFunc(health.Live))
	r.handle(mux, "GET /readyz", http.HandlerFunc(health.Ready))
	mux.Handle("GET /metrics", r.metrics.Handler())
}

// handle registers h with per-route instrumentation labelled by pattern.
func (r *Router) handle(mux *http.ServeMux, pattern string, h http.Handler) {
	mux.Handle(pattern, r.metrics.Instrument(pattern, h))
}
