package middleware

import (
	"net/http"

	"github.com/bryanmylee/LetsMeetService/internal/api/http/handler"
	"github.com/bryanmylee/LetsMeetService/internal/logger"
	"github.com/bryanmylee/LetsMeetService/internal/model"
)

// Authorizer resolves an identity from an Authorization header value.
type Authorizer interface {
	Authorize(header string) (model.Identity, error)
}

// Authenticate requires a bearer access token and puts its identity on the context.
type Authenticate struct {
	authorizer     Authorizer
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(authorizer Authorizer, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authorizer: authorizer, contextManager: contextManager, logger: logger}
}

func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.authorizer.Authorize(r.Header.Get("Authorization"))
		if err != nil {
			m.logger.Debug("HTTP authentication failed",
				"request_id", RequestIDFromContext(r.Context()),
				"error", err.Error())
			handler.WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(m.contextManager.SetIdentityToContext(r.Context(), identity)))
	})
}
