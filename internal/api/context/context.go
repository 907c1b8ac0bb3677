package context

import (
	"context"

	"github.com/bryanmylee/LetsMeetService/internal/model"
)

type identityKey struct{}

// Manager stores the authenticated identity on a request context.
// It is shared by the HTTP and gRPC transports.
type Manager struct{}

// NewManager creates a new context manager instance.
//
// Returns a pointer to the newly created Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityToContext returns a copy of ctx carrying identity.
//
// Parameters:
//   - ctx: The request context
//   - identity: The identity resolved from the access token
//
// Returns a new context with the identity attached.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentityFromContext retrieves the identity set by SetIdentityToContext.
//
// Parameters:
//   - ctx: The request context
//
// Returns the identity and a boolean indicating if it was found.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(model.Identity)
	if !ok || identity.EventID == "" || identity.Username == "" {
		return model.Identity{}, false
	}
	return identity, true
}
