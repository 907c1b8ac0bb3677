package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/bryanmylee/LetsMeetService/internal/logger"
	"github.com/bryanmylee/LetsMeetService/internal/model"
)

const readinessTimeout = 2 * time.Second

// Health serves liveness and readiness probes.
type Health struct {
	store  model.Pinger
	logger *logger.Logger
}

func NewHealth(store model.Pinger, logger *logger.Logger) *Health {
	return &Health{store: store, logger: logger}
}

// Live handles GET /healthz.
func (h *Health) Live(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles GET /readyz; it fails while the session store is unreachable.
func (h *Health) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("Health handler: store not ready", "error", err.Error())
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
