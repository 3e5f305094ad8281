package api

import (
	"context"
	"net/http"

	"github.com/Nazmul0005/simple-chatbot-rag-conversational/internal/log"
)

// ReadyChecker reports whether a dependency can serve traffic. Both vector
// backends implement it.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	checker ReadyChecker
	logger  log.Logger
}

// NewHealthHandler creates a health handler. checker is the vector backend
// used for readiness checks.
func NewHealthHandler(checker ReadyChecker, logger log.Logger) *HealthHandler {
	return &HealthHandler{checker: checker, logger: logger}
}

// RegisterRoutes registers health routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.liveness)
	mux.HandleFunc("GET /ready", h.readiness)
}

// liveness returns 200 OK if the process is alive.
func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readiness returns 200 OK if the vector backend can serve searches.
func (h *HealthHandler) readiness(w http.ResponseWriter, r *http.Request) {
	if h.checker == nil {
		writeError(w, http.StatusServiceUnavailable, "vector backend not configured")
		return
	}
	if err := h.checker.Ready(r.Context()); err != nil {
		h.logger.Error("readiness check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "vector backend not ready")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
