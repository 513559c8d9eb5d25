package api

import (
	"net/http"

	"github.com/okian/courtside/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	handler http.Handler
}

// NewHealthHandler creates a new health handler over the custom registry.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		handler: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz requests by serving the process metrics
// in Prometheus exposition format.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}
