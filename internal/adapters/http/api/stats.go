package api

import (
	"net/http"
	"time"
)

// StatsProvider exposes service counters for GET /stats.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler reports service counters plus API uptime.
type StatsHandler struct {
	provider StatsProvider
	started  time.Time
}

// NewStatsHandler creates a stats handler; uptime counts from now.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider, started: time.Now()}
}

// HandleStats handles GET /stats.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	out := make(map[string]interface{})
	for k, v := range h.provider.GetStats() {
		out[k] = v
	}
	out["uptimeSeconds"] = int64(time.Since(h.started).Seconds())
	writeJSON(w, http.StatusOK, out)
}
