package api

import (
	"net/http"
	"time"
)

// StatsProvider reports service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves GET /stats: the provider's figures plus server uptime.
type StatsHandler struct {
	provider StatsProvider
	since    time.Time
}

// NewStatsHandler creates a stats handler. A nil provider yields uptime only.
func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider, since: time.Now()}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	out := map[string]interface{}{}
	if h.provider != nil {
		for k, v := range h.provider.GetStats() {
			out[k] = v
		}
	}
	out["uptime"] = time.Since(h.since).Round(time.Second).String()
	writeJSON(w, http.StatusOK, out)
}
