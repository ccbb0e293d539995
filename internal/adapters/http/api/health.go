package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/rankr/pkg/metrics"
)

// HealthHandler serves liveness together with the Prometheus exposition.
type HealthHandler struct {
	metrics http.Handler
}

// NewHealthHandler creates a health handler backed by the service registry.
func NewHealthHandler() *HealthHandler {
	return NewHealthHandlerFor(metrics.GetRegistry())
}

// NewHealthHandlerFor creates a health handler that exposes gatherer.
func NewHealthHandlerFor(gatherer prometheus.Gatherer) *HealthHandler {
	return &HealthHandler{
		metrics: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz requests. A 200 with the metrics body
// doubles as the liveness signal.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}
