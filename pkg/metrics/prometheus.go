// Package metrics holds the Prometheus instruments of rankr behind a Manager
// and package-level helpers bound to a private registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus metric of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Tournament metrics
	sessionsCreated   prometheus.Counter
	sessionsFinished  prometheus.Counter
	sessionsExpired   prometheus.Counter
	sessionsActive    prometheus.Gauge
	votes             *prometheus.CounterVec
	undos             prometheus.Counter
	invalidSelections prometheus.Counter

	// Export metrics
	exports       *prometheus.CounterVec
	exportLatency prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System metrics
	systemMemoryUsage   prometheus.Gauge
	systemGoroutines    prometheus.Gauge
	systemGCPauseTimeMs prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rankr",
		subsystem:        "tournament",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.sessionsCreated = auto.NewCounter(m.counterOpts("sessions_created_total",
		"Total number of tournaments started"))
	m.sessionsFinished = auto.NewCounter(m.counterOpts("sessions_finished_total",
		"Total number of tournaments that reached a final ranking"))
	m.sessionsExpired = auto.NewCounter(m.counterOpts("sessions_expired_total",
		"Total number of abandoned tournaments discarded by the store"))
	m.sessionsActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "sessions_active",
		Help:        "Current number of live tournaments",
		ConstLabels: m.constLabels,
	})
	m.votes = auto.NewCounterVec(m.counterOpts("votes_total",
		"Total number of recorded votes by choice"), []string{"choice"})
	m.undos = auto.NewCounter(m.counterOpts("undos_total",
		"Total number of undone votes"))
	m.invalidSelections = auto.NewCounter(m.counterOpts("invalid_selections_total",
		"Total number of rejected item selections"))

	m.exports = auto.NewCounterVec(m.counterOpts("exports_total",
		"Total number of ranking exports by result"), []string{"result"})
	m.exportLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "export_latency_milliseconds",
		Help:        "Histogram of ranking export latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total",
		"Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})
	m.errorRateByType = auto.NewCounterVec(m.counterOpts("errors_by_type_total",
		"Total number of errors by type and severity"), []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total",
		"Total number of errors by endpoint"), []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "memory_usage_bytes",
		Help:        "Heap bytes allocated",
		ConstLabels: m.constLabels,
	})
	m.systemGoroutines = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "goroutines",
		Help:        "Current number of goroutines",
		ConstLabels: m.constLabels,
	})
	m.systemGCPauseTimeMs = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "gc_pause_time_milliseconds",
		Help:        "Average GC pause time in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})
}

// RecordSessionCreated increments the started tournaments counter and the active gauge.
func (m *Manager) RecordSessionCreated() {
	m.sessionsCreated.Inc()
	m.sessionsActive.Inc()
}

// RecordSessionFinished increments the finished tournaments counter.
func (m *Manager) RecordSessionFinished() { m.sessionsFinished.Inc() }

// RecordSessionClosed decrements the active gauge; expired marks a store eviction.
func (m *Manager) RecordSessionClosed(expired bool) {
	m.sessionsActive.Dec()
	if expired {
		m.sessionsExpired.Inc()
	}
}

// RecordVote counts a vote by choice name.
func (m *Manager) RecordVote(choice string) { m.votes.WithLabelValues(choice).Inc() }

// RecordUndo counts an undone vote.
func (m *Manager) RecordUndo() { m.undos.Inc() }

// RecordInvalidSelection counts a rejected selection.
func (m *Manager) RecordInvalidSelection() { m.invalidSelections.Inc() }

// RecordExport counts an export and observes its latency.
func (m *Manager) RecordExport(ok bool, latencyMs float64) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.exports.WithLabelValues(result).Inc()
	m.exportLatency.Observe(latencyMs)
}

// RecordHTTPRequest records one request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordHTTPError records a failed request by endpoint, type and severity.
func (m *Manager) RecordHTTPError(endpoint, method, errorType, severity string) {
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystemMemoryUsage sets the allocated heap bytes.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) { m.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the goroutine gauge.
func (m *Manager) UpdateSystemGoroutineCount(n int) { m.systemGoroutines.Set(float64(n)) }

// RecordSystemGCPauseTime observes an average GC pause.
func (m *Manager) RecordSystemGCPauseTime(ms float64) { m.systemGCPauseTimeMs.Observe(ms) }

// Package-level helpers delegate to the global manager.

// Default returns the global manager.
func Default() *Manager { return globalManager }

// RecordSessionCreated records a started tournament.
func RecordSessionCreated() { globalManager.RecordSessionCreated() }

// RecordSessionFinished records a tournament reaching its final ranking.
func RecordSessionFinished() { globalManager.RecordSessionFinished() }

// RecordSessionClosed records a discarded tournament.
func RecordSessionClosed(expired bool) { globalManager.RecordSessionClosed(expired) }

// RecordVote records a vote by choice name.
func RecordVote(choice string) { globalManager.RecordVote(choice) }

// RecordUndo records an undone vote.
func RecordUndo() { globalManager.RecordUndo() }

// RecordInvalidSelection records a rejected selection.
func RecordInvalidSelection() { globalManager.RecordInvalidSelection() }

// RecordExport records an export outcome and latency.
func RecordExport(ok bool, latencyMs float64) { globalManager.RecordExport(ok, latencyMs) }

// RecordHTTPRequest records one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordHTTPError records a failed HTTP request.
func RecordHTTPError(endpoint, method, errorType, severity string) {
	globalManager.RecordHTTPError(endpoint, method, errorType, severity)
}

// UpdateSystemMemoryUsage sets the allocated heap bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(n int) { globalManager.UpdateSystemGoroutineCount(n) }

// RecordSystemGCPauseTime observes an average GC pause.
func RecordSystemGCPauseTime(ms float64) { globalManager.RecordSystemGCPauseTime(ms) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
