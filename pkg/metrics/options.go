package metrics

import "github.com/prometheus/client_golang/prometheus"

// Option configures a Manager. Zero values keep the default.
type Option func(*Manager)

// WithNamespace replaces the "rankr" metric namespace.
func WithNamespace(ns string) Option {
	return func(m *Manager) { m.namespace = orDefault(ns, m.namespace) }
}

// WithSubsystem replaces the "tournament" subsystem of the domain metrics.
func WithSubsystem(sub string) Option {
	return func(m *Manager) { m.subsystem = orDefault(sub, m.subsystem) }
}

// WithHistogramBuckets sets the latency buckets, in milliseconds.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithConstLabels attaches labels such as the deployment name to every metric.
func WithConstLabels(labels map[string]string) Option {
	return func(m *Manager) {
		if labels != nil {
			m.constLabels = labels
		}
	}
}

// WithPrometheusRegistry registers the metrics on reg instead of the default registerer.
func WithPrometheusRegistry(reg prometheus.Registerer) Option {
	return func(m *Manager) {
		if reg != nil {
			m.registry = reg
		}
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
