// Package metrics exposes Prometheus instruments for layout sessions.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application
type Registry struct {
	// Simulation Metrics
	TicksTotal        prometheus.Counter
	TickDuration      prometheus.Histogram
	Alpha             *prometheus.GaugeVec
	ConvergencesTotal prometheus.Counter
	TicksToConverge   prometheus.Histogram
	ClusterMovesTotal prometheus.Counter

	// Mutation Metrics
	RemovalsTotal *prometheus.CounterVec
	EventsTotal   *prometheus.CounterVec

	// Session Metrics
	SessionsActive prometheus.Gauge
	ElementsTotal  *prometheus.GaugeVec

	// Persistence Metrics
	SnapshotSavesTotal   *prometheus.CounterVec
	SnapshotSaveDuration prometheus.Histogram
	SnapshotBytes        prometheus.Histogram

	// HTTP Metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initSimulationMetrics()
	r.initSessionMetrics()
	r.initPersistenceMetrics()
	r.initHTTPMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
