package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSimulationMetrics() {
	r.TicksTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "netlayout_simulation_ticks_total",
			Help: "Total number of simulation ticks across all sessions",
		},
	)

	r.TickDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netlayout_simulation_tick_duration_seconds",
			Help:    "Time spent in one tick, including clustering and boundaries",
			Buckets: []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	r.Alpha = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "netlayout_simulation_alpha",
			Help: "Current simulation energy per session",
		},
		[]string{"session"},
	)

	r.ConvergencesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "netlayout_simulation_convergences_total",
			Help: "Total number of simulations that reached a static layout",
		},
	)

	r.TicksToConverge = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netlayout_simulation_ticks_to_converge",
			Help:    "Number of ticks a simulation ran before converging",
			Buckets: []float64{25, 50, 75, 100, 200, 300, 500, 1000},
		},
	)

	r.ClusterMovesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "netlayout_cluster_moves_total",
			Help: "Total number of element moves made by the clustering adjuster",
		},
	)
}

func (r *Registry) initSessionMetrics() {
	r.RemovalsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netlayout_removals_total",
			Help: "Total number of element removals by result",
		},
		[]string{"result"}, // removed, noop, rejected
	)

	r.EventsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netlayout_input_events_total",
			Help: "Total number of input events applied",
		},
		[]string{"type"},
	)

	r.SessionsActive = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "netlayout_sessions_active",
			Help: "Number of live layout sessions",
		},
	)

	r.ElementsTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "netlayout_session_elements",
			Help: "Number of elements per session",
		},
		[]string{"session"},
	)
}

func (r *Registry) initPersistenceMetrics() {
	r.SnapshotSavesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netlayout_snapshot_saves_total",
			Help: "Total number of snapshot saves by result",
		},
		[]string{"result"}, // written, unchanged, error
	)

	r.SnapshotSaveDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netlayout_snapshot_save_duration_seconds",
			Help:    "Snapshot save latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	r.SnapshotBytes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netlayout_snapshot_bytes",
			Help:    "Compressed snapshot size in bytes",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		},
	)
}

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "netlayout_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netlayout_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
}
