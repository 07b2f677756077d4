package metrics

import (
	"strconv"
	"time"
)

// RecordTick records one simulation tick of a session
func (r *Registry) RecordTick(session string, alpha float64, moves int, duration time.Duration) {
	r.TicksTotal.Inc()
	r.TickDuration.Observe(duration.Seconds())
	r.Alpha.WithLabelValues(session).Set(alpha)
	if moves > 0 {
		r.ClusterMovesTotal.Add(float64(moves))
	}
}

// RecordConvergence records a simulation reaching a static layout
func (r *Registry) RecordConvergence(session string, ticks uint64) {
	r.ConvergencesTotal.Inc()
	r.TicksToConverge.Observe(float64(ticks))
	r.Alpha.WithLabelValues(session).Set(0)
}

// RecordRemoval records the outcome of a removal request
func (r *Registry) RecordRemoval(result string) {
	r.RemovalsTotal.WithLabelValues(result).Inc()
}

// RecordEvent records an applied input event
func (r *Registry) RecordEvent(eventType string) {
	r.EventsTotal.WithLabelValues(eventType).Inc()
}

// SessionOpened records a new session and its size
func (r *Registry) SessionOpened(session string, elements int) {
	r.SessionsActive.Inc()
	r.ElementsTotal.WithLabelValues(session).Set(float64(elements))
}

// SessionClosed removes the per-session series of a closed session
func (r *Registry) SessionClosed(session string) {
	r.SessionsActive.Dec()
	r.ElementsTotal.DeleteLabelValues(session)
	r.Alpha.DeleteLabelValues(session)
}

// SetElements updates the element count of a session
func (r *Registry) SetElements(session string, elements int) {
	r.ElementsTotal.WithLabelValues(session).Set(float64(elements))
}

// RecordSnapshotSave records a snapshot write
func (r *Registry) RecordSnapshotSave(result string, size int, duration time.Duration) {
	r.SnapshotSavesTotal.WithLabelValues(result).Inc()
	r.SnapshotSaveDuration.Observe(duration.Seconds())
	if size > 0 {
		r.SnapshotBytes.Observe(float64(size))
	}
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
