package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.TicksTotal == nil {
		t.Error("TicksTotal not initialized")
	}
	if r.RemovalsTotal == nil {
		t.Error("RemovalsTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordTick(t *testing.T) {
	r := NewRegistry()

	r.RecordTick("s1", 0.5, 3, time.Millisecond)
	r.RecordTick("s1", 0.25, 0, time.Millisecond)

	var metric dto.Metric
	if err := r.TicksTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2 {
		t.Errorf("TicksTotal = %v, want 2", metric.Counter.GetValue())
	}

	gauge, err := r.Alpha.GetMetricWithLabelValues("s1")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	metric = dto.Metric{}
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() != 0.25 {
		t.Errorf("Alpha = %v, want 0.25", metric.Gauge.GetValue())
	}

	metric = dto.Metric{}
	if err := r.ClusterMovesTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 3 {
		t.Errorf("ClusterMovesTotal = %v, want 3", metric.Counter.GetValue())
	}
}

func TestRecordRemoval(t *testing.T) {
	r := NewRegistry()
	r.RecordRemoval("removed")
	r.RecordRemoval("rejected")
	r.RecordRemoval("removed")

	counter, err := r.RemovalsTotal.GetMetricWithLabelValues("removed")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2 {
		t.Errorf("removed counter = %v, want 2", metric.Counter.GetValue())
	}
}

func TestSessionLifecycle(t *testing.T) {
	r := NewRegistry()
	r.SessionOpened("a", 5)
	r.SessionOpened("b", 7)
	r.SessionClosed("a")

	var metric dto.Metric
	if err := r.SessionsActive.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() != 1 {
		t.Errorf("SessionsActive = %v, want 1", metric.Gauge.GetValue())
	}

	families, err := r.registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "netlayout_session_elements" {
			continue
		}
		if len(mf.GetMetric()) != 1 {
			t.Errorf("expected 1 element series after close, got %d", len(mf.GetMetric()))
		}
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.RecordConvergence("s1", 66)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if !strings.Contains(rec.Body.String(), "netlayout_simulation_convergences_total 1") {
		t.Errorf("expected convergence counter in output, got:\n%s", rec.Body.String())
	}
}
