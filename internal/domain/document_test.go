package domain

import (
	"errors"
	"testing"
)

func float(v float64) *float64 { return &v }

func TestElementRecordRoundTrip(t *testing.T) {
	t.Run("record without position is unplaced", func(t *testing.T) {
		e := ElementRecord{ID: 1, Type: ElementTypeRouter}.Element()
		if e.Placed() {
			t.Error("expected element without x/y to be unplaced")
		}
		if e.Pinned() {
			t.Error("expected element without fx/fy to be free")
		}
	})

	t.Run("record with position is placed", func(t *testing.T) {
		e := ElementRecord{ID: 1, Type: ElementTypeRouter, X: float(3), Y: float(4)}.Element()
		if !e.Placed() || e.X != 3 || e.Y != 4 {
			t.Errorf("expected placed at (3,4), got (%v,%v)", e.X, e.Y)
		}
	})

	t.Run("pinned element keeps its pin", func(t *testing.T) {
		src := NewNetElement(4, ElementTypeCloud, "g1")
		src.Name = "edge"
		src.Level = 2
		src.Pin(10, 20)

		e := RecordOf(src).Element()
		if !e.Pinned() || *e.FX != 10 || *e.FY != 20 {
			t.Errorf("expected pin (10,20), got %v,%v", e.FX, e.FY)
		}
		if e.Name != "edge" || e.Level != 2 || e.Group != "g1" {
			t.Errorf("expected attributes to survive, got %+v", e)
		}
	})
}

func TestLinkRecord(t *testing.T) {
	l := NewNetLink(3, 1, 2)
	l.SetLoadStatus(1, LoadStatusEntry{LoadingPercent: 50, Status: LoadStatusWarning})

	rec := LinkRecordOf(l)
	l.SetLoadStatus(1, LoadStatusEntry{Status: LoadStatusOK})

	if rec.LoadStatus[1].Status != LoadStatusWarning {
		t.Errorf("expected record to be detached from the link, got %s", rec.LoadStatus[1].Status)
	}

	back := rec.Link(rec.ID)
	if back.ID != 3 || back.Source != 1 || back.Target != 2 {
		t.Errorf("expected link 3: 1->2, got %d: %d->%d", back.ID, back.Source, back.Target)
	}
}

func TestErrors(t *testing.T) {
	t.Run("reference error unwraps", func(t *testing.T) {
		var err error = &ReferenceError{LinkIndex: 0, Endpoint: "target", ElementID: 9}
		if !errors.Is(err, ErrUnresolvedReference) {
			t.Error("expected ReferenceError to match ErrUnresolvedReference")
		}
	})

	t.Run("invariant error unwraps", func(t *testing.T) {
		var err error = &InvariantError{ElementID: 1, Reason: "no cloud"}
		if !errors.Is(err, ErrInvariantViolation) {
			t.Error("expected InvariantError to match ErrInvariantViolation")
		}
		var ie *InvariantError
		if !errors.As(err, &ie) || ie.ElementID != 1 {
			t.Error("expected errors.As to recover the element id")
		}
	})
}
