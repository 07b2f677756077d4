package engine

import (
	"netlayout/internal/cluster"
	"netlayout/internal/domain"
	"netlayout/internal/graph"
	"netlayout/internal/interaction"
)

// frame builds the render view of the current state
func (e *Engine) frame() *domain.Frame {
	sel := e.controller.Selection()
	elements := e.store.Elements()
	links := e.store.Links()

	f := &domain.Frame{
		Tick:       e.sim.Ticks(),
		Alpha:      e.sim.Alpha(),
		Converged:  e.sim.Converged(),
		Nodes:      make([]domain.NodeState, 0, len(elements)),
		Links:      make([]domain.LinkState, 0, len(links)),
		Boundaries: e.boundaries,
		Transform:  e.controller.Transform(),
	}

	for _, el := range elements {
		ns := domain.StateOf(el)
		ns.Selected = sel.Kind == interaction.SelectionNode && sel.ID == el.ID
		f.Nodes = append(f.Nodes, ns)
	}
	for _, l := range links {
		src, tgt, ok := e.store.Endpoints(l)
		if !ok {
			continue
		}
		f.Links = append(f.Links, domain.LinkState{
			ID:       l.ID,
			Source:   l.Source,
			Target:   l.Target,
			X1:       src.X,
			Y1:       src.Y,
			X2:       tgt.X,
			Y2:       tgt.Y,
			Hidden:   l.Hidden,
			Status:   l.PrimaryStatus(),
			Selected: sel.Kind == interaction.SelectionLink && sel.ID == l.ID,
		})
	}
	return f
}

// State returns the current render view without advancing the simulation
func (e *Engine) State() *domain.Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frame()
}

// Snapshot returns a reference-free copy of the layout
func (e *Engine) Snapshot() *domain.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Snapshot()
}

// Restore replaces the layout with a snapshot and restarts the simulation from
// alpha 1. Elements removed earlier in the session stay removed. A snapshot that
// cannot be restored leaves the engine untouched.
func (e *Engine) Restore(doc *domain.Document) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	store, err := graph.Restore(doc, e.store.RetiredIDs()...)
	if err != nil {
		return err
	}

	e.store = store
	if !e.showClouds {
		e.store.SetCloudsVisible(false)
	}
	e.controller.Reset()
	e.rebuild()
	if e.recorder != nil {
		e.recorder.SetElements(e.id, e.store.Len())
	}
	return nil
}

// GroupBoundary computes the boundary of a group from the current positions.
// It reports false for groups with fewer than three visible members.
func (e *Engine) GroupBoundary(group string) (domain.GroupBoundary, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if group == "" {
		return domain.GroupBoundary{}, false
	}
	return cluster.Boundary(group, e.store.Groups()[group])
}

// Transform returns the current view transform
func (e *Engine) Transform() domain.ViewTransform {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.controller.Transform()
}

// Selection returns the current selection
func (e *Engine) Selection() interaction.Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.controller.Selection()
}

// InteractionState returns the current interaction state
func (e *Engine) InteractionState() interaction.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.controller.State()
}

// Alpha returns the current simulation energy
func (e *Engine) Alpha() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sim.Alpha()
}

// Ticks returns the number of ticks of the current simulation
func (e *Engine) Ticks() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sim.Ticks()
}

// Running reports whether the simulation is live
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sim.Running()
}

// Converged reports whether the layout is static
func (e *Engine) Converged() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sim.Converged()
}

// Len returns the number of elements
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Len()
}
