package engine

import (
	"log"

	"netlayout/internal/domain"
)

// layout is the view of the engine the interaction controller drives. Its
// methods run inside Frame with the engine lock held.
type layout struct {
	e *Engine
}

func (l layout) Element(id int) (*domain.NetElement, bool) {
	return l.e.store.Element(id)
}

func (l layout) Link(id int) (*domain.NetLink, bool) {
	return l.e.store.Link(id)
}

func (l layout) SetAlphaTarget(target float64) {
	l.e.sim.SetAlphaTarget(target)
}

func (l layout) Restart() {
	l.e.sim.Restart()
}

// RemoveElement removes an element, reattaching its links to the group cloud,
// then forces one tick so the frame reflects the change immediately
func (l layout) RemoveElement(id int) error {
	e := l.e
	removal, err := e.store.RemoveNode(id)
	if err != nil {
		log.Printf("Layout %s: removal of element %d rejected: %v", e.id, id, err)
		if e.recorder != nil {
			e.recorder.RecordRemoval("rejected")
		}
		return err
	}
	if removal == nil {
		if e.recorder != nil {
			e.recorder.RecordRemoval("noop")
		}
		return nil
	}

	e.sim.Reset()
	e.step()
	e.store.UpdateVisibility()

	if e.recorder != nil {
		e.recorder.RecordRemoval("removed")
		e.recorder.SetElements(e.id, e.store.Len())
	}
	if e.onRemoved != nil {
		e.onRemoved(removal)
	}
	return nil
}

func (l layout) SetCloudsVisible(show bool) {
	l.e.showClouds = show
	l.e.store.SetCloudsVisible(show)
}

func (l layout) Resize(width, height float64) {
	l.e.opts.Width = width
	l.e.opts.Height = height
	l.e.rebuild()
}

func (l layout) Persist() {
	l.e.persist()
}
