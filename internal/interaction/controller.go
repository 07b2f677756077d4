// Package interaction turns UI input into pins, selection and view changes.
//
// The controller never moves an element directly: dragging sets FX/FY and
// everything else goes through the Layout it drives.
package interaction

import (
	"fmt"

	"netlayout/internal/domain"
	"netlayout/internal/force"
)

// State is the interaction state
type State string

const (
	StateIdle         State = "idle"
	StateDragging     State = "dragging"
	StateZooming      State = "zooming"
	StateNodeSelected State = "node-selected"
	StateLinkSelected State = "link-selected"
)

// SelectionKind is what the current selection refers to
type SelectionKind string

const (
	SelectionNone SelectionKind = ""
	SelectionNode SelectionKind = "node"
	SelectionLink SelectionKind = "link"
)

// Selection is the single selected node or link
type Selection struct {
	Kind SelectionKind `json:"kind,omitempty"`
	ID   int           `json:"id,omitempty"`
}

// Layout is what the controller drives
type Layout interface {
	Element(id int) (*domain.NetElement, bool)
	Link(id int) (*domain.NetLink, bool)
	SetAlphaTarget(target float64)
	Restart()
	RemoveElement(id int) error
	SetCloudsVisible(show bool)
	Resize(width, height float64)
	Persist()
}

// Controller is the interaction state machine of one session
type Controller struct {
	layout    Layout
	selection Selection
	transform domain.ViewTransform
	zooming   bool
	dragging  bool
	dragID    int
	width     float64
	height    float64
	drop      *domain.Point
}

// NewController creates a controller for a viewport of the given size
func NewController(layout Layout, width, height float64) *Controller {
	return &Controller{
		layout:    layout,
		transform: domain.Identity,
		width:     width,
		height:    height,
	}
}

// State returns the current interaction state
func (c *Controller) State() State {
	switch {
	case c.dragging:
		return StateDragging
	case c.selection.Kind == SelectionNode:
		return StateNodeSelected
	case c.selection.Kind == SelectionLink:
		return StateLinkSelected
	case c.zooming:
		return StateZooming
	default:
		return StateIdle
	}
}

// Selection returns the current selection
func (c *Controller) Selection() Selection {
	return c.selection
}

// Transform returns the current view transform
func (c *Controller) Transform() domain.ViewTransform {
	return c.transform
}

// Viewport returns the viewport size
func (c *Controller) Viewport() (width, height float64) {
	return c.width, c.height
}

// TakeDrop returns and clears the pending drop position, in graph coordinates
func (c *Controller) TakeDrop() (domain.Point, bool) {
	if c.drop == nil {
		return domain.Point{}, false
	}
	p := *c.drop
	c.drop = nil
	return p, true
}

// Reset drops the drag and the selection. It is called when the elements they
// refer to are replaced. The view transform and a pending drop are kept.
func (c *Controller) Reset() {
	c.dragging = false
	c.dragID = 0
	c.zooming = false
	c.clearSelection()
}

// Handle applies one event. Events that refer to missing elements are ignored.
// Only a rejected removal returns an error.
func (c *Controller) Handle(ev Event) error {
	switch ev.Type {
	case EventDragStart:
		c.dragStart(ev.ID)
	case EventDragMove:
		if ev.Pointer != nil {
			c.dragMove(ev.ID, *ev.Pointer)
		}
	case EventDragEnd:
		c.dragEnd(ev.ID)
	case EventZoom:
		if ev.Transform != nil && ev.Transform.Valid() {
			c.zoom(*ev.Transform)
		}
	case EventZoomBy:
		if ev.Factor > 0 {
			anchor := domain.Point{X: c.width / 2, Y: c.height / 2}
			c.zoom(c.transform.ScaleAbout(ev.Factor, anchor))
		}
	case EventSelectNode:
		if _, ok := c.layout.Element(ev.ID); ok {
			c.zooming = false
			c.selection = Selection{Kind: SelectionNode, ID: ev.ID}
		}
	case EventSelectLink:
		if _, ok := c.layout.Link(ev.ID); ok {
			c.zooming = false
			c.selection = Selection{Kind: SelectionLink, ID: ev.ID}
		}
	case EventClearSelection:
		c.zooming = false
		c.clearSelection()
	case EventDeleteSelected:
		return c.deleteSelected()
	case EventResize:
		if ev.Width > 0 && ev.Height > 0 {
			c.width, c.height = ev.Width, ev.Height
			c.layout.Resize(ev.Width, ev.Height)
		}
	case EventDropAt:
		if ev.Pointer != nil {
			p := c.transform.Invert(*ev.Pointer)
			c.drop = &p
		}
	case EventShowClouds:
		c.layout.SetCloudsVisible(ev.Show)
	case EventSave:
		c.layout.Persist()
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	return nil
}

func (c *Controller) dragStart(id int) {
	e, ok := c.layout.Element(id)
	if !ok {
		return
	}
	c.clearSelection()
	c.zooming = false
	c.dragging = true
	c.dragID = id
	c.layout.SetAlphaTarget(force.HotAlphaTarget)
	c.layout.Restart()
	e.Pin(e.X, e.Y)
}

func (c *Controller) dragMove(id int, pointer domain.Point) {
	if !c.dragging || id != c.dragID {
		return
	}
	e, ok := c.layout.Element(id)
	if !ok {
		return
	}
	p := c.transform.Invert(pointer)
	e.Pin(p.X, p.Y)
}

func (c *Controller) dragEnd(id int) {
	if !c.dragging || id != c.dragID {
		return
	}
	c.dragging = false
	c.dragID = 0
	c.layout.SetAlphaTarget(0)
	c.layout.Persist()
}

func (c *Controller) zoom(t domain.ViewTransform) {
	c.transform = t
	c.zooming = true
	c.clearSelection()
}

func (c *Controller) clearSelection() {
	c.selection = Selection{}
}

func (c *Controller) deleteSelected() error {
	if c.selection.Kind != SelectionNode {
		return nil
	}
	id := c.selection.ID
	c.clearSelection()
	return c.layout.RemoveElement(id)
}
