package domain

// ElementType represents the kind of network element
type ElementType string

const (
	ElementTypeRouter ElementType = "router"
	ElementTypeCloud  ElementType = "cloud"
	ElementTypeRRN    ElementType = "rrn"
)

// NetElement represents a node in the layout. Position and velocity fields are
// owned by the force simulation; FX/FY are the only way interaction code may
// place a node directly.
type NetElement struct {
	ID          int
	Type        ElementType
	Name        string
	Group       string
	Level       int
	Severity    int
	EventCount  int
	Hidden      bool
	Highlighted bool

	X  float64
	Y  float64
	VX float64
	VY float64
	FX *float64
	FY *float64

	// placed is false until the element has a position, either persisted or seeded
	placed bool
}

// NewNetElement creates a new element with no position
func NewNetElement(id int, elementType ElementType, group string) *NetElement {
	return &NetElement{
		ID:    id,
		Type:  elementType,
		Group: group,
	}
}

// Pinned reports whether both FX and FY are set
func (e *NetElement) Pinned() bool {
	return e.FX != nil && e.FY != nil
}

// Pin fixes the element at (x, y). The current position follows the pin.
func (e *NetElement) Pin(x, y float64) {
	e.FX = &x
	e.FY = &y
	e.X, e.Y = x, y
	e.VX, e.VY = 0, 0
	e.placed = true
}

// Unpin releases a fixed position so the simulation can move the element again
func (e *NetElement) Unpin() {
	e.FX = nil
	e.FY = nil
}

// Freeze pins the element where it currently is
func (e *NetElement) Freeze() {
	e.Pin(e.X, e.Y)
}

// Position returns the current position
func (e *NetElement) Position() Point {
	return Point{X: e.X, Y: e.Y}
}

// Place sets an initial position for an element that the simulation has not
// positioned yet. Pinned elements keep their pin.
func (e *NetElement) Place(x, y float64) {
	if e.Pinned() {
		return
	}
	e.X, e.Y = x, y
	e.placed = true
}

// Placed reports whether the element has a position
func (e *NetElement) Placed() bool {
	return e.placed
}

// MarkPlaced records that X/Y hold a real position (e.g. loaded from a snapshot)
func (e *NetElement) MarkPlaced() {
	e.placed = true
}

// IsCloud reports whether the element is a group placeholder
func (e *NetElement) IsCloud() bool {
	return e.Type == ElementTypeCloud
}

// Clone returns a deep copy, including the pin pointers
func (e *NetElement) Clone() *NetElement {
	c := *e
	if e.FX != nil {
		fx := *e.FX
		c.FX = &fx
	}
	if e.FY != nil {
		fy := *e.FY
		c.FY = &fy
	}
	return &c
}
