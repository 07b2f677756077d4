package force

import "netlayout/internal/domain"

// Center translates all elements so their mean position sits at the center
// point. It does nothing while any element is pinned, since moving the frame
// would drag pinned elements off their pins.
type Center struct {
	x, y  float64
	nodes []*domain.NetElement
}

// NewCenter creates a centering force
func NewCenter(x, y float64) *Center {
	return &Center{x: x, y: y}
}

// SetCenter moves the center point, e.g. after a viewport resize
func (f *Center) SetCenter(x, y float64) {
	f.x, f.y = x, y
}

// Point returns the center point
func (f *Center) Point() domain.Point {
	return domain.Point{X: f.x, Y: f.y}
}

func (f *Center) Initialize(nodes []*domain.NetElement, _ func() float64) {
	f.nodes = nodes
}

func (f *Center) Apply(float64) {
	if len(f.nodes) == 0 {
		return
	}
	for _, n := range f.nodes {
		if n.Pinned() {
			return
		}
	}

	var sx, sy float64
	for _, n := range f.nodes {
		sx += n.X
		sy += n.Y
	}
	n := float64(len(f.nodes))
	dx := sx/n - f.x
	dy := sy/n - f.y
	for _, node := range f.nodes {
		node.X -= dx
		node.Y -= dy
	}
}
