package force

import (
	"math"

	"netlayout/internal/domain"
)

// DefaultNodeRadius is the collision radius of an element
const DefaultNodeRadius = 60

// PairFunc selects a pair of elements
type PairFunc func(a, b *domain.NetElement) bool

// SameGroup reports whether both elements belong to the same named group.
// Ungrouped elements never match.
func SameGroup(a, b *domain.NetElement) bool {
	return a.Group != "" && a.Group == b.Group
}

// Collide keeps elements at least two radii apart. Overlapping pairs are pushed
// apart symmetrically; the push is not scaled by alpha.
type Collide struct {
	radius   float64
	strength float64
	ignore   PairFunc
	nodes    []*domain.NetElement
	random   func() float64
}

// NewCollide creates a collision force with a uniform radius
func NewCollide(radius float64) *Collide {
	return &Collide{radius: radius, strength: 1}
}

// Ignore excludes the pairs selected by fn from collision. Clustered layouts
// ignore same-group pairs so members can sit closer than two radii.
func (f *Collide) Ignore(fn PairFunc) *Collide {
	f.ignore = fn
	return f
}

// Radius returns the collision radius
func (f *Collide) Radius() float64 {
	return f.radius
}

func (f *Collide) Initialize(nodes []*domain.NetElement, random func() float64) {
	f.nodes = nodes
	f.random = random
}

func (f *Collide) Apply(float64) {
	ri := f.radius
	rj := f.radius
	r := ri + rj
	ri2 := ri * ri
	rj2 := rj * rj

	for i, node := range f.nodes {
		xi := node.X + node.VX
		yi := node.Y + node.VY
		for _, other := range f.nodes[i+1:] {
			if f.ignore != nil && f.ignore(node, other) {
				continue
			}
			x := xi - (other.X + other.VX)
			y := yi - (other.Y + other.VY)
			l := x*x + y*y
			if l >= r*r {
				continue
			}
			if x == 0 {
				x = jiggle(f.random)
				l += x * x
			}
			if y == 0 {
				y = jiggle(f.random)
				l += y * y
			}
			l = math.Sqrt(l)
			l = (r - l) / l * f.strength
			x *= l
			y *= l
			share := rj2 / (ri2 + rj2)
			node.VX += x * share
			node.VY += y * share
			share = 1 - share
			other.VX -= x * share
			other.VY -= y * share
		}
	}
}
