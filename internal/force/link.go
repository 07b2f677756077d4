package force

import (
	"math"

	"netlayout/internal/domain"
)

// StrengthFunc returns the spring stiffness for a link
type StrengthFunc func(l *domain.NetLink, source, target *domain.NetElement) float64

// DistanceFunc returns the rest length for a link
type DistanceFunc func(l *domain.NetLink, source, target *domain.NetElement) float64

// DefaultLinkDistance is the rest length when none is configured
const DefaultLinkDistance = 30

// ConstantDistance returns a DistanceFunc with a fixed rest length
func ConstantDistance(d float64) DistanceFunc {
	return func(*domain.NetLink, *domain.NetElement, *domain.NetElement) float64 { return d }
}

// GroupStrength gives full stiffness to links within a group and cross to links
// between groups, which keeps clusters tight while loosely coupling them
func GroupStrength(cross float64) StrengthFunc {
	return func(_ *domain.NetLink, source, target *domain.NetElement) float64 {
		if source.Group == target.Group {
			return 1
		}
		return cross
	}
}

type linkParams struct {
	bias     float64
	strength float64
	distance float64
}

// Link pulls link endpoints toward a rest distance. Heavier (higher degree)
// endpoints move less.
type Link struct {
	graph    Graph
	strength StrengthFunc
	distance DistanceFunc
	random   func() float64
	params   map[int]linkParams
}

// NewLink creates a link force over the graph's links. A nil strength uses the
// degree-based default; a nil distance uses DefaultLinkDistance.
func NewLink(g Graph, strength StrengthFunc, distance DistanceFunc) *Link {
	if distance == nil {
		distance = ConstantDistance(DefaultLinkDistance)
	}
	return &Link{
		graph:    g,
		strength: strength,
		distance: distance,
		params:   make(map[int]linkParams),
	}
}

// Initialize recomputes degree bias, strength and distance for every link
func (f *Link) Initialize(_ []*domain.NetElement, random func() float64) {
	f.random = random
	f.params = make(map[int]linkParams)

	links := f.graph.Links()
	count := make(map[int]int)
	for _, l := range links {
		count[l.Source]++
		count[l.Target]++
	}

	for _, l := range links {
		src, tgt, ok := f.graph.Endpoints(l)
		if !ok {
			continue
		}
		cs, ct := float64(count[l.Source]), float64(count[l.Target])
		p := linkParams{
			bias:     cs / (cs + ct),
			distance: f.distance(l, src, tgt),
		}
		if f.strength != nil {
			p.strength = f.strength(l, src, tgt)
		} else {
			p.strength = 1 / math.Min(cs, ct)
		}
		f.params[l.ID] = p
	}
}

// Apply moves endpoint velocities toward the rest distance
func (f *Link) Apply(alpha float64) {
	for _, l := range f.graph.Links() {
		p, ok := f.params[l.ID]
		if !ok {
			continue
		}
		src, tgt, ok := f.graph.Endpoints(l)
		if !ok {
			continue
		}
		x := tgt.X + tgt.VX - src.X - src.VX
		if x == 0 {
			x = jiggle(f.random)
		}
		y := tgt.Y + tgt.VY - src.Y - src.VY
		if y == 0 {
			y = jiggle(f.random)
		}
		d := math.Sqrt(x*x + y*y)
		d = (d - p.distance) / d * alpha * p.strength
		x *= d
		y *= d
		tgt.VX -= x * p.bias
		tgt.VY -= y * p.bias
		src.VX += x * (1 - p.bias)
		src.VY += y * (1 - p.bias)
	}
}
