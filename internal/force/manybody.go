package force

import (
	"math"

	"netlayout/internal/domain"
)

const (
	// DefaultRepulsionStrength pushes nearby elements apart
	DefaultRepulsionStrength = -100
	// DefaultRepulsionMinDistance clamps the distance used for close pairs
	DefaultRepulsionMinDistance = 60
	// DefaultRepulsionMaxDistance is the range of repulsion
	DefaultRepulsionMaxDistance = 300

	// DefaultAttractionStrength pulls distant elements together
	DefaultAttractionStrength = 300
	// DefaultAttractionMinDistance is the distance below which attraction is off
	DefaultAttractionMinDistance = 1200
)

// ManyBody applies an inverse-distance force between every pair of elements.
// Negative strength repels, positive attracts. Pairs are evaluated exactly,
// which is O(n²) per tick.
type ManyBody struct {
	strength    float64
	distanceMin float64
	distanceMax float64
	// innerCutoff switches pairs closer than distanceMin off instead of clamping
	innerCutoff bool

	nodes  []*domain.NetElement
	random func() float64
}

// NewRepulsion creates a short-range repulsive force. Pairs further than max
// are ignored and pairs closer than min are treated as min apart.
func NewRepulsion(strength, min, max float64) *ManyBody {
	return &ManyBody{
		strength:    -math.Abs(strength),
		distanceMin: min,
		distanceMax: max,
	}
}

// NewAttraction creates a long-range attractive force that only acts on pairs at
// least min apart, keeping disconnected components from drifting away
func NewAttraction(strength, min float64) *ManyBody {
	return &ManyBody{
		strength:    math.Abs(strength),
		distanceMin: min,
		distanceMax: math.Inf(1),
		innerCutoff: true,
	}
}

// Strength returns the signed strength
func (f *ManyBody) Strength() float64 {
	return f.strength
}

func (f *ManyBody) Initialize(nodes []*domain.NetElement, random func() float64) {
	f.nodes = nodes
	f.random = random
}

func (f *ManyBody) Apply(alpha float64) {
	min2 := f.distanceMin * f.distanceMin
	max2 := f.distanceMax * f.distanceMax

	for _, node := range f.nodes {
		for _, other := range f.nodes {
			if other == node {
				continue
			}
			x := other.X - node.X
			y := other.Y - node.Y
			l := x*x + y*y
			if l >= max2 {
				continue
			}
			if f.innerCutoff && l < min2 {
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
			if l < min2 {
				l = math.Sqrt(min2 * l)
			}
			w := f.strength * alpha / l
			node.VX += x * w
			node.VY += y * w
		}
	}
}
