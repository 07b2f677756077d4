// Package cluster pulls members of a group toward their shared centroid and
// derives the boundary drawn around each group.
package cluster

import "netlayout/internal/domain"

const (
	DefaultCoarseThreshold = 100
	DefaultFineThreshold   = 10
	DefaultPull            = 0.1
	DefaultEnergeticAlpha  = 0.1
)

// Adjuster runs after integration on every tick. Members further from their
// group centroid than the current threshold move Pull of the way toward it.
type Adjuster struct {
	Coarse         float64
	Fine           float64
	Pull           float64
	EnergeticAlpha float64
	AlphaMin       float64
}

// NewAdjuster returns an adjuster with the default thresholds
func NewAdjuster(alphaMin float64) *Adjuster {
	return &Adjuster{
		Coarse:         DefaultCoarseThreshold,
		Fine:           DefaultFineThreshold,
		Pull:           DefaultPull,
		EnergeticAlpha: DefaultEnergeticAlpha,
		AlphaMin:       alphaMin,
	}
}

// Threshold returns the distance beyond which members are pulled in. It is
// Coarse while alpha is energetic and falls linearly to Fine at AlphaMin.
func (a *Adjuster) Threshold(alpha float64) float64 {
	if alpha >= a.EnergeticAlpha {
		return a.Coarse
	}
	if alpha <= a.AlphaMin {
		return a.Fine
	}
	frac := (alpha - a.AlphaMin) / (a.EnergeticAlpha - a.AlphaMin)
	return a.Fine + (a.Coarse-a.Fine)*frac
}

// Apply adjusts every group and returns the number of elements moved
func (a *Adjuster) Apply(groups map[string][]*domain.NetElement, alpha float64) int {
	threshold := a.Threshold(alpha)
	moved := 0
	for _, members := range groups {
		moved += a.adjust(members, threshold)
	}
	return moved
}

func (a *Adjuster) adjust(members []*domain.NetElement, threshold float64) int {
	if len(members) < 2 {
		return 0
	}
	pts := make([]domain.Point, len(members))
	for i, m := range members {
		pts[i] = m.Position()
	}
	c := domain.Centroid(pts)

	moved := 0
	for _, m := range members {
		if m.Pinned() {
			continue
		}
		d := c.Sub(m.Position())
		if d.Len() <= threshold {
			continue
		}
		m.X += d.X * a.Pull
		m.Y += d.Y * a.Pull
		moved++
	}
	return moved
}
