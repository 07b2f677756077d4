package engine

import (
	"netlayout/internal/cluster"
	"netlayout/internal/force"
)

// Options configures the forces and clustering of an engine
type Options struct {
	Width  float64
	Height float64

	NodeRadius   float64
	LinkDistance float64

	RepulsionStrength    float64
	RepulsionMinDistance float64
	RepulsionMaxDistance float64

	AttractionStrength    float64
	AttractionMinDistance float64

	// AlphaDecay of zero picks the preset matching Clustering
	AlphaDecay float64
	AlphaMin   float64

	Clustering         bool
	CrossGroupStrength float64
	CoarseThreshold    float64
	FineThreshold      float64
	ClusterPull        float64
	EnergeticAlpha     float64

	ShowClouds bool
}

// DefaultOptions returns the standard layout parameters
func DefaultOptions() Options {
	return Options{
		Width:                 960,
		Height:                600,
		NodeRadius:            force.DefaultNodeRadius,
		LinkDistance:          force.DefaultLinkDistance,
		RepulsionStrength:     force.DefaultRepulsionStrength,
		RepulsionMinDistance:  force.DefaultRepulsionMinDistance,
		RepulsionMaxDistance:  force.DefaultRepulsionMaxDistance,
		AttractionStrength:    force.DefaultAttractionStrength,
		AttractionMinDistance: force.DefaultAttractionMinDistance,
		AlphaMin:              force.DefaultAlphaMin,
		Clustering:            true,
		CrossGroupStrength:    0.1,
		CoarseThreshold:       cluster.DefaultCoarseThreshold,
		FineThreshold:         cluster.DefaultFineThreshold,
		ClusterPull:           cluster.DefaultPull,
		EnergeticAlpha:        cluster.DefaultEnergeticAlpha,
		ShowClouds:            true,
	}
}

// EffectiveDecay returns the alpha decay in use. Clustered layouts settle
// slowly so the adjuster has time to tighten groups.
func (o Options) EffectiveDecay() float64 {
	if o.AlphaDecay > 0 {
		return o.AlphaDecay
	}
	if o.Clustering {
		return force.SettledDecay
	}
	return force.FastDecay
}

func (o Options) adjuster() *cluster.Adjuster {
	return &cluster.Adjuster{
		Coarse:         o.CoarseThreshold,
		Fine:           o.FineThreshold,
		Pull:           o.ClusterPull,
		EnergeticAlpha: o.EnergeticAlpha,
		AlphaMin:       o.AlphaMin,
	}
}
