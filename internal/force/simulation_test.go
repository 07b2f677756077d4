package force

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netlayout/internal/domain"
	"netlayout/internal/graph"
)

func chainStore(t *testing.T) *graph.Store {
	t.Helper()
	doc := domain.NewDocument("chain")
	for i := 1; i <= 5; i++ {
		doc.AddElement(domain.ElementRecord{ID: i, Type: domain.ElementTypeRouter})
	}
	for i := 1; i < 5; i++ {
		doc.AddLink(domain.LinkRecord{Source: i, Target: i + 1})
	}
	s, err := graph.Load(doc)
	require.NoError(t, err)
	return s
}

func withDefaultForces(sim *Simulation, g Graph) {
	sim.AddForce("link", NewLink(g, nil, nil))
	sim.AddForce("collide", NewCollide(5))
	sim.AddForce("repulsion", NewRepulsion(DefaultRepulsionStrength, 5, DefaultRepulsionMaxDistance))
	sim.AddForce("center", NewCenter(400, 300))
}

func TestTicksToConverge(t *testing.T) {
	assert.Equal(t, 66, TicksToConverge(FastDecay, DefaultAlphaMin))
	assert.InDelta(t, 300, TicksToConverge(SettledDecay, DefaultAlphaMin), 1)
}

func TestSimulationConverges(t *testing.T) {
	tests := []struct {
		name  string
		decay float64
	}{
		{"fast", FastDecay},
		{"settled", SettledDecay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := chainStore(t)
			sim := New(s, WithAlphaDecay(tt.decay))
			withDefaultForces(sim, s)

			ticks, ends := 0, 0
			sim.OnTick(func() { ticks++ })
			sim.OnEnd(func() { ends++ })
			sim.Start()

			converged := sim.RunUntilConverged(10000)
			require.True(t, converged)
			assert.Equal(t, 1, ends)
			assert.LessOrEqual(t, ticks, TicksToConverge(tt.decay, DefaultAlphaMin)+1)
			assert.Equal(t, uint64(ticks), sim.Ticks())
			assert.False(t, sim.Running())

			for _, e := range s.Elements() {
				require.True(t, e.Pinned(), "element %d not frozen", e.ID)
				assert.Equal(t, e.X, *e.FX)
				assert.Equal(t, e.Y, *e.FY)
				assert.False(t, math.IsNaN(e.X) || math.IsNaN(e.Y))
			}

			assert.False(t, sim.Step(), "stopped simulation must not tick")
		})
	}
}

func TestSimulationSeedsPositions(t *testing.T) {
	s := chainStore(t)
	placed, _ := s.Element(3)
	placed.Place(500, 500)

	New(s)

	seen := make(map[domain.Point]bool)
	for _, e := range s.Elements() {
		assert.True(t, e.Placed())
		assert.False(t, seen[e.Position()], "element %d shares a seed position", e.ID)
		seen[e.Position()] = true
	}
	assert.Equal(t, domain.Point{X: 500, Y: 500}, placed.Position())

	first, _ := s.Element(1)
	assert.InDelta(t, 10*math.Sqrt(0.5), first.Position().Len(), 1e-9)
}

func TestSimulationDeterministic(t *testing.T) {
	run := func() []domain.NodePosition {
		s := chainStore(t)
		sim := New(s)
		withDefaultForces(sim, s)
		sim.Start()
		sim.RunUntilConverged(1000)
		return s.Positions()
	}
	assert.Equal(t, run(), run())
}

func TestSimulationAlphaTarget(t *testing.T) {
	s := chainStore(t)
	sim := New(s)
	sim.Start()
	sim.SetAlphaTarget(HotAlphaTarget)

	for i := 0; i < 200; i++ {
		sim.Step()
	}
	assert.True(t, sim.Running(), "hot simulation must not converge")
	assert.InDelta(t, HotAlphaTarget, sim.Alpha(), 1e-3)

	sim.SetAlphaTarget(0)
	assert.True(t, sim.RunUntilConverged(1000))
}

func TestPinnedElementsNeverMove(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("pinned elements stay at their pin", prop.ForAll(
		func(pinned int, fx, fy float64, ticks int) bool {
			s := chainStore(t)
			e, _ := s.Element(pinned)
			e.Pin(fx, fy)

			sim := New(s)
			withDefaultForces(sim, s)
			sim.Start()
			for i := 0; i < ticks; i++ {
				sim.Tick()
				if e.X != fx || e.Y != fy {
					return false
				}
			}
			return e.VX == 0 && e.VY == 0
		},
		gen.IntRange(1, 5),
		gen.Float64Range(-1000, 1000),
		gen.Float64Range(-1000, 1000),
		gen.IntRange(1, 80),
	))

	properties.TestingRun(t)
}
