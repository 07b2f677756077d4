package cluster

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netlayout/internal/domain"
)

func TestConvexHull(t *testing.T) {
	t.Run("square with interior point", func(t *testing.T) {
		pts := []domain.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 5, Y: 5}}
		hull := ConvexHull(pts)
		assert.Len(t, hull, 4)
		assert.NotContains(t, hull, domain.Point{X: 5, Y: 5})
	})

	t.Run("collinear points collapse", func(t *testing.T) {
		pts := []domain.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}
		assert.Less(t, len(ConvexHull(pts)), 3)
	})
}

func TestBoundary(t *testing.T) {
	t.Run("fewer than three visible members", func(t *testing.T) {
		hidden := member(3, 5, 5)
		hidden.Hidden = true
		_, ok := Boundary("g1", []*domain.NetElement{member(1, 0, 0), member(2, 10, 0), hidden})
		assert.False(t, ok)

		_, ok = Boundary("g1", nil)
		assert.False(t, ok)
	})

	t.Run("triangle", func(t *testing.T) {
		b, ok := Boundary("g1", []*domain.NetElement{member(1, 0, 0), member(2, 30, 0), member(3, 0, 30)})
		require.True(t, ok)

		assert.Equal(t, "g1", b.Group)
		assert.Equal(t, domain.Point{X: 10, Y: 10}, b.Centroid)
		assert.Len(t, b.Hull, 3)
		require.Len(t, b.Offsets, 3)
		for i := range b.Hull {
			assert.Equal(t, b.Hull[i].Sub(b.Centroid), b.Offsets[i])
		}
		require.NotEmpty(t, b.Path)
		assert.Equal(t, b.Path[0], b.Path[len(b.Path)-1], "path must be closed")
	})

	t.Run("collinear members fall back to sorted points", func(t *testing.T) {
		b, ok := Boundary("g1", []*domain.NetElement{member(1, 20, 0), member(2, 0, 0), member(3, 10, 0)})
		require.True(t, ok)
		assert.Equal(t, []domain.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}}, b.Hull)
	})

	t.Run("coincident members do not produce NaN", func(t *testing.T) {
		b, ok := Boundary("g1", []*domain.NetElement{member(1, 5, 5), member(2, 5, 5), member(3, 5, 5)})
		require.True(t, ok)
		for _, p := range b.Path {
			assert.False(t, p.X != p.X || p.Y != p.Y)
		}
	})
}

func TestBoundaries(t *testing.T) {
	groups := map[string][]*domain.NetElement{
		"b":  {member(1, 0, 0), member(2, 10, 0), member(3, 0, 10)},
		"a":  {member(4, 0, 0), member(5, 10, 0), member(6, 0, 10)},
		"xs": {member(7, 0, 0)},
	}
	out := Boundaries(groups)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Group)
	assert.Equal(t, "b", out[1].Group)
}

func TestHullContainsMembers(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("every member lies inside or on the hull", prop.ForAll(
		func(xs, ys []float64) bool {
			n := len(xs)
			if len(ys) < n {
				n = len(ys)
			}
			pts := make([]domain.Point, n)
			for i := 0; i < n; i++ {
				pts[i] = domain.Point{X: xs[i], Y: ys[i]}
			}
			hull := ConvexHull(pts)
			if len(hull) < 3 {
				return true
			}
			for _, p := range pts {
				for i := range hull {
					if cross(hull[i], hull[(i+1)%len(hull)], p) < -1e-6 {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOfN(12, gen.Float64Range(-500, 500)),
		gen.SliceOfN(12, gen.Float64Range(-500, 500)),
	))

	properties.TestingRun(t)
}

func TestClosedSpline(t *testing.T) {
	pts := []domain.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	path := ClosedSpline(pts, 4)

	assert.Len(t, path, len(pts)*4+1)
	for i, p := range pts {
		assert.InDelta(t, p.X, path[i*4].X, 1e-9, "curve passes through point %d", i)
		assert.InDelta(t, p.Y, path[i*4].Y, 1e-9)
	}
	assert.Nil(t, ClosedSpline(nil, 4))
}
