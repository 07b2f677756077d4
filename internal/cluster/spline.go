package cluster

import (
	"math"

	"netlayout/internal/domain"
)

// DefaultSplineSegments is the number of samples per hull edge
const DefaultSplineSegments = 8

// ClosedSpline samples a closed centripetal Catmull-Rom curve through the
// points. The curve passes through every input point and the returned path
// ends where it starts.
func ClosedSpline(points []domain.Point, segments int) []domain.Point {
	n := len(points)
	if n == 0 {
		return nil
	}
	if n < 3 {
		path := append([]domain.Point(nil), points...)
		return append(path, points[0])
	}
	if segments < 1 {
		segments = 1
	}

	path := make([]domain.Point, 0, n*segments+1)
	for i := 0; i < n; i++ {
		p0 := points[(i-1+n)%n]
		p1 := points[i]
		p2 := points[(i+1)%n]
		p3 := points[(i+2)%n]
		for s := 0; s < segments; s++ {
			path = append(path, centripetal(p0, p1, p2, p3, float64(s)/float64(segments)))
		}
	}
	return append(path, path[0])
}

// centripetal evaluates the segment p1->p2 at u in [0, 1) using the
// Barry-Goldman pyramid with knot spacing |pi - pj|^0.5
func centripetal(p0, p1, p2, p3 domain.Point, u float64) domain.Point {
	t0 := 0.0
	t1 := knot(t0, p0, p1)
	t2 := knot(t1, p1, p2)
	t3 := knot(t2, p2, p3)
	t := t1 + (t2-t1)*u

	a1 := lerp(p0, p1, t0, t1, t)
	a2 := lerp(p1, p2, t1, t2, t)
	a3 := lerp(p2, p3, t2, t3, t)
	b1 := lerp(a1, a2, t0, t2, t)
	b2 := lerp(a2, a3, t1, t3, t)
	return lerp(b1, b2, t1, t2, t)
}

func knot(t float64, a, b domain.Point) float64 {
	d := math.Sqrt(a.Dist(b))
	if d < 1e-4 {
		d = 1e-4
	}
	return t + d
}

func lerp(a, b domain.Point, ta, tb, t float64) domain.Point {
	wa := (tb - t) / (tb - ta)
	wb := (t - ta) / (tb - ta)
	return domain.Point{X: a.X*wa + b.X*wb, Y: a.Y*wa + b.Y*wb}
}
