package cluster

import (
	"sort"

	"netlayout/internal/domain"
)

// ConvexHull returns the hull of the points in counter-clockwise order, without
// collinear vertices. Fewer than three distinct non-collinear points produce a
// hull with fewer than three vertices.
func ConvexHull(points []domain.Point) []domain.Point {
	pts := sortedPoints(points)
	if len(pts) < 3 {
		return pts
	}

	hull := make([]domain.Point, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

func sortedPoints(points []domain.Point) []domain.Point {
	pts := make([]domain.Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	return pts
}

// cross is positive when o->a->b turns counter-clockwise
func cross(o, a, b domain.Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}
