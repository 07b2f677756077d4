package cluster

import (
	"sort"

	"netlayout/internal/domain"
)

// MinBoundaryMembers is the number of visible members a group needs for a boundary
const MinBoundaryMembers = 3

// Boundary computes the boundary of one group from its visible members. It
// reports false when fewer than MinBoundaryMembers members are visible.
func Boundary(group string, members []*domain.NetElement) (domain.GroupBoundary, bool) {
	pts := make([]domain.Point, 0, len(members))
	for _, m := range members {
		if !m.Hidden {
			pts = append(pts, m.Position())
		}
	}
	if len(pts) < MinBoundaryMembers {
		return domain.GroupBoundary{}, false
	}

	centroid := domain.Centroid(pts)
	hull := ConvexHull(pts)
	if len(hull) < MinBoundaryMembers {
		// collinear or coincident members still get a closed outline
		hull = sortedPoints(pts)
	}

	offsets := make([]domain.Point, len(hull))
	for i, p := range hull {
		offsets[i] = p.Sub(centroid)
	}

	return domain.GroupBoundary{
		Group:    group,
		Centroid: centroid,
		Hull:     hull,
		Offsets:  offsets,
		Path:     ClosedSpline(offsets, DefaultSplineSegments),
	}, true
}

// Boundaries computes the boundary of every group that qualifies, ordered by group
func Boundaries(groups map[string][]*domain.NetElement) []domain.GroupBoundary {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]domain.GroupBoundary, 0, len(names))
	for _, name := range names {
		if b, ok := Boundary(name, groups[name]); ok {
			out = append(out, b)
		}
	}
	return out
}
