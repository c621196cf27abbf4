package diagram

import (
	"math"

	"github.com/matzehuels/linkroute/pkg/geom"
)

// AnchorFor returns the absolute coordinate of the named port. When portID is
// empty, the shape has no ports or the port is unknown, it returns the
// shape's reference center.
func AnchorFor(s *Shape, portID string) geom.Point {
	if portID != "" && len(s.Ports) > 0 {
		if p, ok := s.Port(portID); ok {
			return geom.Pt(s.X+p.CX, s.Y+p.CY)
		}
	}
	return s.Center()
}

// BoundaryIntersection returns where the ray from origin toward the point
// toward crosses the shape's bounding box expanded by gap, together with the
// side it leaves through. origin is expected inside the box.
//
// A zero-length ray has no heading; it resolves to the east side at the
// origin's height. Rays through a corner resolve to the horizontal side.
func BoundaryIntersection(s *Shape, origin, toward geom.Point, gap float64) (geom.Point, geom.Direction) {
	box := s.Bounds().Expand(gap)
	dx, dy := toward.X-origin.X, toward.Y-origin.Y
	if dx == 0 && dy == 0 {
		return geom.Pt(box.Right(), origin.Y), geom.East
	}

	tx, ty := math.Inf(1), math.Inf(1)
	hside, vside := geom.East, geom.South
	switch {
	case dx > 0:
		tx = (box.Right() - origin.X) / dx
	case dx < 0:
		tx = (box.Left() - origin.X) / dx
		hside = geom.West
	}
	switch {
	case dy > 0:
		ty = (box.Bottom() - origin.Y) / dy
	case dy < 0:
		ty = (box.Top() - origin.Y) / dy
		vside = geom.North
	}

	if tx <= ty {
		t := math.Max(tx, 0)
		return geom.Pt(origin.X+dx*t, origin.Y+dy*t), hside
	}
	t := math.Max(ty, 0)
	return geom.Pt(origin.X+dx*t, origin.Y+dy*t), vside
}

// SideAnchor returns the middle of the given side of the shape, pushed out by
// gap.
func SideAnchor(s *Shape, side geom.Direction, gap float64) geom.Point {
	return s.Bounds().SideMid(side).Move(side, gap)
}
