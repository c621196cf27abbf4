package connector

import (
	"math"

	"github.com/matzehuels/linkroute/pkg/geom"
)

// leg is a request expressed in the east frame. The source always leaves
// eastward and the target is entered from the west, north or east.
type leg struct {
	s, t        geom.Point
	td          geom.Direction
	sb, tb      geom.Rect
	init, final float64
}

// Skeleton is the orthogonal route of a link in the east frame. Pts runs
// from source to target through every corner; stub ends are kept even when
// collinear, so renderers can emit them as explicit vertices.
type Skeleton struct {
	Parts   int
	Pts     []geom.Point
	Src     geom.Point
	Trg     geom.Point
	SrcStub geom.Point
	TrgStub geom.Point
	TrgDir  geom.Direction

	InitialStub float64
	FinalStub   float64
}

func (l leg) skeleton(parts int, pts ...geom.Point) Skeleton {
	return Skeleton{
		Parts:       parts,
		Pts:         pts,
		Src:         l.s,
		Trg:         l.t,
		SrcStub:     l.s.Move(geom.East, l.init),
		TrgStub:     l.t.Move(l.td, l.final),
		TrgDir:      l.td,
		InitialStub: l.init,
		FinalStub:   l.final,
	}
}

func plan(l leg, pad float64) Skeleton {
	switch l.td {
	case geom.North:
		return planNorth(l, pad)
	case geom.East:
		return planEast(l, pad)
	}
	return planWest(l, pad)
}

// planWest handles the common case of a target entered from its west side.
func planWest(l leg, pad float64) Skeleton {
	s, t := l.s, l.t
	a := geom.Pt(s.X+l.init, s.Y)
	b := geom.Pt(t.X-l.final, t.Y)

	need := l.init
	if overlapY(l.sb, l.tb, pad) {
		need += l.final
	}
	if t.X-s.X >= need {
		pts := []geom.Point{s, a, geom.Pt(a.X, t.Y)}
		if b.X >= a.X {
			pts = append(pts, b)
		}
		return l.skeleton(3, append(pts, t)...)
	}

	y := wrapY(l, pad, true)
	return l.skeleton(5, s, a, geom.Pt(a.X, y), geom.Pt(b.X, y), b, t)
}

// planNorth handles a target entered from above. South targets are mirrored
// onto this case before planning.
func planNorth(l leg, pad float64) Skeleton {
	s, t := l.s, l.t
	if t.X-s.X >= l.init && t.Y-s.Y >= l.final {
		return l.skeleton(2, s, geom.Pt(t.X, s.Y), t)
	}

	x := s.X + l.init
	var y float64
	switch {
	case l.tb.Left() >= x:
		y = t.Y - l.final
	case l.tb.Top()-l.sb.Bottom() > pad:
		y = (l.sb.Bottom() + l.tb.Top()) / 2
	default:
		y = math.Min(l.sb.Top()-pad, t.Y-l.final)
		if l.tb.Left() < x && l.tb.Right() >= x && l.tb.Bottom() >= y && l.tb.Top() <= s.Y {
			x = l.tb.Right() + pad
		}
	}
	return l.skeleton(4, s, geom.Pt(x, s.Y), geom.Pt(x, y), geom.Pt(t.X, y), t)
}

// planEast handles a target entered from its east side, which always needs
// the link to pass the target and turn back.
func planEast(l leg, pad float64) Skeleton {
	s, t := l.s, l.t
	a := geom.Pt(s.X+l.init, s.Y)
	b := geom.Pt(t.X+l.final, t.Y)

	x := math.Max(a.X, b.X)
	var clear bool
	if b.X >= a.X {
		clear = !(spansY(l.tb, s.Y, pad) && l.tb.Right() >= s.X)
	} else {
		clear = !(spansY(l.sb, t.Y, pad) && l.sb.Right() >= t.X)
	}
	if clear {
		return l.skeleton(3, s, geom.Pt(x, s.Y), geom.Pt(x, t.Y), t)
	}

	y := wrapY(l, pad, false)
	return l.skeleton(5, s, a, geom.Pt(a.X, y), geom.Pt(b.X, y), b, t)
}

// wrapY picks the horizontal line a wrap-around leg runs along. A vertical
// gap wider than pad between the boxes is used directly. Otherwise the leg
// goes over or under both boxes: with byTravel the side with the smaller sum
// of distances from the two anchors wins, ties going over; without it the
// target's position relative to the source decides, ties going under.
func wrapY(l leg, pad float64, byTravel bool) float64 {
	if l.tb.Top()-l.sb.Bottom() > pad {
		return (l.sb.Bottom() + l.tb.Top()) / 2
	}
	if l.sb.Top()-l.tb.Bottom() > pad {
		return (l.tb.Bottom() + l.sb.Top()) / 2
	}

	over := math.Min(l.sb.Top(), l.tb.Top()) - pad
	under := math.Max(l.sb.Bottom(), l.tb.Bottom()) + pad
	if byTravel {
		dOver := math.Abs(l.s.Y-over) + math.Abs(l.t.Y-over)
		dUnder := math.Abs(l.s.Y-under) + math.Abs(l.t.Y-under)
		if dOver <= dUnder {
			return over
		}
		return under
	}
	if l.tb.Center().Y < l.sb.Center().Y {
		return over
	}
	return under
}

// planLoop draws a rectangular loop of the initial stub size around the
// corner of the shape between the two ends.
func planLoop(l leg) Skeleton {
	s, t, n := l.s, l.t, l.init
	a := geom.Pt(s.X+n, s.Y)
	switch l.td {
	case geom.North:
		y := math.Min(l.sb.Top(), t.Y) - n
		return l.skeleton(4, s, a, geom.Pt(a.X, y), geom.Pt(t.X, y), t)
	case geom.West:
		y := math.Min(l.sb.Top(), math.Min(s.Y, t.Y)) - n
		x := t.X - n
		return l.skeleton(5, s, a, geom.Pt(a.X, y), geom.Pt(x, y), geom.Pt(x, t.Y), t)
	}
	x := math.Max(s.X, t.X) + n
	return l.skeleton(3, s, geom.Pt(x, s.Y), geom.Pt(x, t.Y), t)
}

func overlapY(a, b geom.Rect, pad float64) bool {
	return a.Top() < b.Bottom()+pad && b.Top() < a.Bottom()+pad
}

func spansY(r geom.Rect, y, pad float64) bool {
	return y > r.Top()-pad && y < r.Bottom()+pad
}
