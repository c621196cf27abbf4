package fanout

import (
	"sort"

	"github.com/matzehuels/linkroute/pkg/geom"
)

// End is one link end taking part in spreading.
type End struct {
	Link     string
	Shape    string
	Side     geom.Direction
	Outgoing bool // the source end of its link
	Self     bool // both ends of the link are on Shape

	// Seq is the input position of the link. It breaks ties that geometry
	// leaves open.
	Seq int

	// Far is the position of the other end, used for ordering. FarShape and
	// FarSide locate the other end when it sits on a shape.
	Far      geom.Point
	FarShape string
	FarSide  geom.Direction

	// Pos, Index and Count are written by Spread.
	Pos   geom.Point
	Index int
	Count int

	// group and lane order parallel links between one pair of sides.
	group int
	lane  int
}

// Angle returns the ordering angle of e relative to center, with the
// wraparound correction of e's side applied.
func (e *End) Angle(center geom.Point) float64 {
	a := center.Angle(e.Far)
	switch e.Side {
	case geom.East, geom.South:
		if a >= 270 {
			a -= 360
		}
	case geom.North:
		if a < 90 {
			a += 360
		}
	}
	return a
}

// rank places the outgoing end of a self link first and the incoming end
// last, whatever their angles.
func (e *End) rank() int {
	switch {
	case !e.Self:
		return 0
	case e.Outgoing:
		return -1
	}
	return 1
}

// parallel reports whether e runs between two distinct shapes and can have
// siblings.
func (e *End) parallel() bool {
	return !e.Self && e.FarShape != "" && e.FarShape != e.Shape
}

type group struct {
	shape string
	side  geom.Direction
	ends  []*End
}

// Spread groups ends by shape and side and writes evenly spaced anchors
// into them. bounds returns the bounding box of a shape. Groups are
// processed in order of first appearance.
//
// Ends are ordered by the angle from the shape center to the far end.
// Parallel links between the same pair of sides aim at the same far point,
// so their order comes from lanes instead: the lower shape id takes its
// siblings clockwise in Seq order and the other shape takes them
// anticlockwise, which keeps the bundle free of crossings.
func Spread(ends []*End, bounds func(shape string) geom.Rect) {
	lanes(ends)

	var groups []*group
	index := make(map[string]*group)
	for _, e := range ends {
		k := e.Shape + "\x00" + e.Side.String()
		g, ok := index[k]
		if !ok {
			g = &group{shape: e.Shape, side: e.Side}
			index[k] = g
			groups = append(groups, g)
		}
		g.ends = append(g.ends, e)
	}

	for _, g := range groups {
		box := bounds(g.shape)
		order(g.ends, g.side, box.Center())
		place(g.ends, box, g.side)
	}
}

func order(ends []*End, side geom.Direction, center geom.Point) {
	descending := side == geom.South || side == geom.West
	sort.SliceStable(ends, func(i, j int) bool {
		a, b := ends[i], ends[j]
		if ra, rb := a.rank(), b.rank(); ra != rb {
			return ra < rb
		}
		if aa, ab := a.Angle(center), b.Angle(center); aa != ab {
			if descending {
				return aa > ab
			}
			return aa < ab
		}
		if a.group != b.group {
			return a.group < b.group
		}
		if a.lane != b.lane {
			return a.lane < b.lane
		}
		return a.Outgoing && !b.Outgoing
	})
}

// lanes numbers parallel siblings. Every end gets the lowest Seq of its
// sibling set as group and its slot within the set as lane, in side order.
func lanes(ends []*End) {
	sets := make(map[string][]*End)
	for _, e := range ends {
		e.group, e.lane = e.Seq, 0
		if !e.parallel() {
			continue
		}
		k := e.Shape + "\x00" + e.Side.String() + "\x00" + e.FarShape + "\x00" + e.FarSide.String()
		sets[k] = append(sets[k], e)
	}
	for _, set := range sets {
		sort.SliceStable(set, func(i, j int) bool { return set[i].Seq < set[j].Seq })
		n := len(set)
		for k, e := range set {
			e.group = set[0].Seq
			e.lane = k
			// Slots run clockwise on north and east sides and anticlockwise
			// on south and west sides.
			anticlockwise := e.Side == geom.South || e.Side == geom.West
			if (e.Shape > e.FarShape) != anticlockwise {
				e.lane = n - 1 - k
			}
		}
	}
}

func place(ends []*End, box geom.Rect, side geom.Direction) {
	start, length := box.Side(side)
	along := side.Along()
	n := len(ends)
	for i, e := range ends {
		e.Index = i
		e.Count = n
		e.Pos = start.Add(along.Scale(Offset(i, n, length)))
	}
}

// Offset returns the distance from the side start of position i of n.
func Offset(i, n int, length float64) float64 {
	return length * float64(i+1) / float64(n+1)
}
