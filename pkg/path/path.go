package path

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/linkroute/pkg/geom"
)

// Op is a path command.
type Op byte

const (
	Move    Op = 'M'
	Line    Op = 'L'
	Quad    Op = 'Q'
	Cubic   Op = 'C'
	Through Op = 'T'
)

// arity is the number of points each op carries.
func (o Op) arity() int {
	switch o {
	case Quad:
		return 2
	case Cubic:
		return 3
	case Move, Line, Through:
		return 1
	}
	return 0
}

func (o Op) String() string { return string(o) }

func (o Op) MarshalText() ([]byte, error) { return []byte{byte(o)}, nil }

func (o *Op) UnmarshalText(b []byte) error {
	if len(b) != 1 || Op(b[0]).arity() == 0 {
		return errInvalidOp(string(b))
	}
	*o = Op(b[0])
	return nil
}

// Segment is one command. Pts holds control points first and the end point
// last, in the order they appear in the path string.
type Segment struct {
	Op  Op           `json:"op"`
	Pts []geom.Point `json:"pts"`
}

// End returns the point the segment finishes at.
func (s Segment) End() geom.Point {
	if len(s.Pts) == 0 {
		return geom.Point{}
	}
	return s.Pts[len(s.Pts)-1]
}

// Path is an ordered list of segments. A well-formed path starts with Move.
type Path []Segment

// Builder appends segments, skipping lines that would not move the pen.
type Builder struct {
	p   Path
	pen geom.Point
}

func (b *Builder) MoveTo(p geom.Point) *Builder {
	b.p = append(b.p, Segment{Op: Move, Pts: []geom.Point{p}})
	b.pen = p
	return b
}

func (b *Builder) LineTo(p geom.Point) *Builder {
	if len(b.p) > 0 && p.Eq(b.pen) {
		return b
	}
	b.p = append(b.p, Segment{Op: Line, Pts: []geom.Point{p}})
	b.pen = p
	return b
}

func (b *Builder) QuadTo(c, p geom.Point) *Builder {
	b.p = append(b.p, Segment{Op: Quad, Pts: []geom.Point{c, p}})
	b.pen = p
	return b
}

func (b *Builder) CubicTo(c1, c2, p geom.Point) *Builder {
	b.p = append(b.p, Segment{Op: Cubic, Pts: []geom.Point{c1, c2, p}})
	b.pen = p
	return b
}

func (b *Builder) ThroughTo(p geom.Point) *Builder {
	b.p = append(b.p, Segment{Op: Through, Pts: []geom.Point{p}})
	b.pen = p
	return b
}

// Path returns the accumulated path.
func (b *Builder) Path() Path { return b.p }

// Start returns the first point of the path.
func (p Path) Start() geom.Point {
	if len(p) == 0 {
		return geom.Point{}
	}
	return p[0].End()
}

// End returns the last point of the path.
func (p Path) End() geom.Point {
	if len(p) == 0 {
		return geom.Point{}
	}
	return p[len(p)-1].End()
}

// Transform returns a copy of p with fn applied to every point, control
// points included.
func (p Path) Transform(fn func(geom.Point) geom.Point) Path {
	out := make(Path, len(p))
	for i, s := range p {
		pts := make([]geom.Point, len(s.Pts))
		for j, pt := range s.Pts {
			pts[j] = fn(pt)
		}
		out[i] = Segment{Op: s.Op, Pts: pts}
	}
	return out
}

// Rotate returns a copy of p turned about the origin.
func (p Path) Rotate(s geom.Sense) Path {
	return p.Transform(func(pt geom.Point) geom.Point { return pt.Rotate(s) })
}

// FlipY returns a copy of p mirrored across the x axis.
func (p Path) FlipY() Path {
	return p.Transform(geom.Point.FlipY)
}

// EndAngle returns the heading, in degrees, with which the path arrives at
// its end point. Curves use their last control point; a smooth quadratic
// uses the reflected control of the previous quadratic.
func (p Path) EndAngle() float64 {
	if len(p) < 2 {
		return 0
	}
	end := p.End()
	from := p[len(p)-2].End()
	last := p[len(p)-1]
	switch last.Op {
	case Quad, Cubic:
		from = last.Pts[len(last.Pts)-2]
	case Through:
		if prev := p[len(p)-2]; prev.Op == Quad {
			c := prev.Pts[0]
			mid := prev.End()
			from = mid.Add(mid.Sub(c))
		}
	}
	if from.Eq(end) {
		from = p[len(p)-2].End()
	}
	return from.Angle(end)
}

// String renders the path in the mini-language, e.g. "M 100 30 L 300 30".
func (p Path) String() string {
	var sb strings.Builder
	for i, s := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte(s.Op))
		for _, pt := range s.Pts {
			sb.WriteByte(' ')
			sb.WriteString(FormatNumber(pt.X))
			sb.WriteByte(' ')
			sb.WriteString(FormatNumber(pt.Y))
		}
	}
	return sb.String()
}

// FormatNumber prints v with at most three decimals and no negative zero.
func FormatNumber(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
