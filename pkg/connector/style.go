package connector

import (
	"math"

	"github.com/matzehuels/linkroute/pkg/diagram"
	"github.com/matzehuels/linkroute/pkg/geom"
	"github.com/matzehuels/linkroute/pkg/path"
)

// Style renders a planned skeleton, one method per skeleton shape.
type Style interface {
	TwoPart(sk Skeleton) path.Descriptor
	ThreePart(sk Skeleton) path.Descriptor
	FourPart(sk Skeleton) path.Descriptor
	FivePart(sk Skeleton) path.Descriptor
}

// Lookup returns the renderer for a style name. The second result is false
// when the name is unknown and the straight renderer was substituted.
func Lookup(s diagram.Style, opt Options) (Style, bool) {
	switch s {
	case diagram.StyleStraight:
		return Straight{}, true
	case diagram.StyleElbow:
		return Elbow{Size: opt.ElbowSize}, true
	case diagram.StyleCurve:
		return Curve{}, true
	case diagram.StyleParallax:
		return Parallax{}, true
	case diagram.StyleAssociationCurve:
		return Association{}, true
	}
	return Straight{}, false
}

// Render dispatches on the skeleton's part count.
func Render(st Style, sk Skeleton) path.Descriptor {
	switch sk.Parts {
	case 2:
		return st.TwoPart(sk)
	case 3:
		return st.ThreePart(sk)
	case 4:
		return st.FourPart(sk)
	}
	return st.FivePart(sk)
}

// =============================================================================
// Straight
// =============================================================================

// Straight draws the simple cases as one line and the wrapping cases as a
// sharp polyline through the skeleton.
type Straight struct{}

func (Straight) TwoPart(sk Skeleton) path.Descriptor   { return straightLine(sk.Src, sk.Trg) }
func (Straight) ThreePart(sk Skeleton) path.Descriptor { return straightLine(sk.Src, sk.Trg) }
func (Straight) FourPart(sk Skeleton) path.Descriptor  { return sharp(sk.Pts) }
func (Straight) FivePart(sk Skeleton) path.Descriptor  { return sharp(sk.Pts) }

// =============================================================================
// Parallax
// =============================================================================

// Parallax leaves and enters along the stubs and joins their ends with a
// single diagonal.
type Parallax struct{}

func (Parallax) TwoPart(sk Skeleton) path.Descriptor   { return parallax(sk) }
func (Parallax) ThreePart(sk Skeleton) path.Descriptor { return parallax(sk) }
func (Parallax) FourPart(sk Skeleton) path.Descriptor  { return sharp(sk.Pts) }
func (Parallax) FivePart(sk Skeleton) path.Descriptor  { return sharp(sk.Pts) }

func parallax(sk Skeleton) path.Descriptor {
	var b path.Builder
	b.MoveTo(sk.Src).LineTo(sk.SrcStub).LineTo(sk.TrgStub).LineTo(sk.Trg)
	return path.NewDescriptor(b.Path(), sk.SrcStub.Mid(sk.TrgStub))
}

// =============================================================================
// Elbow
// =============================================================================

// Elbow follows the skeleton with every corner rounded by a quadratic of
// radius Size, shrunk when the legs meeting at the corner are short.
type Elbow struct {
	Size float64
}

func (e Elbow) TwoPart(sk Skeleton) path.Descriptor   { return e.draw(sk) }
func (e Elbow) ThreePart(sk Skeleton) path.Descriptor { return e.draw(sk) }
func (e Elbow) FourPart(sk Skeleton) path.Descriptor  { return e.draw(sk) }
func (e Elbow) FivePart(sk Skeleton) path.Descriptor  { return e.draw(sk) }

func (e Elbow) draw(sk Skeleton) path.Descriptor {
	return path.NewDescriptor(rounded(sk.Pts, e.Size), longestMiddle(sk.Pts))
}

// rounded draws pts as a polyline whose turns are replaced by quadratic
// corners. Legs shared by two corners give each at most half their length.
func rounded(pts []geom.Point, size float64) path.Path {
	pts = dedupe(pts)
	var b path.Builder
	if len(pts) == 0 {
		return nil
	}
	b.MoveTo(pts[0])
	last := len(pts) - 1
	avail := func(seg int) float64 {
		n := pts[seg].Dist(pts[seg+1])
		if seg == 0 || seg == last-1 {
			return n
		}
		return n / 2
	}
	for i := 1; i < last; i++ {
		prev, cur, next := pts[i-1], pts[i], pts[i+1]
		in := unit(cur.Sub(prev))
		out := unit(next.Sub(cur))
		if turn := in.X*out.Y - in.Y*out.X; math.Abs(turn) < 1e-9 {
			b.LineTo(cur)
			continue
		}
		r := math.Min(size, math.Min(avail(i-1), avail(i)))
		if r <= 0 {
			b.LineTo(cur)
			continue
		}
		b.LineTo(cur.Sub(in.Scale(r)))
		b.QuadTo(cur, cur.Add(out.Scale(r)))
	}
	b.LineTo(pts[last])
	return b.Path()
}

// =============================================================================
// Curve
// =============================================================================

// Curve draws the simple cases as one cubic whose handles leave along the
// source direction and arrive along the target direction. Wrapping cases are
// smoothed through the skeleton corners.
type Curve struct{}

func (Curve) TwoPart(sk Skeleton) path.Descriptor   { return cubic(sk) }
func (Curve) ThreePart(sk Skeleton) path.Descriptor { return cubic(sk) }
func (Curve) FourPart(sk Skeleton) path.Descriptor  { return smooth(sk.Pts) }
func (Curve) FivePart(sk Skeleton) path.Descriptor  { return smooth(sk.Pts) }

func cubic(sk Skeleton) path.Descriptor {
	s, t := sk.Src, sk.Trg
	dx, dy := math.Abs(t.X-s.X), math.Abs(t.Y-s.Y)
	k1 := math.Max(sk.InitialStub, dx/2)
	k2 := sk.FinalStub
	if sk.TrgDir.Horizontal() {
		k2 = math.Max(k2, dx/2)
	} else {
		k2 = math.Max(k2, dy/2)
	}
	c1 := s.Move(geom.East, k1)
	c2 := t.Move(sk.TrgDir, k2)

	var b path.Builder
	b.MoveTo(s).CubicTo(c1, c2, t)
	return path.NewDescriptor(b.Path(), geom.Bezier(0.5, s, c1, c2, t))
}

// smooth runs quadratics through the midpoints of the skeleton legs, using
// each corner as a control point. The center is the middle of the middle
// piece.
func smooth(pts []geom.Point) path.Descriptor {
	pts = dedupe(pts)
	if len(pts) < 3 {
		return sharp(pts)
	}
	last := len(pts) - 1
	type piece struct{ from, ctrl, to geom.Point }
	pieces := make([]piece, 0, last-1)
	from := pts[0]
	for i := 1; i < last; i++ {
		to := pts[i].Mid(pts[i+1])
		if i == last-1 {
			to = pts[last]
		}
		pieces = append(pieces, piece{from, pts[i], to})
		from = to
	}

	var b path.Builder
	b.MoveTo(pts[0])
	for _, p := range pieces {
		b.QuadTo(p.ctrl, p.to)
	}
	m := pieces[len(pieces)/2]
	return path.NewDescriptor(b.Path(), geom.Bezier(0.5, m.from, m.ctrl, m.to))
}

// =============================================================================
// Association curve
// =============================================================================

// Association draws a link into a west-facing target as a quadratic to the
// midpoint continued by its smooth reflection. The remaining cases are drawn
// as [Curve] does.
type Association struct {
	Curve
}

func (a Association) ThreePart(sk Skeleton) path.Descriptor {
	if sk.TrgDir != geom.West {
		return a.Curve.ThreePart(sk)
	}
	s, t := sk.Src, sk.Trg
	m := s.Mid(t)
	c := s.Move(geom.East, math.Max(sk.InitialStub, math.Abs(m.X-s.X)))

	var b path.Builder
	b.MoveTo(s).QuadTo(c, m).ThroughTo(t)
	return path.NewDescriptor(b.Path(), m)
}

// =============================================================================
// Helpers
// =============================================================================

func sharp(pts []geom.Point) path.Descriptor {
	pts = dedupe(pts)
	var b path.Builder
	for i, p := range pts {
		if i == 0 {
			b.MoveTo(p)
			continue
		}
		b.LineTo(p)
	}
	return path.NewDescriptor(b.Path(), longestMiddle(pts))
}

// longestMiddle returns the midpoint of the longest leg, ignoring the first
// and last legs when there are more than two. The first of equal legs wins.
func longestMiddle(pts []geom.Point) geom.Point {
	pts = dedupe(pts)
	switch len(pts) {
	case 0:
		return geom.Point{}
	case 1:
		return pts[0]
	}
	lo, hi := 0, len(pts)-2
	if len(pts) > 3 {
		lo, hi = 1, len(pts)-3
	}
	best, bestLen := lo, -1.0
	for i := lo; i <= hi; i++ {
		if n := pts[i].Dist(pts[i+1]); n > bestLen {
			best, bestLen = i, n
		}
	}
	return pts[best].Mid(pts[best+1])
}

func dedupe(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1].Eq(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func unit(v geom.Point) geom.Point {
	n := math.Hypot(v.X, v.Y)
	if n == 0 {
		return geom.Point{}
	}
	return v.Scale(1 / n)
}
