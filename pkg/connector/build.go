package connector

import (
	"math"

	"github.com/matzehuels/linkroute/pkg/diagram"
	"github.com/matzehuels/linkroute/pkg/geom"
	"github.com/matzehuels/linkroute/pkg/path"
)

// Request describes one link in diagram space. Boxes of free ends are the
// zero-size rectangle at the end's position.
type Request struct {
	Source    geom.Point
	Target    geom.Point
	SourceDir geom.Direction // side the link leaves through; unset means dominant axis
	TargetDir geom.Direction // side the link enters through; unset means facing the source
	SourceBox geom.Rect
	TargetBox geom.Rect

	InitialStub float64
	FinalStub   float64

	// SelfLoop marks a link whose ends sit on the same shape.
	SelfLoop bool
}

// Options carries the pass-wide numbers the builder needs.
type Options struct {
	ElbowSize   float64
	WrapPadding float64
	ShortLine   float64
}

// OptionsFrom extracts builder options from a layout config.
func OptionsFrom(c *diagram.LayoutConfig) Options {
	return Options{ElbowSize: c.ElbowSize, WrapPadding: c.WrapPadding, ShortLine: c.ShortLine}
}

// frame maps diagram space into the east frame and back.
type frame struct {
	rot  geom.Sense
	flip bool
}

func (f frame) point(p geom.Point) geom.Point {
	p = p.Rotate(f.rot)
	if f.flip {
		p = p.FlipY()
	}
	return p
}

func (f frame) rect(r geom.Rect) geom.Rect {
	r = r.Rotate(f.rot)
	if f.flip {
		r = r.FlipY()
	}
	return r
}

func (f frame) dir(d geom.Direction) geom.Direction {
	d = d.Rotate(f.rot)
	if f.flip {
		d = d.FlipY()
	}
	return d
}

func (f frame) back(d path.Descriptor) path.Descriptor {
	if f.flip {
		d = d.FlipY()
	}
	return d.Rotate(f.rot.Inverse())
}

// Build computes the path for req drawn in the given style. Unknown styles
// are drawn straight.
func Build(req Request, style diagram.Style, opt Options) path.Descriptor {
	src, trg := req.Source, req.Target
	if !req.SelfLoop && IsShort(src, trg, opt.ShortLine) {
		return straightLine(src, trg)
	}

	sd := req.SourceDir
	if !sd.Valid() {
		sd = geom.DominantDirection(src, trg)
	}
	td := req.TargetDir
	if !td.Valid() {
		td = geom.DominantDirection(trg, src)
	}

	f := frame{rot: geom.Normalizing(sd)}
	f.flip = td.Rotate(f.rot) == geom.South

	l := leg{
		s:     f.point(src),
		t:     f.point(trg),
		td:    f.dir(td),
		sb:    f.rect(req.SourceBox),
		tb:    f.rect(req.TargetBox),
		init:  req.InitialStub,
		final: req.FinalStub,
	}

	if req.SelfLoop {
		sk := planLoop(l)
		if roundedFamily(style) {
			return f.back(Elbow{Size: opt.ElbowSize}.draw(sk))
		}
		return f.back(sharp(sk.Pts))
	}

	sk := plan(l, opt.WrapPadding)
	st, _ := Lookup(style, opt)
	return f.back(Render(st, sk))
}

// IsShort reports whether a and b are closer than limit on both axes.
func IsShort(a, b geom.Point, limit float64) bool {
	return limit > 0 && math.Abs(b.X-a.X) < limit && math.Abs(b.Y-a.Y) < limit
}

func straightLine(a, b geom.Point) path.Descriptor {
	var pb path.Builder
	segs := pb.MoveTo(a).LineTo(b).Path()
	if a.Eq(b) {
		// A zero-length link still needs a drawable segment.
		segs = append(segs, path.Segment{Op: path.Line, Pts: []geom.Point{b}})
	}
	return path.NewDescriptor(segs, a.Mid(b))
}

func roundedFamily(s diagram.Style) bool {
	switch s {
	case diagram.StyleElbow, diagram.StyleCurve, diagram.StyleAssociationCurve:
		return true
	}
	return false
}
