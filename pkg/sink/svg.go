package sink

import (
	"bytes"
	"cmp"
	"fmt"
	"html"
	"slices"

	"github.com/matzehuels/linkroute/pkg/diagram"
	"github.com/matzehuels/linkroute/pkg/geom"
	"github.com/matzehuels/linkroute/pkg/router"
)

const svgCSS = `
    .shape { fill: #f7f7f7; stroke: #444; stroke-width: 1; }
    .shape-comment { fill: #fffbe6; stroke-dasharray: 4 2; }
    .shape-supernode { fill: #eef3f8; stroke-width: 2; }
    .inset { fill: none; stroke: #444; stroke-width: 0.5; }
    .port { fill: #444; }
    .link { fill: none; stroke: #2a6f97; stroke-width: 1.5; }
    .arrow { fill: #2a6f97; }
    .center { fill: #c1121f; }
    .label { font: 11px sans-serif; fill: #222; }`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	padding float64
	labels  bool
	arrows  bool
	centers bool
}

// WithPadding sets the margin around the drawing. The default is 20.
func WithPadding(p float64) SVGOption { return func(r *svgRenderer) { r.padding = p } }

// WithLabels writes shape ids inside their outlines.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithArrows draws an arrowhead at every link target.
func WithArrows() SVGOption { return func(r *svgRenderer) { r.arrows = true } }

// WithCenters marks the center point of every link.
func WithCenters() SVGOption { return func(r *svgRenderer) { r.centers = true } }

// RenderSVG draws shapes and routed links as a standalone SVG document.
func RenderSVG(shapes []diagram.Shape, res *router.Result, opts ...SVGOption) []byte {
	r := svgRenderer{padding: 20}
	for _, opt := range opts {
		opt(&r)
	}

	sorted := slices.Clone(shapes)
	slices.SortFunc(sorted, func(a, b diagram.Shape) int {
		return cmp.Compare(a.ID, b.ID)
	})

	frame := bounds(sorted, res).Expand(r.padding)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		frame.X, frame.Y, frame.W, frame.H, frame.W, frame.H)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgCSS)

	for _, s := range sorted {
		renderShape(&buf, &s, r.labels)
	}
	for _, rt := range res.Routes {
		renderRoute(&buf, rt, r)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderShape(buf *bytes.Buffer, s *diagram.Shape, label bool) {
	class := "shape"
	if s.Kind == diagram.KindComment || s.Kind == diagram.KindSupernode {
		class += " shape-" + string(s.Kind)
	}
	fmt.Fprintf(buf, `  <rect id="shape-%s" class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
		html.EscapeString(s.ID), class, s.X, s.Y, s.Width, s.Height)
	// Supernodes get a second outline to mark the nested diagram.
	if in := s.Bounds().Expand(-4); s.Kind == diagram.KindSupernode && !in.Empty() {
		fmt.Fprintf(buf, `  <rect class="inset" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
			in.X, in.Y, in.W, in.H)
	}
	for _, p := range s.Ports {
		a := diagram.AnchorFor(s, p.ID)
		fmt.Fprintf(buf, `  <circle class="port" cx="%.1f" cy="%.1f" r="2"/>`+"\n", a.X, a.Y)
	}
	if label {
		c := s.Bounds().Center()
		fmt.Fprintf(buf, `  <text class="label" x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			c.X, c.Y, html.EscapeString(s.ID))
	}
}

func renderRoute(buf *bytes.Buffer, rt router.Route, r svgRenderer) {
	fmt.Fprintf(buf, `  <path id="link-%s" class="link link-%s" d="%s"/>`+"\n",
		html.EscapeString(rt.Link), rt.Style, rt.PathString)
	if r.arrows {
		fmt.Fprintf(buf, `  <path class="arrow" d="M 0 0 L -8 -4 L -8 4 Z" transform="translate(%.1f %.1f) rotate(%.1f)"/>`+"\n",
			rt.Target.X, rt.Target.Y, rt.Angle)
	}
	if r.centers {
		fmt.Fprintf(buf, `  <circle class="center" cx="%.1f" cy="%.1f" r="2.5"/>`+"\n", rt.Center.X, rt.Center.Y)
	}
}

// bounds returns the box covering every shape and every path point.
func bounds(shapes []diagram.Shape, res *router.Result) geom.Rect {
	var box geom.Rect
	seen := false
	add := func(r geom.Rect) {
		if !seen {
			box, seen = r, true
			return
		}
		box = box.Union(r)
	}
	for i := range shapes {
		add(shapes[i].Bounds())
	}
	for _, rt := range res.Routes {
		for _, seg := range rt.Segments {
			for _, p := range seg.Pts {
				add(geom.Rect{X: p.X, Y: p.Y})
			}
		}
	}
	return box
}
