package router

import (
	"math"

	"github.com/matzehuels/linkroute/pkg/connector"
	"github.com/matzehuels/linkroute/pkg/diagram"
	errs "github.com/matzehuels/linkroute/pkg/errors"
	"github.com/matzehuels/linkroute/pkg/fanout"
	"github.com/matzehuels/linkroute/pkg/geom"
)

// end is the working copy of one link end.
type end struct {
	shape *diagram.Shape // nil for free ends
	port  string         // resolved port, empty when portless

	// ref is the point the other end aims at before anchors are known.
	ref geom.Point

	pos    geom.Point
	dir    geom.Direction
	box    geom.Rect
	spread bool
	info   SideInfo
}

// work is the working copy of one link.
type work struct {
	link  diagram.Link
	style diagram.Style
	self  bool
	src   end
	trg   end
	stub  float64
}

// pass holds the state of one routing pass. It owns copies of every shape.
type pass struct {
	cfg    diagram.LayoutConfig
	shapes map[string]*diagram.Shape
	links  map[string]bool
}

func newPass(shapes []diagram.Shape, cfg diagram.LayoutConfig) (*pass, error) {
	p := &pass{
		cfg:    cfg,
		shapes: make(map[string]*diagram.Shape, len(shapes)),
		links:  make(map[string]bool),
	}
	for i := range shapes {
		s := shapes[i]
		s.Ports = append([]diagram.Port(nil), s.Ports...)
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := p.shapes[s.ID]; dup {
			return nil, errs.New(errs.ErrCodeInvalidScene, "duplicate shape id %q", s.ID)
		}
		p.shapes[s.ID] = &s
	}
	return p, nil
}

// =============================================================================
// Bind
// =============================================================================

func (p *pass) prepare(l diagram.Link) (*work, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if p.links[l.ID] {
		return nil, errs.New(errs.ErrCodeInvalidID, "duplicate link id %q", l.ID)
	}

	w := &work{link: l, style: p.cfg.StyleFor(l.Type), self: l.SelfReferencing()}
	var err error
	if w.src, err = p.bind(l.Source, diagram.PortOut); err != nil {
		return nil, err
	}
	if w.trg, err = p.bind(l.Target, diagram.PortIn); err != nil {
		return nil, err
	}
	w.stub = p.cfg.MinInitialStub
	if s := w.src.shape; s != nil && s.Layout.MinInitialStub > 0 {
		w.stub = s.Layout.MinInitialStub
	}
	p.links[l.ID] = true
	return w, nil
}

// bind looks up the shape and port of e. Ports fix the anchor and direction
// right away; portless and free ends are placed once both ends are bound.
func (p *pass) bind(e diagram.End, kind diagram.PortKind) (end, error) {
	if !e.Attached() {
		pos := *e.Pos
		return end{ref: pos, pos: pos, box: geom.Rect{X: pos.X, Y: pos.Y}}, nil
	}
	s, ok := p.shapes[e.Shape]
	if !ok {
		return end{}, errs.New(errs.ErrCodeIncompleteLink, "unknown shape %q", e.Shape)
	}

	out := end{shape: s, box: s.Bounds(), ref: s.Center()}
	var port diagram.Port
	var found bool
	switch {
	case e.Port != "":
		port, found = s.Port(e.Port)
	case s.Kind != diagram.KindComment:
		port, found = s.DefaultPort(kind)
	}
	if found {
		out.port = port.ID
		out.pos = diagram.AnchorFor(s, port.ID)
		out.ref = out.pos
		out.dir = s.PortDirection(port, p.cfg.Direction)
	}
	return out, nil
}

// =============================================================================
// Place
// =============================================================================

func (p *pass) place(w *work) {
	if w.self {
		p.placeSelf(w)
	} else {
		p.placeEnd(&w.src, w.trg.ref, w.style)
		p.placeEnd(&w.trg, w.src.ref, w.style)
	}
	for _, e := range []*end{&w.src, &w.trg} {
		e.info = SideInfo{Side: e.dir, Count: 1}
	}
}

func (p *pass) placeEnd(e *end, other geom.Point, style diagram.Style) {
	switch {
	case e.shape == nil:
		e.dir = geom.DominantDirection(e.pos, other)
	case e.port != "":
		// anchored by its port
	case freeform(style):
		e.pos, e.dir = diagram.BoundaryIntersection(e.shape, e.ref, other, p.cfg.LinkGap)
	default:
		e.dir = geom.DirectionTo(e.box, e.ref, other)
		e.pos = diagram.SideAnchor(e.shape, e.dir, p.cfg.LinkGap)
		e.spread = true
	}
}

// placeSelf anchors a self link. Portless ends leave through the east side
// and come back through the north side; two ends on one port are split by
// moving the target to the top edge one stub in from the east corner.
func (p *pass) placeSelf(w *work) {
	s := w.src.shape
	if w.src.port == "" {
		w.src.dir = geom.East
		w.src.pos = diagram.SideAnchor(s, geom.East, p.cfg.LinkGap)
		w.src.spread = true
	}
	if w.trg.port == "" {
		w.trg.dir = geom.North
		w.trg.pos = diagram.SideAnchor(s, geom.North, p.cfg.LinkGap)
		w.trg.spread = true
	}
	if w.src.pos.Eq(w.trg.pos) {
		b := s.Bounds()
		w.trg.dir = geom.North
		w.trg.pos = geom.Pt(math.Max(b.Left(), b.Right()-w.stub), b.Top()-p.cfg.LinkGap)
		w.trg.port = ""
	}
}

// freeform reports whether portless ends of a style meet the outline on the
// ray toward the other end. Unknown styles are drawn straight.
func freeform(s diagram.Style) bool {
	return s == diagram.StyleStraight || s == diagram.StyleAssociationCurve || !s.Known()
}

// =============================================================================
// Fan out
// =============================================================================

// fanOut spreads ends that sit on a side without a port of their own: spread
// portless ends, and ends on a port shared by several links.
func (p *pass) fanOut(ws []*work) {
	uses := make(map[string]int)
	portKey := func(e *end) string { return e.shape.ID + "\x00" + e.port }
	for _, w := range ws {
		for _, e := range []*end{&w.src, &w.trg} {
			if e.shape != nil && e.port != "" {
				uses[portKey(e)]++
			}
		}
	}

	var ends []*fanout.End
	var owners []*end
	for seq, w := range ws {
		pairs := []struct {
			e, other *end
			out      bool
		}{{&w.src, &w.trg, true}, {&w.trg, &w.src, false}}
		for _, pr := range pairs {
			e := pr.e
			if e.shape == nil {
				continue
			}
			shared := e.port != "" && uses[portKey(e)] > 1
			if !e.spread && !shared {
				continue
			}
			fe := &fanout.End{
				Link:     w.link.ID,
				Shape:    e.shape.ID,
				Side:     e.dir,
				Outgoing: pr.out,
				Self:     w.self,
				Seq:      seq,
				Far:      pr.other.pos,
				FarSide:  pr.other.dir,
			}
			if pr.other.shape != nil {
				fe.FarShape = pr.other.shape.ID
			}
			ends = append(ends, fe)
			owners = append(owners, e)
		}
	}

	fanout.Spread(ends, func(id string) geom.Rect { return p.shapes[id].Bounds() })

	for i, fe := range ends {
		e := owners[i]
		e.pos = fe.Pos
		if e.port == "" {
			e.pos = e.pos.Move(fe.Side, p.cfg.LinkGap)
		}
		e.info = SideInfo{Side: fe.Side, Index: fe.Index, Count: fe.Count}
	}
}

// =============================================================================
// Stagger
// =============================================================================

// stagger gives elbow links leaving a multi-port node distinct first corners.
func (p *pass) stagger(ws []*work) {
	var order []string
	groups := make(map[string][]*fanout.Leg)
	owners := make(map[*fanout.Leg]*work)
	for _, w := range ws {
		s := w.src.shape
		if s == nil || w.self || w.style != diagram.StyleElbow || len(s.PortsOf(diagram.PortOut)) < 2 {
			continue
		}
		leg := &fanout.Leg{Link: w.link.ID, Source: w.src.pos, Target: w.trg.pos}
		if _, ok := groups[s.ID]; !ok {
			order = append(order, s.ID)
		}
		groups[s.ID] = append(groups[s.ID], leg)
		owners[leg] = w
	}

	for _, id := range order {
		s := p.shapes[id]
		base := p.cfg.MinInitialStub
		if s.Layout.MinInitialStub > 0 {
			base = s.Layout.MinInitialStub
		}
		inc := p.cfg.ElbowIncrement
		if s.Layout.ElbowIncrement > 0 {
			inc = s.Layout.ElbowIncrement
		}
		fanout.Stagger(groups[id], p.cfg.Direction, base, inc)
		for _, leg := range groups[id] {
			owners[leg].stub = leg.Stub
		}
	}
}

// =============================================================================
// Build
// =============================================================================

func (p *pass) request(w *work) connector.Request {
	return connector.Request{
		Source:      w.src.pos,
		Target:      w.trg.pos,
		SourceDir:   w.src.dir,
		TargetDir:   w.trg.dir,
		SourceBox:   w.src.box,
		TargetBox:   w.trg.box,
		InitialStub: w.stub,
		FinalStub:   p.cfg.MinFinalStub,
		SelfLoop:    w.self,
	}
}
