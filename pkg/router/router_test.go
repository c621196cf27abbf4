package router

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/linkroute/pkg/cache"
	"github.com/matzehuels/linkroute/pkg/diagram"
	errs "github.com/matzehuels/linkroute/pkg/errors"
	"github.com/matzehuels/linkroute/pkg/geom"
	"github.com/matzehuels/linkroute/pkg/scene"
)

func quiet() *log.Logger { return log.New(io.Discard) }

func node(id string, x, y, w, h float64, ports ...diagram.Port) diagram.Shape {
	return diagram.Shape{ID: id, Kind: diagram.KindNode, X: x, Y: y, Width: w, Height: h, Ports: ports}
}

func link(id, from, to string) diagram.Link {
	return diagram.Link{ID: id, Type: diagram.DataLink,
		Source: diagram.End{Shape: from}, Target: diagram.End{Shape: to}}
}

func config(style diagram.Style) Options {
	cfg := diagram.DefaultLayoutConfig()
	cfg.Style = style
	return Options{Config: cfg}
}

func TestRouteAllElbowScenario(t *testing.T) {
	shapes := []diagram.Shape{node("A", 0, 0, 100, 60), node("B", 300, 0, 100, 60)}
	r := New(nil, nil, quiet())

	res, err := r.RouteAll(context.Background(), shapes, []diagram.Link{link("ab", "A", "B")}, config(diagram.StyleElbow))
	if err != nil {
		t.Fatalf("RouteAll: %v", err)
	}
	d, ok := res.Path("ab")
	if !ok {
		t.Fatal("no path for ab")
	}
	if want := "M 100 30 L 130 30 L 270 30 L 300 30"; d.PathString != want {
		t.Errorf("path = %q, want %q", d.PathString, want)
	}
	if d.Center.X != 200 {
		t.Errorf("center.x = %v, want 200", d.Center.X)
	}
	rt := res.Routes[0]
	if rt.SourceSide.Side != geom.East || rt.TargetSide.Side != geom.West {
		t.Errorf("sides = %s -> %s", rt.SourceSide.Side, rt.TargetSide.Side)
	}
}

func TestRouteAllShortLine(t *testing.T) {
	shapes := []diagram.Shape{node("A", 0, 0, 100, 60), node("B", 110, 0, 100, 60)}
	r := New(nil, nil, quiet())
	for _, style := range diagram.Styles {
		res, err := r.RouteAll(context.Background(), shapes, []diagram.Link{link("ab", "A", "B")}, config(style))
		if err != nil {
			t.Fatalf("%s: %v", style, err)
		}
		if got := res.Routes[0].PathString; got != "M 100 30 L 110 30" {
			t.Errorf("%s: path = %q", style, got)
		}
	}
}

func TestRouteAllFanOutSharedPort(t *testing.T) {
	out := func(id string, y float64) diagram.Port {
		return diagram.Port{ID: id, Kind: diagram.PortOut, CX: 100, CY: y, Dir: geom.East}
	}
	shapes := []diagram.Shape{
		node("C", 0, 0, 100, 120, out("o1", 30), out("o2", 60), out("o3", 90)),
		node("D", 300, 0, 100, 120, diagram.Port{ID: "in", Kind: diagram.PortIn, CX: 0, CY: 60, Dir: geom.West}),
	}
	var links []diagram.Link
	for _, p := range []string{"o3", "o1", "o2"} {
		links = append(links, diagram.Link{ID: p, Source: diagram.End{Shape: "C", Port: p}, Target: diagram.End{Shape: "D", Port: "in"}})
	}

	res, err := New(nil, nil, quiet()).RouteAll(context.Background(), shapes, links, config(diagram.StyleCurve))
	if err != nil {
		t.Fatalf("RouteAll: %v", err)
	}

	h := 120.0
	want := map[string]struct {
		y     float64
		index int
	}{"o1": {h / 4, 0}, "o2": {h / 2, 1}, "o3": {3 * h / 4, 2}}
	for _, rt := range res.Routes {
		w := want[rt.Link]
		if rt.Target != geom.Pt(300, w.y) {
			t.Errorf("%s target = %v, want (300, %v)", rt.Link, rt.Target, w.y)
		}
		if rt.TargetSide.Index != w.index || rt.TargetSide.Count != 3 {
			t.Errorf("%s target side = %+v", rt.Link, rt.TargetSide)
		}
		if rt.SourceSide.Count != 1 {
			t.Errorf("%s source should not be spread: %+v", rt.Link, rt.SourceSide)
		}
	}
}

func TestRouteAllRejectsIncompleteLinks(t *testing.T) {
	shapes := []diagram.Shape{node("A", 0, 0, 100, 60), node("B", 300, 0, 100, 60)}
	links := []diagram.Link{
		{ID: "dangling", Source: diagram.End{}, Target: diagram.End{Shape: "B"}},
		link("ghost", "A", "Z"),
		link("ok", "A", "B"),
	}
	res, err := New(nil, nil, quiet()).RouteAll(context.Background(), shapes, links, config(diagram.StyleElbow))
	if err != nil {
		t.Fatalf("RouteAll: %v", err)
	}
	if len(res.Routes) != 1 || res.Routes[0].Link != "ok" {
		t.Fatalf("routes = %+v", res.Routes)
	}
	if len(res.Rejected) != 2 {
		t.Fatalf("rejected = %+v", res.Rejected)
	}
	for _, rj := range res.Rejected {
		if rj.Code != errs.ErrCodeIncompleteLink {
			t.Errorf("%s code = %s", rj.Link, rj.Code)
		}
	}
	if res.Stats.Links != 3 || res.Stats.Routed != 1 || res.Stats.Rejected != 2 {
		t.Errorf("stats = %+v", res.Stats)
	}
}

func TestRouteIncompleteLinkError(t *testing.T) {
	shapes := []diagram.Shape{node("A", 0, 0, 100, 60)}
	_, err := New(nil, nil, quiet()).Route(context.Background(), shapes,
		diagram.Link{ID: "x", Source: diagram.End{Shape: "A"}}, config(diagram.StyleElbow))
	if !errs.Is(err, errs.ErrCodeIncompleteLink) {
		t.Fatalf("err = %v, want INCOMPLETE_LINK", err)
	}
	var le *errs.LinkError
	if !errors.As(err, &le) || le.LinkID != "x" {
		t.Errorf("err = %#v, want LinkError for x", err)
	}
}

func TestRouteAllInvalidInput(t *testing.T) {
	r := New(nil, nil, quiet())
	ctx := context.Background()

	dup := []diagram.Shape{node("A", 0, 0, 10, 10), node("A", 50, 0, 10, 10)}
	if _, err := r.RouteAll(ctx, dup, nil, config(diagram.StyleElbow)); !errs.Is(err, errs.ErrCodeInvalidScene) {
		t.Errorf("duplicate shapes: err = %v", err)
	}

	neg := []diagram.Shape{node("A", 0, 0, -1, 10)}
	if _, err := r.RouteAll(ctx, neg, nil, config(diagram.StyleElbow)); !errs.Is(err, errs.ErrCodeInvalidShape) {
		t.Errorf("negative width: err = %v", err)
	}

	opts := config(diagram.StyleElbow)
	opts.Config.MinInitialStub = -5
	if _, err := r.RouteAll(ctx, nil, nil, opts); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("negative stub: err = %v", err)
	}
}

func TestRouteAllDoesNotMutateInput(t *testing.T) {
	shapes := []diagram.Shape{
		node("A", 0, 0, 100, 60, diagram.Port{ID: "o", Kind: diagram.PortOut, CX: 100, CY: 30}),
		node("B", 300, 0, 100, 60),
	}
	links := []diagram.Link{link("ab", "A", "B"), link("ab2", "A", "B")}
	shapesBefore := append([]diagram.Shape(nil), shapes...)
	shapesBefore[0].Ports = append([]diagram.Port(nil), shapes[0].Ports...)
	linksBefore := append([]diagram.Link(nil), links...)

	if _, err := New(nil, nil, quiet()).RouteAll(context.Background(), shapes, links, config(diagram.StyleElbow)); err != nil {
		t.Fatalf("RouteAll: %v", err)
	}
	if !reflect.DeepEqual(shapes, shapesBefore) || !reflect.DeepEqual(links, linksBefore) {
		t.Error("RouteAll modified its input")
	}
}

func TestRouteAllStyleFallback(t *testing.T) {
	shapes := []diagram.Shape{node("A", 0, 0, 100, 60), node("B", 300, 0, 100, 60)}
	res, err := New(nil, nil, quiet()).RouteAll(context.Background(), shapes,
		[]diagram.Link{link("ab", "A", "B")}, config("zigzag"))
	if err != nil {
		t.Fatalf("RouteAll: %v", err)
	}
	if res.Stats.Fallbacks != 1 {
		t.Errorf("fallbacks = %d, want 1", res.Stats.Fallbacks)
	}
	if got := res.Routes[0].PathString; got != "M 100 30 L 300 30" {
		t.Errorf("path = %q", got)
	}
}

func TestRouteAllDetachedEnds(t *testing.T) {
	shapes := []diagram.Shape{node("A", 0, 0, 100, 60)}
	free := geom.Pt(400, 200)
	other := geom.Pt(-200, 300)
	links := []diagram.Link{
		{ID: "semi", Source: diagram.End{Shape: "A"}, Target: diagram.End{Pos: &free}},
		{ID: "loose", Source: diagram.End{Pos: &other}, Target: diagram.End{Pos: &free}},
	}
	for _, style := range diagram.Styles {
		res, err := New(nil, nil, quiet()).RouteAll(context.Background(), shapes, links, config(style))
		if err != nil {
			t.Fatalf("%s: %v", style, err)
		}
		semi, _ := res.Path("semi")
		if semi.Target != free {
			t.Errorf("%s: semi target = %v", style, semi.Target)
		}
		loose, _ := res.Path("loose")
		if loose.Source != other || loose.Target != free {
			t.Errorf("%s: loose ends = %v -> %v", style, loose.Source, loose.Target)
		}
	}
}

func TestRouteAllSelfLink(t *testing.T) {
	shapes := []diagram.Shape{node("A", 0, 0, 100, 60)}
	for _, style := range diagram.Styles {
		res, err := New(nil, nil, quiet()).RouteAll(context.Background(), shapes,
			[]diagram.Link{link("loop", "A", "A")}, config(style))
		if err != nil {
			t.Fatalf("%s: %v", style, err)
		}
		d := res.Routes[0].Descriptor
		if d.Source != geom.Pt(100, 30) || d.Target != geom.Pt(50, 0) {
			t.Errorf("%s: loop ends = %v -> %v", style, d.Source, d.Target)
		}
		if len(d.Segments) < 4 {
			t.Errorf("%s: degenerate loop %q", style, d.PathString)
		}
	}
}

func TestStaggerElbows(t *testing.T) {
	out := func(id string, y float64) diagram.Port {
		return diagram.Port{ID: id, Kind: diagram.PortOut, CX: 100, CY: y, Dir: geom.East}
	}
	in := diagram.Port{ID: "in", Kind: diagram.PortIn, CX: 0, CY: 30, Dir: geom.West}
	shapes := []diagram.Shape{
		node("N", 0, 0, 100, 60, out("top", 20), out("bottom", 40)),
		node("near", 300, 0, 100, 60, in),
		node("far", 300, 400, 100, 60, in),
	}
	shapes[0].Layout.ElbowIncrement = 12
	links := []diagram.Link{
		{ID: "to-near", Source: diagram.End{Shape: "N", Port: "top"}, Target: diagram.End{Shape: "near"}},
		{ID: "to-far", Source: diagram.End{Shape: "N", Port: "bottom"}, Target: diagram.End{Shape: "far"}},
	}

	cfg := config(diagram.StyleElbow).Config
	p, err := newPass(shapes, cfg)
	if err != nil {
		t.Fatal(err)
	}
	var ws []*work
	for _, l := range links {
		w, err := p.prepare(l)
		if err != nil {
			t.Fatal(err)
		}
		p.place(w)
		ws = append(ws, w)
	}
	p.stagger(ws)

	if ws[1].stub != 30 || ws[0].stub != 42 {
		t.Errorf("stubs: to-near %v, to-far %v; want 42, 30", ws[0].stub, ws[1].stub)
	}
}

func TestRouteAllCaching(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryCache(0)
	r := New(mem, nil, quiet())

	shapes := []diagram.Shape{
		node("A", 0, 0, 100, 60), node("B", 300, 0, 100, 60),
		node("C", 0, 500, 100, 60), node("D", 300, 500, 100, 60),
	}
	links := []diagram.Link{link("ab", "A", "B"), link("cd", "C", "D")}
	opts := config(diagram.StyleElbow)

	first, err := r.RouteAll(ctx, shapes, links, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Stats.CacheHits != 0 || first.Stats.SceneHit {
		t.Errorf("cold pass stats = %+v", first.Stats)
	}

	second, err := r.RouteAll(ctx, shapes, links, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Stats.SceneHit || second.Stats.CacheHits != 2 {
		t.Errorf("warm pass stats = %+v", second.Stats)
	}
	for i := range first.Routes {
		if first.Routes[i].PathString != second.Routes[i].PathString || first.Routes[i].Center != second.Routes[i].Center {
			t.Errorf("cached route %d differs", i)
		}
	}

	// Moving D invalidates the scene and cd, but ab is still cached.
	shapes[3].Y = 520
	third, err := r.RouteAll(ctx, shapes, links, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Stats.SceneHit || third.Stats.CacheHits != 1 {
		t.Errorf("partial pass stats = %+v", third.Stats)
	}

	// A style change misses everything.
	fourth, err := r.RouteAll(ctx, shapes, links, config(diagram.StyleCurve))
	if err != nil {
		t.Fatal(err)
	}
	if fourth.Stats.CacheHits != 0 {
		t.Errorf("style change stats = %+v", fourth.Stats)
	}

	refresh := opts
	refresh.Refresh = true
	fifth, err := r.RouteAll(ctx, shapes, links, refresh)
	if err != nil {
		t.Fatal(err)
	}
	if fifth.Stats.CacheHits != 0 || fifth.Stats.SceneHit {
		t.Errorf("refresh stats = %+v", fifth.Stats)
	}
}

func TestRouteAllDeterministic(t *testing.T) {
	shapes := []diagram.Shape{
		node("A", 0, 0, 100, 60), node("B", 300, 100, 100, 60), node("C", -300, -40, 80, 80),
	}
	links := []diagram.Link{link("ab", "A", "B"), link("ac", "A", "C"), link("ba", "B", "A"), link("cb", "C", "B")}
	for _, style := range diagram.Styles {
		a, err := New(nil, nil, quiet()).RouteAll(context.Background(), shapes, links, config(style))
		if err != nil {
			t.Fatal(err)
		}
		b, _ := New(nil, nil, quiet()).RouteAll(context.Background(), shapes, links, config(style))
		for i := range a.Routes {
			if a.Routes[i].PathString != b.Routes[i].PathString || a.Routes[i].Center != b.Routes[i].Center {
				t.Errorf("%s: route %d differs between runs", style, i)
			}
		}
	}
}

func TestRouteAllParallelLinks(t *testing.T) {
	// Two portless links between one pair of sides: H's east side and T's
	// north side. The upper link on H has to take the outer lane on T.
	shapes := []diagram.Shape{node("H", 0, 0, 40, 200), node("T", 300, 300, 200, 40)}
	tests := []struct {
		name  string
		links []diagram.Link
	}{
		{"in order", []diagram.Link{link("a", "H", "T"), link("b", "H", "T")}},
		{"ids against order", []diagram.Link{link("b", "H", "T"), link("a", "H", "T")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := New(nil, nil, quiet()).RouteAll(context.Background(), shapes, tt.links, config(diagram.StyleElbow))
			if err != nil {
				t.Fatal(err)
			}
			first, second := res.Routes[0], res.Routes[1]
			if first.SourceSide.Side != geom.East || first.TargetSide.Side != geom.North {
				t.Fatalf("sides = %s -> %s", first.SourceSide.Side, first.TargetSide.Side)
			}
			if first.SourceSide.Index != 0 || first.TargetSide.Index != 1 {
				t.Errorf("first link slots = %d -> %d, want 0 -> 1", first.SourceSide.Index, first.TargetSide.Index)
			}
			if !(first.Source.Y < second.Source.Y && first.Target.X > second.Target.X) {
				t.Errorf("links cross: %s and %s", first.PathString, second.PathString)
			}
			if first.Source != geom.Pt(40, 200.0/3) || second.Target != geom.Pt(300+200.0/3, 300) {
				t.Errorf("anchors = %v, %v", first.Source, second.Target)
			}
		})
	}
}

func TestRouteAllNormalizedSceneStable(t *testing.T) {
	load := func() *scene.Scene {
		sc := &scene.Scene{
			Shapes: []diagram.Shape{node("H", 0, 0, 100, 100), node("T", 300, 0, 100, 100)},
			Links: []diagram.Link{
				{Source: diagram.End{Shape: "H"}, Target: diagram.End{Shape: "T"}},
				{Source: diagram.End{Shape: "H"}, Target: diagram.End{Shape: "T"}},
				{Source: diagram.End{Shape: "T"}, Target: diagram.End{Shape: "H"}},
			},
		}
		scene.Normalize(sc)
		return sc
	}

	c := cache.NewMemoryCache(0)
	var want []string
	for run := 0; run < 10; run++ {
		sc := load()
		res, err := New(c, nil, quiet()).RouteAll(context.Background(), sc.Shapes, sc.Links, config(diagram.StyleCurve))
		if err != nil {
			t.Fatal(err)
		}
		var got []string
		for _, rt := range res.Routes {
			got = append(got, rt.Link+" "+rt.PathString)
		}
		if run == 0 {
			want = got
			if res.Stats.SceneHit {
				t.Error("first run hit the scene cache")
			}
			continue
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("run %d = %v, want %v", run, got, want)
		}
		if !res.Stats.SceneHit {
			t.Errorf("run %d missed the scene cache", run)
		}
	}
}

// turn rotates every shape about the origin.
func turn(shapes []diagram.Shape, s geom.Sense) []diagram.Shape {
	out := make([]diagram.Shape, len(shapes))
	for i, sh := range shapes {
		b := sh.Bounds().Rotate(s)
		sh.X, sh.Y, sh.Width, sh.Height = b.X, b.Y, b.W, b.H
		out[i] = sh
	}
	return out
}

func TestRouteAllRotatedScene(t *testing.T) {
	// H's east side carries three spread ends, two of them parallel.
	shapes := []diagram.Shape{
		node("H", 0, 0, 40, 240),
		node("T", 300, 300, 300, 40),
		node("U", 300, 0, 100, 60),
	}
	links := []diagram.Link{link("a", "H", "T"), link("b", "H", "T"), link("c", "H", "U")}

	r := New(nil, nil, quiet())
	for _, style := range diagram.Styles {
		base, err := r.RouteAll(context.Background(), shapes, links, config(style))
		if err != nil {
			t.Fatal(err)
		}
		for _, sense := range []geom.Sense{geom.Clockwise, geom.HalfTurn, geom.CounterClockwise} {
			res, err := r.RouteAll(context.Background(), turn(shapes, sense), links, config(style))
			if err != nil {
				t.Fatal(err)
			}
			for i, rt := range res.Routes {
				want := base.Routes[i].Descriptor.Rotate(sense)
				if rt.PathString != want.PathString {
					t.Errorf("%s %s %s: path = %q, want %q", style, sense, rt.Link, rt.PathString, want.PathString)
				}
				if rt.SourceSide.Side != base.Routes[i].SourceSide.Side.Rotate(sense) {
					t.Errorf("%s %s %s: source side = %s", style, sense, rt.Link, rt.SourceSide.Side)
				}
			}
		}
	}
}

func TestRouteAllPartialConfig(t *testing.T) {
	// Only the style is set; the short-line rule still applies.
	shapes := []diagram.Shape{node("A", 0, 0, 100, 60), node("B", 110, 0, 100, 60)}
	opts := Options{Config: diagram.LayoutConfig{Style: diagram.StyleElbow}}
	res, err := New(nil, nil, quiet()).RouteAll(context.Background(), shapes, []diagram.Link{link("ab", "A", "B")}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Routes[0].PathString; got != "M 100 30 L 110 30" {
		t.Errorf("path = %q", got)
	}

	shapes[1].X = 300
	res, err = New(nil, nil, quiet()).RouteAll(context.Background(), shapes, []diagram.Link{link("ab", "A", "B")}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Routes[0].PathString; got != "M 100 30 L 130 30 L 270 30 L 300 30" {
		t.Errorf("path = %q, want default stubs", got)
	}
}

func TestRouteAllCorruptSceneEntry(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryCache(0)
	r := New(mem, nil, quiet())
	shapes := []diagram.Shape{node("A", 0, 0, 100, 60), node("B", 300, 0, 100, 60)}
	links := []diagram.Link{link("ab", "A", "B")}
	opts := config(diagram.StyleElbow)

	keyed := opts
	if err := keyed.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	key := r.Keyer.SceneKey(cache.HashJSON(sceneInput{shapes, links}), keyed.keyOpts())
	if err := mem.Set(ctx, key, []byte("{"), 0); err != nil {
		t.Fatal(err)
	}

	res, err := r.RouteAll(ctx, shapes, links, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.SceneHit || res.Stats.Routed != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if data, hit, _ := mem.Get(ctx, key); !hit || string(data) == "{" {
		t.Errorf("scene entry = %q, %v; want a fresh entry", data, hit)
	}

	again, err := r.RouteAll(ctx, shapes, links, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !again.Stats.SceneHit {
		t.Error("replaced entry was not read back")
	}
}

func TestRouteAllWithoutCache(t *testing.T) {
	shapes := []diagram.Shape{node("A", 0, 0, 100, 60), node("B", 300, 0, 100, 60)}
	links := []diagram.Link{link("ab", "A", "B")}
	r := New(cache.NewNullCache(), nil, quiet())
	for i := 0; i < 2; i++ {
		res, err := r.RouteAll(context.Background(), shapes, links, config(diagram.StyleElbow))
		if err != nil {
			t.Fatal(err)
		}
		if res.Stats.CacheHits != 0 || res.Stats.SceneHit {
			t.Errorf("pass %d stats = %+v", i, res.Stats)
		}
		if got := res.Routes[0].PathString; got != "M 100 30 L 130 30 L 270 30 L 300 30" {
			t.Errorf("pass %d path = %q", i, got)
		}
	}
}
