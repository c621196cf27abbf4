package sink

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/linkroute/pkg/diagram"
	"github.com/matzehuels/linkroute/pkg/geom"
	"github.com/matzehuels/linkroute/pkg/router"
)

func routed(t *testing.T) ([]diagram.Shape, *router.Result) {
	t.Helper()
	shapes := []diagram.Shape{
		{ID: "b", X: 300, Y: 0, Width: 100, Height: 60},
		{ID: "a<1>", X: 0, Y: 0, Width: 100, Height: 60},
	}
	links := []diagram.Link{
		{ID: "ab", Source: diagram.End{Shape: "a<1>"}, Target: diagram.End{Shape: "b"}},
		{ID: "broken", Source: diagram.End{Shape: "zz"}, Target: diagram.End{Shape: "b"}},
	}
	cfg := diagram.DefaultLayoutConfig()
	cfg.Style = diagram.StyleElbow
	res, err := router.New(nil, nil, log.New(io.Discard)).RouteAll(context.Background(), shapes, links, router.Options{Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	return shapes, res
}

func TestRenderJSON(t *testing.T) {
	_, res := routed(t)
	cfg := diagram.DefaultLayoutConfig()
	data, err := RenderJSON(res, WithJSONConfig(cfg))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Config == nil || *out.Config != cfg {
		t.Errorf("config = %+v", out.Config)
	}
	if len(out.Routes) != 1 {
		t.Fatalf("routes = %+v", out.Routes)
	}
	rt := out.Routes[0]
	if rt.Path != "M 100 30 L 130 30 L 270 30 L 300 30" || rt.Center != geom.Pt(200, 30) {
		t.Errorf("route = %+v", rt)
	}
	if rt.Segments != nil {
		t.Error("segments included without WithJSONSegments")
	}
	if len(out.Rejected) != 1 || out.Rejected[0].Link != "broken" {
		t.Errorf("rejected = %+v", out.Rejected)
	}
	if out.Stats.Links != 2 || out.Stats.Routed != 1 {
		t.Errorf("stats = %+v", out.Stats)
	}
}

func TestRenderJSONSegments(t *testing.T) {
	_, res := routed(t)
	data, err := RenderJSON(res, WithJSONSegments())
	if err != nil {
		t.Fatal(err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if got := out.Routes[0].Segments.String(); got != out.Routes[0].Path {
		t.Errorf("segments %q disagree with path %q", got, out.Routes[0].Path)
	}
}

func TestRenderSVG(t *testing.T) {
	shapes, res := routed(t)
	svg := string(RenderSVG(shapes, res, WithLabels(), WithArrows(), WithCenters(), WithPadding(10)))

	checks := []string{
		`viewBox="-10.0 -10.0 420.0 80.0"`,
		`d="M 100 30 L 130 30 L 270 30 L 300 30"`,
		`id="shape-a&lt;1&gt;"`,
		`>a&lt;1&gt;</text>`,
		`class="arrow"`,
		`<circle class="center" cx="200.0" cy="30.0"`,
	}
	for _, want := range checks {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %s", want)
		}
	}
	if strings.Index(svg, `id="shape-a&lt;1&gt;"`) > strings.Index(svg, `id="shape-b"`) {
		t.Error("shapes not sorted by id")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("document not closed")
	}
}

func TestRenderSVGSupernode(t *testing.T) {
	shapes := []diagram.Shape{{ID: "sub", Kind: diagram.KindSupernode, X: 0, Y: 0, Width: 100, Height: 60}}
	svg := string(RenderSVG(shapes, &router.Result{}))
	for _, want := range []string{
		`class="shape shape-supernode"`,
		`<rect class="inset" x="4.0" y="4.0" width="92.0" height="52.0"/>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %s", want)
		}
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	svg := string(RenderSVG(nil, &router.Result{}))
	if !strings.Contains(svg, `viewBox="-20.0 -20.0 40.0 40.0"`) {
		t.Errorf("unexpected empty document: %s", svg)
	}
	if strings.Contains(svg, "<path") {
		t.Error("empty result drew paths")
	}
}
