package sink

import (
	"encoding/json"

	"github.com/matzehuels/linkroute/pkg/diagram"
	errs "github.com/matzehuels/linkroute/pkg/errors"
	"github.com/matzehuels/linkroute/pkg/geom"
	"github.com/matzehuels/linkroute/pkg/path"
	"github.com/matzehuels/linkroute/pkg/router"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	config   *diagram.LayoutConfig
	segments bool
}

// WithJSONConfig records the layout config the routes were computed with.
func WithJSONConfig(cfg diagram.LayoutConfig) JSONOption {
	return func(r *jsonRenderer) { r.config = &cfg }
}

// WithJSONSegments includes the parsed segment list of every path next to
// its string form.
func WithJSONSegments() JSONOption { return func(r *jsonRenderer) { r.segments = true } }

type jsonOutput struct {
	Config   *diagram.LayoutConfig `json:"config,omitempty"`
	Routes   []jsonRoute           `json:"routes"`
	Rejected []router.Rejection    `json:"rejected,omitempty"`
	Stats    jsonStats             `json:"stats"`
}

type jsonRoute struct {
	Link       string          `json:"link"`
	Style      diagram.Style   `json:"style"`
	Path       string          `json:"path"`
	Segments   path.Path       `json:"segments,omitempty"`
	Center     geom.Point      `json:"center"`
	Source     geom.Point      `json:"source"`
	Target     geom.Point      `json:"target"`
	Angle      float64         `json:"angle"`
	SourceSide router.SideInfo `json:"source_side"`
	TargetSide router.SideInfo `json:"target_side"`
}

type jsonStats struct {
	Links     int     `json:"links"`
	Routed    int     `json:"routed"`
	Rejected  int     `json:"rejected"`
	CacheHits int     `json:"cache_hits"`
	Seconds   float64 `json:"seconds"`
}

// RenderJSON encodes a routing result as indented JSON.
func RenderJSON(res *router.Result, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Config:   r.config,
		Routes:   make([]jsonRoute, len(res.Routes)),
		Rejected: res.Rejected,
		Stats: jsonStats{
			Links:     res.Stats.Links,
			Routed:    res.Stats.Routed,
			Rejected:  res.Stats.Rejected,
			CacheHits: res.Stats.CacheHits,
			Seconds:   res.Stats.Duration.Seconds(),
		},
	}
	for i, rt := range res.Routes {
		jr := jsonRoute{
			Link:       rt.Link,
			Style:      rt.Style,
			Path:       rt.PathString,
			Center:     rt.Center,
			Source:     rt.Source,
			Target:     rt.Target,
			Angle:      rt.Angle,
			SourceSide: rt.SourceSide,
			TargetSide: rt.TargetSide,
		}
		if r.segments {
			jr.Segments = rt.Segments
		}
		out.Routes[i] = jr
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode routes")
	}
	return append(data, '\n'), nil
}
