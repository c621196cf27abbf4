package router

import (
	"time"

	"github.com/matzehuels/linkroute/pkg/diagram"
	errs "github.com/matzehuels/linkroute/pkg/errors"
	"github.com/matzehuels/linkroute/pkg/geom"
	"github.com/matzehuels/linkroute/pkg/path"
)

// Result is the output of one routing pass.
type Result struct {
	// Routes holds one entry per routed link, in input order.
	Routes []Route `json:"routes"`

	// Rejected lists links left out of the pass.
	Rejected []Rejection `json:"rejected,omitempty"`

	Stats Stats `json:"stats"`
}

// Route is the path of one link together with the sides it uses.
type Route struct {
	Link string `json:"link"`
	path.Descriptor
	Style      diagram.Style `json:"style"`
	SourceSide SideInfo      `json:"source_side"`
	TargetSide SideInfo      `json:"target_side"`
}

// SideInfo locates a link end among the ends sharing its side of a shape.
// Ends that were not spread report index 0 of 1.
type SideInfo struct {
	Side  geom.Direction `json:"side"`
	Index int            `json:"index"`
	Count int            `json:"count"`
}

// Rejection records a link that could not be routed.
type Rejection struct {
	Link   string    `json:"link"`
	Code   errs.Code `json:"code"`
	Reason string    `json:"reason"`
}

// Err returns the rejection as a *errors.LinkError.
func (r Rejection) Err() error {
	return &errs.LinkError{LinkID: r.Link, Err: errs.New(r.Code, "%s", r.Reason)}
}

// Stats summarizes a pass.
type Stats struct {
	Links     int           `json:"links"`
	Routed    int           `json:"routed"`
	Rejected  int           `json:"rejected"`
	CacheHits int           `json:"cache_hits"`
	SceneHit  bool          `json:"scene_hit,omitempty"`
	Fallbacks int           `json:"fallbacks"`
	Duration  time.Duration `json:"duration"`
}

// Path returns the descriptor of the given link.
func (r *Result) Path(linkID string) (path.Descriptor, bool) {
	for _, rt := range r.Routes {
		if rt.Link == linkID {
			return rt.Descriptor, true
		}
	}
	return path.Descriptor{}, false
}
