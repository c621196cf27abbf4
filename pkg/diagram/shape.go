package diagram

import (
	errs "github.com/matzehuels/linkroute/pkg/errors"
	"github.com/matzehuels/linkroute/pkg/geom"
)

// Kind distinguishes the shapes a link can attach to.
type Kind string

// A supernode stands for a nested diagram and routes like a node. An empty
// kind is a node.
const (
	KindNode      Kind = "node"
	KindComment   Kind = "comment"
	KindSupernode Kind = "supernode"
)

// Known reports whether k is one of the shape kinds.
func (k Kind) Known() bool {
	switch k {
	case "", KindNode, KindComment, KindSupernode:
		return true
	}
	return false
}

// PortKind tells input ports from output ports.
type PortKind string

const (
	PortIn  PortKind = "in"
	PortOut PortKind = "out"
)

// Port is a named attachment point. CX and CY are offsets from the shape's
// top-left corner. Dir may be left unset, in which case the side of the shape
// facing the port is used.
type Port struct {
	ID   string         `json:"id" toml:"id"`
	Kind PortKind       `json:"kind,omitempty" toml:"kind"`
	CX   float64        `json:"cx" toml:"cx"`
	CY   float64        `json:"cy" toml:"cy"`
	Dir  geom.Direction `json:"dir,omitempty" toml:"dir"`
}

// ShapeLayout holds per-shape layout overrides. Zero values defer to the
// pass-wide LayoutConfig.
type ShapeLayout struct {
	// ImageCenter, relative to the top-left corner, replaces the bounding-box
	// center as the shape's reference point.
	ImageCenter *geom.Point `json:"image_center,omitempty" toml:"image_center"`

	// MinInitialStub overrides LayoutConfig.MinInitialStub for links leaving
	// this shape.
	MinInitialStub float64 `json:"min_initial_stub,omitempty" toml:"min_initial_stub"`

	// ElbowIncrement overrides LayoutConfig.ElbowIncrement when staggering
	// elbow links that leave this shape.
	ElbowIncrement float64 `json:"elbow_increment,omitempty" toml:"elbow_increment"`
}

// Shape is a node or comment with a rectangular extent.
type Shape struct {
	ID     string      `json:"id"`
	Kind   Kind        `json:"kind,omitempty"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Ports  []Port      `json:"ports,omitempty"`
	Layout ShapeLayout `json:"layout,omitempty"`
}

// Bounds returns the shape's bounding box.
func (s *Shape) Bounds() geom.Rect {
	return geom.Rect{X: s.X, Y: s.Y, W: s.Width, H: s.Height}
}

// Center returns the reference point of the shape in diagram coordinates.
func (s *Shape) Center() geom.Point {
	if c := s.Layout.ImageCenter; c != nil {
		return geom.Pt(s.X+c.X, s.Y+c.Y)
	}
	return s.Bounds().Center()
}

// Port looks up a port by id.
func (s *Shape) Port(id string) (Port, bool) {
	for _, p := range s.Ports {
		if p.ID == id {
			return p, true
		}
	}
	return Port{}, false
}

// PortsOf returns the ports of the given kind in declaration order.
func (s *Shape) PortsOf(kind PortKind) []Port {
	var out []Port
	for _, p := range s.Ports {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

// DefaultPort returns the port used when a link names none: the first port
// of the requested kind, or the first port at all.
func (s *Shape) DefaultPort(kind PortKind) (Port, bool) {
	if ps := s.PortsOf(kind); len(ps) > 0 {
		return ps[0], true
	}
	if len(s.Ports) > 0 {
		return s.Ports[0], true
	}
	return Port{}, false
}

// PortDirection returns the side a port faces. An explicit Dir wins;
// otherwise the side of the bounding box nearest the port is used, and ports
// in the middle of the shape follow the layout convention.
func (s *Shape) PortDirection(p Port, conv LinkDirection) geom.Direction {
	if p.Dir.Valid() {
		return p.Dir
	}
	abs := geom.Pt(s.X+p.CX, s.Y+p.CY)
	b := s.Bounds()
	if abs.Eq(b.Center()) || b.Empty() {
		if p.Kind == PortIn {
			return conv.InputSide()
		}
		return conv.OutputSide()
	}
	return geom.DirectionTo(b, b.Center(), abs)
}

// Validate checks the shape for finite coordinates and non-negative size.
func (s *Shape) Validate() error {
	if err := errs.ValidateID("shape", s.ID); err != nil {
		return err
	}
	if !s.Kind.Known() {
		return errs.New(errs.ErrCodeInvalidShape, "shape %s has unknown kind %q", s.ID, s.Kind)
	}
	if err := errs.ValidateFinite("shape "+s.ID+" position", s.X, s.Y); err != nil {
		return err
	}
	if err := errs.ValidateNonNegative(errs.ErrCodeInvalidShape, "shape "+s.ID+" width", s.Width); err != nil {
		return err
	}
	if err := errs.ValidateNonNegative(errs.ErrCodeInvalidShape, "shape "+s.ID+" height", s.Height); err != nil {
		return err
	}
	seen := make(map[string]bool, len(s.Ports))
	for _, p := range s.Ports {
		if err := errs.ValidateID("port", p.ID); err != nil {
			return err
		}
		if seen[p.ID] {
			return errs.New(errs.ErrCodeInvalidShape, "shape %s has duplicate port %s", s.ID, p.ID)
		}
		seen[p.ID] = true
		if err := errs.ValidateFinite("port "+p.ID+" offset", p.CX, p.CY); err != nil {
			return err
		}
	}
	return nil
}
