package diagram

import (
	"fmt"
	"strings"

	errs "github.com/matzehuels/linkroute/pkg/errors"
	"github.com/matzehuels/linkroute/pkg/geom"
)

// Style selects the family of path a link is drawn with.
type Style string

const (
	StyleStraight         Style = "straight"
	StyleElbow            Style = "elbow"
	StyleCurve            Style = "curve"
	StyleParallax         Style = "parallax"
	StyleAssociationCurve Style = "association-curve"
)

// Styles lists every supported style.
var Styles = []Style{StyleStraight, StyleElbow, StyleCurve, StyleParallax, StyleAssociationCurve}

// Known reports whether s is one of Styles.
func (s Style) Known() bool {
	for _, k := range Styles {
		if s == k {
			return true
		}
	}
	return false
}

// LinkDirection is the flow convention of a diagram.
type LinkDirection string

const (
	LeftRight LinkDirection = "left-right"
	RightLeft LinkDirection = "right-left"
	TopBottom LinkDirection = "top-bottom"
	BottomTop LinkDirection = "bottom-top"
)

// ParseLinkDirection accepts the canonical names and the short forms
// "lr", "rl", "tb", "bt".
func ParseLinkDirection(s string) (LinkDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lr", string(LeftRight):
		return LeftRight, nil
	case "rl", string(RightLeft):
		return RightLeft, nil
	case "tb", string(TopBottom):
		return TopBottom, nil
	case "bt", string(BottomTop):
		return BottomTop, nil
	}
	return "", errs.New(errs.ErrCodeInvalidConfig, "unknown link direction %q", s)
}

// OutputSide is the side output ports face under this convention.
func (d LinkDirection) OutputSide() geom.Direction {
	switch d {
	case RightLeft:
		return geom.West
	case TopBottom:
		return geom.South
	case BottomTop:
		return geom.North
	}
	return geom.East
}

// InputSide is the side input ports face under this convention.
func (d LinkDirection) InputSide() geom.Direction { return d.OutputSide().Opposite() }

// Horizontal reports whether links flow along the x axis.
func (d LinkDirection) Horizontal() bool { return d.OutputSide().Horizontal() }

// LayoutConfig is the read-only configuration of one layout pass.
type LayoutConfig struct {
	// Style is used for data links.
	Style Style `json:"style" toml:"style"`

	// CommentStyle is used for links leaving comments.
	CommentStyle Style `json:"comment_style" toml:"comment_style"`

	// AssociationStyle is used for association links.
	AssociationStyle Style `json:"association_style" toml:"association_style"`

	Direction LinkDirection `json:"direction" toml:"direction"`

	// MinInitialStub and MinFinalStub are the straight runs kept next to the
	// source and target before any bend.
	MinInitialStub float64 `json:"min_initial_stub" toml:"min_initial_stub"`
	MinFinalStub   float64 `json:"min_final_stub" toml:"min_final_stub"`

	// ElbowSize is the corner radius of elbow links.
	ElbowSize float64 `json:"elbow_size" toml:"elbow_size"`

	// WrapPadding is the clearance kept between a wrap-around leg and the
	// shapes it goes around.
	WrapPadding float64 `json:"wrap_padding" toml:"wrap_padding"`

	// LinkGap separates port-less link ends from the shape outline.
	LinkGap float64 `json:"link_gap" toml:"link_gap"`

	// ShortLine is the distance under which links degrade to one straight
	// segment on both axes.
	ShortLine float64 `json:"short_line" toml:"short_line"`

	// FanOut spreads link ends sharing a side of a shape.
	FanOut bool `json:"fan_out" toml:"fan_out"`

	// StaggerElbows offsets the first corner of elbow links leaving a node
	// with several output ports.
	StaggerElbows  bool    `json:"stagger_elbows" toml:"stagger_elbows"`
	ElbowIncrement float64 `json:"elbow_increment" toml:"elbow_increment"`
}

// DefaultLayoutConfig returns the defaults used by the CLI and server.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Style:            StyleCurve,
		CommentStyle:     StyleStraight,
		AssociationStyle: StyleAssociationCurve,
		Direction:        LeftRight,
		MinInitialStub:   30,
		MinFinalStub:     30,
		ElbowSize:        10,
		WrapPadding:      30,
		LinkGap:          0,
		ShortLine:        20,
		FanOut:           true,
		StaggerElbows:    true,
		ElbowIncrement:   8,
	}
}

// StyleFor returns the style a link of type t is drawn with.
func (c *LayoutConfig) StyleFor(t LinkType) Style {
	switch t {
	case CommentLink:
		return c.CommentStyle
	case AssociationLink:
		return c.AssociationStyle
	}
	return c.Style
}

// SetDefaults fills unset fields from DefaultLayoutConfig. Empty styles and
// direction and zero stubs, spacings and thresholds are unset; LinkGap
// defaults to zero anyway. The two switches cannot be told apart from an
// explicit false, so they are only set when the whole config is zero.
func (c *LayoutConfig) SetDefaults() {
	d := DefaultLayoutConfig()
	if *c == (LayoutConfig{}) {
		*c = d
		return
	}
	if c.Style == "" {
		c.Style = d.Style
	}
	if c.CommentStyle == "" {
		c.CommentStyle = d.CommentStyle
	}
	if c.AssociationStyle == "" {
		c.AssociationStyle = d.AssociationStyle
	}
	if c.Direction == "" {
		c.Direction = d.Direction
	}
	for _, f := range []struct {
		v   *float64
		def float64
	}{
		{&c.MinInitialStub, d.MinInitialStub},
		{&c.MinFinalStub, d.MinFinalStub},
		{&c.ElbowSize, d.ElbowSize},
		{&c.WrapPadding, d.WrapPadding},
		{&c.ShortLine, d.ShortLine},
		{&c.ElbowIncrement, d.ElbowIncrement},
	} {
		if *f.v == 0 {
			*f.v = f.def
		}
	}
}

// Validate checks numeric fields and the direction convention. Unknown style
// names are not rejected: links with an unknown style fall back to straight.
func (c *LayoutConfig) Validate() error {
	if _, err := ParseLinkDirection(string(c.Direction)); err != nil {
		return err
	}
	fields := []struct {
		name string
		v    float64
	}{
		{"min_initial_stub", c.MinInitialStub},
		{"min_final_stub", c.MinFinalStub},
		{"elbow_size", c.ElbowSize},
		{"wrap_padding", c.WrapPadding},
		{"link_gap", c.LinkGap},
		{"short_line", c.ShortLine},
		{"elbow_increment", c.ElbowIncrement},
	}
	for _, f := range fields {
		if err := errs.ValidateNonNegative(errs.ErrCodeInvalidConfig, f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// Fingerprint is a stable textual form of the config, used in cache keys.
func (c *LayoutConfig) Fingerprint() string {
	return fmt.Sprintf("%s|%s|%s|%s|%g|%g|%g|%g|%g|%g|%t|%t|%g",
		c.Style, c.CommentStyle, c.AssociationStyle, c.Direction,
		c.MinInitialStub, c.MinFinalStub, c.ElbowSize, c.WrapPadding,
		c.LinkGap, c.ShortLine, c.FanOut, c.StaggerElbows, c.ElbowIncrement)
}
