package path

import "github.com/matzehuels/linkroute/pkg/geom"

// Descriptor is everything a renderer needs to draw one link.
type Descriptor struct {
	Segments   Path       `json:"segments"`
	PathString string     `json:"path"`
	Center     geom.Point `json:"center"`
	Source     geom.Point `json:"source"`
	Target     geom.Point `json:"target"`
	Angle      float64    `json:"angle"`
}

// NewDescriptor fills the derived fields from segments and a center point.
func NewDescriptor(segs Path, center geom.Point) Descriptor {
	return Descriptor{
		Segments:   segs,
		PathString: segs.String(),
		Center:     center,
		Source:     segs.Start(),
		Target:     segs.End(),
		Angle:      segs.EndAngle(),
	}
}

// Rotate returns the descriptor turned about the origin.
func (d Descriptor) Rotate(s geom.Sense) Descriptor {
	if s == geom.NoTurn {
		return d
	}
	return NewDescriptor(d.Segments.Rotate(s), d.Center.Rotate(s))
}

// FlipY returns the descriptor mirrored across the x axis.
func (d Descriptor) FlipY() Descriptor {
	return NewDescriptor(d.Segments.FlipY(), d.Center.FlipY())
}
