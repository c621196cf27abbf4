package diagram

import (
	errs "github.com/matzehuels/linkroute/pkg/errors"
	"github.com/matzehuels/linkroute/pkg/geom"
)

// LinkType categorises links.
type LinkType string

const (
	DataLink        LinkType = "data-link"
	CommentLink     LinkType = "comment-link"
	AssociationLink LinkType = "association-link"
)

// End is one end of a link: either a shape (optionally a port on it) or a
// free position on the canvas.
type End struct {
	Shape string      `json:"shape,omitempty"`
	Port  string      `json:"port,omitempty"`
	Pos   *geom.Point `json:"pos,omitempty"`
}

// Attached reports whether the end references a shape.
func (e End) Attached() bool { return e.Shape != "" }

// Free reports whether the end is a bare canvas position.
func (e End) Free() bool { return e.Shape == "" && e.Pos != nil }

// Resolvable reports whether the end names a shape or a position.
func (e End) Resolvable() bool { return e.Attached() || e.Free() }

// Link connects two ends.
type Link struct {
	ID     string   `json:"id"`
	Type   LinkType `json:"type,omitempty"`
	Source End      `json:"source"`
	Target End      `json:"target"`
}

// Attachment classifies how a link is anchored.
type Attachment int

const (
	Incomplete Attachment = iota
	FullyAttached
	SemiDetached
	FullyDetached
)

func (a Attachment) String() string {
	switch a {
	case FullyAttached:
		return "attached"
	case SemiDetached:
		return "semi-detached"
	case FullyDetached:
		return "detached"
	}
	return "incomplete"
}

// Attachment reports whether the link is fully attached, semi-detached,
// fully detached, or incomplete.
func (l *Link) Attachment() Attachment {
	if !l.Source.Resolvable() || !l.Target.Resolvable() {
		return Incomplete
	}
	switch {
	case l.Source.Attached() && l.Target.Attached():
		return FullyAttached
	case l.Source.Attached() || l.Target.Attached():
		return SemiDetached
	}
	return FullyDetached
}

// SelfReferencing reports whether both ends sit on the same shape.
func (l *Link) SelfReferencing() bool {
	return l.Source.Attached() && l.Source.Shape == l.Target.Shape
}

// Validate rejects links whose ends resolve to neither a shape nor a position.
func (l *Link) Validate() error {
	if err := errs.ValidateID("link", l.ID); err != nil {
		return err
	}
	if !l.Source.Resolvable() {
		return errs.New(errs.ErrCodeIncompleteLink, "link %s: source has neither shape nor position", l.ID)
	}
	if !l.Target.Resolvable() {
		return errs.New(errs.ErrCodeIncompleteLink, "link %s: target has neither shape nor position", l.ID)
	}
	for _, e := range []End{l.Source, l.Target} {
		if e.Free() && !e.Pos.Finite() {
			return errs.New(errs.ErrCodeIncompleteLink, "link %s: end position is not finite", l.ID)
		}
	}
	return nil
}
