// Package diagram defines the read-only inputs of the routing engine: shapes
// (nodes and comments) with optional ports, links between them, and the
// [LayoutConfig] that governs one layout pass.
//
// The surrounding application owns these records. The engine never mutates
// them; it derives a working copy of each link with resolved anchors and
// directions (see package router).
//
// # Anchors
//
// [AnchorFor] resolves a named port to absolute coordinates, or falls back to
// the shape's reference center, which may be moved onto an embedded image
// through [ShapeLayout.ImageCenter]. [BoundaryIntersection] finds where a ray
// from the reference center leaves the gap-expanded bounding box, used to
// attach port-less link ends.
package diagram
