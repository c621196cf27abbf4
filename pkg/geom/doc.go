// Package geom provides the planar primitives used by the link routing engine.
//
// Coordinates follow the screen convention: x grows to the right and y grows
// downward. Under that convention a clockwise quarter turn maps East to South.
//
// # Directions
//
// [Direction] is a compass side of a shape. [DirectionTo] splits the plane
// around a bounding box into four triangular sectors using the corner-to-center
// diagonals and reports the sector a point falls in.
//
// # Rotation
//
// [Sense] names a quarter or half turn. The routing engine rotates every link
// so that its source leaves eastward, builds the path in that frame and rotates
// the result back:
//
//	s := geom.Normalizing(srcDir)
//	p := geom.Pt(10, 20).Rotate(s)   // into the east frame
//	q := p.Rotate(s.Inverse())        // back to diagram space
//
// # Curves
//
// [Bezier] evaluates a Bezier curve of any degree with the Bernstein basis.
package geom
