// Package path holds the output model of the routing engine: a list of path
// segments plus the decoration anchors a renderer needs.
//
// Segments serialise to the widely supported vector-path mini-language:
//
//	M x y               move to
//	L x y               line to
//	Q cx cy x y         quadratic curve
//	C c1x c1y c2x c2y x y  cubic curve
//	T x y               smooth quadratic through a point
//
// Only absolute commands are produced. [Parse] reads the same subset back,
// which lets callers verify endpoints of a stored path string.
package path
