// Package connector builds the geometric path of a single link.
//
// Every request is first turned into the east frame: the rotation that makes
// the source leave eastward is applied to both anchors and both bounding
// boxes, and a target entered from the south is mirrored so it is entered
// from the north. Only three target cases remain (west, north, east), each
// planned once as an orthogonal [Skeleton]:
//
//	parts  layout
//	2      single bend (target entered from above, below-right of source)
//	3      stub, one connecting leg, stub
//	4      stub, up/down, across, into a north-facing target
//	5      stub, wrap leg, across, wrap leg, stub
//
// A [Style] turns the skeleton into segments. Straight, elbow, curve,
// parallax and association-curve styles share the same corner coordinates
// and differ only in the operators they emit. The result is rotated back to
// diagram space.
//
// Anchors closer than [Options.ShortLine] on both axes always produce one
// straight segment. Self-referencing links skip planning and draw a
// rectangular loop of the initial stub size outside the shape.
package connector
