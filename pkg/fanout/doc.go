// Package fanout spreads link ends that would otherwise share one anchor.
//
// [Spread] handles ends that attach to a shape side without a port of their
// own: portless ends, and ends sharing a port with other links. Ends are
// grouped by shape and side, ordered by the angle from the shape center to
// the far end of each link, and placed at even offsets along the side:
//
//	offset(i, n) = side_start + side_length * (i+1) / (n+1)
//
// Angles are measured clockwise from east in screen coordinates, in
// [0, 360). Before sorting, the east and south sides move angles at or above
// 270 down by a full turn and the north side moves angles below 90 up by one,
// so each side orders its ends without a jump. North and east sort
// ascending, south and west descending, which keeps lines leaving one side
// from crossing each other.
//
// [Stagger] gives each elbow link leaving a multi-port node its own first
// corner, so parallel elbows do not share a vertical leg.
package fanout
