package geom

import "math"

// Point is a 2D coordinate in diagram space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(k float64) Point { return Point{p.X * k, p.Y * k} }
func (p Point) Mid(q Point) Point     { return Point{(p.X + q.X) / 2, (p.Y + q.Y) / 2} }
func (p Point) Dist(q Point) float64  { return math.Hypot(q.X-p.X, q.Y-p.Y) }
func (p Point) Eq(q Point) bool       { return p.X == q.X && p.Y == q.Y }

// Move returns p shifted n units in direction d.
func (p Point) Move(d Direction, n float64) Point { return p.Add(d.Unit().Scale(n)) }

// Near reports whether p and q are within eps of each other on both axes.
func (p Point) Near(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

// FlipY mirrors the point across the x axis.
func (p Point) FlipY() Point { return Point{p.X, -p.Y} }

// Rotate turns p about the origin. Quarter turns are exact: no trigonometry
// is involved, so rotating back always restores the original coordinates.
func (p Point) Rotate(s Sense) Point {
	switch s {
	case Clockwise:
		return Point{-p.Y, p.X}
	case CounterClockwise:
		return Point{p.Y, -p.X}
	case HalfTurn:
		return Point{-p.X, -p.Y}
	}
	return p
}

// Angle returns the angle of the vector from p to q in degrees, normalised
// to [0, 360). Because y grows downward the angle increases clockwise.
func (p Point) Angle(q Point) float64 {
	a := math.Atan2(q.Y-p.Y, q.X-p.X) * 180 / math.Pi
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a -= 360
	}
	return a
}

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
