package geom

import "math"

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// RectFromPoints returns the smallest rectangle containing a and b.
func RectFromPoints(a, b Point) Rect {
	x0, x1 := math.Min(a.X, b.X), math.Max(a.X, b.X)
	y0, y1 := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }
func (r Rect) Center() Point   { return Point{r.X + r.W/2, r.Y + r.H/2} }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Expand grows the rectangle by gap on every side.
func (r Rect) Expand(gap float64) Rect {
	return Rect{X: r.X - gap, Y: r.Y - gap, W: r.W + 2*gap, H: r.H + 2*gap}
}

// Clamp returns the point of r closest to p.
func (r Rect) Clamp(p Point) Point {
	return Point{
		X: math.Min(math.Max(p.X, r.Left()), r.Right()),
		Y: math.Min(math.Max(p.Y, r.Top()), r.Bottom()),
	}
}

// Rotate turns the rectangle about the origin.
func (r Rect) Rotate(s Sense) Rect {
	return RectFromPoints(Point{r.X, r.Y}.Rotate(s), Point{r.Right(), r.Bottom()}.Rotate(s))
}

// FlipY mirrors the rectangle across the x axis.
func (r Rect) FlipY() Rect {
	return Rect{X: r.X, Y: -r.Bottom(), W: r.W, H: r.H}
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	x0, y0 := math.Min(r.Left(), o.Left()), math.Min(r.Top(), o.Top())
	x1, y1 := math.Max(r.Right(), o.Right()), math.Max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Side returns the start point and length of the given side. Sides are
// traversed left to right (north, south) or top to bottom (east, west).
func (r Rect) Side(d Direction) (start Point, length float64) {
	switch d {
	case North:
		return Point{r.Left(), r.Top()}, r.W
	case South:
		return Point{r.Left(), r.Bottom()}, r.W
	case West:
		return Point{r.Left(), r.Top()}, r.H
	default:
		return Point{r.Right(), r.Top()}, r.H
	}
}

// SideMid returns the middle of the given side.
func (r Rect) SideMid(d Direction) Point {
	start, n := r.Side(d)
	return start.Add(d.Along().Scale(n / 2))
}
