package geom

import (
	"fmt"
	"strings"
)

// Direction is a compass side. The zero value means "unset" and is resolved
// by callers, usually from a shape's geometry or the layout convention.
type Direction uint8

// Directions are numbered clockwise (in screen coordinates) starting at East,
// so a clockwise quarter turn adds one.
const (
	NoDirection Direction = iota
	East
	South
	West
	North
)

var dirNames = [...]string{"", "e", "s", "w", "n"}

func (d Direction) String() string {
	if int(d) < len(dirNames) {
		return dirNames[d]
	}
	return fmt.Sprintf("Direction(%d)", d)
}

// ParseDirection accepts "n", "s", "e", "w" and the full compass names.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return NoDirection, nil
	case "e", "east":
		return East, nil
	case "s", "south":
		return South, nil
	case "w", "west":
		return West, nil
	case "n", "north":
		return North, nil
	}
	return NoDirection, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Valid reports whether d is one of the four compass directions.
func (d Direction) Valid() bool { return d >= East && d <= North }

// Horizontal reports whether d is East or West.
func (d Direction) Horizontal() bool { return d == East || d == West }

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction { return d.Rotate(HalfTurn) }

// Rotate turns the direction by s.
func (d Direction) Rotate(s Sense) Direction {
	if !d.Valid() {
		return d
	}
	return Direction((int(d)-1+s.quarters())%4 + 1)
}

// FlipY swaps North and South.
func (d Direction) FlipY() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	}
	return d
}

// Unit returns the unit vector pointing in direction d.
func (d Direction) Unit() Point {
	switch d {
	case East:
		return Point{1, 0}
	case South:
		return Point{0, 1}
	case West:
		return Point{-1, 0}
	case North:
		return Point{0, -1}
	}
	return Point{}
}

// Along returns the unit vector running along side d, matching Rect.Side.
func (d Direction) Along() Point {
	if d.Horizontal() {
		return Point{0, 1}
	}
	return Point{1, 0}
}

// DirectionTo reports the side of box facing p. The plane is split into four
// triangular sectors by the rays from center through the box corners; center
// is clamped into the box.
//
// Points on a diagonal resolve to the horizontal side. The center itself and
// every point around a zero-area box resolve to East.
func DirectionTo(box Rect, center Point, p Point) Direction {
	if box.Empty() {
		return East
	}
	c := box.Clamp(center)
	v := p.Sub(c)
	tr := Point{box.Right(), box.Top()}.Sub(c)
	br := Point{box.Right(), box.Bottom()}.Sub(c)
	bl := Point{box.Left(), box.Bottom()}.Sub(c)
	tl := Point{box.Left(), box.Top()}.Sub(c)

	switch {
	case cross(tr, v) >= 0 && cross(v, br) >= 0:
		return East
	case cross(bl, v) >= 0 && cross(v, tl) >= 0:
		return West
	case cross(br, v) > 0 && cross(v, bl) > 0:
		return South
	}
	return North
}

// DominantDirection reports the axis direction of the vector from a to b,
// preferring the horizontal axis on ties and East for a zero vector.
func DominantDirection(a, b Point) Direction {
	dx, dy := b.X-a.X, b.Y-a.Y
	if abs(dx) >= abs(dy) {
		if dx < 0 {
			return West
		}
		return East
	}
	if dy < 0 {
		return North
	}
	return South
}

func cross(a, b Point) float64 { return a.X*b.Y - a.Y*b.X }

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
