package geom

// Sense is a rotation by a multiple of 90 degrees.
type Sense int8

const (
	NoTurn Sense = iota
	Clockwise
	HalfTurn
	CounterClockwise
)

func (s Sense) quarters() int { return int(s) & 3 }

// Inverse returns the rotation that undoes s.
func (s Sense) Inverse() Sense { return Sense((4 - s.quarters()) & 3) }

// Then returns the rotation equivalent to s followed by t.
func (s Sense) Then(t Sense) Sense { return Sense((s.quarters() + t.quarters()) & 3) }

func (s Sense) String() string {
	switch s {
	case Clockwise:
		return "cw"
	case HalfTurn:
		return "half"
	case CounterClockwise:
		return "ccw"
	}
	return "none"
}

// Normalizing returns the rotation that maps d onto East.
func Normalizing(d Direction) Sense {
	switch d {
	case South:
		return CounterClockwise
	case West:
		return HalfTurn
	case North:
		return Clockwise
	}
	return NoTurn
}
