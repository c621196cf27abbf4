package fanout

import (
	"math"
	"sort"

	"github.com/matzehuels/linkroute/pkg/diagram"
	"github.com/matzehuels/linkroute/pkg/geom"
)

// Leg is one outgoing link of a node considered for staggering.
type Leg struct {
	Link   string
	Source geom.Point
	Target geom.Point

	// Stub is the initial stub written by Stagger.
	Stub float64
}

// Stagger assigns increasing initial stubs to the outgoing legs of one node.
// The leg with the largest separation across the layout direction turns
// first and gets base; each following leg gets increment more.
func Stagger(legs []*Leg, dir diagram.LinkDirection, base, increment float64) {
	sep := func(l *Leg) float64 {
		if dir.Horizontal() {
			return math.Abs(l.Target.Y - l.Source.Y)
		}
		return math.Abs(l.Target.X - l.Source.X)
	}
	sort.SliceStable(legs, func(i, j int) bool {
		if si, sj := sep(legs[i]), sep(legs[j]); si != sj {
			return si > sj
		}
		return legs[i].Link < legs[j].Link
	})
	for i, l := range legs {
		l.Stub = base + float64(i)*increment
	}
}
