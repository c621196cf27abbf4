package fanout

import (
	"math"
	"testing"

	"github.com/matzehuels/linkroute/pkg/diagram"
	"github.com/matzehuels/linkroute/pkg/geom"
)

func boxes(m map[string]geom.Rect) func(string) geom.Rect {
	return func(id string) geom.Rect { return m[id] }
}

func TestSpreadSharedInputPort(t *testing.T) {
	// C has three output ports, all linked to D's single input port.
	d := geom.Rect{X: 300, Y: 0, W: 100, H: 120}
	cPorts := []geom.Point{geom.Pt(100, 90), geom.Pt(100, 30), geom.Pt(100, 60)}
	var ends []*End
	for i, p := range cPorts {
		ends = append(ends, &End{
			Link:  string(rune('a' + i)),
			Shape: "D",
			Side:  geom.West,
			Far:   p,
		})
	}
	byLink := map[string]*End{}
	for _, e := range ends {
		byLink[e.Link] = e
	}

	Spread(ends, boxes(map[string]geom.Rect{"D": d}))

	// Offsets follow the vertical order of the far ports.
	want := map[string]float64{"b": 30, "c": 60, "a": 90}
	for link, off := range want {
		e := byLink[link]
		if got := e.Pos.Y - d.Top(); got != off {
			t.Errorf("link %s offset = %v, want %v", link, got, off)
		}
		if e.Pos.X != d.Left() {
			t.Errorf("link %s x = %v, want %v", link, e.Pos.X, d.Left())
		}
		if e.Count != 3 {
			t.Errorf("link %s count = %d", link, e.Count)
		}
	}
	if byLink["b"].Index != 0 || byLink["c"].Index != 1 || byLink["a"].Index != 2 {
		t.Errorf("indexes = %d %d %d", byLink["b"].Index, byLink["c"].Index, byLink["a"].Index)
	}
}

func TestSpreadSideOrder(t *testing.T) {
	box := geom.Rect{X: 0, Y: 0, W: 100, H: 100}
	tests := []struct {
		side geom.Direction
		far  []geom.Point // listed in expected placement order
	}{
		{geom.North, []geom.Point{geom.Pt(-100, -100), geom.Pt(50, -200), geom.Pt(200, -100), geom.Pt(200, 60)}},
		{geom.East, []geom.Point{geom.Pt(200, -100), geom.Pt(200, 50), geom.Pt(200, 200)}},
		{geom.South, []geom.Point{geom.Pt(-100, 200), geom.Pt(50, 200), geom.Pt(200, 200), geom.Pt(200, -40)}},
		{geom.West, []geom.Point{geom.Pt(-100, -100), geom.Pt(-100, 50), geom.Pt(-100, 200)}},
	}
	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			var ends []*End
			// Feed in reverse so the result cannot come from input order.
			for i := len(tt.far) - 1; i >= 0; i-- {
				ends = append(ends, &End{Link: string(rune('a' + i)), Shape: "S", Side: tt.side, Far: tt.far[i]})
			}
			Spread(ends, boxes(map[string]geom.Rect{"S": box}))

			byLink := map[string]*End{}
			for _, e := range ends {
				byLink[e.Link] = e
			}
			start, length := box.Side(tt.side)
			along := tt.side.Along()
			n := len(tt.far)
			for i := range tt.far {
				e := byLink[string(rune('a'+i))]
				want := start.Add(along.Scale(length * float64(i+1) / float64(n+1)))
				if !e.Pos.Near(want, 1e-9) {
					t.Errorf("end %d at %v, want %v", i, e.Pos, want)
				}
			}
		})
	}
}

func TestSpreadEvenlySpaced(t *testing.T) {
	box := geom.Rect{X: 10, Y: 20, W: 80, H: 70}
	var ends []*End
	for i := 0; i < 5; i++ {
		ends = append(ends, &End{Link: string(rune('a' + i)), Shape: "S", Side: geom.East, Far: geom.Pt(300, float64(i*40))})
	}
	Spread(ends, boxes(map[string]geom.Rect{"S": box}))

	var ys []float64
	for _, e := range ends {
		ys = append(ys, e.Pos.Y)
	}
	step := ys[1] - ys[0]
	if step <= 0 {
		t.Fatalf("offsets not increasing: %v", ys)
	}
	for i := 1; i < len(ys); i++ {
		if math.Abs(ys[i]-ys[i-1]-step) > 1e-9 {
			t.Errorf("uneven spacing: %v", ys)
		}
	}
}

func TestSpreadSelfLinkCorners(t *testing.T) {
	box := geom.Rect{X: 0, Y: 0, W: 100, H: 60}
	ends := []*End{
		{Link: "other", Shape: "S", Side: geom.East, Outgoing: true, Far: geom.Pt(300, -500)},
		{Link: "self", Shape: "S", Side: geom.East, Outgoing: true, Self: true, Far: geom.Pt(50, 0)},
		{Link: "self", Shape: "S", Side: geom.North, Self: true, Far: geom.Pt(100, 30)},
		{Link: "up", Shape: "S", Side: geom.North, Far: geom.Pt(400, -400)},
	}
	Spread(ends, boxes(map[string]geom.Rect{"S": box}))

	if outgoing := ends[1]; outgoing.Index != 0 || ends[0].Index != 1 {
		t.Errorf("east indexes: self %d, other %d; want self first", outgoing.Index, ends[0].Index)
	}
	if incoming := ends[2]; incoming.Index != incoming.Count-1 {
		t.Errorf("incoming self end index = %d of %d, want last", incoming.Index, incoming.Count)
	}
}

func TestSpreadDeterministic(t *testing.T) {
	mk := func() []*End {
		return []*End{
			{Link: "b", Shape: "S", Side: geom.West, Seq: 1, Far: geom.Pt(-50, 30)},
			{Link: "a", Shape: "S", Side: geom.West, Seq: 0, Far: geom.Pt(-50, 30)},
			{Link: "a", Shape: "S", Side: geom.West, Seq: 0, Outgoing: true, Far: geom.Pt(-50, 30)},
		}
	}
	box := boxes(map[string]geom.Rect{"S": {W: 100, H: 60}})
	x, y := mk(), mk()
	Spread(x, box)
	Spread(y, box)
	for i := range x {
		if x[i].Index != y[i].Index || x[i].Pos != y[i].Pos {
			t.Errorf("run differs at %d: %+v vs %+v", i, x[i], y[i])
		}
	}
	if x[2].Index != 0 || x[1].Index != 1 || x[0].Index != 2 {
		t.Errorf("tie-break indexes = %d %d %d, want 2 1 0", x[0].Index, x[1].Index, x[2].Index)
	}
}

func TestSpreadParallelLanes(t *testing.T) {
	h := geom.Rect{X: 0, Y: 0, W: 40, H: 200}
	tb := geom.Rect{X: 300, Y: 300, W: 200, H: 40}
	hAnchor, tAnchor := h.SideMid(geom.East), tb.SideMid(geom.North)

	tests := []struct {
		name     string
		hSide    geom.Direction
		tSide    geom.Direction
		reversed bool // T slots run opposite to H slots
	}{
		// Leaving east and entering from above, the upper link must take the
		// outer lane on T.
		{"east to north", geom.East, geom.North, true},
		// Side by side, the bundle stays parallel.
		{"east to west", geom.East, geom.West, false},
		{"south to north", geom.South, geom.North, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hEnds, tEnds []*End
			// Listed against id order so lanes cannot come from link ids.
			for i, id := range []string{"z", "m", "a"} {
				hEnds = append(hEnds, &End{Link: id, Shape: "H", Side: tt.hSide, Outgoing: true, Seq: i,
					Far: tAnchor, FarShape: "T", FarSide: tt.tSide})
				tEnds = append(tEnds, &End{Link: id, Shape: "T", Side: tt.tSide, Seq: i,
					Far: hAnchor, FarShape: "H", FarSide: tt.hSide})
			}
			Spread(append(hEnds, tEnds...), boxes(map[string]geom.Rect{"H": h, "T": tb}))

			for i := range hEnds {
				want := hEnds[i].Index
				if tt.reversed {
					want = len(hEnds) - 1 - want
				}
				if tEnds[i].Index != want {
					t.Errorf("%s: T index = %d, H index = %d", tEnds[i].Link, tEnds[i].Index, hEnds[i].Index)
				}
			}
			if hEnds[0].Index == hEnds[1].Index {
				t.Errorf("H indexes collide: %d", hEnds[0].Index)
			}
		})
	}
}

func TestSpreadParallelLanesRotate(t *testing.T) {
	// Turning the scene a quarter clockwise keeps each link's lane relative
	// to the clockwise order around its shape.
	h := geom.Rect{X: 0, Y: 0, W: 40, H: 200}
	tb := geom.Rect{X: 300, Y: 300, W: 200, H: 40}
	run := func(s geom.Sense) ([]int, []int) {
		hb, tr := h.Rotate(s), tb.Rotate(s)
		hs, ts := geom.East.Rotate(s), geom.North.Rotate(s)
		var hEnds, tEnds []*End
		for i := 0; i < 3; i++ {
			id := string(rune('a' + i))
			hEnds = append(hEnds, &End{Link: id, Shape: "H", Side: hs, Outgoing: true, Seq: i,
				Far: tr.SideMid(ts), FarShape: "T", FarSide: ts})
			tEnds = append(tEnds, &End{Link: id, Shape: "T", Side: ts, Seq: i,
				Far: hb.SideMid(hs), FarShape: "H", FarSide: hs})
		}
		Spread(append(hEnds, tEnds...), boxes(map[string]geom.Rect{"H": hb, "T": tr}))
		var hi, ti []int
		for i := range hEnds {
			hi = append(hi, hEnds[i].Index)
			ti = append(ti, tEnds[i].Index)
		}
		return hi, ti
	}

	h0, t0 := run(geom.NoTurn)
	h1, t1 := run(geom.Clockwise)
	// East slots run clockwise, south slots anticlockwise; north slots run
	// clockwise, east slots clockwise.
	for i := range h0 {
		if h1[i] != len(h0)-1-h0[i] {
			t.Errorf("H lane %d: %d after turn, %d before", i, h1[i], h0[i])
		}
		if t1[i] != t0[i] {
			t.Errorf("T lane %d: %d after turn, %d before", i, t1[i], t0[i])
		}
	}
}

func TestAngleCorrection(t *testing.T) {
	c := geom.Pt(0, 0)
	tests := []struct {
		side geom.Direction
		far  geom.Point
		want float64
	}{
		{geom.East, geom.Pt(10, -10), -45},
		{geom.East, geom.Pt(10, 10), 45},
		{geom.North, geom.Pt(10, 10), 405},
		{geom.North, geom.Pt(-10, -10), 225},
		{geom.South, geom.Pt(10, -10), -45},
		{geom.West, geom.Pt(10, -10), 315},
	}
	for _, tt := range tests {
		e := &End{Side: tt.side, Far: tt.far}
		if got := e.Angle(c); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s %v: angle = %v, want %v", tt.side, tt.far, got, tt.want)
		}
	}
}

func TestStagger(t *testing.T) {
	legs := []*Leg{
		{Link: "near", Source: geom.Pt(100, 30), Target: geom.Pt(300, 40)},
		{Link: "far", Source: geom.Pt(100, 50), Target: geom.Pt(300, 400)},
		{Link: "mid", Source: geom.Pt(100, 40), Target: geom.Pt(300, 140)},
	}
	Stagger(legs, diagram.LeftRight, 30, 8)

	want := map[string]float64{"far": 30, "mid": 38, "near": 46}
	for _, l := range legs {
		if l.Stub != want[l.Link] {
			t.Errorf("%s stub = %v, want %v", l.Link, l.Stub, want[l.Link])
		}
	}

	// Vertical layouts compare horizontal separation.
	legs = []*Leg{
		{Link: "x", Source: geom.Pt(50, 100), Target: geom.Pt(60, 300)},
		{Link: "y", Source: geom.Pt(50, 100), Target: geom.Pt(400, 110)},
	}
	Stagger(legs, diagram.TopBottom, 20, 5)
	if legs[0].Link != "y" || legs[0].Stub != 20 || legs[1].Stub != 25 {
		t.Errorf("top-bottom stagger = %+v %+v", *legs[0], *legs[1])
	}
}

func TestOffset(t *testing.T) {
	h := 60.0
	for i, want := range []float64{h / 4, h / 2, 3 * h / 4} {
		if got := Offset(i, 3, h); got != want {
			t.Errorf("Offset(%d, 3) = %v, want %v", i, got, want)
		}
	}
}
