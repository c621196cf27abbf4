package geom

// Bezier evaluates the Bezier curve with the given control points at t using
// the Bernstein basis. It returns the zero Point for an empty control polygon.
func Bezier(t float64, pts ...Point) Point {
	n := len(pts) - 1
	if n < 0 {
		return Point{}
	}
	var out Point
	u := 1 - t
	for i, p := range pts {
		b := float64(binomial(n, i)) * pow(t, i) * pow(u, n-i)
		out.X += b * p.X
		out.Y += b * p.Y
	}
	return out
}

// DeCasteljau evaluates the same curve as Bezier by repeated interpolation.
// It is numerically steadier for high degrees and is used to cross-check.
func DeCasteljau(t float64, pts ...Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	work := append([]Point(nil), pts...)
	for k := len(work) - 1; k > 0; k-- {
		for i := 0; i < k; i++ {
			work[i] = Point{
				X: work[i].X + (work[i+1].X-work[i].X)*t,
				Y: work[i].Y + (work[i+1].Y-work[i].Y)*t,
			}
		}
	}
	return work[0]
}

func binomial(n, k int) int {
	r := 1
	for i := 1; i <= k; i++ {
		r = r * (n - k + i) / i
	}
	return r
}

func pow(x float64, n int) float64 {
	r := 1.0
	for ; n > 0; n-- {
		r *= x
	}
	return r
}
