package trajcore

import "math"

// point2D is one (x, y) support point for the 3-point interpolator.
type point2D struct{ x, y float64 }

// interpolate3Pt evaluates a monotone Fritsch–Carlson PCHIP through three
// support points at x, per spec.md §4.1. The three points need not arrive
// in sorted x order: sorting is the first step, and the result is invariant
// under any permutation of its inputs.
//
// Returns ValueError if any two x values coincide (within floating-point
// equality): PCHIP needs distinct abscissae to form the secant slopes, and
// this does legitimately happen at apex, where two samples straddling
// VelY=0 can share an (interpolated) Mach value.
func interpolate3Pt(p0, p1, p2 point2D, x float64) (float64, Code) {
	pts := [3]point2D{p0, p1, p2}
	// Insertion sort by x: only three elements, and it keeps the
	// permutation-invariance property easy to see by inspection.
	for i := 1; i < 3; i++ {
		for j := i; j > 0 && pts[j].x < pts[j-1].x; j-- {
			pts[j], pts[j-1] = pts[j-1], pts[j]
		}
	}
	x0, x1, x2 := pts[0].x, pts[1].x, pts[2].x
	y0, y1, y2 := pts[0].y, pts[1].y, pts[2].y

	if x0 == x1 || x1 == x2 || x0 == x2 {
		return 0, ValueError
	}

	h0 := x1 - x0
	h1 := x2 - x1
	d0 := (y1 - y0) / h0
	d1 := (y2 - y1) / h1

	var m1 float64
	if sign(d0)*sign(d1) <= 0 {
		m1 = 0
	} else {
		w1 := 2*h1 + h0
		w2 := h1 + 2*h0
		m1 = (w1 + w2) / (w1/d0 + w2/d1)
	}

	m0 := endpointSlope(h0, h1, d0, d1)
	m2 := endpointSlope(h1, h0, d1, d0)

	var xk, xk1, yk, yk1, mk, mk1 float64
	if x <= x1 {
		xk, xk1, yk, yk1, mk, mk1 = x0, x1, y0, y1, m0, m1
	} else {
		xk, xk1, yk, yk1, mk, mk1 = x1, x2, y1, y2, m1, m2
	}
	h := xk1 - xk
	t := (x - xk) / h

	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	return h00*yk + h10*mk*h + h01*yk1 + h11*mk1*h, NoError
}

// sign returns -1, 0, or 1, unlike V3's Sign helper which never returns 0;
// PCHIP's interior-slope test needs to treat an exactly-flat secant as its
// own case.
func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// endpointSlope computes the three-point one-sided endpoint derivative
// estimate and applies the Fritsch–Carlson clamp (spec.md §4.1 step 4).
// Called once for m0 (h0, h1, d0, d1) and, symmetrically, for m2 (h1, h0,
// d1, d0).
func endpointSlope(ha, hb, da, db float64) float64 {
	m := ((2*ha+hb)*da - ha*db) / (ha + hb)
	if sign(m) != sign(da) {
		return 0
	}
	if math.Abs(m) > 3*math.Abs(da) {
		return 3 * da
	}
	return m
}

// interpolateLinear is the 2-point linear fallback of spec.md §4.1,
// failing with ZeroDivision (surfaced here as ValueError, since the core
// has no distinct ZeroDivision code) when x0 == x1.
func interpolateLinear(p0, p1 point2D, x float64) (float64, Code) {
	if p0.x == p1.x {
		return 0, ValueError
	}
	return (x-p0.x)*(p1.y-p0.y)/(p1.x-p0.x) + p0.y, NoError
}
