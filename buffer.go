package trajcore

import "math"

// bufferInitialCapacity is the capacity granted on first growth; it then
// doubles, matching spec.md §3's ownership invariant.
const bufferInitialCapacity = 64

// TrajectoryBuffer is a dense, growable sequence of Samples, produced in
// strictly increasing time order by an Integrator. It exclusively owns its
// backing storage.
type TrajectoryBuffer struct {
	data []Sample
}

// NewTrajectoryBuffer returns an empty buffer. Capacity is not reserved
// until the first Append, matching the teacher's lazy-allocate-on-growth
// convention for slice-backed buffers.
func NewTrajectoryBuffer() *TrajectoryBuffer {
	return &TrajectoryBuffer{}
}

// Append adds a sample to the end of the buffer. Amortized O(1): the first
// growth reserves 64 samples and every later growth doubles the capacity,
// so a typical few-hundred-sample shot allocates at most a handful of times.
func (b *TrajectoryBuffer) Append(s Sample) {
	if len(b.data) == cap(b.data) {
		newCap := bufferInitialCapacity
		if cap(b.data) > 0 {
			newCap = 2 * cap(b.data)
		}
		grown := make([]Sample, len(b.data), newCap)
		copy(grown, b.data)
		b.data = grown
	}
	b.data = append(b.data, s)
}

// Len returns the number of samples held.
func (b *TrajectoryBuffer) Len() int {
	return len(b.data)
}

// Get returns the sample at idx, with Python-style negative indexing:
// idx < 0 is translated to idx+Len() before bounds are checked. Returns
// IndexError if the (translated) index is still out of bounds.
func (b *TrajectoryBuffer) Get(idx int) (Sample, Code) {
	n := len(b.data)
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return Sample{}, IndexError
	}
	return b.data[idx], NoError
}

// keyOf reads Sample field key, or the slant-height pseudo-key when
// cosSin is non-nil.
func keyOf(s Sample, key InterpKey, cosSin *[2]float64) float64 {
	if cosSin != nil {
		return s.SlantHeight(cosSin[0], cosSin[1])
	}
	return s.field(key)
}

// BisectCenter performs the binary search of spec.md §4.2: it inspects
// buf[0] and buf[n-1] to decide whether key is ascending or descending
// across the buffer, then returns a center index clamped to [1, n-2] so
// the caller always has a usable 3-point interpolation window.
func (b *TrajectoryBuffer) BisectCenter(key InterpKey, v float64) (int, Code) {
	return b.bisectCenterKeyed(key, nil, v)
}

// BisectCenterSlant is BisectCenter's parallel for the slant-height
// pseudo-key.
func (b *TrajectoryBuffer) BisectCenterSlant(cosLook, sinLook, v float64) (int, Code) {
	cs := [2]float64{cosLook, sinLook}
	return b.bisectCenterKeyed(Time /* unused when cosSin != nil */, &cs, v)
}

func (b *TrajectoryBuffer) bisectCenterKeyed(key InterpKey, cosSin *[2]float64, v float64) (int, Code) {
	n := len(b.data)
	if n < 3 {
		return 0, ValueError
	}
	ascending := keyOf(b.data[0], key, cosSin) <= keyOf(b.data[n-1], key, cosSin)

	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		midVal := keyOf(b.data[mid], key, cosSin)
		if (ascending && midVal < v) || (!ascending && midVal > v) {
			lo = mid
		} else {
			hi = mid
		}
	}
	center := hi
	if center < 1 {
		center = 1
	}
	if center > n-2 {
		center = n - 2
	}
	return center, NoError
}

// InterpolateAt uses buf[center-1 .. center+1] as PCHIP-3 support points,
// reading `key` as the independent variable for every other field, and
// evaluating each at v. When key is Time or Mach the output field is set
// to v directly (identity), per spec.md §4.2.
func (b *TrajectoryBuffer) InterpolateAt(center int, key InterpKey, v float64) (Sample, Code) {
	return b.interpolateAtKeyed(center, key, nil, v)
}

func (b *TrajectoryBuffer) interpolateAtKeyed(center int, key InterpKey, cosSin *[2]float64, v float64) (Sample, Code) {
	n := len(b.data)
	if n < 3 {
		return Sample{}, ValueError
	}
	if center < 1 {
		center = 1
	}
	if center > n-2 {
		center = n - 2
	}
	s0, s1, s2 := b.data[center-1], b.data[center], b.data[center+1]
	x0, x1, x2 := keyOf(s0, key, cosSin), keyOf(s1, key, cosSin), keyOf(s2, key, cosSin)

	fields := []InterpKey{Time, PosX, PosY, PosZ, VelX, VelY, VelZ, Mach}
	out := Sample{}
	for _, f := range fields {
		if cosSin == nil && (f == key) {
			out = out.withField(f, v)
			continue
		}
		y0, y1, y2 := s0.field(f), s1.field(f), s2.field(f)
		val, code := interpolate3Pt(point2D{x0, y0}, point2D{x1, y1}, point2D{x2, y2}, v)
		if code != NoError {
			return Sample{}, code
		}
		out = out.withField(f, val)
	}
	return out, NoError
}

// GetAt implements spec.md §4.2's get_at: an optional forward/backward
// bracket scan from startFromTime, falling back to BisectCenter, then an
// exact-match fast path, then 3-point interpolation.
func (b *TrajectoryBuffer) GetAt(key InterpKey, v float64, startFromTime float64) (Sample, Code) {
	n := len(b.data)
	if n == 0 {
		return Sample{}, InputError
	}
	if n < 3 {
		return Sample{}, ValueError
	}
	if !key.Valid() {
		return Sample{}, KeyError
	}

	var target int
	found := false
	if startFromTime > 0 && key != Time {
		target, found = b.scanBracket(key, v, startFromTime)
	}
	if !found {
		c, code := b.BisectCenter(key, v)
		if code != NoError {
			return Sample{}, code
		}
		target = c
	}

	if target < 0 {
		target = 0
	}
	if target > n-1 {
		target = n - 1
	}
	if math.Abs(b.data[target].field(key)-v) < 1e-9 {
		return b.data[target], NoError
	}

	center := target
	if center < 1 {
		center = 1
	}
	if center > n-2 {
		center = n - 2
	}
	return b.InterpolateAt(center, key, v)
}

// scanBracket implements the forward-then-backward linear bracket search:
// starting from the first sample with time >= startFromTime, it looks for
// two adjacent samples whose key values straddle v. The upper end of the
// bracket is returned as the target index.
func (b *TrajectoryBuffer) scanBracket(key InterpKey, v, startFromTime float64) (int, bool) {
	n := len(b.data)
	start := 0
	for start < n && b.data[start].Time < startFromTime {
		start++
	}
	if start >= n {
		start = n - 1
	}

	for i := start; i < n-1; i++ {
		a, c := b.data[i].field(key), b.data[i+1].field(key)
		if between(v, a, c) {
			return i + 1, true
		}
	}
	for i := start; i > 0; i-- {
		a, c := b.data[i-1].field(key), b.data[i].field(key)
		if between(v, a, c) {
			return i, true
		}
	}
	return 0, false
}

func between(v, a, c float64) bool {
	if a <= c {
		return v >= a && v <= c
	}
	return v >= c && v <= a
}

// GetAtSlantHeight is GetAt's parallel for the derived slant-height
// pseudo-key, keyed on (cosLook, sinLook) rather than an InterpKey.
func (b *TrajectoryBuffer) GetAtSlantHeight(cosLook, sinLook, v float64) (Sample, Code) {
	n := len(b.data)
	if n == 0 {
		return Sample{}, InputError
	}
	if n < 3 {
		return Sample{}, ValueError
	}
	center, code := b.BisectCenterSlant(cosLook, sinLook, v)
	if code != NoError {
		return Sample{}, code
	}
	if math.Abs(b.data[center].SlantHeight(cosLook, sinLook)-v) < 1e-9 {
		return b.data[center], NoError
	}
	cs := [2]float64{cosLook, sinLook}
	return b.interpolateAtKeyed(center, Time, &cs, v)
}
