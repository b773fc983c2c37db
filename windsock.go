package trajcore

import "math"

// WindLayer is one layer of a WindSock: a wind vector (speed and direction)
// effective from the cursor's current position up to UntilDistance feet.
type WindLayer struct {
	UntilDistance float64
	Velocity      float64 // ft/s
	DirectionRad  float64 // radians, wind "from" direction
}

// vector computes (-v sinθ, 0, -v cosθ), the convention matching the shared
// unit space the integrator subtracts wind in (spec.md §4.4).
func (w WindLayer) vector() V3 {
	s, c := math.Sincos(w.DirectionRad)
	return V3{X: -w.Velocity * s, Y: 0, Z: -w.Velocity * c}
}

// WindSock is an ordered sequence of wind layers with a monotonically
// advancing cursor, scoped to one integration (spec.md §4.4, §5).
type WindSock struct {
	layers    []WindLayer
	cursor    int
	NextRange float64
}

// NewWindSock builds a WindSock from layers already ordered by
// UntilDistance ascending. An empty slice yields a sock that always
// returns zero wind.
func NewWindSock(layers []WindLayer) *WindSock {
	w := &WindSock{layers: layers}
	if len(layers) > 0 {
		w.NextRange = layers[0].UntilDistance
	} else {
		w.NextRange = math.Inf(1)
	}
	return w
}

// CurrentVector returns the vector for the first (current cursor) layer.
func (w *WindSock) CurrentVector() V3 {
	if len(w.layers) == 0 {
		return V3{}
	}
	return w.layers[w.cursor].vector()
}

// VectorForRange advances the cursor to the first layer with
// UntilDistance > x and returns its vector, memoizing NextRange. The
// cursor never retreats within one integration.
func (w *WindSock) VectorForRange(x float64) V3 {
	if len(w.layers) == 0 {
		return V3{}
	}
	for w.cursor < len(w.layers)-1 && w.layers[w.cursor].UntilDistance <= x {
		w.cursor++
	}
	if w.layers[w.cursor].UntilDistance > x {
		w.NextRange = w.layers[w.cursor].UntilDistance
	} else {
		w.NextRange = math.Inf(1)
	}
	return w.layers[w.cursor].vector()
}

// Reset rewinds the cursor, required before reusing a WindSock (and the
// ShotProps that embeds it) for a second integration, per spec.md §5's
// caller contract.
func (w *WindSock) Reset() {
	w.cursor = 0
	if len(w.layers) > 0 {
		w.NextRange = w.layers[0].UntilDistance
	} else {
		w.NextRange = math.Inf(1)
	}
}
