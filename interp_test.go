package trajcore

import (
	"math/rand"
	"testing"
)

// TestInterpolate3PtReproducesSupportPoints checks the defining property of
// any Hermite interpolant: evaluated exactly at a support point's x, it
// returns that point's y.
func TestInterpolate3PtReproducesSupportPoints(t *testing.T) {
	p0 := point2D{0, 1}
	p1 := point2D{1, 4}
	p2 := point2D{3, 2}
	for _, p := range []point2D{p0, p1, p2} {
		got, code := interpolate3Pt(p0, p1, p2, p.x)
		if code != NoError {
			t.Fatalf("interpolate3Pt(%v): %s", p.x, code)
		}
		if diff := got - p.y; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("interpolate3Pt(%v) = %v, want %v", p.x, got, p.y)
		}
	}
}

// TestInterpolate3PtPermutationInvariant checks that shuffling the three
// support points does not change the result (spec.md §4.1).
func TestInterpolate3PtPermutationInvariant(t *testing.T) {
	pts := []point2D{{0, 1}, {1, 4}, {3, 2}}
	want, code := interpolate3Pt(pts[0], pts[1], pts[2], 2.0)
	if code != NoError {
		t.Fatalf("baseline interpolate3Pt: %s", code)
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		perm := rng.Perm(3)
		got, code := interpolate3Pt(pts[perm[0]], pts[perm[1]], pts[perm[2]], 2.0)
		if code != NoError {
			t.Fatalf("permuted interpolate3Pt: %s", code)
		}
		if diff := got - want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("permutation %v changed result: got %v, want %v", perm, got, want)
		}
	}
}

// TestInterpolate3PtDuplicateAbscissa covers the apex case (spec.md §4.1
// doc comment): two x values coinciding must report ValueError, not panic
// or silently divide by zero.
func TestInterpolate3PtDuplicateAbscissa(t *testing.T) {
	_, code := interpolate3Pt(point2D{0, 1}, point2D{0, 4}, point2D{3, 2}, 1)
	if code != ValueError {
		t.Fatalf("expected ValueError for duplicate abscissae, got %s", code)
	}
}

// TestInterpolate3PtMonotoneNoOvershoot exercises the Fritsch-Carlson
// clamp: for monotone increasing data, the interpolant must not overshoot
// the data's min/max between support points.
func TestInterpolate3PtMonotoneNoOvershoot(t *testing.T) {
	p0, p1, p2 := point2D{0, 0}, point2D{1, 1}, point2D{2, 1.01}
	for x := 0.0; x <= 2.0; x += 0.05 {
		got, code := interpolate3Pt(p0, p1, p2, x)
		if code != NoError {
			t.Fatalf("interpolate3Pt(%v): %s", x, code)
		}
		if got < -1e-9 || got > 1.01+1e-9 {
			t.Fatalf("interpolate3Pt(%v) = %v overshoots [0, 1.01]", x, got)
		}
	}
}

func TestInterpolateLinear(t *testing.T) {
	got, code := interpolateLinear(point2D{0, 0}, point2D{2, 4}, 1)
	if code != NoError {
		t.Fatalf("interpolateLinear: %s", code)
	}
	if got != 2 {
		t.Fatalf("interpolateLinear(1) = %v, want 2", got)
	}
	if _, code := interpolateLinear(point2D{1, 0}, point2D{1, 4}, 1); code != ValueError {
		t.Fatalf("expected ValueError for coincident x, got %s", code)
	}
}
