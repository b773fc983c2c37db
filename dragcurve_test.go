package trajcore

import "testing"

func TestNewDragCurveRejectsUnsortedInput(t *testing.T) {
	if _, code := NewDragCurve([]float64{1, 0.5}, []float64{0.3, 0.3}); code != ValueError {
		t.Fatalf("expected ValueError for non-increasing mach, got %s", code)
	}
}

func TestNewDragCurveRejectsMismatchedLengths(t *testing.T) {
	if _, code := NewDragCurve([]float64{0, 1, 2}, []float64{0.3, 0.3}); code != InputError {
		t.Fatalf("expected InputError for mismatched lengths, got %s", code)
	}
}

func TestDragByMachReproducesSamplePoints(t *testing.T) {
	mach := []float64{0, 0.8, 1.0, 1.2, 2.0, 5.0}
	cd := []float64{0.30, 0.31, 0.42, 0.38, 0.32, 0.25}
	dc, code := NewDragCurve(mach, cd)
	if code != NoError {
		t.Fatalf("NewDragCurve: %s", code)
	}
	for i, m := range mach {
		got := dc.DragByMach(m)
		if diff := got - cd[i]; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("DragByMach(%v) = %v, want %v", m, got, cd[i])
		}
	}
}

func TestDragByMachClampsOutOfRange(t *testing.T) {
	dc := ConstantDragCurve(0.3)
	if got := dc.DragByMach(-5); got != 0.3 {
		t.Fatalf("DragByMach(-5) = %v, want 0.3 (clamped below range)", got)
	}
	if got := dc.DragByMach(100); got != 0.3 {
		t.Fatalf("DragByMach(100) = %v, want 0.3 (clamped above range)", got)
	}
}

func TestConstantDragCurveIsFlat(t *testing.T) {
	dc := ConstantDragCurve(0.275)
	for _, m := range []float64{0, 1, 2, 5, 9} {
		if got := dc.DragByMach(m); got != 0.275 {
			t.Fatalf("DragByMach(%v) = %v, want 0.275", m, got)
		}
	}
}
