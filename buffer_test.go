package trajcore

import "testing"

func straightLineBuffer() *TrajectoryBuffer {
	b := NewTrajectoryBuffer()
	for i := 0; i < 10; i++ {
		x := float64(i) * 100
		b.Append(Sample{
			Time: float64(i) * 0.1,
			PosX: x, PosY: 10 - float64(i),
			VelX: 1000, VelY: -10, VelZ: 0,
			Mach: 1.5 - float64(i)*0.05,
		})
	}
	return b
}

func TestBufferGetNegativeIndex(t *testing.T) {
	b := straightLineBuffer()
	last, code := b.Get(-1)
	if code != NoError {
		t.Fatalf("Get(-1): %s", code)
	}
	want, _ := b.Get(b.Len() - 1)
	if last != want {
		t.Fatalf("Get(-1) = %v, want %v", last, want)
	}
	if _, code := b.Get(-100); code != IndexError {
		t.Fatalf("expected IndexError for out-of-range negative index, got %s", code)
	}
}

func TestBufferBisectCenterAscending(t *testing.T) {
	b := straightLineBuffer()
	center, code := b.BisectCenter(PosX, 550)
	if code != NoError {
		t.Fatalf("BisectCenter: %s", code)
	}
	if center < 1 || center > b.Len()-2 {
		t.Fatalf("center %d out of usable range", center)
	}
}

// TestBufferGetAtExactMatch covers spec.md §4.2 scenario 6: a query value
// that exactly matches a stored sample's key must short-circuit to that
// sample rather than going through interpolation.
func TestBufferGetAtExactMatch(t *testing.T) {
	b := straightLineBuffer()
	want, _ := b.Get(4)
	got, code := b.GetAt(PosX, want.PosX, 0)
	if code != NoError {
		t.Fatalf("GetAt: %s", code)
	}
	if got != want {
		t.Fatalf("GetAt exact match = %v, want %v", got, want)
	}
}

func TestBufferGetAtInterpolated(t *testing.T) {
	b := straightLineBuffer()
	got, code := b.GetAt(PosX, 250, 0)
	if code != NoError {
		t.Fatalf("GetAt: %s", code)
	}
	if diff := got.PosX - 250; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("GetAt(250).PosX = %v", got.PosX)
	}
}

func TestBufferGetAtUnknownKey(t *testing.T) {
	b := straightLineBuffer()
	if _, code := b.GetAt(InterpKey(99), 1, 0); code != KeyError {
		t.Fatalf("expected KeyError for an invalid key, got %s", code)
	}
}

func TestBufferGetAtTooFewSamples(t *testing.T) {
	b := NewTrajectoryBuffer()
	b.Append(Sample{PosX: 0})
	b.Append(Sample{PosX: 1})
	if _, code := b.GetAt(PosX, 0.5, 0); code != ValueError {
		t.Fatalf("expected ValueError with fewer than 3 samples, got %s", code)
	}
}
