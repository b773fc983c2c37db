package trajcore

import (
	"math/rand"
	"testing"

	"github.com/gonum/matrix/mat64"
	"github.com/gonum/stat/distmv"

	kitlog "github.com/go-kit/kit/log"
)

// TestShotInvariantsUnderRandomizedMuzzleConditions draws muzzle velocity
// and elevation from a multivariate normal (the same distmv.Normal the
// teacher's station noise model uses) and checks the two invariants every
// terminated shot must hold regardless of parameters (spec.md §8), on the
// records filtered with a 100 ft range step: a strictly increasing time
// series, and at least 3 records.
func TestShotInvariantsUnderRandomizedMuzzleConditions(t *testing.T) {
	mean := []float64{2700, 0.2} // muzzle velocity (fps), elevation (rad)
	cov := mat64.NewSymDense(2, []float64{
		40000, 0,
		0, 0.01,
	})
	seed := rand.New(rand.NewSource(7))
	dist, ok := distmv.NewNormal(mean, cov, seed)
	if !ok {
		t.Fatal("covariance matrix is not positive-definite")
	}

	engine := NewEngine(DefaultConfig(), KindRK4, kitlog.NewNopLogger())
	for trial := 0; trial < 10; trial++ {
		sample := dist.Rand(nil)
		mv, elevation := sample[0], sample[1]
		if mv < 500 {
			mv = 500 // stay within a physically sane muzzle velocity
		}

		props := NewShotProps(mv, 0.5, 0, 0.15, 0)
		props.BarrelElevationRad = elevation
		dc, _ := NewDragCurve([]float64{0, 0.8, 1.0, 1.2, 5}, []float64{0.3, 0.31, 0.42, 0.38, 0.28})
		props.DragCurve = dc
		props.Atmo = NewStandardAtmosphere()
		props.WindSock = NewWindSock(nil)

		records, reason, err := engine.Integrate(&props, 5000, 100, 0, FlagRange)
		if err != nil {
			t.Fatalf("trial %d (mv=%v, elevation=%v): Integrate: %v", trial, mv, elevation, err)
		}
		if reason == Unterminated {
			t.Fatalf("trial %d: integrator reported Unterminated", trial)
		}
		if len(records) < 3 {
			t.Fatalf("trial %d: expected at least 3 records, got %d", trial, len(records))
		}
		for i := 1; i < len(records); i++ {
			if records[i].Time <= records[i-1].Time {
				t.Fatalf("trial %d: time not strictly increasing at %d", trial, i)
			}
		}
	}
}
