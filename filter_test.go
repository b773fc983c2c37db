package trajcore

import "testing"

// flatFireSamples approximates a short, nearly-flat trajectory: four
// evenly spaced range records plus enough resolution near the muzzle for
// an exact range-step match at x=0 (spec.md §8 scenario 1).
func flatFireSamples() []Sample {
	return []Sample{
		{Time: 0.00, PosX: 0, PosY: 0, VelX: 1000, VelY: 0, Mach: 0.9},
		{Time: 0.05, PosX: 50, PosY: -0.2, VelX: 998, VelY: -1.6, Mach: 0.897},
		{Time: 0.10, PosX: 100, PosY: -0.8, VelX: 996, VelY: -3.2, Mach: 0.894},
		{Time: 0.15, PosX: 150, PosY: -1.8, VelX: 994, VelY: -4.8, Mach: 0.891},
		{Time: 0.20, PosX: 200, PosY: -3.2, VelX: 992, VelY: -6.4, Mach: 0.888},
		{Time: 0.25, PosX: 250, PosY: -5.0, VelX: 990, VelY: -8.0, Mach: 0.885},
		{Time: 0.30, PosX: 300, PosY: -7.2, VelX: 988, VelY: -9.6, Mach: 0.882},
	}
}

func TestFilterEmitsRangeStepRecords(t *testing.T) {
	f := NewTrajectoryFilter(FlagNone, V3{}, V3{X: 1000}, 0.9, 0, 0, 300, 100, 0)
	for _, s := range flatFireSamples() {
		f.Record(s)
	}
	recs := f.Records()
	var atSteps []float64
	for _, r := range recs {
		if r.Flag&FlagRange != 0 {
			atSteps = append(atSteps, r.PosX)
		}
	}
	want := []float64{0, 100, 200, 300}
	if len(atSteps) != len(want) {
		t.Fatalf("got %d range records %v, want positions %v", len(atSteps), atSteps, want)
	}
	for i, w := range want {
		if diff := atSteps[i] - w; diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("range record %d at x=%v, want x=%v", i, atSteps[i], w)
		}
	}
}

func TestFilterApexDetection(t *testing.T) {
	f := NewTrajectoryFilter(FlagApex, V3{}, V3{X: 900, Y: 200}, 0.9, 0.5, 0, 2000, 0, 0)
	samples := []Sample{
		{Time: 0, PosX: 0, PosY: 0, VelX: 900, VelY: 200, Mach: 0.9},
		{Time: 1, PosX: 900, PosY: 168, VelX: 900, VelY: 168, Mach: 0.85},
		{Time: 2, PosX: 1800, PosY: 104, VelX: 900, VelY: -10, Mach: 0.8},
	}
	for _, s := range samples {
		f.Record(s)
	}
	var apexCount int
	for _, r := range f.Records() {
		if r.Flag&FlagApex != 0 {
			apexCount++
			if r.VelY > 1e-6 || r.VelY < -1e-6 {
				t.Fatalf("apex record VelY = %v, want ~0", r.VelY)
			}
		}
	}
	if apexCount != 1 {
		t.Fatalf("expected exactly one apex record, got %d", apexCount)
	}
}

func TestFilterMachCrossing(t *testing.T) {
	f := NewTrajectoryFilter(FlagMach, V3{}, V3{X: 1200}, 1.0, 0, 0, 5000, 0, 0)
	samples := []Sample{
		{Time: 0, PosX: 0, VelX: 1200, Mach: 1.05},
		{Time: 1, PosX: 1100, VelX: 1100, Mach: 1.0},
		{Time: 2, PosX: 2050, VelX: 980, Mach: 0.96},
	}
	for _, s := range samples {
		f.Record(s)
	}
	var machCount int
	for _, r := range f.Records() {
		if r.Flag&FlagMach != 0 {
			machCount++
		}
	}
	if machCount != 1 {
		t.Fatalf("expected exactly one Mach-crossing record, got %d", machCount)
	}
}

// TestFilterMergesCloseRecords covers the sorted-merge law (spec.md §3):
// two records within SeparateRowTimeDelta of each other collapse into one
// row whose flag is the bitwise OR of both.
func TestFilterMergesCloseRecords(t *testing.T) {
	f := &TrajectoryFilter{}
	f.emit(TrajectoryRecord{Sample: Sample{Time: 1.0}, Flag: FlagRange})
	f.emit(TrajectoryRecord{Sample: Sample{Time: 1.0 + SeparateRowTimeDelta/2}, Flag: FlagApex})
	recs := f.Records()
	if len(recs) != 1 {
		t.Fatalf("expected records within SeparateRowTimeDelta to merge into one row, got %d", len(recs))
	}
	if recs[0].Flag != FlagRange|FlagApex {
		t.Fatalf("merged flag = %v, want RANGE|APEX", recs[0].Flag)
	}
}

// TestFilterZeroCrossings covers spec.md §8 scenario 4: a trajectory that
// starts below the line of sight, rises through it (ZERO_UP), arcs over,
// and falls back through it (ZERO_DOWN) must flag exactly one record of
// each kind, both near the sight line (slant height ~0).
func TestFilterZeroCrossings(t *testing.T) {
	const lookAngleRad = 0
	const barrelAngleRad = 0.2
	f := NewTrajectoryFilter(FlagZero, V3{Y: -2}, V3{X: 900}, 0.9, barrelAngleRad, lookAngleRad, 5000, 0, 0)
	samples := []Sample{
		{Time: 0, PosX: 0, PosY: -2, VelX: 900, Mach: 0.9},
		{Time: 1, PosX: 100, PosY: -1, VelX: 900, Mach: 0.89},
		{Time: 2, PosX: 200, PosY: 1, VelX: 900, Mach: 0.88},
		{Time: 3, PosX: 300, PosY: 2, VelX: 900, Mach: 0.87},
		{Time: 4, PosX: 400, PosY: -1, VelX: 900, Mach: 0.86},
	}
	for _, s := range samples {
		f.Record(s)
	}

	var upCount, downCount int
	for _, r := range f.Records() {
		if r.Flag&FlagZeroUp != 0 {
			upCount++
			if diff := r.SlantHeight(1, 0); diff > 1e-6 || diff < -1e-6 {
				t.Fatalf("ZERO_UP record slant height = %v, want ~0", diff)
			}
		}
		if r.Flag&FlagZeroDown != 0 {
			downCount++
			if diff := r.SlantHeight(1, 0); diff > 1e-6 || diff < -1e-6 {
				t.Fatalf("ZERO_DOWN record slant height = %v, want ~0", diff)
			}
		}
	}
	if upCount != 1 {
		t.Fatalf("expected exactly one ZERO_UP record, got %d", upCount)
	}
	if downCount != 1 {
		t.Fatalf("expected exactly one ZERO_DOWN record, got %d", downCount)
	}
}

func TestFilterKeepsDistinctRecordsSorted(t *testing.T) {
	f := &TrajectoryFilter{}
	f.emit(TrajectoryRecord{Sample: Sample{Time: 2.0}, Flag: FlagRange})
	f.emit(TrajectoryRecord{Sample: Sample{Time: 0.5}, Flag: FlagApex})
	f.emit(TrajectoryRecord{Sample: Sample{Time: 1.0}, Flag: FlagMach})
	recs := f.Records()
	if len(recs) != 3 {
		t.Fatalf("expected 3 distinct records, got %d", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Time < recs[i-1].Time {
			t.Fatalf("records not sorted by time: %v", recs)
		}
	}
}
