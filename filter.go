package trajcore

import (
	"math"
	"sort"
)

// recordEps is the tolerance the filter uses when comparing a sample's
// position/time against a target record boundary.
const recordEps = 1e-6

// TrajectoryFilter consumes samples in order, keeps the last two prior
// samples for PCHIP interpolation, and emits a time-sorted sequence of
// flagged TrajectoryRecords (spec.md §4.5).
type TrajectoryFilter struct {
	mask TrajFlag

	lookAngleRad   float64
	cosLook        float64
	sinLook        float64
	barrelAngleRad float64

	rangeLimitFt  float64
	rangeStepFt   float64
	timeStep      float64

	nextRecordDistance float64
	rangeStepDisabled  bool
	timeOfLastRecord   float64

	prevPrev     *Sample
	prev         *Sample
	firstSampleSeen bool

	records []TrajectoryRecord
}

// NewTrajectoryFilter builds a filter, applying the pre-flight adjustments
// of spec.md §4.5 given the shot's initial position/velocity and angles.
func NewTrajectoryFilter(filterFlags TrajFlag, initialPos, initialVel V3, initialMach, barrelAngleRad, lookAngleRad, rangeLimitFt, rangeStepFt, timeStep float64) *TrajectoryFilter {
	mask := filterFlags

	if mask&FlagMach != 0 && initialMach < 1 {
		mask &^= FlagMach
	}
	if mask&FlagZero != 0 && initialPos.Y >= 0 {
		mask &^= FlagZeroUp
	}
	if initialPos.Y < 0 && barrelAngleRad <= lookAngleRad {
		mask &^= FlagZero
		mask &^= FlagMRT
	}

	cosLook, sinLook := math.Cos(lookAngleRad), math.Sin(lookAngleRad)

	return &TrajectoryFilter{
		mask:               mask,
		lookAngleRad:       lookAngleRad,
		cosLook:            cosLook,
		sinLook:            sinLook,
		barrelAngleRad:     barrelAngleRad,
		rangeLimitFt:       rangeLimitFt,
		rangeStepFt:        rangeStepFt,
		timeStep:           timeStep,
		nextRecordDistance: 0,
	}
}

// interpolable reports whether prevPrev/prev/new form a strictly
// increasing time triple usable for 3-point interpolation.
func (f *TrajectoryFilter) interpolable(new Sample) bool {
	return f.prevPrev != nil && f.prev != nil &&
		f.prevPrev.Time < f.prev.Time && f.prev.Time < new.Time
}

// Record processes one new sample in time order, per spec.md §4.5, and
// appends any emitted records via the sorted-merge rule.
func (f *TrajectoryFilter) Record(new Sample) {
	if !f.firstSampleSeen {
		f.firstSampleSeen = true
		flag := FlagNone
		if f.rangeStepFt > 0 || f.timeStep > 0 {
			flag = FlagRange
		}
		f.emit(TrajectoryRecord{Sample: new, Flag: flag})
		f.rotate(new)
		return
	}

	// Build a throwaway 3-point interpolator view over prevPrev/prev/new.
	var interp3 func(key InterpKey, v float64) (Sample, Code)
	if f.interpolable(new) {
		interp3 = func(key InterpKey, v float64) (Sample, Code) {
			return interpolateTriple(*f.prevPrev, *f.prev, new, key, v)
		}
	}

	// Range steps.
	if f.rangeStepFt > 0 && !f.rangeStepDisabled {
		for f.nextRecordDistance+f.rangeStepFt-recordEps <= new.PosX {
			recordDistance := f.nextRecordDistance + f.rangeStepFt
			if recordDistance > f.rangeLimitFt+recordEps {
				f.rangeStepDisabled = true
				break
			}
			var rec Sample
			if math.Abs(new.PosX-recordDistance) < recordEps {
				rec = new
			} else if interp3 != nil {
				s, code := interp3(PosX, recordDistance)
				if code != NoError {
					f.nextRecordDistance = recordDistance
					continue
				}
				rec = s
			} else {
				f.nextRecordDistance = recordDistance
				continue
			}
			f.emit(TrajectoryRecord{Sample: rec, Flag: FlagRange})
			f.nextRecordDistance = recordDistance
			f.timeOfLastRecord = rec.Time
		}
	}

	// Time steps.
	if f.timeStep > 0 && interp3 != nil {
		for f.timeOfLastRecord+f.timeStep-recordEps <= new.Time {
			targetTime := f.timeOfLastRecord + f.timeStep
			s, code := interp3(Time, targetTime)
			if code != NoError {
				break
			}
			f.emit(TrajectoryRecord{Sample: s, Flag: FlagRange})
			f.timeOfLastRecord = targetTime
		}
	}

	// Apex detection (one-shot).
	if f.mask&FlagApex != 0 && interp3 != nil && f.prev.VelY > 0 && new.VelY <= 0 {
		if s, code := interp3(VelY, 0); code == NoError {
			f.emit(TrajectoryRecord{Sample: s, Flag: FlagApex})
		}
		f.mask &^= FlagApex
	}

	// Mach crossing (one-shot): the projectile's own Mach ratio falling
	// through 1.0, i.e. going transonic-to-subsonic.
	if f.mask&FlagMach != 0 && interp3 != nil && f.prev.Mach >= 1 && new.Mach < 1 {
		if s, code := interp3(Mach, 1); code == NoError {
			f.emit(TrajectoryRecord{Sample: s, Flag: FlagMach})
		}
		f.mask &^= FlagMach
	}

	// Zero crossings.
	if (f.mask&FlagZeroUp != 0 || f.mask&FlagZeroDown != 0) && interp3 != nil {
		ref := new.PosX * math.Tan(f.lookAngleRad)
		if f.mask&FlagZeroUp != 0 && new.PosY >= ref {
			if s, code := interpolateTripleSlant(*f.prevPrev, *f.prev, new, f.cosLook, f.sinLook, 0); code == NoError {
				f.emit(TrajectoryRecord{Sample: s, Flag: FlagZeroUp})
			}
			f.mask &^= FlagZeroUp
		} else if f.mask&FlagZeroDown != 0 && new.PosY < ref {
			if s, code := interpolateTripleSlant(*f.prevPrev, *f.prev, new, f.cosLook, f.sinLook, 0); code == NoError {
				f.emit(TrajectoryRecord{Sample: s, Flag: FlagZeroDown})
			}
			f.mask &^= FlagZeroDown
		}
	}

	f.rotate(new)
}

func (f *TrajectoryFilter) rotate(new Sample) {
	f.prevPrev = f.prev
	ns := new
	f.prev = &ns
}

// emit inserts rec in time order, merging into an adjacent record within
// SeparateRowTimeDelta by OR-ing flags instead of inserting a duplicate
// (spec.md §3).
func (f *TrajectoryFilter) emit(rec TrajectoryRecord) {
	i := sort.Search(len(f.records), func(i int) bool { return f.records[i].Time >= rec.Time })
	if i < len(f.records) && math.Abs(f.records[i].Time-rec.Time) < SeparateRowTimeDelta {
		f.records[i].Flag |= rec.Flag
		return
	}
	if i > 0 && math.Abs(f.records[i-1].Time-rec.Time) < SeparateRowTimeDelta {
		f.records[i-1].Flag |= rec.Flag
		return
	}
	f.records = append(f.records, TrajectoryRecord{})
	copy(f.records[i+1:], f.records[i:])
	f.records[i] = rec
}

// Records returns the time-sorted records emitted so far.
func (f *TrajectoryFilter) Records() []TrajectoryRecord {
	return f.records
}

// interpolateTriple evaluates the PCHIP-3 interpolator over three explicit
// samples (rather than a buffer window), used by the filter which tracks
// prevPrev/prev/new directly instead of buffer indices.
func interpolateTriple(s0, s1, s2 Sample, key InterpKey, v float64) (Sample, Code) {
	x0, x1, x2 := s0.field(key), s1.field(key), s2.field(key)
	fields := []InterpKey{Time, PosX, PosY, PosZ, VelX, VelY, VelZ, Mach}
	out := Sample{}
	for _, f := range fields {
		if f == key {
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

// interpolateTripleSlant is interpolateTriple keyed on the derived
// slant-height pseudo-key.
func interpolateTripleSlant(s0, s1, s2 Sample, cosLook, sinLook, v float64) (Sample, Code) {
	x0 := s0.SlantHeight(cosLook, sinLook)
	x1 := s1.SlantHeight(cosLook, sinLook)
	x2 := s2.SlantHeight(cosLook, sinLook)
	fields := []InterpKey{Time, PosX, PosY, PosZ, VelX, VelY, VelZ, Mach}
	out := Sample{}
	for _, f := range fields {
		y0, y1, y2 := s0.field(f), s1.field(f), s2.field(f)
		val, code := interpolate3Pt(point2D{x0, y0}, point2D{x1, y1}, point2D{x2, y2}, v)
		if code != NoError {
			return Sample{}, code
		}
		out = out.withField(f, val)
	}
	return out, NoError
}
