package trajcore

import "math"

// TerminationReason is returned by every Integrator and is also the code
// surfaced to the caller as a RangeError_* Code when benign.
type TerminationReason int

const (
	// Unterminated means the loop is still running; never returned by a
	// public Integrate call.
	Unterminated TerminationReason = iota
	RangeLimitReached
	MinimumVelocityReached
	MaximumDropReached
	MinimumAltitudeReached
)

// Code converts a TerminationReason to the core's stable error enumeration.
func (r TerminationReason) Code() Code {
	switch r {
	case MinimumVelocityReached:
		return RangeErrorMinimumVelocity
	case MaximumDropReached:
		return RangeErrorMaximumDrop
	case MinimumAltitudeReached:
		return RangeErrorMinimumAltitude
	default:
		return NoError
	}
}

// sentinelRange is the "infinite" range/time sentinel used by find_apex
// (spec.md §4.6), large enough never to be reached by a real shot but
// finite so downstream arithmetic stays well-defined.
const sentinelRange = 9e9

// Integrator is the shared contract of spec.md §4.3: step a shot forward
// under gravity, drag, wind, and optional Coriolis, writing samples to
// out. Range/time step and filter flags are a concern of the
// TrajectoryFilter pass that runs over the resulting buffer (see
// Engine.Integrate), not of the per-step physics loop itself.
type Integrator interface {
	Integrate(props *ShotProps, cfg Config, rangeLimitFt float64, out *TrajectoryBuffer) TerminationReason
}

// stepState is the mutable per-step working state shared by all three
// integrators: position, velocity, time, and the maximum-drop ceiling
// computed once at the start of the shot.
type stepState struct {
	pos        V3
	vel        V3
	time       float64
	maxDropAdj float64
	steps      int
}

// preamble computes the shared setup of spec.md §4.3: gravity vector,
// initial position/velocity, and the maximum-drop ceiling adjustment.
func preamble(props *ShotProps, cfg Config) (gravity V3, st stepState) {
	gravity = V3{Y: cfg.GravityConstant}

	pos := V3{
		X: 0,
		Y: -props.CantCosine * props.SightHeight,
		Z: -props.CantSine * props.SightHeight,
	}
	sE, cE := math.Sincos(props.BarrelElevationRad)
	sA, cA := math.Sincos(props.BarrelAzimuthRad)
	dir := V3{X: cE * cA, Y: sE, Z: cE * sA}
	vel := dir.Scale(props.MuzzleVelocity)

	maxDropAdj := -math.Abs(cfg.MaximumDrop) + math.Min(0, pos.Y)

	st = stepState{pos: pos, vel: vel, maxDropAdj: maxDropAdj}
	return gravity, st
}

// windAndDrag refreshes the wind layer (if the cursor needs to advance),
// looks up density/Mach at the current altitude, and returns the drag
// acceleration coefficient km along with the relative velocity used to
// compute it, per spec.md §4.3 steps 1-6. The returned mach is the
// projectile's own dimensionless Mach ratio (relSpeed / local speed of
// sound), not the speed of sound itself — this is what Sample.Mach stores
// and what the filter's Mach-crossing detector (spec.md §4.5) looks for
// crossing 1.0.
func windAndDrag(props *ShotProps, pos, vel V3) (wind V3, relVel V3, relSpeed, mach, km float64) {
	if pos.X >= props.WindSock.NextRange {
		wind = props.WindSock.VectorForRange(pos.X)
	} else {
		wind = props.WindSock.CurrentVector()
	}
	densityRatio, machFps := props.Atmo.UpdateDensityFactorAndMachForAltitude(props.Alt0 + pos.Y)

	relVel = vel.Sub(wind)
	relSpeed = relVel.Norm()

	machNum := machFps
	if machNum == 0 {
		machNum = 1e-6
	}
	mach = relSpeed / machNum
	km = densityRatio * props.DragCurve.DragByMach(mach)
	return wind, relVel, relSpeed, mach, km
}

// acceleration computes gravity - km*|relVel|*relVel, plus Coriolis of the
// *inertial* ground velocity when the shot's Coriolis model is active
// (spec.md §9: ground velocity must be pre-wind-subtraction).
func acceleration(gravity V3, relVel V3, relSpeed, km float64, groundVel V3, cor *Coriolis) V3 {
	drag := relVel.Scale(-km * relSpeed)
	a := gravity.Add(drag)
	if cor != nil && !cor.FlatFireOnly {
		a = a.Add(cor.CoriolisAccelerationLocal(groundVel))
	}
	return a
}

// checkTermination implements the priority-ordered termination tests of
// spec.md §4.3 step 10. requireVYForDrop additionally gates the drop check
// on a non-ascending trajectory; the altitude check always requires vy <= 0.
func checkTermination(cfg Config, pos, vel V3, relSpeed, maxDropAdj, alt0, rangeLimitFt float64, steps int, requireVYForDrop bool) TerminationReason {
	if relSpeed < cfg.MinimumVelocity {
		return MinimumVelocityReached
	}
	dropOK := !requireVYForDrop || vel.Y <= 0
	if pos.Y < maxDropAdj && dropOK {
		return MaximumDropReached
	}
	if alt0+pos.Y < cfg.MinimumAltitude && vel.Y <= 0 {
		return MinimumAltitudeReached
	}
	if pos.X > rangeLimitFt && steps >= 3 {
		return RangeLimitReached
	}
	return Unterminated
}
