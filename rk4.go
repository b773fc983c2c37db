package trajcore

import "github.com/openballistics/trajcore/integrator"

// RK4Integrator runs the teacher-adapted generic integrator.RK4 over a
// fixed 6-component state vector (px, py, pz, vx, vy, vz). RK4's higher
// order absorbs step error, so unlike Euler/Euler-Cromer it uses the
// shot's calc_step directly rather than an adaptive step (spec.md §4.3
// step 5).
type RK4Integrator struct{}

// Integrate implements Integrator.
func (RK4Integrator) Integrate(props *ShotProps, cfg Config, rangeLimitFt float64, out *TrajectoryBuffer) TerminationReason {
	gravity, st := preamble(props, cfg)

	ad := &rk4Adapter{
		props: props, cfg: cfg, gravity: gravity,
		rangeLimitFt: rangeLimitFt, out: out,
		st: st,
	}
	solver := integrator.NewRK4(0, props.CalcStep, ad)
	solver.Solve()

	// Final sample is always appended after the loop (spec.md §4.3).
	_, _, _, finalMach, _ := windAndDrag(props, ad.st.pos, ad.st.vel)
	out.Append(sampleFrom(ad.st, finalMach))
	return ad.reason
}

// rk4Adapter implements integrator.Integrable, translating the generic
// six-component state vector to/from ballistics position/velocity and
// running the shared per-macro-step side effects (wind refresh, buffer
// append, termination check) exactly once per iteration, at the
// GetState/SetState boundary rather than at every RK4 stage evaluation.
// The atmosphere is the exception: Func looks it up at each stage's
// altitude.
type rk4Adapter struct {
	props        *ShotProps
	cfg          Config
	gravity      V3
	rangeLimitFt float64
	out          *TrajectoryBuffer

	st     stepState
	wind   V3
	relVel V3
	reason TerminationReason
	done   bool
}

// GetState returns the current (px,py,pz,vx,vy,vz) state, refreshing wind
// and atmosphere for this macro-step and appending the pre-step sample to
// the buffer (spec.md §4.3 steps 1-3), which must happen once per
// iteration rather than once per RK4 stage.
func (a *rk4Adapter) GetState() []float64 {
	wind, relVel, _, mach, _ := windAndDrag(a.props, a.st.pos, a.st.vel)
	a.wind = wind
	a.relVel = relVel
	a.out.Append(sampleFrom(a.st, mach))
	return []float64{a.st.pos.X, a.st.pos.Y, a.st.pos.Z, a.st.vel.X, a.st.vel.Y, a.st.vel.Z}
}

// Func evaluates the derivative at (possibly intra-step) state s, reusing
// the wind vector cached by GetState for this macro-step (wind is not
// re-sampled between RK4 stages; density and speed of sound are looked up
// at the stage's own altitude).
func (a *rk4Adapter) Func(t float64, s []float64) []float64 {
	vel := V3{X: s[3], Y: s[4], Z: s[5]}
	relVel := vel.Sub(a.wind)
	relSpeed := relVel.Norm()

	densityRatio, machFps := a.props.Atmo.UpdateDensityFactorAndMachForAltitude(a.props.Alt0 + s[1])
	machNum := machFps
	if machNum == 0 {
		machNum = 1e-6
	}
	km := densityRatio * a.props.DragCurve.DragByMach(relSpeed/machNum)
	// Note: relSpeed/machNum here is the projectile's dimensionless Mach
	// ratio, the same quantity windAndDrag returns as "mach" for samples —
	// this intra-step evaluation never appends a Sample, so there is
	// nothing to store it in.

	acc := acceleration(a.gravity, relVel, relSpeed, km, vel, a.props.Coriolis)
	return []float64{vel.X, vel.Y, vel.Z, acc.X, acc.Y, acc.Z}
}

// SetState commits the new state, advances time, and runs the
// termination test of spec.md §4.3 step 10.
func (a *rk4Adapter) SetState(i uint64, s []float64) {
	a.st.pos = V3{X: s[0], Y: s[1], Z: s[2]}
	a.st.vel = V3{X: s[3], Y: s[4], Z: s[5]}
	a.st.time += a.props.CalcStep
	a.st.steps++

	relSpeed := a.st.vel.Sub(a.wind).Norm()
	reason := checkTermination(a.cfg, a.st.pos, a.st.vel, relSpeed, a.st.maxDropAdj, a.props.Alt0, a.rangeLimitFt, a.st.steps, false)
	if reason != Unterminated {
		a.reason = reason
		a.done = true
	}
}

// Stop reports whether the shot has terminated.
func (a *rk4Adapter) Stop(i uint64) bool {
	return a.done
}
