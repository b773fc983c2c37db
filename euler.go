package trajcore

import "math"

// EulerIntegrator is the explicit (forward) Euler stepper of spec.md §4.3:
// velocity is advanced first, but position is advanced using the *old*
// velocity.
type EulerIntegrator struct{}

// Integrate implements Integrator.
func (EulerIntegrator) Integrate(props *ShotProps, cfg Config, rangeLimitFt float64, out *TrajectoryBuffer) TerminationReason {
	return runAdaptiveEuler(props, cfg, rangeLimitFt, out, false)
}

// EulerCromerIntegrator is the semi-implicit variant: position is advanced
// using the *new* velocity, which preserves energy far better for
// oscillatory systems and is the preferred cheap upgrade over explicit
// Euler (spec.md §4.3).
type EulerCromerIntegrator struct{}

// Integrate implements Integrator.
func (EulerCromerIntegrator) Integrate(props *ShotProps, cfg Config, rangeLimitFt float64, out *TrajectoryBuffer) TerminationReason {
	return runAdaptiveEuler(props, cfg, rangeLimitFt, out, true)
}

// runAdaptiveEuler implements the shared loop body of spec.md §4.3 for
// both explicit and semi-implicit Euler: each step's delta_time is
// calc_step / max(1, relative_speed) (adaptive), and the drop check uses
// the plain py < threshold rule the spec standardises on (the altitude
// check still requires vy <= 0).
func runAdaptiveEuler(props *ShotProps, cfg Config, rangeLimitFt float64, out *TrajectoryBuffer, semiImplicit bool) TerminationReason {
	gravity, st := preamble(props, cfg)

	for {
		_, relVel, relSpeed, mach, km := windAndDrag(props, st.pos, st.vel)
		out.Append(sampleFrom(st, mach))

		dt := props.CalcStep / math.Max(1, relSpeed)
		a := acceleration(gravity, relVel, relSpeed, km, st.vel, props.Coriolis)

		oldVel := st.vel
		st.vel = st.vel.FusedMultiplyAdd(a, dt)
		if semiImplicit {
			st.pos = st.pos.FusedMultiplyAdd(st.vel, dt)
		} else {
			st.pos = st.pos.FusedMultiplyAdd(oldVel, dt)
		}
		st.time += dt
		st.steps++

		if reason := checkTermination(cfg, st.pos, st.vel, relSpeed, st.maxDropAdj, props.Alt0, rangeLimitFt, st.steps, false); reason != Unterminated {
			_, _, _, finalMach, _ := windAndDrag(props, st.pos, st.vel)
			out.Append(sampleFrom(st, finalMach))
			return reason
		}
	}
}

func sampleFrom(st stepState, mach float64) Sample {
	return Sample{
		Time: st.time,
		PosX: st.pos.X, PosY: st.pos.Y, PosZ: st.pos.Z,
		VelX: st.vel.X, VelY: st.vel.Y, VelZ: st.vel.Z,
		Mach: mach,
	}
}
