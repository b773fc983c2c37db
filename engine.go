package trajcore

import (
	"fmt"
	"math"

	kitlog "github.com/go-kit/kit/log"
)

// IntegratorKind selects which Integrator implementation Engine.Integrate
// dispatches to, named by spec.md §4.3.
type IntegratorKind int

const (
	KindEuler IntegratorKind = iota
	KindEulerCromer
	KindRK4
)

func (k IntegratorKind) integrator() Integrator {
	switch k {
	case KindEulerCromer:
		return EulerCromerIntegrator{}
	case KindRK4:
		return RK4Integrator{}
	default:
		return EulerIntegrator{}
	}
}

// Engine is the orchestration layer of spec.md §4.6: it owns a Config, an
// Integrator selection, and an ErrorStack, and composes the raw per-step
// physics loop with the TrajectoryFilter post-pass into the public
// operations a caller actually wants (a full shot, an apex, a zero-error
// probe).
type Engine struct {
	Config Config
	Kind   IntegratorKind
	Errors ErrorStack
	Logger kitlog.Logger
}

// NewEngine returns an Engine with the supplied config and integrator kind,
// logging through logger (which may be kitlog.NewNopLogger()).
func NewEngine(cfg Config, kind IntegratorKind, logger kitlog.Logger) *Engine {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Engine{Config: cfg, Kind: kind, Logger: logger}
}

// Integrate runs the raw physics loop into a fresh TrajectoryBuffer, then
// filters it into a time-sorted []TrajectoryRecord, per spec.md §4.6's two
// pass data flow ("After integration the TrajectoryFilter scans samples").
// rangeStepFt and timeStep may each be zero to disable that emission mode;
// filterFlags selects which event types (apex, Mach, zero) to detect; the
// MRT bit is carried in the filter mask but no MRT record is ever emitted.
func (e *Engine) Integrate(props *ShotProps, rangeLimitFt, rangeStepFt, timeStep float64, filterFlags TrajFlag) ([]TrajectoryRecord, TerminationReason, error) {
	e.Errors.Reset()

	if rangeLimitFt <= 0 {
		e.Errors.Push(RangeErrorInvalidParameter, "engine", "range_limit_ft must be positive, got %g", rangeLimitFt)
		return nil, Unterminated, fmt.Errorf("trajcore: %s", RangeErrorInvalidParameter)
	}

	// These three collaborators are required by every step of the physics
	// loop (windAndDrag dereferences all of them); a nil here is a caller
	// bug, not a recoverable shot condition, so it is fatal rather than
	// pushed onto the ErrorStack.
	requireNonNil(e.Logger, props.DragCurve, "ShotProps.DragCurve")
	requireNonNil(e.Logger, props.Atmo, "ShotProps.Atmo")
	requireNonNil(e.Logger, props.WindSock, "ShotProps.WindSock")

	buf := NewTrajectoryBuffer()
	reason := e.Kind.integrator().Integrate(props, e.Config, rangeLimitFt, buf)

	e.Logger.Log("level", "info", "subsys", "engine", "message", "shot terminated", "reason", fmt.Sprintf("%d", int(reason)))

	if buf.Len() == 0 {
		e.Errors.Push(RuntimeError, "engine", "integrator produced no samples")
		return nil, reason, fmt.Errorf("trajcore: %s", RuntimeError)
	}

	initial, _ := buf.Get(0)
	filter := NewTrajectoryFilter(filterFlags, initial.Pos(), initial.Vel(), initial.Mach,
		props.BarrelElevationRad, props.LookAngleRad, rangeLimitFt, rangeStepFt, timeStep)
	for i := 0; i < buf.Len(); i++ {
		s, _ := buf.Get(i)
		filter.Record(s)
	}

	return filter.Records(), reason, nil
}

// Shoot is the convenience wrapper named by spec.md §6: fire props once at
// rangeLimitFt with range and time stepping both disabled, so the records
// are the muzzle record plus whatever events filterFlags asks the filter to
// detect (FlagRange alone adds nothing). Returns an error only on a non-benign failure
// (a RangeError_* termination is not an error — it is how every shot ends).
func (e *Engine) Shoot(props *ShotProps, rangeLimitFt float64, filterFlags TrajFlag) ([]TrajectoryRecord, error) {
	records, _, err := e.Integrate(props, rangeLimitFt, 0, 0, filterFlags)
	return records, err
}

// FindApex runs a shot with MinimumVelocity disabled and range/time limits
// widened to sentinelRange, so the only way the loop can end is by falling
// back below the apex (MaximumDrop/MinimumAltitude) — isolating the single
// ascending-to-descending velocity crossing the filter already knows how to
// flag. Restores the Engine's configuration on every exit path.
func (e *Engine) FindApex(props *ShotProps) (TrajectoryRecord, error) {
	e.Errors.Reset()

	saved := e.Config
	e.Config.MinimumVelocity = 0
	defer func() { e.Config = saved }()

	records, _, err := e.Integrate(props, sentinelRange, 0, 0, FlagApex)
	if err != nil {
		return TrajectoryRecord{}, err
	}

	for _, r := range records {
		if r.Flag&FlagApex != 0 {
			return r, nil
		}
	}

	e.Errors.Push(RuntimeError, "engine", "no apex flagged in trajectory data")
	return TrajectoryRecord{}, fmt.Errorf("trajcore: %s: no apex flagged in trajectory data", RuntimeError)
}

// errorAtDistanceSentinel is returned by ErrorAtDistance when the shot never
// reaches targetX, matching the "+Inf sentinel" convention spec.md §6 uses
// for a zero-finding iteration to recognise an unreachable target.
const errorAtDistanceSentinel = 9e9

// ErrorAtDistance fires one shot at the given barrel elevation and reports
// how far its trajectory misses a target at (targetX, targetY): positive
// means high, negative means low, the errorAtDistanceSentinel means the
// shot never reached targetX. Used by an external zero-finding loop driving
// BarrelElevationRad to convergence (spec.md §6); the loop itself is not
// this engine's concern. The loop calls this repeatedly against the same
// props, so the shared WindSock cursor is rewound before each shot (spec.md
// §5's reuse contract) rather than carrying over wherever the previous
// elevation's integration left it.
func (e *Engine) ErrorAtDistance(props *ShotProps, elevationRad, targetX, targetY float64) (float64, error) {
	shot := props.withElevation(elevationRad)
	shot.WindSock.Reset()
	buf := NewTrajectoryBuffer()
	e.Kind.integrator().Integrate(&shot, e.Config, math.Abs(targetX)+1, buf)

	if buf.Len() < 3 {
		return errorAtDistanceSentinel, nil
	}
	last, _ := buf.Get(-1)
	if last.PosX < targetX {
		return errorAtDistanceSentinel, nil
	}
	hit, code := buf.GetAt(PosX, targetX, 0)
	if code != NoError {
		return errorAtDistanceSentinel, nil
	}
	return (hit.PosY - targetY) - math.Abs(hit.PosX-targetX), nil
}

// withElevation returns a copy of props with BarrelElevationRad replaced,
// the small mutation ErrorAtDistance's zero-finding caller needs without
// exposing mutable shared state.
func (p ShotProps) withElevation(elevationRad float64) ShotProps {
	p.BarrelElevationRad = elevationRad
	return p
}
