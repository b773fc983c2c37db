package trajcore

import "fmt"

// Sample is one row of the trajectory buffer: a dense state vector at a
// point in flight. Units are seconds, feet, feet/second, and Mach.
type Sample struct {
	Time float64
	PosX float64
	PosY float64
	PosZ float64
	VelX float64
	VelY float64
	VelZ float64
	Mach float64
}

// Pos returns the position components as a V3.
func (s Sample) Pos() V3 {
	return V3{s.PosX, s.PosY, s.PosZ}
}

// Vel returns the velocity components as a V3.
func (s Sample) Vel() V3 {
	return V3{s.VelX, s.VelY, s.VelZ}
}

// SlantHeight returns the projected height above the line of sight for the
// given (cos, sin) of the look angle: py·cos(look) − px·sin(look).
func (s Sample) SlantHeight(cosLook, sinLook float64) float64 {
	return s.PosY*cosLook - s.PosX*sinLook
}

// field reads the component named by key from s. Panics on an unknown key
// (callers must validate with InterpKey.Valid() first); this mirrors the
// KeyError code returned one layer up, at the buffer/filter boundary where
// an unknown key is actually reachable from caller input.
func (s Sample) field(key InterpKey) float64 {
	switch key {
	case Time:
		return s.Time
	case PosX:
		return s.PosX
	case PosY:
		return s.PosY
	case PosZ:
		return s.PosZ
	case VelX:
		return s.VelX
	case VelY:
		return s.VelY
	case VelZ:
		return s.VelZ
	case Mach:
		return s.Mach
	default:
		panic(fmt.Sprintf("trajcore: unknown InterpKey %d", int(key)))
	}
}

// withField returns a copy of s with the named component set to v. Used by
// the 3-point interpolator to write an interpolated value into the field
// that drove the lookup, and by the identity-on-Time/Mach fast path.
func (s Sample) withField(key InterpKey, v float64) Sample {
	switch key {
	case Time:
		s.Time = v
	case PosX:
		s.PosX = v
	case PosY:
		s.PosY = v
	case PosZ:
		s.PosZ = v
	case VelX:
		s.VelX = v
	case VelY:
		s.VelY = v
	case VelZ:
		s.VelZ = v
	case Mach:
		s.Mach = v
	default:
		panic(fmt.Sprintf("trajcore: unknown InterpKey %d", int(key)))
	}
	return s
}

// InterpKey names which Sample field drives a buffer lookup, bisection, or
// interpolation.
type InterpKey int

// The eight interpolation keys named by spec.md §3. SlantHeight is a
// derived pseudo-key handled by a parallel API (see buffer.go) rather than
// appearing here, since no Sample field stores it.
const (
	Time InterpKey = iota
	Mach
	PosX
	PosY
	PosZ
	VelX
	VelY
	VelZ
)

func (k InterpKey) String() string {
	switch k {
	case Time:
		return "Time"
	case Mach:
		return "Mach"
	case PosX:
		return "PosX"
	case PosY:
		return "PosY"
	case PosZ:
		return "PosZ"
	case VelX:
		return "VelX"
	case VelY:
		return "VelY"
	case VelZ:
		return "VelZ"
	default:
		return fmt.Sprintf("InterpKey(%d)", int(k))
	}
}

// Valid reports whether k names one of the eight known keys.
func (k InterpKey) Valid() bool {
	return k >= Time && k <= VelZ
}

// TrajFlag is a bitset naming why a TrajectoryRecord was emitted.
type TrajFlag uint16

const FlagNone TrajFlag = 0

const (
	FlagRange TrajFlag = 1 << iota
	FlagZeroUp
	FlagZeroDown
	FlagMach
	FlagApex
	FlagMRT
)

// FlagZero is the composite of both line-of-sight crossings.
const FlagZero = FlagZeroUp | FlagZeroDown

func (f TrajFlag) String() string {
	if f == FlagNone {
		return "NONE"
	}
	names := []struct {
		bit  TrajFlag
		name string
	}{
		{FlagRange, "RANGE"},
		{FlagZeroUp, "ZERO_UP"},
		{FlagZeroDown, "ZERO_DOWN"},
		{FlagMach, "MACH"},
		{FlagApex, "APEX"},
		{FlagMRT, "MRT"},
	}
	s := ""
	for _, n := range names {
		if f&n.bit != 0 {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	return s
}

// TrajectoryRecord is one emitted row of filter output: a Sample plus the
// reasons it was flagged.
type TrajectoryRecord struct {
	Sample
	Flag TrajFlag
}

// SeparateRowTimeDelta is the minimum time gap between two emitted records;
// closer records are merged by OR-ing their flags (spec.md §3).
const SeparateRowTimeDelta = 1e-9
