package trajcore

import "math"

// Atmosphere is the pure (altitude) -> (density_ratio, mach_fps) collaborator
// named by spec.md §6. It is an interface so that callers who already have a
// richer atmospheric model (e.g. a full ICAO standard-atmosphere table, or a
// measured sounding) can supply it; StandardAtmosphere below is a complete,
// simple implementation good enough to drive the integrator on its own.
type Atmosphere interface {
	UpdateDensityFactorAndMachForAltitude(altitudeFt float64) (densityRatio, machFps float64)
}

// AtmosphereFunc adapts a plain function to the Atmosphere interface.
type AtmosphereFunc func(altitudeFt float64) (float64, float64)

// UpdateDensityFactorAndMachForAltitude implements Atmosphere.
func (f AtmosphereFunc) UpdateDensityFactorAndMachForAltitude(altitudeFt float64) (float64, float64) {
	return f(altitudeFt)
}

// StandardAtmosphere implements the 1976 U.S. Standard Atmosphere's
// troposphere/lower-stratosphere lapse-rate model, referenced to sea-level
// values supplied at construction.
type StandardAtmosphere struct {
	SeaLevelTempR    float64 // Rankine
	SeaLevelSoundFps float64 // speed of sound at sea level, ft/s
	LapseRatePerFt   float64 // temperature lapse rate, R per ft (negative)
}

// NewStandardAtmosphere returns the ICAO standard atmosphere referenced to
// 59°F (518.67 R) and Mach 1 == 1116.45 ft/s at sea level.
func NewStandardAtmosphere() *StandardAtmosphere {
	return &StandardAtmosphere{
		SeaLevelTempR:    518.67,
		SeaLevelSoundFps: 1116.45,
		LapseRatePerFt:   -0.00356616,
	}
}

// UpdateDensityFactorAndMachForAltitude implements Atmosphere.
func (a *StandardAtmosphere) UpdateDensityFactorAndMachForAltitude(altitudeFt float64) (float64, float64) {
	tempR := a.SeaLevelTempR + a.LapseRatePerFt*altitudeFt
	if tempR < 389.97 {
		tempR = 389.97 // stratosphere floor, ~36,089 ft
	}
	densityRatio := math.Pow(tempR/a.SeaLevelTempR, 4.256)
	if tempR > a.SeaLevelTempR+a.LapseRatePerFt*altitudeFt {
		// Isothermal layer above the tropopause: density decays with scale
		// height R*T/g (R = 1716.49 ft*lbf/(slug*R), g = 32.174 ft/s^2).
		tropopauseFt := (tempR - a.SeaLevelTempR) / a.LapseRatePerFt
		densityRatio *= math.Exp(-(altitudeFt - tropopauseFt) * 32.174 / (1716.49 * tempR))
	}
	machFps := a.SeaLevelSoundFps * math.Sqrt(tempR/a.SeaLevelTempR)
	return densityRatio, machFps
}

// ConstantAtmosphere returns an Atmosphere that ignores altitude, useful
// for flat-fire test scenarios (spec.md §8 end-to-end scenario 1).
func ConstantAtmosphere(densityRatio, machFps float64) Atmosphere {
	return AtmosphereFunc(func(float64) (float64, float64) {
		return densityRatio, machFps
	})
}
