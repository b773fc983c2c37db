package trajcore

import (
	"math"

	"github.com/soniakeys/meeus/globe"
)

// earthRotationRps is the sidereal rotation rate of the Earth, rad/s.
const earthRotationRps = 7.292115e-5

// Coriolis is the pure function of latitude/azimuth that produces a local
// acceleration vector given ground velocity, named by spec.md §6. It also
// owns the flat_fire_only escape hatch the integrator checks every step.
type Coriolis struct {
	// FlatFireOnly, when true, tells the integrator to skip Coriolis
	// entirely (short-range flat-fire shots where the correction is noise
	// next to measurement uncertainty).
	FlatFireOnly bool

	LatitudeRad float64 // geodetic latitude, +north
	AzimuthRad  float64 // firing azimuth, 0 = north, clockwise

	geocentricLat float64
}

// NewCoriolis converts the supplied geodetic latitude to a geocentric
// latitude using the IAU 1976 reference ellipsoid (the same correction the
// teacher applies to ground-station geodesy), since the Coriolis
// acceleration is a function of the true angle to the rotation axis, not
// the geodetic (surface-normal) latitude.
func NewCoriolis(latitudeRad, azimuthRad float64, flatFireOnly bool) *Coriolis {
	e := globe.Earth76
	tanGeocentric := math.Pow(1-e.Fl, 2) * math.Tan(latitudeRad)
	return &Coriolis{
		FlatFireOnly:  flatFireOnly,
		LatitudeRad:   latitudeRad,
		AzimuthRad:    azimuthRad,
		geocentricLat: math.Atan(tanGeocentric),
	}
}

// CoriolisAccelerationLocal returns the local Coriolis acceleration vector
// given the *inertial* ground velocity (pre-wind-subtraction — spec.md §9
// flags this as a point several drafts of the original get wrong).
// The acceleration is -2(Ω × v), with Ω resolved into the local (range,
// vertical, cross-range) frame via latitude and firing azimuth.
func (c *Coriolis) CoriolisAccelerationLocal(groundVelocity V3) V3 {
	if c.FlatFireOnly {
		return V3{}
	}
	sLat, cLat := math.Sincos(c.geocentricLat)
	sAz, cAz := math.Sincos(c.AzimuthRad)

	// Earth's rotation vector resolved into the local range/vertical/
	// cross-range frame used by the rest of the core.
	omega := V3{
		X: earthRotationRps * cLat * cAz,
		Y: earthRotationRps * sLat,
		Z: -earthRotationRps * cLat * sAz,
	}
	return omega.Cross(groundVelocity).Scale(-2)
}

// AdjustRangeFrom applies the Coriolis deflection accumulated over flight
// time t to a range vector, named by spec.md §6. This is the integrated
// (rather than instantaneous) correction some downstream consumers want
// for a quick closed-form deflection estimate instead of re-integrating.
func (c *Coriolis) AdjustRangeFrom(t float64, rangeVec V3) V3 {
	if c.FlatFireOnly || t <= 0 {
		return rangeVec
	}
	accel := c.CoriolisAccelerationLocal(rangeVec.Scale(1 / t))
	return rangeVec.FusedMultiplyAdd(accel, 0.5*t*t)
}
