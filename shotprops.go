package trajcore

import "math"

// ShotProps is immutable for the duration of a single integration (spec.md
// §3), aside from the WindSock cursor and Atmosphere state it embeds,
// which mutate monotonically during that one integration per the caller
// contract of spec.md §5.
type ShotProps struct {
	MuzzleVelocity float64 // ft/s
	CalcStep       float64 // RK4: step in s; Euler variants: divided by max(1, relative speed) to give the step in s
	Alt0           float64 // ft, site altitude
	SightHeight    float64 // ft

	CantCosine float64
	CantSine   float64

	BarrelElevationRad float64
	BarrelAzimuthRad   float64
	LookAngleRad       float64

	Atmo      Atmosphere
	DragCurve *DragCurve
	WindSock  *WindSock
	Coriolis  *Coriolis
	WeightLb  float64

	spinDriftFactor float64
}

// NewShotProps fills in CantCosine/CantSine from a cant angle (radians),
// mirroring spec.md §3's "projection of sight height onto body axes"
// framing.
func NewShotProps(muzzleVelocity, calcStep, alt0, sightHeight, cantRad float64) ShotProps {
	s, c := math.Sincos(cantRad)
	return ShotProps{
		MuzzleVelocity: muzzleVelocity,
		CalcStep:       calcStep,
		Alt0:           alt0,
		SightHeight:    sightHeight,
		CantCosine:     c,
		CantSine:       s,
	}
}

// WithSpinDrift returns a copy of s with the empirical spin-drift cubic
// coefficient set (feet per second-cubed of flight time).
func (s ShotProps) WithSpinDrift(k float64) ShotProps {
	s.spinDriftFactor = k
	return s
}

// DragByMach exposes the shot's drag curve through the collaborator
// interface named by spec.md §6.
func (s ShotProps) DragByMach(m float64) float64 {
	return s.DragCurve.DragByMach(m)
}

// SpinDrift returns the lateral deflection (feet) due to bullet spin at
// flight time t. This is a simplified, widely used empirical model (not
// the out-of-scope research problem of fitting one from doppler radar
// data): drift grows with the cube of time, and is zero unless
// WithSpinDrift configured a coefficient.
func (s ShotProps) SpinDrift(t float64) float64 {
	if t <= 0 || s.spinDriftFactor == 0 {
		return 0
	}
	return s.spinDriftFactor * t * t * t
}
