package trajcore

import (
	"fmt"
	"math"

	"github.com/gonum/floats"
)

// V3 is a three-component double-precision vector: feet, feet/second, or a
// local acceleration, depending on context.
type V3 struct {
	X, Y, Z float64
}

// NewV3 builds a V3 from three components.
func NewV3(x, y, z float64) V3 {
	return V3{x, y, z}
}

// Add returns self + other.
func (v V3) Add(other V3) V3 {
	return V3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns self - other.
func (v V3) Sub(other V3) V3 {
	return V3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns self * s.
func (v V3) Scale(s float64) V3 {
	return V3{v.X * s, v.Y * s, v.Z * s}
}

// FusedMultiplyAdd returns self + other*s, computed as a single combined
// operation the way the integrator's RK4 stage accumulation needs it.
func (v V3) FusedMultiplyAdd(other V3, s float64) V3 {
	return V3{
		X: math.FMA(other.X, s, v.X),
		Y: math.FMA(other.Y, s, v.Y),
		Z: math.FMA(other.Z, s, v.Z),
	}
}

// Norm returns the Euclidean length of v.
func (v V3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Unit returns the unit vector in the direction of v, or the zero vector if
// v is (numerically) zero.
func (v V3) Unit() V3 {
	n := v.Norm()
	if floats.EqualWithinAbs(n, 0, 1e-12) {
		return V3{}
	}
	return v.Scale(1 / n)
}

// Cross returns the cross product v × other.
func (v V3) Cross(other V3) V3 {
	return V3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Sign returns the sign of a float64, treating values within 1e-12 of zero
// as positive (matches the teacher's convention for "no direction yet").
func Sign(v float64) float64 {
	if floats.EqualWithinAbs(v, 0, 1e-12) {
		return 1
	}
	return v / math.Abs(v)
}

// Slice returns v as a []float64{x, y, z}, for interop with code that still
// deals in raw component slices.
func (v V3) Slice() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

func (v V3) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}
