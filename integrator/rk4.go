package integrator

// RK4 is a classical fourth-order Runge-Kutta integrator over an arbitrary
// []float64 state vector.
type RK4 struct {
	X0         float64    // The initial x0 (typically time).
	StepSize   float64    // The fixed step size.
	Integrable Integrable // What is to be integrated.
}

// NewRK4 returns a new RK4 integrator instance.
func NewRK4(x0, stepSize float64, inte Integrable) *RK4 {
	if stepSize <= 0 {
		panic("integrator: StepSize must be positive")
	}
	if inte == nil {
		panic("integrator: Integrable may not be nil")
	}
	return &RK4{X0: x0, StepSize: stepSize, Integrable: inte}
}

// Solve runs the configured RK4 loop until Stop reports done. Returns the
// number of iterations performed and the final x (time).
func (r *RK4) Solve() (uint64, float64) {
	const (
		half     = 0.5
		oneSixth = 1.0 / 6.0
		oneThird = 1.0 / 3.0
	)

	iterNum := uint64(0)
	xi := r.X0
	for !r.Integrable.Stop(iterNum) {
		halfStep := r.StepSize * half
		state := r.Integrable.GetState()
		n := len(state)
		newState := make([]float64, n)
		k1 := make([]float64, n)
		k2 := make([]float64, n)
		k3 := make([]float64, n)
		k4 := make([]float64, n)
		tState := make([]float64, n)

		for i, y := range r.Integrable.Func(xi, state) {
			k1[i] = y * r.StepSize
			tState[i] = state[i] + k1[i]*half
		}
		for i, y := range r.Integrable.Func(xi+halfStep, tState) {
			k2[i] = y * r.StepSize
			tState[i] = state[i] + k2[i]*half
		}
		for i, y := range r.Integrable.Func(xi+halfStep, tState) {
			k3[i] = y * r.StepSize
			tState[i] = state[i] + k3[i]
		}
		for i, y := range r.Integrable.Func(xi+r.StepSize, tState) {
			k4[i] = y * r.StepSize
			newState[i] = state[i] + oneSixth*(k1[i]+k4[i]) + oneThird*(k2[i]+k3[i])
		}
		r.Integrable.SetState(iterNum, newState)

		xi += r.StepSize
		iterNum++
	}

	return iterNum, xi
}
