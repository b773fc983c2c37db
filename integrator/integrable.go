// Package integrator provides a generic, state-agnostic fixed-step RK4
// solver, adapted from the trajectory core's teacher project: a caller
// supplies a state vector and a derivative function, and the solver drives
// iterations until Stop reports done. It has no notion of ballistics,
// position, or velocity — that structure belongs to the caller's Func and
// Stop/SetState implementation.
package integrator

// Integrable defines something which can be integrated, i.e. has a state
// vector. Implementations manage their own state and termination based on
// the iteration count they are given.
type Integrable interface {
	GetState() []float64                   // Get the latest state of this integrable.
	SetState(i uint64, s []float64)        // Set the state s of a given iteration i.
	Stop(i uint64) bool                    // Return whether to stop the integration from iteration i.
	Func(t float64, s []float64) []float64 // ODE function from time t and state s, must return a new state.
}
