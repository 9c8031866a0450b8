// Package physics provides the forced damped oscillator and its closed-form
// solution.
//
//   - [ForcedOscillator]: m*y'' + c*y' + k*y = F*sin(w*x) as a [dynamo.System]
//   - [Solution]: analytical reference y(x) for given initial conditions
//   - [Problem]: an immutable problem instance (coefficients, initial point, bound)
//
// The oscillator also implements [dynamo.Configurable] for runtime parameter
// adjustment.
//
// # Analytical Reference
//
// The reference supports underdamped, critically damped and overdamped
// coefficients. Undamped forcing at the natural frequency is rejected with
// [ErrResonance]:
//
//	sol, err := physics.DefaultProblem().Solution()
//	y := sol.At(0.5)
package physics
