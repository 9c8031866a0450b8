// Package dynamo provides core simulation primitives for fixed-step ODE integration.
//
// The package defines the fundamental interfaces and types:
//
//   - [State]: vector representing system state
//   - [System]: right-hand side of a first-order system (dX/dt = f(X, t))
//   - [Integrator]: one explicit fixed-size step of a numerical scheme
//   - [Simulator]: drives an integrator over a pre-sized sample grid
//
// A second-order scalar equation y'' = g(t, y, y') is expressed as a
// two-dimensional System over the state (y, y').
//
// # Example
//
//	osc := physics.DefaultProblem().Oscillator
//	n, _ := dynamo.StepCount(0, 1, 0.1)
//	res, _ := dynamo.New(&osc, integrators.NewRK4()).Run(ctx, x0, dynamo.Config{Dt: 0.1, Steps: n})
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe, and integrators may keep scratch
// buffers between steps. Use one integrator instance per run.
package dynamo
