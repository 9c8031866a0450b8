package integrators

import "github.com/san-kum/stepwise/internal/dynamo"

// Euler is the explicit first-order scheme x' = x + dt*f(x, t).
// It performs no stability check.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	dx := dyn.Derive(x, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
