package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is the right-hand side of a first-order state-vector ODE.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// Configurable exposes named coefficients for runtime adjustment.
type Configurable interface {
	Params() map[string]float64
	SetParam(name string, value float64) error
}

type Config struct {
	T0            float64
	Dt            float64
	Steps         int
	ValidateState bool
}

// StepCount returns round((tEnd - t0) / dt).
func StepCount(t0, tEnd, dt float64) (int, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return 0, fmt.Errorf("%w: got %g", ErrStepSize, dt)
	}
	n := int(math.Round((tEnd - t0) / dt))
	if n < 1 {
		return 0, fmt.Errorf("%w: [%g, %g] with dt=%g", ErrNoSteps, t0, tEnd, dt)
	}
	return n, nil
}

type Result struct {
	Times      []float64
	States     []State
	StepsTaken int
}

// Component extracts coordinate i of every sample into a new slice.
func (r *Result) Component(i int) []float64 {
	out := make([]float64, len(r.States))
	for k, s := range r.States {
		if i < len(s) {
			out[k] = s[i]
		}
	}
	return out
}
