package physics

import (
	"fmt"

	"github.com/san-kum/stepwise/internal/dynamo"
)

const (
	DefaultX0 = 0.0
	DefaultY0 = 0.0
	DefaultZ0 = 0.0
	DefaultT  = 1.0
)

// Problem is one immutable instance: the oscillator, its initial point
// (X0, Y0, Z0) with Z0 = y'(X0), and the integration bound T.
type Problem struct {
	X0, Y0, Z0 float64
	T          float64
	Oscillator ForcedOscillator
}

func DefaultProblem() Problem {
	return Problem{
		X0:         DefaultX0,
		Y0:         DefaultY0,
		Z0:         DefaultZ0,
		T:          DefaultT,
		Oscillator: *NewForcedOscillator(),
	}
}

func (p Problem) InitState() dynamo.State {
	return dynamo.State{p.Y0, p.Z0}
}

// System returns a copy of the oscillator, so callers cannot mutate p.
func (p Problem) System() *ForcedOscillator {
	o := p.Oscillator
	return &o
}

func (p Problem) Solution() (*Solution, error) {
	return NewSolution(p.Oscillator, p.X0, p.Y0, p.Z0)
}

// Steps returns round((T - X0) / h).
func (p Problem) Steps(h float64) (int, error) {
	return dynamo.StepCount(p.X0, p.T, h)
}

func (p Problem) String() string {
	o := p.Oscillator
	return fmt.Sprintf("%g*y'' + %g*y' + %g*y = %g*sin(%g*x), y(%g)=%g, y'(%g)=%g, x in [%g, %g]",
		o.Mass, o.Damping, o.Stiffness, o.Amplitude, o.Frequency, p.X0, p.Y0, p.X0, p.Z0, p.X0, p.T)
}
