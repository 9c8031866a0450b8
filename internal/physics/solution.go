package physics

import (
	"fmt"
	"math"
)

type regime uint8

const (
	underdamped regime = iota
	critical
	overdamped
)

// Solution is the closed form of the forced oscillator for one set of
// initial conditions: a homogeneous term fixed by the characteristic roots
// plus the steady-state response A*sin(w*x) + B*cos(w*x).
type Solution struct {
	x0     float64
	w      float64
	a, b   float64
	regime regime
	alpha  float64
	beta   float64
	r1, r2 float64
	c1, c2 float64
}

func NewSolution(o ForcedOscillator, x0, y0, z0 float64) (*Solution, error) {
	if !(o.Mass > 0) {
		return nil, fmt.Errorf("%w: mass must be positive, got %g", ErrParameterBounds, o.Mass)
	}

	m, c, k, f, w := o.Mass, o.Damping, o.Stiffness, o.Amplitude, o.Frequency
	s := &Solution{x0: x0, w: w}

	if f != 0 {
		detuning := k - m*w*w
		d := detuning*detuning + (c*w)*(c*w)
		if d == 0 {
			return nil, ErrResonance
		}
		s.a = f * detuning / d
		s.b = -f * c * w / d
	}

	// Homogeneous initial conditions after removing the particular term.
	u0 := y0 - s.particular(x0)
	v0 := z0 - s.particularSlope(x0)

	s.alpha = -c / (2 * m)
	disc := k/m - s.alpha*s.alpha
	tol := 1e-12 * math.Max(math.Abs(k/m), s.alpha*s.alpha)

	switch {
	case math.Abs(disc) <= tol:
		s.regime = critical
		s.c1 = u0
		s.c2 = v0 - s.alpha*u0
	case disc > 0:
		s.regime = underdamped
		s.beta = math.Sqrt(disc)
		s.c1 = u0
		s.c2 = (v0 - s.alpha*u0) / s.beta
	default:
		s.regime = overdamped
		root := math.Sqrt(-disc)
		s.r1 = s.alpha + root
		s.r2 = s.alpha - root
		s.c2 = (v0 - s.r1*u0) / (s.r2 - s.r1)
		s.c1 = u0 - s.c2
	}

	return s, nil
}

func (s *Solution) particular(x float64) float64 {
	return s.a*math.Sin(s.w*x) + s.b*math.Cos(s.w*x)
}

func (s *Solution) particularSlope(x float64) float64 {
	return s.a*s.w*math.Cos(s.w*x) - s.b*s.w*math.Sin(s.w*x)
}

func (s *Solution) homogeneous(x float64) float64 {
	tau := x - s.x0
	switch s.regime {
	case critical:
		return math.Exp(s.alpha*tau) * (s.c1 + s.c2*tau)
	case overdamped:
		return s.c1*math.Exp(s.r1*tau) + s.c2*math.Exp(s.r2*tau)
	default:
		return math.Exp(s.alpha*tau) * (s.c1*math.Cos(s.beta*tau) + s.c2*math.Sin(s.beta*tau))
	}
}

// At returns y(x).
func (s *Solution) At(x float64) float64 {
	return s.homogeneous(x) + s.particular(x)
}

// Eval evaluates y elementwise into a new slice.
func (s *Solution) Eval(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = s.At(x)
	}
	return out
}

// SteadyState returns the coefficients of A*sin(w*x) + B*cos(w*x).
func (s *Solution) SteadyState() (a, b float64) {
	return s.a, s.b
}
