package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/stepwise/internal/dynamo"
)

const (
	DefaultMass      = 0.2
	DefaultDamping   = 2.0
	DefaultStiffness = 20.0
	DefaultAmplitude = 10.0
	DefaultFrequency = 2.0
)

// ForcedOscillator is m*y'' + c*y' + k*y = F*sin(w*x) written as the
// first-order system (y, z)' = (z, g(x, y, z)).
type ForcedOscillator struct {
	Mass      float64
	Damping   float64
	Stiffness float64
	Amplitude float64
	Frequency float64
}

func NewForcedOscillator() *ForcedOscillator {
	return &ForcedOscillator{
		Mass:      DefaultMass,
		Damping:   DefaultDamping,
		Stiffness: DefaultStiffness,
		Amplitude: DefaultAmplitude,
		Frequency: DefaultFrequency,
	}
}

func (o *ForcedOscillator) StateDim() int { return 2 }

// DY is dy/dx.
func (o *ForcedOscillator) DY(x, y, z float64) float64 {
	return z
}

// DZ is dz/dx = (F*sin(w*x) - c*z - k*y) / m.
func (o *ForcedOscillator) DZ(x, y, z float64) float64 {
	return (o.Amplitude*math.Sin(o.Frequency*x) - o.Damping*z - o.Stiffness*y) / o.Mass
}

func (o *ForcedOscillator) Derive(s dynamo.State, t float64) dynamo.State {
	y, z := s[0], s[1]
	return dynamo.State{o.DY(t, y, z), o.DZ(t, y, z)}
}

// NaturalFrequency is sqrt(k/m).
func (o *ForcedOscillator) NaturalFrequency() float64 {
	return math.Sqrt(o.Stiffness / o.Mass)
}

// DampingRatio is c / (2*sqrt(k*m)).
func (o *ForcedOscillator) DampingRatio() float64 {
	return o.Damping / (2 * math.Sqrt(o.Stiffness*o.Mass))
}

func (o *ForcedOscillator) Params() map[string]float64 {
	return map[string]float64{
		"mass":      o.Mass,
		"damping":   o.Damping,
		"stiffness": o.Stiffness,
		"amplitude": o.Amplitude,
		"frequency": o.Frequency,
	}
}

func (o *ForcedOscillator) SetParam(name string, v float64) error {
	switch name {
	case "mass":
		if v <= 0 {
			return fmt.Errorf("%w: mass must be positive, got %g", ErrParameterBounds, v)
		}
		o.Mass = v
	case "damping":
		o.Damping = v
	case "stiffness":
		o.Stiffness = v
	case "amplitude":
		o.Amplitude = v
	case "frequency":
		o.Frequency = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return nil
}
