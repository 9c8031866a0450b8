package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/stepwise/internal/dynamo"
)

func TestVerletEnergyConservation(t *testing.T) {
	integ := NewVerlet()
	dyn := &simpleDynamics{}

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	for i := 0; i < 1000; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	energy := 0.5 * (x[0]*x[0] + x[1]*x[1])
	if drift := math.Abs(energy - 0.5); drift > 1e-4 {
		t.Errorf("verlet energy drift too high: %e", drift)
	}
}

func TestVerletFollowsOscillator(t *testing.T) {
	integ := NewVerlet()
	dyn := &simpleDynamics{}

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	for i := 0; i < 100; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	if math.Abs(x[0]-math.Cos(1)) > 1e-4 {
		t.Errorf("expected position %.6f, got %.6f", math.Cos(1), x[0])
	}
}
