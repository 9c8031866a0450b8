package physics

import (
	"errors"
	"testing"

	"github.com/san-kum/stepwise/internal/dynamo"
)

func TestDefaultProblem(t *testing.T) {
	p := DefaultProblem()

	if p.X0 != 0 || p.Y0 != 0 || p.Z0 != 0 || p.T != 1 {
		t.Errorf("unexpected initial point %+v", p)
	}

	o := p.Oscillator
	if o.Mass != 0.2 || o.Damping != 2 || o.Stiffness != 20 || o.Amplitude != 10 || o.Frequency != 2 {
		t.Errorf("unexpected coefficients %+v", o)
	}
}

func TestProblemSteps(t *testing.T) {
	p := DefaultProblem()

	for h, want := range map[float64]int{0.2: 5, 0.1: 10, 0.05: 20} {
		n, err := p.Steps(h)
		if err != nil {
			t.Fatalf("h=%g: %v", h, err)
		}
		if n != want {
			t.Errorf("h=%g: got %d steps, want %d", h, n, want)
		}
	}

	if _, err := p.Steps(0); !errors.Is(err, dynamo.ErrStepSize) {
		t.Errorf("expected ErrStepSize, got %v", err)
	}
}

func TestProblemSystemIsCopy(t *testing.T) {
	p := DefaultProblem()
	sys := p.System()
	sys.Damping = 100

	if p.Oscillator.Damping != DefaultDamping {
		t.Error("System() exposed the problem's oscillator")
	}
}

func TestProblemInitState(t *testing.T) {
	p := DefaultProblem()
	p.Y0, p.Z0 = 0.5, -1

	x0 := p.InitState()
	if len(x0) != 2 || x0[0] != 0.5 || x0[1] != -1 {
		t.Errorf("InitState = %v", x0)
	}
}
