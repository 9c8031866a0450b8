package analysis

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/stepwise/internal/dynamo"
	"github.com/san-kum/stepwise/internal/integrators"
	"github.com/san-kum/stepwise/internal/metrics"
	"github.com/san-kum/stepwise/internal/physics"
)

type testSource struct{ calls int }

var errUnknown = errors.New("unknown")

func (s *testSource) GetIntegrator(name string) (dynamo.Integrator, error) {
	s.calls++
	switch name {
	case "euler":
		return integrators.NewEuler(), nil
	case "rk4":
		return integrators.NewRK4(), nil
	}
	return nil, errUnknown
}

func TestSweepOrderAndFreshIntegrators(t *testing.T) {
	src := &testSource{}
	sw := NewSweep(src, nil)

	steps := []float64{0.2, 0.1, 0.05}
	cases, err := sw.Run(context.Background(), physics.DefaultProblem(), []string{"euler", "rk4"}, steps)
	if err != nil {
		t.Fatal(err)
	}
	if len(cases) != 6 {
		t.Fatalf("expected 6 cases, got %d", len(cases))
	}
	if src.calls != 6 {
		t.Errorf("expected one integrator per case, got %d calls", src.calls)
	}

	for i, c := range cases {
		wantMethod := "euler"
		if i >= 3 {
			wantMethod = "rk4"
		}
		if c.Method != wantMethod || c.H != steps[i%3] {
			t.Errorf("case %d = (%s, %g), expected (%s, %g)", i, c.Method, c.H, wantMethod, steps[i%3])
		}
		if c.Steps+1 != c.Trajectory.Len() {
			t.Errorf("case %d: steps %d vs %d samples", i, c.Steps, c.Trajectory.Len())
		}
	}
}

func TestSweepFind(t *testing.T) {
	sw := NewSweep(&testSource{}, nil)
	if _, err := sw.Run(context.Background(), physics.DefaultProblem(), []string{"euler", "rk4"}, []float64{0.2, 0.1}); err != nil {
		t.Fatal(err)
	}

	c, ok := sw.Find("rk4", 0.1)
	if !ok || c.Method != "rk4" || c.H != 0.1 {
		t.Errorf("Find returned %+v, %v", c, ok)
	}
	if _, ok := sw.Find("rk4", 0.05); ok {
		t.Error("Find matched a step size that was not run")
	}
	if got := sw.ForStep(0.2); len(got) != 2 || got[0].Method != "euler" {
		t.Errorf("ForStep(0.2) = %v", got)
	}
}

func TestSweepOrders(t *testing.T) {
	sw := NewSweep(&testSource{}, nil)
	_, err := sw.Run(context.Background(), physics.DefaultProblem(), []string{"euler", "rk4"}, []float64{0.01, 0.005, 0.0025})
	if err != nil {
		t.Fatal(err)
	}

	orders := sw.Orders()
	if len(orders) != 4 {
		t.Fatalf("expected 4 orders, got %d", len(orders))
	}
	for _, o := range orders {
		switch o.Method {
		case "euler":
			if o.P < 0.9 || o.P > 1.1 {
				t.Errorf("euler order %g between %g and %g", o.P, o.H1, o.H2)
			}
		case "rk4":
			if o.P < 3.8 || o.P > 4.2 {
				t.Errorf("rk4 order %g between %g and %g", o.P, o.H1, o.H2)
			}
		}
	}
}

func TestObservedOrderDegenerate(t *testing.T) {
	o := observedOrder("x", 0.1, 0.05, 1, 0)
	if !math.IsNaN(o.P) || !math.IsNaN(o.Ratio) {
		t.Errorf("expected NaN order for zero error, got %+v", o)
	}
	o = observedOrder("x", 0.1, 0.05, 4, 1)
	if math.Abs(o.P-2) > 1e-12 {
		t.Errorf("expected order 2, got %g", o.P)
	}
}

func TestSweepErrors(t *testing.T) {
	sw := NewSweep(&testSource{}, nil)
	p := physics.DefaultProblem()

	if _, err := sw.Run(context.Background(), p, nil, []float64{0.1}); !errors.Is(err, ErrNoCases) {
		t.Errorf("expected ErrNoCases, got %v", err)
	}
	if _, err := sw.Run(context.Background(), p, []string{"midpoint"}, []float64{0.1}); !errors.Is(err, errUnknown) {
		t.Errorf("expected unknown integrator error, got %v", err)
	}
	if _, err := sw.Run(context.Background(), p, []string{"euler"}, []float64{0}); !errors.Is(err, dynamo.ErrStepSize) {
		t.Errorf("expected ErrStepSize, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := sw.Run(ctx, p, []string{"euler"}, []float64{0.1}); !errors.Is(err, dynamo.ErrContextCanceled) {
		t.Errorf("expected ErrContextCanceled, got %v", err)
	}
}

func TestSweepStrictAndMetrics(t *testing.T) {
	sw := NewSweep(&testSource{}, nil,
		WithStrict(true),
		WithMetrics(func() []metrics.Metric { return []metrics.Metric{metrics.NewRMSE()} }),
	)
	cases, err := sw.Run(context.Background(), physics.DefaultProblem(), []string{"rk4"}, []float64{0.1})
	if err != nil {
		t.Fatal(err)
	}
	s := cases[0].Summary
	if math.Abs(s.Metrics["rmse"]-s.RMSE) > 1e-12 {
		t.Errorf("metric rmse %g disagrees with %g", s.Metrics["rmse"], s.RMSE)
	}
}
