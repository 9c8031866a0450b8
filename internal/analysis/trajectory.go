package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/stepwise/internal/dynamo"
	"github.com/san-kum/stepwise/internal/metrics"
	"github.com/san-kum/stepwise/internal/physics"
)

// DefaultReferencePoints is the sampling density of the plotted analytical curve.
const DefaultReferencePoints = 200

var ErrTooFewPoints = errors.New("analysis: reference curve needs at least 2 points")

// Trajectory holds the x-samples and y-samples of one run. The slices are
// owned by the trajectory and never shared with another run.
type Trajectory struct {
	X []float64
	Y []float64
}

func (t Trajectory) Len() int { return len(t.X) }

func fromResult(r *dynamo.Result) Trajectory {
	xs := make([]float64, len(r.Times))
	copy(xs, r.Times)
	return Trajectory{X: xs, Y: r.Component(0)}
}

// Solve integrates p from X0 to T with round((T-X0)/h) steps of size h and
// returns the n+1 samples of y. Non-finite values are kept as computed.
func Solve(p physics.Problem, integ dynamo.Integrator, h float64) (Trajectory, error) {
	n, err := p.Steps(h)
	if err != nil {
		return Trajectory{}, err
	}
	res := dynamo.Integrate(p.System(), integ, p.InitState(), p.X0, h, n)
	return fromResult(res), nil
}

// SolveStrict is Solve through a dynamo.Simulator with state validation: it
// stops at the first NaN or Inf and honors ctx between steps.
func SolveStrict(ctx context.Context, p physics.Problem, integ dynamo.Integrator, h float64) (Trajectory, error) {
	n, err := p.Steps(h)
	if err != nil {
		return Trajectory{}, err
	}
	sim := dynamo.New(p.System(), integ)
	res, err := sim.Run(ctx, p.InitState(), dynamo.Config{
		T0:            p.X0,
		Dt:            h,
		Steps:         n,
		ValidateState: true,
	})
	if err != nil {
		return Trajectory{}, fmt.Errorf("h=%g: %w", h, err)
	}
	return fromResult(res), nil
}

// AbsError returns |exact(x_i) - y_i| for every sample, including the
// initial one.
func AbsError(tr Trajectory, ref *physics.Solution) []float64 {
	out := ref.Eval(tr.X)
	for i, y := range tr.Y {
		out[i] = math.Abs(out[i] - y)
	}
	return out
}

// RMSE is sqrt(mean((exact - y)^2)) over all samples of tr.
func RMSE(tr Trajectory, ref *physics.Solution) float64 {
	if tr.Len() == 0 {
		return 0
	}
	diff := ref.Eval(tr.X)
	floats.Sub(diff, tr.Y)
	return floats.Norm(diff, 2) / math.Sqrt(float64(len(diff)))
}

type Summary struct {
	Abs      []float64
	RMSE     float64
	MaxAbs   float64
	FinalAbs float64
	Metrics  map[string]float64
}

// Evaluate computes the pointwise error of tr and feeds every sample through
// the given metrics. Their values land in Summary.Metrics keyed by name.
func Evaluate(tr Trajectory, ref *physics.Solution, ms ...metrics.Metric) Summary {
	exact := ref.Eval(tr.X)

	maxAbs := metrics.NewMaxAbs()
	final := metrics.NewFinalAbs()
	all := append([]metrics.Metric{maxAbs, final}, ms...)
	for _, m := range all {
		m.Reset()
	}

	abs := make([]float64, len(exact))
	for i, y := range tr.Y {
		abs[i] = math.Abs(exact[i] - y)
		for _, m := range all {
			m.Observe(exact[i], y)
		}
	}

	s := Summary{
		Abs:      abs,
		RMSE:     RMSE(tr, ref),
		MaxAbs:   maxAbs.Value(),
		FinalAbs: final.Value(),
	}
	if len(ms) > 0 {
		s.Metrics = make(map[string]float64, len(ms))
		for _, m := range ms {
			s.Metrics[m.Name()] = m.Value()
		}
	}
	return s
}

// Reference samples the analytical solution at points evenly spaced x values
// over [X0, T]. points <= 0 selects DefaultReferencePoints.
func Reference(p physics.Problem, points int) (Trajectory, error) {
	if points <= 0 {
		points = DefaultReferencePoints
	}
	if points < 2 {
		return Trajectory{}, ErrTooFewPoints
	}
	sol, err := p.Solution()
	if err != nil {
		return Trajectory{}, err
	}
	xs := floats.Span(make([]float64, points), p.X0, p.T)
	return Trajectory{X: xs, Y: sol.Eval(xs)}, nil
}
