package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/san-kum/stepwise/internal/dynamo"
	"github.com/san-kum/stepwise/internal/metrics"
	"github.com/san-kum/stepwise/internal/physics"
)

var ErrNoCases = errors.New("analysis: sweep needs at least one method and one step size")

// IntegratorSource hands out a fresh integrator per name.
type IntegratorSource interface {
	GetIntegrator(name string) (dynamo.Integrator, error)
}

type Case struct {
	Method     string
	H          float64
	Steps      int
	Trajectory Trajectory
	Summary    Summary
}

// Order is the observed convergence order between two consecutive step sizes
// of one method: P = ln(e1/e2) / ln(h1/h2), with e the RMSE.
type Order struct {
	Method string
	H1     float64
	H2     float64
	Ratio  float64
	P      float64
}

type Sweep struct {
	source  IntegratorSource
	logger  *zap.Logger
	strict  bool
	metrics func() []metrics.Metric

	methods []string
	steps   []float64
	cases   []Case
}

type SweepOption func(*Sweep)

// WithStrict makes every run stop at the first non-finite state.
func WithStrict(strict bool) SweepOption {
	return func(s *Sweep) { s.strict = strict }
}

// WithMetrics sets a factory for the extra metrics evaluated per case.
func WithMetrics(fn func() []metrics.Metric) SweepOption {
	return func(s *Sweep) { s.metrics = fn }
}

func NewSweep(source IntegratorSource, logger *zap.Logger, opts ...SweepOption) *Sweep {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Sweep{source: source, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run solves p for every method and step size, method-major, each with its
// own integrator instance. Previous results are replaced.
func (s *Sweep) Run(ctx context.Context, p physics.Problem, methods []string, steps []float64) ([]Case, error) {
	if len(methods) == 0 || len(steps) == 0 {
		return nil, ErrNoCases
	}
	ref, err := p.Solution()
	if err != nil {
		return nil, fmt.Errorf("analytical reference: %w", err)
	}

	cases := make([]Case, 0, len(methods)*len(steps))
	for _, method := range methods {
		for _, h := range steps {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, err)
			}

			c, err := s.runCase(ctx, p, ref, method, h)
			if err != nil {
				return nil, err
			}
			cases = append(cases, c)
		}
	}

	s.methods = append([]string(nil), methods...)
	s.steps = append([]float64(nil), steps...)
	s.cases = cases

	return cases, nil
}

func (s *Sweep) runCase(ctx context.Context, p physics.Problem, ref *physics.Solution, method string, h float64) (Case, error) {
	integ, err := s.source.GetIntegrator(method)
	if err != nil {
		return Case{}, err
	}

	var tr Trajectory
	if s.strict {
		tr, err = SolveStrict(ctx, p, integ, h)
	} else {
		tr, err = Solve(p, integ, h)
	}
	if err != nil {
		return Case{}, fmt.Errorf("%s: %w", method, err)
	}

	var extra []metrics.Metric
	if s.metrics != nil {
		extra = s.metrics()
	}
	sum := Evaluate(tr, ref, extra...)

	s.logger.Debug("case solved",
		zap.String("method", method),
		zap.Float64("h", h),
		zap.Int("steps", tr.Len()-1),
		zap.Float64("rmse", sum.RMSE),
		zap.Float64("final_abs", sum.FinalAbs),
	)

	return Case{
		Method:     method,
		H:          h,
		Steps:      tr.Len() - 1,
		Trajectory: tr,
		Summary:    sum,
	}, nil
}

func (s *Sweep) Cases() []Case { return s.cases }

func (s *Sweep) Methods() []string { return s.methods }

func (s *Sweep) StepSizes() []float64 { return s.steps }

// Find returns the case for method at step size h.
func (s *Sweep) Find(method string, h float64) (Case, bool) {
	for _, c := range s.cases {
		if c.Method == method && sameStep(c.H, h) {
			return c, true
		}
	}
	return Case{}, false
}

// ForStep returns all cases at step size h in method order.
func (s *Sweep) ForStep(h float64) []Case {
	var out []Case
	for _, c := range s.cases {
		if sameStep(c.H, h) {
			out = append(out, c)
		}
	}
	return out
}

// Orders pairs each step size with the next one in sweep order. A zero or
// non-finite error yields P = NaN.
func (s *Sweep) Orders() []Order {
	var out []Order
	for _, method := range s.methods {
		for i := 0; i+1 < len(s.steps); i++ {
			c1, ok1 := s.Find(method, s.steps[i])
			c2, ok2 := s.Find(method, s.steps[i+1])
			if !ok1 || !ok2 {
				continue
			}
			out = append(out, observedOrder(method, c1.H, c2.H, c1.Summary.RMSE, c2.Summary.RMSE))
		}
	}
	return out
}

func observedOrder(method string, h1, h2, e1, e2 float64) Order {
	o := Order{Method: method, H1: h1, H2: h2, Ratio: math.NaN(), P: math.NaN()}
	if e2 == 0 || h1 == h2 || math.IsNaN(e1) || math.IsNaN(e2) || math.IsInf(e1, 0) || math.IsInf(e2, 0) {
		return o
	}
	o.Ratio = e1 / e2
	o.P = math.Log(o.Ratio) / math.Log(h1/h2)
	return o
}

func sameStep(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12*math.Max(math.Abs(a), math.Abs(b))
}
