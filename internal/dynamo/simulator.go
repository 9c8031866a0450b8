package dynamo

import (
	"context"
	"fmt"
)

type Simulator struct {
	dyn        System
	integrator Integrator
}

func New(dyn System, integrator Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
	}
}

// Run advances x0 by cfg.Steps fixed steps of size cfg.Dt starting at cfg.T0.
// The result always holds StepsTaken+1 samples; on error it is truncated to
// the samples computed so far.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validate(x0, cfg); err != nil {
		return nil, err
	}

	n := cfg.Steps
	result := &Result{
		Times:  make([]float64, n+1),
		States: make([]State, n+1),
	}

	x := x0.Clone()
	t := cfg.T0
	result.Times[0] = t
	result.States[0] = x

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			result.truncate()
			return result, fmt.Errorf("%w: %w", ErrContextCanceled, ctx.Err())
		default:
		}

		newX := s.integrator.Step(s.dyn, x, t, cfg.Dt)

		if cfg.ValidateState && !newX.IsValid() {
			result.truncate()
			return result, &SimulationError{Step: i, Time: t, State: newX, Wrapped: ErrUnstable}
		}

		x = newX
		t += cfg.Dt
		result.StepsTaken++
		result.Times[i+1] = t
		result.States[i+1] = x
	}

	return result, nil
}

func (s *Simulator) validate(x0 State, cfg Config) error {
	if cfg.Steps < 1 {
		return fmt.Errorf("%w: got %d", ErrNoSteps, cfg.Steps)
	}
	if len(x0) != s.dyn.StateDim() {
		return fmt.Errorf("%w: state has %d components, system expects %d", ErrDimensionMismatch, len(x0), s.dyn.StateDim())
	}
	if cfg.ValidateState && !x0.IsValid() {
		return ErrInvalidState
	}
	return nil
}

func (r *Result) truncate() {
	r.Times = r.Times[:r.StepsTaken+1]
	r.States = r.States[:r.StepsTaken+1]
}

// Integrate is the context-free form of Run. It performs no validation, so a
// zero dt yields a static trajectory of n+1 identical samples.
func Integrate(dyn System, integ Integrator, x0 State, t0, dt float64, n int) *Result {
	if n < 0 {
		n = 0
	}
	result := &Result{
		Times:  make([]float64, n+1),
		States: make([]State, n+1),
	}

	x := x0.Clone()
	t := t0
	result.Times[0] = t
	result.States[0] = x

	for i := 0; i < n; i++ {
		x = integ.Step(dyn, x, t, dt)
		t += dt
		result.Times[i+1] = t
		result.States[i+1] = x
	}
	result.StepsTaken = n

	return result
}
