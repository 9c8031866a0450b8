// Package analysis compares fixed-step integrations of a forced oscillator
// against its closed-form solution.
//
//   - [Solve]: run one integrator over a [physics.Problem] at step size h
//   - [AbsError], [RMSE], [Evaluate]: pointwise and aggregate error
//   - [Sweep]: every (method, h) pair, plus observed convergence orders
//   - [Reference]: a dense sampling of the analytical curve for plotting
//
// A typical comparison:
//
//	sw := analysis.NewSweep(experiment.NewRegistry(), logger)
//	cases, err := sw.Run(ctx, physics.DefaultProblem(), []string{"euler", "rk4"}, []float64{0.2, 0.1, 0.05})
package analysis
