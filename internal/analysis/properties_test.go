package analysis_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/stepwise/internal/analysis"
	"github.com/san-kum/stepwise/internal/dynamo"
	"github.com/san-kum/stepwise/internal/experiment"
	"github.com/san-kum/stepwise/internal/integrators"
	"github.com/san-kum/stepwise/internal/physics"
)

var _ = Describe("Euler and RK4 on the default oscillator", func() {
	var (
		p     physics.Problem
		ref   *physics.Solution
		sweep *analysis.Sweep
		steps = []float64{0.2, 0.1, 0.05}
	)

	BeforeEach(func() {
		p = physics.DefaultProblem()
		var err error
		ref, err = p.Solution()
		Expect(err).NotTo(HaveOccurred())

		sweep = analysis.NewSweep(experiment.NewRegistry(), nil)
		_, err = sweep.Run(context.Background(), p, []string{"euler", "rk4"}, steps)
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts from the exact solution", func() {
		Expect(ref.At(0)).To(Equal(0.0))
		for _, c := range sweep.Cases() {
			Expect(c.Trajectory.X[0]).To(Equal(0.0))
			Expect(c.Trajectory.Y[0]).To(Equal(0.0))
		}
	})

	It("returns n+1 samples", func() {
		c, ok := sweep.Find("euler", 0.2)
		Expect(ok).To(BeTrue())
		Expect(c.Trajectory.Len()).To(Equal(6))
	})

	DescribeTable("RK4 beats Euler",
		func(h float64) {
			e, ok := sweep.Find("euler", h)
			Expect(ok).To(BeTrue())
			r, ok := sweep.Find("rk4", h)
			Expect(ok).To(BeTrue())
			Expect(r.Summary.RMSE).To(BeNumerically("<", e.Summary.RMSE))
		},
		Entry("h=0.2", 0.2),
		Entry("h=0.1", 0.1),
		Entry("h=0.05", 0.05),
	)

	It("shrinks both errors as h shrinks", func() {
		for _, method := range []string{"euler", "rk4"} {
			prev := -1.0
			for _, h := range steps {
				c, _ := sweep.Find(method, h)
				if prev >= 0 {
					Expect(c.Summary.RMSE).To(BeNumerically("<", prev), "%s at h=%g", method, h)
				}
				prev = c.Summary.RMSE
			}
		}
	})

	It("separates the two methods at x=1 with h=0.1", func() {
		e, _ := sweep.Find("euler", 0.1)
		r, _ := sweep.Find("rk4", 0.1)

		Expect(e.Summary.FinalAbs).To(BeNumerically(">=", 1e-3))
		Expect(e.Summary.FinalAbs).To(BeNumerically("<=", 1e-1))
		Expect(r.Summary.FinalAbs * 10).To(BeNumerically("<", e.Summary.FinalAbs))
	})

	It("reduces RK4 error by roughly sixteen when h halves from 0.1", func() {
		r1, _ := sweep.Find("rk4", 0.1)
		r2, _ := sweep.Find("rk4", 0.05)
		Expect(r1.Summary.RMSE / r2.Summary.RMSE).To(BeNumerically("~", 18, 8))
	})

	DescribeTable("is deterministic",
		func(newIntegrator func() dynamo.Integrator, h float64) {
			a, err := analysis.Solve(p, newIntegrator(), h)
			Expect(err).NotTo(HaveOccurred())
			b, err := analysis.Solve(p, newIntegrator(), h)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.X).To(Equal(b.X))
			Expect(a.Y).To(Equal(b.Y))
		},
		Entry("Euler at h=0.2", func() dynamo.Integrator { return integrators.NewEuler() }, 0.2),
		Entry("Euler at h=0.05", func() dynamo.Integrator { return integrators.NewEuler() }, 0.05),
		Entry("RK4 at h=0.2", func() dynamo.Integrator { return integrators.NewRK4() }, 0.2),
		Entry("RK4 at h=0.05", func() dynamo.Integrator { return integrators.NewRK4() }, 0.05),
	)
})

var _ = Describe("Convergence in the asymptotic range", func() {
	var sweep *analysis.Sweep

	BeforeEach(func() {
		sweep = analysis.NewSweep(experiment.NewRegistry(), nil)
		_, err := sweep.Run(context.Background(), physics.DefaultProblem(), []string{"euler", "rk4"}, []float64{0.01, 0.005})
		Expect(err).NotTo(HaveOccurred())
	})

	It("halves the Euler error", func() {
		a, _ := sweep.Find("euler", 0.01)
		b, _ := sweep.Find("euler", 0.005)
		Expect(a.Summary.RMSE / b.Summary.RMSE).To(BeNumerically("~", 2, 0.2))
	})

	It("divides the RK4 error by sixteen", func() {
		a, _ := sweep.Find("rk4", 0.01)
		b, _ := sweep.Find("rk4", 0.005)
		Expect(a.Summary.RMSE / b.Summary.RMSE).To(BeNumerically("~", 16, 2))
	})
})
