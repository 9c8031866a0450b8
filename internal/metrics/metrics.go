package metrics

import "math"

// Metric accumulates pointwise comparisons between a reference value and an
// approximation, then reports a single aggregate.
type Metric interface {
	Name() string
	Observe(exact, approx float64)
	Value() float64
	Reset()
}

type RMSE struct {
	name    string
	sumSq   float64
	samples int
}

func NewRMSE() *RMSE {
	return &RMSE{name: "rmse"}
}

func (r *RMSE) Name() string { return r.name }

func (r *RMSE) Observe(exact, approx float64) {
	d := exact - approx
	r.sumSq += d * d
	r.samples++
}

func (r *RMSE) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return math.Sqrt(r.sumSq / float64(r.samples))
}

func (r *RMSE) Reset() {
	r.sumSq = 0
	r.samples = 0
}

type MaxAbs struct {
	name string
	max  float64
}

func NewMaxAbs() *MaxAbs {
	return &MaxAbs{name: "max_abs"}
}

func (m *MaxAbs) Name() string { return m.name }

func (m *MaxAbs) Observe(exact, approx float64) {
	d := math.Abs(exact - approx)
	if d > m.max || math.IsNaN(d) {
		m.max = d
	}
}

func (m *MaxAbs) Value() float64 { return m.max }

func (m *MaxAbs) Reset() { m.max = 0 }

// FinalAbs keeps the absolute error of the most recent observation.
type FinalAbs struct {
	name string
	last float64
}

func NewFinalAbs() *FinalAbs {
	return &FinalAbs{name: "final_abs"}
}

func (f *FinalAbs) Name() string { return f.name }

func (f *FinalAbs) Observe(exact, approx float64) {
	f.last = math.Abs(exact - approx)
}

func (f *FinalAbs) Value() float64 { return f.last }

func (f *FinalAbs) Reset() { f.last = 0 }
