package metrics

import (
	"math"
	"testing"
)

func observeAll(m Metric, exact, approx []float64) {
	for i := range exact {
		m.Observe(exact[i], approx[i])
	}
}

func TestRMSE(t *testing.T) {
	m := NewRMSE()
	observeAll(m, []float64{0, 1, 2, 3}, []float64{0, 2, 0, 3})

	// errors 0, -1, 2, 0 -> sqrt(5/4)
	expected := math.Sqrt(5.0 / 4.0)
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected rmse %f, got %f", expected, m.Value())
	}
}

func TestMaxAbs(t *testing.T) {
	m := NewMaxAbs()
	observeAll(m, []float64{0, 1, 2}, []float64{0.5, -2, 2})

	if m.Value() != 3 {
		t.Errorf("expected max 3, got %f", m.Value())
	}

	m.Observe(0, math.NaN())
	if !math.IsNaN(m.Value()) {
		t.Error("NaN error should propagate into max")
	}
}

func TestFinalAbs(t *testing.T) {
	m := NewFinalAbs()
	observeAll(m, []float64{1, 1, 1}, []float64{5, 0, 1.25})

	if m.Value() != 0.25 {
		t.Errorf("expected final error 0.25, got %f", m.Value())
	}
}

func TestMetricReset(t *testing.T) {
	for _, m := range []Metric{NewRMSE(), NewMaxAbs(), NewFinalAbs()} {
		t.Run(m.Name(), func(t *testing.T) {
			m.Observe(1, 3)
			if m.Value() == 0 {
				t.Fatal("expected non-zero value")
			}

			m.Reset()
			if m.Value() != 0 {
				t.Errorf("expected zero after reset, got %f", m.Value())
			}
		})
	}
}

func TestEmptyRMSE(t *testing.T) {
	if v := NewRMSE().Value(); v != 0 {
		t.Errorf("expected 0 for no samples, got %f", v)
	}
}
