package viz

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/stepwise/internal/analysis"
	"github.com/san-kum/stepwise/internal/experiment"
	"github.com/san-kum/stepwise/internal/physics"
)

func sweepFixture(t *testing.T) (analysis.Trajectory, *analysis.Sweep) {
	t.Helper()
	p := physics.DefaultProblem()
	ref, err := analysis.Reference(p, 0)
	if err != nil {
		t.Fatal(err)
	}
	sw := analysis.NewSweep(experiment.NewRegistry(), nil)
	if _, err := sw.Run(context.Background(), p, []string{"euler", "rk4"}, []float64{0.2, 0.1}); err != nil {
		t.Fatal(err)
	}
	return ref, sw
}

func TestLogErrors(t *testing.T) {
	xs := []float64{0, 0.1, 0.2, 0.3}
	abs := []float64{0, 1e-2, 0, 1}

	gotX, gotY := LogErrors(xs, abs)
	if len(gotX) != 3 || gotX[0] != 0.1 {
		t.Fatalf("expected first sample dropped, got %v", gotX)
	}
	want := []float64{-2, -18, 0}
	for i := range want {
		if math.Abs(gotY[i]-want[i]) > 1e-12 {
			t.Errorf("log error %d = %g, expected %g", i, gotY[i], want[i])
		}
	}

	gotX, _ = LogErrors(xs, []float64{1e-3, 1e-2, 1e-1, 1})
	if len(gotX) != 4 {
		t.Errorf("non-zero first error should be kept, got %d samples", len(gotX))
	}

	gotX, gotY = LogErrors(nil, nil)
	if len(gotX) != 0 || len(gotY) != 0 {
		t.Error("expected empty output for empty input")
	}
}

func TestResample(t *testing.T) {
	xs := []float64{0, 1, 2}
	ys := []float64{0, 10, math.Inf(1)}

	got, err := resample(xs, ys, []float64{-1, 0.5, 1, 1.5})
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 0 {
		t.Errorf("expected clamp to first value, got %g", got[0])
	}
	if math.Abs(got[1]-5) > 1e-12 || got[2] != 10 {
		t.Errorf("unexpected interpolation %v", got)
	}
	if !math.IsNaN(got[3]) {
		t.Errorf("expected infinity mapped to NaN, got %g", got[3])
	}

	if _, err := resample(nil, nil, []float64{0}); !errors.Is(err, ErrNothingToPlot) {
		t.Errorf("expected ErrNothingToPlot, got %v", err)
	}
}

func TestSolutionChart(t *testing.T) {
	ref, sw := sweepFixture(t)

	out, err := SolutionChart(ref, sw.ForStep(0.1), ChartOptions{Labels: experiment.NewRegistry()})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"exact", "Euler h=0.1", "RK4 h=0.1", "y(x), h = 0.1"} {
		if !strings.Contains(out, want) {
			t.Errorf("chart missing %q", want)
		}
	}

	if _, err := SolutionChart(analysis.Trajectory{}, nil, ChartOptions{}); !errors.Is(err, ErrNothingToPlot) {
		t.Errorf("expected ErrNothingToPlot, got %v", err)
	}
}

func TestErrorChart(t *testing.T) {
	ref, sw := sweepFixture(t)

	out, err := ErrorChart(ref, sw.Cases(), ChartOptions{Width: 40, Height: 8})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "log10 |error|") || !strings.Contains(out, "rk4 h=0.2") {
		t.Errorf("unexpected chart:\n%s", out)
	}

	if _, err := ErrorChart(ref, nil, ChartOptions{}); !errors.Is(err, ErrNothingToPlot) {
		t.Errorf("expected ErrNothingToPlot, got %v", err)
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart(nil, 5); got != "─────" {
		t.Errorf("empty sparkline = %q", got)
	}
	out := SparklineChart([]float64{1, 2, 3, 4}, 4)
	if strings.Count(out, "▁")+strings.Count(out, "█") < 2 {
		t.Errorf("expected both extremes in %q", out)
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "classic" {
		t.Error("unknown theme should fall back to classic")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names out of sync")
	}
	th := GetTheme("minimal")
	if th.series(3) != th.Series[0] {
		t.Error("series should cycle through the palette")
	}
}
