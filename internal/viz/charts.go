package viz

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/san-kum/stepwise/internal/analysis"
)

const (
	DefaultWidth  = 60
	DefaultHeight = 15

	// Errors below this are treated as the exact zero at the initial point
	// and dropped before taking log10.
	zeroErrorFloor = 1e-18
)

var ErrNothingToPlot = errors.New("viz: nothing to plot")

// Labeler maps a method key to its display name.
type Labeler interface {
	Label(name string) string
}

type ChartOptions struct {
	Width  int
	Height int
	Theme  Theme
	Labels Labeler
}

func (o ChartOptions) withDefaults() ChartOptions {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if len(o.Theme.Series) == 0 {
		o.Theme = ThemeClassic
	}
	return o
}

func (o ChartOptions) label(method string) string {
	if o.Labels == nil {
		return method
	}
	return o.Labels.Label(method)
}

type curve struct {
	name string
	xs   []float64
	ys   []float64
}

// SolutionChart draws the analytical curve and every case, all resampled on
// a shared grid of opts.Width points over the reference span.
func SolutionChart(ref analysis.Trajectory, cases []analysis.Case, opts ChartOptions) (string, error) {
	opts = opts.withDefaults()
	if ref.Len() < 2 {
		return "", ErrNothingToPlot
	}

	curves := []curve{{name: "exact", xs: ref.X, ys: ref.Y}}
	for _, c := range cases {
		curves = append(curves, curve{
			name: fmt.Sprintf("%s h=%g", opts.label(c.Method), c.H),
			xs:   c.Trajectory.X,
			ys:   c.Trajectory.Y,
		})
	}

	caption := "y(x)"
	if len(cases) > 0 {
		caption = fmt.Sprintf("y(x), h = %g", cases[0].H)
	}
	return render(curves, ref.X[0], ref.X[ref.Len()-1], caption, opts)
}

// ErrorChart draws log10 |exact - y| for every case. The first sample is
// dropped when its error is an exact zero.
func ErrorChart(ref analysis.Trajectory, cases []analysis.Case, opts ChartOptions) (string, error) {
	opts = opts.withDefaults()
	if len(cases) == 0 || ref.Len() < 2 {
		return "", ErrNothingToPlot
	}

	curves := make([]curve, 0, len(cases))
	for _, c := range cases {
		xs, errs := LogErrors(c.Trajectory.X, c.Summary.Abs)
		if len(xs) == 0 {
			continue
		}
		curves = append(curves, curve{
			name: fmt.Sprintf("%s h=%g", opts.label(c.Method), c.H),
			xs:   xs,
			ys:   errs,
		})
	}
	if len(curves) == 0 {
		return "", ErrNothingToPlot
	}

	// Offset so the analytical color is not reused for errors.
	shifted := opts
	if len(opts.Theme.Series) > 1 {
		shifted.Theme.Series = opts.Theme.Series[1:]
	}
	return render(curves, ref.X[0], ref.X[ref.Len()-1], "log10 |error|", shifted)
}

// LogErrors returns the samples to show on a log scale: the first one is
// skipped when below the zero floor, later zeros are clamped to the floor.
func LogErrors(xs, abs []float64) ([]float64, []float64) {
	start := 0
	if len(abs) > 0 && abs[0] < zeroErrorFloor {
		start = 1
	}
	outX := make([]float64, 0, len(abs)-start)
	outY := make([]float64, 0, len(abs)-start)
	for i := start; i < len(abs) && i < len(xs); i++ {
		outX = append(outX, xs[i])
		outY = append(outY, math.Log10(math.Max(abs[i], zeroErrorFloor)))
	}
	return outX, outY
}

func render(curves []curve, lo, hi float64, caption string, opts ChartOptions) (string, error) {
	grid := floats.Span(make([]float64, opts.Width), lo, hi)

	data := make([][]float64, 0, len(curves))
	colors := make([]asciigraph.AnsiColor, 0, len(curves))
	legend := make([]string, 0, len(curves))

	for i, c := range curves {
		ys, err := resample(c.xs, c.ys, grid)
		if err != nil {
			return "", fmt.Errorf("%s: %w", c.name, err)
		}
		s := opts.Theme.series(i)
		data = append(data, ys)
		colors = append(colors, s.Chart)
		legend = append(legend, lipgloss.NewStyle().Foreground(s.Legend).Render("■ "+c.name))
	}

	chart := asciigraph.PlotMany(data,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Precision(3),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	)

	return chart + "\n" + strings.Join(legend, "  "), nil
}

// resample evaluates the piecewise-linear interpolant of (xs, ys) at grid,
// holding the end values outside [xs[0], xs[n-1]]. Infinities become NaN,
// which asciigraph draws as a gap.
func resample(xs, ys, grid []float64) ([]float64, error) {
	out := make([]float64, len(grid))
	switch len(xs) {
	case 0:
		return nil, ErrNothingToPlot
	case 1:
		for i := range out {
			out[i] = ys[0]
		}
		return finite(out), nil
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, err
	}
	for i, x := range grid {
		out[i] = pl.Predict(x)
	}
	return finite(out), nil
}

func finite(v []float64) []float64 {
	for i, y := range v {
		if math.IsInf(y, 0) {
			v[i] = math.NaN()
		}
	}
	return v
}
