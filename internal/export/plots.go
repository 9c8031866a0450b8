package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/san-kum/stepwise/internal/analysis"
)

const (
	DefaultWidth  = 10 * vg.Inch
	DefaultHeight = 6 * vg.Inch

	// Errors at or below this are exact zeros and cannot sit on a log axis.
	zeroErrorFloor = 1e-18
)

var (
	ErrNothingToPlot = errors.New("export: nothing to plot")
	ErrFormat        = errors.New("export: unsupported image format")
)

var formats = map[string]bool{"png": true, "svg": true, "pdf": true}

type Labeler interface {
	Label(name string) string
}

type PlotOptions struct {
	Title  string
	Labels Labeler
}

func (o PlotOptions) label(method string) string {
	if o.Labels == nil {
		return method
	}
	return o.Labels.Label(method)
}

// stepStyle is the color and marker of the i-th step size, coarse first.
type stepStyle struct {
	color color.Color
	glyph draw.GlyphDrawer
}

var stepStyles = []stepStyle{
	{color.RGBA{R: 220, A: 255}, diamondGlyph{}},
	{color.RGBA{G: 160, A: 255}, draw.BoxGlyph{}},
	{color.RGBA{B: 220, A: 255}, draw.CircleGlyph{}},
	{color.RGBA{R: 255, G: 165, A: 255}, draw.PyramidGlyph{}},
	{color.RGBA{R: 128, B: 128, A: 255}, draw.CrossGlyph{}},
}

// methodDashes gives Euler dashed and RK4 dotted lines; others are solid.
var methodDashes = map[string][]vg.Length{
	"euler": {vg.Points(6), vg.Points(4)},
	"rk4":   {vg.Points(1.5), vg.Points(3)},
}

type diamondGlyph struct{}

func (diamondGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetColor(sty.Color)
	r := sty.Radius
	var p vg.Path
	p.Move(vg.Point{X: pt.X, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y})
	p.Line(vg.Point{X: pt.X, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X - r, Y: pt.Y})
	p.Close()
	c.Fill(p)
}

// stepIndex numbers the distinct step sizes in order of first appearance.
func stepIndex(cases []analysis.Case) map[float64]int {
	idx := make(map[float64]int)
	for _, c := range cases {
		if _, ok := idx[c.H]; !ok {
			idx[c.H] = len(idx)
		}
	}
	return idx
}

// points keeps the samples where keep holds; plotter rejects NaN and Inf.
func points(xs, ys []float64, keep func(y float64) bool) plotter.XYs {
	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if i >= len(ys) || math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) || !keep(ys[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	return pts
}

func keepAll(float64) bool { return true }

func addCase(p *plot.Plot, c analysis.Case, pts plotter.XYs, style stepStyle, label string) error {
	if len(pts) == 0 {
		return nil
	}
	line, scatter, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("%s h=%g: %w", c.Method, c.H, err)
	}
	line.Color = style.color
	line.Width = vg.Points(1.2)
	line.Dashes = methodDashes[c.Method]
	scatter.Color = style.color
	scatter.Shape = style.glyph
	scatter.Radius = vg.Points(3)

	p.Add(line, scatter)
	p.Legend.Add(label, line, scatter)
	return nil
}

// SolutionPlot draws the analytical curve and every case. Step sizes share a
// color and marker across methods.
func SolutionPlot(ref analysis.Trajectory, cases []analysis.Case, opts PlotOptions) (*plot.Plot, error) {
	if ref.Len() < 2 {
		return nil, ErrNothingToPlot
	}

	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = "Numerical solutions against the analytical curve"
	}
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	exact, err := plotter.NewLine(points(ref.X, ref.Y, keepAll))
	if err != nil {
		return nil, fmt.Errorf("analytical curve: %w", err)
	}
	exact.Color = color.Black
	exact.Width = vg.Points(2)
	p.Add(exact)
	p.Legend.Add("analytical", exact)

	idx := stepIndex(cases)
	for _, c := range cases {
		style := stepStyles[idx[c.H]%len(stepStyles)]
		label := fmt.Sprintf("%s h=%g", opts.label(c.Method), c.H)
		if err := addCase(p, c, points(c.Trajectory.X, c.Trajectory.Y, keepAll), style, label); err != nil {
			return nil, err
		}
	}

	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

// ErrorPlot draws |exact - y| on a log axis. Exact zeros, such as the
// initial point, are left out.
func ErrorPlot(cases []analysis.Case, opts PlotOptions) (*plot.Plot, error) {
	positive := func(v float64) bool { return v > zeroErrorFloor }

	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = "Absolute error"
	}
	p.X.Label.Text = "x"
	p.Y.Label.Text = "|exact - y|"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	idx := stepIndex(cases)
	drawn := 0
	for _, c := range cases {
		pts := points(c.Trajectory.X, c.Summary.Abs, positive)
		if len(pts) == 0 {
			continue
		}
		style := stepStyles[idx[c.H]%len(stepStyles)]
		label := fmt.Sprintf("%s h=%g", opts.label(c.Method), c.H)
		if err := addCase(p, c, pts, style, label); err != nil {
			return nil, err
		}
		drawn++
	}
	if drawn == 0 {
		return nil, ErrNothingToPlot
	}

	p.Legend.Top = true
	return p, nil
}

// FormatFromPath returns the image format implied by the file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !formats[ext] {
		return "", fmt.Errorf("%w: %q", ErrFormat, ext)
	}
	return ext, nil
}

// Write renders p in format (png, svg or pdf) to w.
func Write(w io.Writer, p *plot.Plot, format string, width, height vg.Length) error {
	if !formats[format] {
		return fmt.Errorf("%w: %q", ErrFormat, format)
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	writer, err := p.WriterTo(width, height, format)
	if err != nil {
		return fmt.Errorf("export: create %s writer: %w", format, err)
	}
	if _, err := writer.WriteTo(w); err != nil {
		return fmt.Errorf("export: write %s: %w", format, err)
	}
	return nil
}

// SaveFile writes p to path, picking the format from the extension.
func SaveFile(path string, p *plot.Plot, width, height vg.Length) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, p, format, width, height); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
