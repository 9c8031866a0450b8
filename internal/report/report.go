package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/stepwise/internal/analysis"
	"github.com/san-kum/stepwise/internal/physics"
	"github.com/san-kum/stepwise/internal/viz"
)

type Labeler interface {
	Label(name string) string
}

// Report is a finished sweep ready for output.
type Report struct {
	Problem physics.Problem
	Methods []string
	Steps   []float64
	Cases   []analysis.Case
	Orders  []analysis.Order

	labels Labeler
}

func New(p physics.Problem, sw *analysis.Sweep, labels Labeler) *Report {
	return &Report{
		Problem: p,
		Methods: sw.Methods(),
		Steps:   sw.StepSizes(),
		Cases:   sw.Cases(),
		Orders:  sw.Orders(),
		labels:  labels,
	}
}

func (r *Report) label(method string) string {
	if r.labels == nil {
		return method
	}
	return r.labels.Label(method)
}

func (r *Report) find(method string, h float64) (analysis.Case, bool) {
	for _, c := range r.Cases {
		if c.Method == method && c.H == h {
			return c, true
		}
	}
	return analysis.Case{}, false
}

// WriteText prints the RMSE of every method per step size followed by the
// observed orders. With styled set, headings are rendered through lipgloss.
func (r *Report) WriteText(w io.Writer, styled bool) error {
	heading := func(s string) string {
		if styled {
			return viz.HeaderStyle.Render(s)
		}
		return s
	}
	value := func(s string) string {
		if styled {
			return viz.MetricValue.Render(s)
		}
		return s
	}

	var sb strings.Builder
	sb.WriteString(heading("Root-mean-square error (RMSE)") + "\n")
	sb.WriteString(r.Problem.String() + "\n")
	osc := r.Problem.System()
	fmt.Fprintf(&sb, "natural frequency %.4g, damping ratio %.4g", osc.NaturalFrequency(), osc.DampingRatio())
	if sol, err := r.Problem.Solution(); err == nil {
		a, b := sol.SteadyState()
		w := osc.Frequency
		fmt.Fprintf(&sb, ", steady state %.4g*sin(%gx) %+.4g*cos(%gx)", a, w, b, w)
	}
	sb.WriteString("\n\n")

	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	for _, h := range r.Steps {
		fmt.Fprintf(tw, "h = %.2f:\n", h)
		for _, m := range r.Methods {
			c, ok := r.find(m, h)
			if !ok {
				continue
			}
			fmt.Fprintf(tw, "  %s\t%s\tmax %s\tat T %s\n",
				r.label(m),
				formatFloat(c.Summary.RMSE, "%.6f"),
				formatFloat(c.Summary.MaxAbs, "%.3e"),
				formatFloat(c.Summary.FinalAbs, "%.3e"),
			)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.Orders) > 0 {
		sb.WriteString("\n" + heading("Observed order") + "\n")
		tw = tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  method\th1 -> h2\tratio\torder")
		for _, o := range r.Orders {
			fmt.Fprintf(tw, "  %s\t%g -> %g\t%s\t%s\n",
				r.label(o.Method), o.H1, o.H2,
				formatFloat(o.Ratio, "%.2f"),
				value(formatFloat(o.P, "%.2f")),
			)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Render is WriteText into a string, framed in a panel when styled.
func (r *Report) Render(styled bool) string {
	var sb strings.Builder
	_ = r.WriteText(&sb, styled)
	if !styled {
		return sb.String()
	}
	return viz.GlassPanel.Render(strings.TrimRight(sb.String(), "\n"))
}

func formatFloat(v float64, format string) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "+inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return fmt.Sprintf(format, v)
}
