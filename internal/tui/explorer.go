package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/stepwise/internal/analysis"
	"github.com/san-kum/stepwise/internal/dynamo"
	"github.com/san-kum/stepwise/internal/experiment"
	"github.com/san-kum/stepwise/internal/physics"
	"github.com/san-kum/stepwise/internal/viz"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

type view int

const (
	viewSolution view = iota
	viewError
)

func (v view) String() string {
	if v == viewError {
		return "error"
	}
	return "solution"
}

// paramScale is the factor applied by one +/- press.
const paramScale = 1.1

type Explorer struct {
	problem  physics.Problem
	initial  physics.Problem
	registry *experiment.Registry
	methods  []string
	steps    []float64

	sweep *analysis.Sweep
	ref   analysis.Trajectory
	err   error

	view      view
	stepIdx   int
	methodIdx int // 0 shows every method
	themeIdx  int
	params    []string
	paramIdx  int

	width  int
	height int
}

func NewExplorer(p physics.Problem, reg *experiment.Registry, methods []string, steps []float64) (*Explorer, error) {
	var coeffs dynamo.Configurable = p.System()
	params := make([]string, 0, 5)
	for name := range coeffs.Params() {
		params = append(params, name)
	}
	sort.Strings(params)

	e := &Explorer{
		problem:  p,
		initial:  p,
		registry: reg,
		methods:  methods,
		steps:    steps,
		params:   params,
		width:    80,
		height:   24,
	}
	if err := e.recompute(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Explorer) recompute() error {
	sw := analysis.NewSweep(e.registry, nil)
	if _, err := sw.Run(context.Background(), e.problem, e.methods, e.steps); err != nil {
		return err
	}
	ref, err := analysis.Reference(e.problem, 0)
	if err != nil {
		return err
	}
	e.sweep = sw
	e.ref = ref
	return nil
}

func (e Explorer) Init() tea.Cmd { return nil }

func (e Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return e.handleKey(msg)
	case tea.WindowSizeMsg:
		e.width = msg.Width
		e.height = msg.Height
	}
	return e, nil
}

func (e Explorer) handleKey(msg tea.KeyMsg) (Explorer, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return e, tea.Quit
	case "left", "h":
		if e.stepIdx > 0 {
			e.stepIdx--
		}
	case "right", "l":
		if e.stepIdx < len(e.steps)-1 {
			e.stepIdx++
		}
	case "tab":
		if e.view == viewSolution {
			e.view = viewError
		} else {
			e.view = viewSolution
		}
	case "m":
		e.methodIdx = (e.methodIdx + 1) % (len(e.methods) + 1)
	case "t":
		e.themeIdx = (e.themeIdx + 1) % len(viz.Themes)
	case "up", "k":
		if e.paramIdx > 0 {
			e.paramIdx--
		}
	case "down", "j":
		if e.paramIdx < len(e.params)-1 {
			e.paramIdx++
		}
	case "+", "=":
		e.adjust(paramScale)
	case "-", "_":
		e.adjust(1 / paramScale)
	case "0":
		e.problem = e.initial
		e.err = e.recompute()
	}
	return e, nil
}

// adjust scales the selected oscillator parameter and re-runs the sweep. A
// rejected value leaves the previous problem in place.
func (e *Explorer) adjust(factor float64) {
	name := e.params[e.paramIdx]
	o := e.problem.Oscillator
	var coeffs dynamo.Configurable = &o
	v := coeffs.Params()[name] * factor
	if v == 0 {
		v = 0.1
	}
	if err := coeffs.SetParam(name, v); err != nil {
		e.err = err
		return
	}

	prev := e.problem
	e.problem.Oscillator = o
	if err := e.recompute(); err != nil {
		e.problem = prev
		e.err = err
		return
	}
	e.err = nil
}

func (e Explorer) currentStep() float64 { return e.steps[e.stepIdx] }

func (e Explorer) visibleCases() []analysis.Case {
	if e.view == viewSolution {
		cases := e.sweep.ForStep(e.currentStep())
		return e.filterMethod(cases)
	}
	return e.filterMethod(e.sweep.Cases())
}

func (e Explorer) filterMethod(cases []analysis.Case) []analysis.Case {
	if e.methodIdx == 0 {
		return cases
	}
	want := e.methods[e.methodIdx-1]
	out := cases[:0:0]
	for _, c := range cases {
		if c.Method == want {
			out = append(out, c)
		}
	}
	return out
}

func (e Explorer) View() string {
	var b strings.Builder

	b.WriteString(cyan.Render("stepwise") + dim.Render("  "+e.problem.String()) + "\n\n")

	method := "all"
	if e.methodIdx > 0 {
		method = e.registry.Label(e.methods[e.methodIdx-1])
	}
	osc := e.problem.System()
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s   %s %s   %s %s   %s %s\n\n",
		dim.Render("view"), white.Render(e.view.String()),
		dim.Render("h"), yellow.Render(fmt.Sprintf("%g", e.currentStep())),
		dim.Render("method"), white.Render(method),
		dim.Render("theme"), white.Render(viz.Themes[e.themeIdx].Name),
		dim.Render("ω0"), white.Render(fmt.Sprintf("%.4g", osc.NaturalFrequency())),
		dim.Render("ζ"), white.Render(fmt.Sprintf("%.4g", osc.DampingRatio())),
	)

	opts := viz.ChartOptions{
		Width:  max(e.width-16, 20),
		Height: max(e.height-20, 6),
		Theme:  viz.Themes[e.themeIdx],
		Labels: e.registry,
	}
	var chart string
	var err error
	if e.view == viewSolution {
		chart, err = viz.SolutionChart(e.ref, e.visibleCases(), opts)
	} else {
		chart, err = viz.ErrorChart(e.ref, e.visibleCases(), opts)
	}
	if err != nil {
		b.WriteString(red.Render(err.Error()) + "\n")
	} else {
		b.WriteString(chart + "\n")
	}

	b.WriteString("\n" + e.renderSummary() + "\n")
	b.WriteString(e.renderParams() + "\n")
	if e.err != nil {
		b.WriteString(red.Render(e.err.Error()) + "\n")
	}
	b.WriteString("\n" + viz.KeyHint.Render("←/→ step size  tab view  m method  t theme  ↑/↓ param  +/- scale  0 reset  q quit"))

	return b.String()
}

func (e Explorer) renderSummary() string {
	var parts []string
	for _, c := range e.filterMethod(e.sweep.ForStep(e.currentStep())) {
		parts = append(parts, fmt.Sprintf("%s %s %s",
			viz.MetricLabel.Render(e.registry.Label(c.Method)+" rmse"),
			viz.MetricValue.Render(fmt.Sprintf("%.3e", c.Summary.RMSE)),
			viz.SparklineChart(c.Summary.Abs, 12),
		))
	}
	return strings.Join(parts, "   ")
}

func (e Explorer) renderParams() string {
	var coeffs dynamo.Configurable = e.problem.System()
	values := coeffs.Params()
	parts := make([]string, len(e.params))
	for i, name := range e.params {
		s := fmt.Sprintf("%s=%g", name, values[name])
		if i == e.paramIdx {
			parts[i] = yellow.Render("▸" + s)
		} else {
			parts[i] = dim.Render(" " + s)
		}
	}
	return strings.Join(parts, " ")
}

func Run(e *Explorer) error {
	p := tea.NewProgram(e, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
