package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/stepwise/internal/analysis"
)

var ErrNoCasesForStep = errors.New("report: no cases for step size")

// WriteCSV writes one row per sample at step size h: x, the exact value, then
// y and the absolute error of each method in sweep order.
func (r *Report) WriteCSV(w io.Writer, h float64) error {
	var cases []analysis.Case
	for _, m := range r.Methods {
		if c, ok := r.find(m, h); ok {
			cases = append(cases, c)
		}
	}
	if len(cases) == 0 {
		return fmt.Errorf("%w: %g", ErrNoCasesForStep, h)
	}

	ref, err := r.Problem.Solution()
	if err != nil {
		return err
	}

	xs := cases[0].Trajectory.X
	exact := ref.Eval(xs)

	cw := csv.NewWriter(w)

	header := []string{"x", "exact"}
	for _, c := range cases {
		header = append(header, "y_"+c.Method, "err_"+c.Method)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i, x := range xs {
		row[0] = formatCell(x)
		row[1] = formatCell(exact[i])
		for j, c := range cases {
			row[2+2*j] = formatCell(c.Trajectory.Y[i])
			row[3+2*j] = formatCell(c.Summary.Abs[i])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatCell(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
