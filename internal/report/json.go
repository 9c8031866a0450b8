package report

import (
	"encoding/json"
	"io"
	"math"
)

type exportProblem struct {
	Equation  string  `json:"equation"`
	X0        float64 `json:"x0"`
	Y0        float64 `json:"y0"`
	Z0        float64 `json:"z0"`
	T         float64 `json:"t"`
	Mass      float64 `json:"mass"`
	Damping   float64 `json:"damping"`
	Stiffness float64 `json:"stiffness"`
	Amplitude float64 `json:"amplitude"`
	Frequency float64 `json:"frequency"`
}

// Non-finite values are exported as null.
type exportCase struct {
	Method   string     `json:"method"`
	H        float64    `json:"h"`
	Steps    int        `json:"steps"`
	X        []float64  `json:"x"`
	Y        []*float64 `json:"y"`
	AbsError []*float64 `json:"abs_error"`
	RMSE     *float64   `json:"rmse"`
	MaxAbs   *float64   `json:"max_abs"`
	FinalAbs *float64   `json:"final_abs"`
}

type exportOrder struct {
	Method string   `json:"method"`
	H1     float64  `json:"h1"`
	H2     float64  `json:"h2"`
	Ratio  *float64 `json:"ratio"`
	Order  *float64 `json:"order"`
}

type exportData struct {
	Problem exportProblem `json:"problem"`
	Methods []string      `json:"methods"`
	Steps   []float64     `json:"step_sizes"`
	Cases   []exportCase  `json:"cases"`
	Orders  []exportOrder `json:"orders"`
}

func (r *Report) WriteJSON(w io.Writer) error {
	o := r.Problem.Oscillator
	data := exportData{
		Problem: exportProblem{
			Equation:  r.Problem.String(),
			X0:        r.Problem.X0,
			Y0:        r.Problem.Y0,
			Z0:        r.Problem.Z0,
			T:         r.Problem.T,
			Mass:      o.Mass,
			Damping:   o.Damping,
			Stiffness: o.Stiffness,
			Amplitude: o.Amplitude,
			Frequency: o.Frequency,
		},
		Methods: r.Methods,
		Steps:   r.Steps,
		Cases:   make([]exportCase, len(r.Cases)),
		Orders:  make([]exportOrder, len(r.Orders)),
	}

	for i, c := range r.Cases {
		data.Cases[i] = exportCase{
			Method:   c.Method,
			H:        c.H,
			Steps:    c.Steps,
			X:        c.Trajectory.X,
			Y:        nullable(c.Trajectory.Y),
			AbsError: nullable(c.Summary.Abs),
			RMSE:     num(c.Summary.RMSE),
			MaxAbs:   num(c.Summary.MaxAbs),
			FinalAbs: num(c.Summary.FinalAbs),
		}
	}
	for i, ord := range r.Orders {
		data.Orders[i] = exportOrder{
			Method: ord.Method,
			H1:     ord.H1,
			H2:     ord.H2,
			Ratio:  num(ord.Ratio),
			Order:  num(ord.P),
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func num(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func nullable(vs []float64) []*float64 {
	out := make([]*float64, len(vs))
	for i, v := range vs {
		out[i] = num(v)
	}
	return out
}
