package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/stepwise/internal/dynamo"
	"github.com/san-kum/stepwise/internal/integrators"
	"github.com/san-kum/stepwise/internal/metrics"
)

var ErrUnknownIntegrator = errors.New("experiment: unknown integrator")

// Method names understood by the registry.
const (
	MethodEuler  = "euler"
	MethodRK4    = "rk4"
	MethodVerlet = "verlet"
)

// Registry hands out a fresh integrator per run, since stateful schemes such
// as RK4 keep scratch buffers.
type Registry struct {
	integrators map[string]func() dynamo.Integrator
	labels      map[string]string
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
		labels:      make(map[string]string),
	}

	r.Register(MethodEuler, "Euler", func() dynamo.Integrator { return integrators.NewEuler() })
	r.Register(MethodRK4, "RK4", func() dynamo.Integrator { return integrators.NewRK4() })
	r.Register(MethodVerlet, "Verlet", func() dynamo.Integrator { return integrators.NewVerlet() })

	return r
}

func (r *Registry) Register(name, label string, fn func() dynamo.Integrator) {
	r.integrators[name] = fn
	r.labels[name] = label
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownIntegrator, name, r.ListIntegrators())
	}
	return fn(), nil
}

// Label is the display name of a method, falling back to its key.
func (r *Registry) Label(name string) string {
	if l, ok := r.labels[name]; ok {
		return l
	}
	return name
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []metrics.Metric {
	return []metrics.Metric{
		metrics.NewRMSE(),
		metrics.NewMaxAbs(),
		metrics.NewFinalAbs(),
	}
}
