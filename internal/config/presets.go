package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]*Config{
	"reference": DefaultConfig(),
	"light-damping": {
		Instance: ProblemConfig{
			T: 2.0, Mass: 0.2, Damping: 0.4, Stiffness: 20, Amplitude: 10, Frequency: 2,
		},
		StepSizes: []float64{0.1, 0.05, 0.025}, Methods: []string{"euler", "rk4"},
		ReferencePoints: DefaultReferencePoints,
	},
	"overdamped": {
		Instance: ProblemConfig{
			T: 1.0, Mass: 0.2, Damping: 5, Stiffness: 20, Amplitude: 10, Frequency: 2,
		},
		StepSizes: []float64{0.05, 0.025, 0.0125}, Methods: []string{"euler", "rk4"},
		ReferencePoints: DefaultReferencePoints,
	},
	"fine": func() *Config {
		c := DefaultConfig()
		c.StepSizes = []float64{0.01, 0.005, 0.0025}
		return c
	}(),
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Config, error) {
	cfg, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return cfg.Clone(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
