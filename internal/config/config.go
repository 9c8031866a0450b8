package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/stepwise/internal/physics"
)

const DefaultReferencePoints = 200

var (
	ErrInvalid       = errors.New("config: invalid configuration")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

var validate = validator.New()

type Config struct {
	Instance        ProblemConfig `yaml:"problem"`
	StepSizes       []float64     `yaml:"step_sizes" validate:"required,min=1,dive,gt=0"`
	Methods         []string      `yaml:"methods" validate:"required,min=1,dive,oneof=euler rk4 verlet"`
	Strict          bool          `yaml:"strict"`
	ReferencePoints int           `yaml:"reference_points" validate:"gte=2"`
}

// ProblemConfig describes m*y” + c*y' + k*y = F*sin(w*x) with y(X0)=Y0,
// y'(X0)=Z0 on [X0, T].
type ProblemConfig struct {
	X0        float64 `yaml:"x0"`
	Y0        float64 `yaml:"y0"`
	Z0        float64 `yaml:"z0"`
	T         float64 `yaml:"t" validate:"gtfield=X0"`
	Mass      float64 `yaml:"mass" validate:"gt=0"`
	Damping   float64 `yaml:"damping" validate:"gte=0"`
	Stiffness float64 `yaml:"stiffness" validate:"gt=0"`
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency" validate:"gte=0"`
}

func DefaultConfig() *Config {
	return &Config{
		Instance: ProblemConfig{
			X0:        physics.DefaultX0,
			Y0:        physics.DefaultY0,
			Z0:        physics.DefaultZ0,
			T:         physics.DefaultT,
			Mass:      physics.DefaultMass,
			Damping:   physics.DefaultDamping,
			Stiffness: physics.DefaultStiffness,
			Amplitude: physics.DefaultAmplitude,
			Frequency: physics.DefaultFrequency,
		},
		StepSizes:       []float64{0.2, 0.1, 0.05},
		Methods:         []string{"euler", "rk4"},
		ReferencePoints: DefaultReferencePoints,
	}
}

// Load overlays the YAML file at path on DefaultConfig. Lists in the file
// replace the defaults rather than extending them.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver is Load with base in place of the defaults. base is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, formatFieldError(e))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", field, strings.ToLower(e.Param()))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func (c *Config) Problem() physics.Problem {
	pc := c.Instance
	return physics.Problem{
		X0: pc.X0,
		Y0: pc.Y0,
		Z0: pc.Z0,
		T:  pc.T,
		Oscillator: physics.ForcedOscillator{
			Mass:      pc.Mass,
			Damping:   pc.Damping,
			Stiffness: pc.Stiffness,
			Amplitude: pc.Amplitude,
			Frequency: pc.Frequency,
		},
	}
}

func (c *Config) Clone() *Config {
	out := *c
	out.StepSizes = append([]float64(nil), c.StepSizes...)
	out.Methods = append([]string(nil), c.Methods...)
	return &out
}
