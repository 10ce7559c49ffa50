package sweep

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cloudparcel/internal/config"
)

var ErrInvalidPlan = errors.New("sweep: invalid plan")

const (
	ParamUpdraft     = "updraft"
	ParamCoolingRate = "cooling_rate"
	ParamDt          = "dt"
	ParamNumber      = "number"
)

// Plan describes a sweep in YAML: a base preset, the swept parameter and
// either an explicit value list or a min/max/steps range.
type Plan struct {
	Name          string               `yaml:"name"`
	Preset        string               `yaml:"preset"`
	Parameter     string               `yaml:"parameter"`
	Population    string               `yaml:"population,omitempty"`
	CoolingPolicy config.CoolingPolicy `yaml:"cooling_policy,omitempty"`
	Values        []float64            `yaml:"values,omitempty"`
	Min           float64              `yaml:"min,omitempty"`
	Max           float64              `yaml:"max,omitempty"`
	Steps         int                  `yaml:"steps,omitempty"`
	Workers       int                  `yaml:"workers,omitempty"`
}

func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("sweep: parse %s: %w", path, err)
	}
	return &plan, nil
}

func (p *Plan) values() []float64 {
	if len(p.Values) > 0 {
		return p.Values
	}
	return Linspace(p.Min, p.Max, p.Steps)
}

func (p *Plan) Variants() ([]Variant, error) {
	vals := p.values()
	if len(vals) == 0 {
		return nil, fmt.Errorf("%w: no values", ErrInvalidPlan)
	}

	switch p.Parameter {
	case ParamUpdraft:
		return Updraft(p.CoolingPolicy, vals...)
	case ParamCoolingRate:
		return CoolingRate(vals...), nil
	case ParamDt:
		return TimeStep(vals...), nil
	case ParamNumber:
		if p.Population == "" {
			return nil, fmt.Errorf("%w: number sweep needs a population", ErrInvalidPlan)
		}
		return PopulationNumber(p.Population, vals...), nil
	default:
		return nil, fmt.Errorf("%w: unknown parameter %q", ErrInvalidPlan, p.Parameter)
	}
}

// Base resolves the plan's preset, defaulting to DefaultConfig.
func (p *Plan) Base() (*config.Config, error) {
	if p.Preset == "" {
		return config.DefaultConfig(), nil
	}
	return config.LookupPreset(p.Preset)
}
