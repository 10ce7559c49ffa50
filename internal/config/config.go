package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cloudparcel/internal/aerosol"
	"github.com/san-kum/cloudparcel/internal/icenuc"
	"github.com/san-kum/cloudparcel/internal/parcel"
)

var (
	ErrUnknownPolicy = errors.New("config: unknown cooling policy")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

const (
	DefaultDt      = 1.0
	DefaultTEnd    = 1200.0
	DefaultT0      = 273.15
	DefaultRH0     = 0.95
	DefaultUpdraft = 1.0
	DefaultKRelax  = 0.2
	DefaultKIce    = 0.4
	DefaultQiCoeff = 5e-12
)

type Config struct {
	Name          string                `yaml:"name"`
	Description   string                `yaml:"description,omitempty"`
	T0            float64               `yaml:"t0"`
	RH0           float64               `yaml:"rh0"`
	CoolingRate   float64               `yaml:"cooling_rate"`
	Updraft       float64               `yaml:"updraft"`
	CoolingPolicy CoolingPolicy         `yaml:"cooling_policy"`
	Dt            float64               `yaml:"dt"`
	TEnd          float64               `yaml:"t_end"`
	Liquid        LiquidConfig          `yaml:"liquid"`
	Ice           IceConfig             `yaml:"ice"`
	Aerosols      []aerosol.Population  `yaml:"aerosols"`
	IceNuclei     []icenuc.BiologicalIN `yaml:"ice_nuclei"`
}

type LiquidConfig struct {
	Sink          string  `yaml:"sink"`
	KRelax        float64 `yaml:"k_relax"`
	SinkReference string  `yaml:"sink_reference,omitempty"`
}

type IceConfig struct {
	Enabled       bool                    `yaml:"enabled"`
	Sink          string                  `yaml:"sink"`
	KIce          float64                 `yaml:"k_ice"`
	QiGrowthCoeff float64                 `yaml:"qi_growth_coeff"`
	Threshold     float64                 `yaml:"threshold"`
	Deposition    icenuc.DepositionParams `yaml:"deposition"`
}

func DefaultConfig() *Config {
	sc := parcel.DefaultScenario()
	return &Config{
		Name:          sc.Name,
		T0:            DefaultT0,
		RH0:           DefaultRH0,
		Updraft:       DefaultUpdraft,
		CoolingPolicy: PolicyLinear,
		Dt:            DefaultDt,
		TEnd:          DefaultTEnd,
		Liquid: LiquidConfig{
			Sink:   string(parcel.LiquidRelax),
			KRelax: DefaultKRelax,
		},
		Ice: IceConfig{
			Sink:          string(parcel.IceLinear),
			KIce:          DefaultKIce,
			QiGrowthCoeff: DefaultQiCoeff,
			Threshold:     icenuc.DefaultThreshold,
			Deposition:    icenuc.DefaultDeposition(),
		},
		Aerosols:  sc.Aerosols,
		IceNuclei: sc.IceNuclei,
	}
}

// Load reads a YAML scenario over DefaultConfig. List fields present in the
// file replace the defaults wholesale.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
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

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Aerosols = append([]aerosol.Population(nil), c.Aerosols...)
	out.IceNuclei = append([]icenuc.BiologicalIN(nil), c.IceNuclei...)
	return &out
}

// EffectiveCoolingRate resolves the cooling rate: a non-zero updraft is
// mapped through the cooling policy, otherwise CoolingRate is used as is.
func (c *Config) EffectiveCoolingRate() (float64, error) {
	if c.Updraft == 0 {
		return c.CoolingRate, nil
	}
	return c.CoolingPolicy.Rate(c.Updraft)
}

// ToScenario converts the config and validates the result.
func (c *Config) ToScenario() (parcel.Scenario, error) {
	rate, err := c.EffectiveCoolingRate()
	if err != nil {
		return parcel.Scenario{}, err
	}
	sc := parcel.Scenario{
		Name:          c.Name,
		T0:            c.T0,
		RH0:           c.RH0,
		CoolingRate:   rate,
		Dt:            c.Dt,
		TEnd:          c.TEnd,
		LiquidSink:    parcel.LiquidSink(c.Liquid.Sink),
		KRelax:        c.Liquid.KRelax,
		SinkReference: c.Liquid.SinkReference,
		IceEnabled:    c.Ice.Enabled,
		IceSink:       parcel.IceSink(c.Ice.Sink),
		KIce:          c.Ice.KIce,
		QiGrowthCoeff: c.Ice.QiGrowthCoeff,
		Deposition:    c.Ice.Deposition,
		IceThreshold:  c.Ice.Threshold,
		Aerosols:      append([]aerosol.Population(nil), c.Aerosols...),
		IceNuclei:     append([]icenuc.BiologicalIN(nil), c.IceNuclei...),
	}
	if err := sc.Validate(); err != nil {
		return parcel.Scenario{}, err
	}
	return sc, nil
}
