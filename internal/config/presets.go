package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/cloudparcel/internal/aerosol"
	"github.com/san-kum/cloudparcel/internal/icenuc"
	"github.com/san-kum/cloudparcel/internal/parcel"
)

var (
	sulfate = aerosol.Population{Name: "sulfate", N: 500e6, Radius: 30e-9, Kappa: 1.0, RhoP: 1770}
	bioIN   = icenuc.BiologicalIN{Name: "bioIN", N: 50, T50: 263.15, Width: 2}
)

func pollen(n float64) aerosol.Population {
	return aerosol.Population{Name: "pollen", N: n, Radius: 5e-6, Kappa: 0.1, RhoP: 1000}
}

func warm(name, desc string) *Config {
	c := DefaultConfig()
	c.Name = name
	c.Description = desc
	c.T0 = 288.0
	c.Updraft = 0
	c.CoolingRate = 0.01
	c.TEnd = 600
	c.Liquid.KRelax = 0.5
	c.Aerosols = []aerosol.Population{sulfate, pollen(1000)}
	c.IceNuclei = nil
	return c
}

func mixed(name, desc string, ice bool, kIce float64) *Config {
	c := DefaultConfig()
	c.Name = name
	c.Description = desc
	c.Aerosols = []aerosol.Population{sulfate, pollen(3000)}
	c.IceNuclei = []icenuc.BiologicalIN{bioIN}
	c.Ice.Enabled = ice
	c.Ice.KIce = kIce
	return c
}

var Presets = map[string]*Config{
	"simple": warm("simple", "warm parcel, sulfate and pollen CCN"),
	"competition": func() *Config {
		c := warm("competition", "droplet sink weighted by activated surface")
		c.Liquid.Sink = string(parcel.LiquidCompetition)
		c.Liquid.SinkReference = sulfate.Name
		return c
	}(),
	"mixed_noice": mixed("mixed_noice", "mixed phase, ice physics off", false, 0.4),
	"mixed_ice":   mixed("mixed_ice", "mixed phase, biological IN onset", true, 0.4),
	"mixed_sweep": mixed("mixed_sweep", "mixed phase, strong ice deposition", true, 2.0),
	"bio_onset": func() *Config {
		c := mixed("bio_onset", "biological IN only, no CCN", true, 0.4)
		c.Aerosols = nil
		return c
	}(),
	"updraft": func() *Config {
		c := warm("updraft", "sulfate only, 0.5 m/s updraft")
		c.Updraft = 0.5
		c.Aerosols = []aerosol.Population{sulfate}
		return c
	}(),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// LookupPreset is GetPreset with an error for unknown names.
func LookupPreset(name string) (*Config, error) {
	cfg := GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
