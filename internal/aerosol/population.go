package aerosol

import (
	"fmt"
	"math"
)

// Population is one chemically or physically distinct particle class.
type Population struct {
	Name   string  `json:"name" yaml:"name"`
	N      float64 `json:"n" yaml:"n"`           // number concentration, m^-3
	Radius float64 `json:"radius" yaml:"radius"` // dry radius, m
	Kappa  float64 `json:"kappa" yaml:"kappa"`   // hygroscopicity; <= 0 never activates
	RhoP   float64 `json:"rho_p" yaml:"rho_p"`   // particle density, kg/m^3

	// Activated is the outcome of the most recent activation check. It is not
	// a latch: a later check at lower S clears it.
	Activated bool `json:"activated" yaml:"-"`
}

// Validate reports the first non-physical parameter.
func (p Population) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidPopulation)
	}
	checks := []struct {
		field string
		value float64
	}{
		{"n", p.N},
		{"radius", p.Radius},
		{"rho_p", p.RhoP},
	}
	for _, c := range checks {
		if !(c.value > 0) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%w: %s %s must be positive and finite, got %g", ErrInvalidPopulation, p.Name, c.field, c.value)
		}
	}
	if math.IsNaN(p.Kappa) {
		return fmt.Errorf("%w: %s kappa is NaN", ErrInvalidPopulation, p.Name)
	}
	return nil
}

// Diameter returns the dry particle diameter in m.
func (p Population) Diameter() float64 {
	return 2 * p.Radius
}

// SurfaceProxy returns N*r^2, a surface-area-like weight for the vapor sink
// a population exerts once activated.
func (p Population) SurfaceProxy() float64 {
	return p.N * p.Radius * p.Radius
}
