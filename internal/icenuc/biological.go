package icenuc

import (
	"fmt"
	"math"

	"github.com/san-kum/cloudparcel/internal/thermo"
)

// DefaultThreshold is the active IN concentration (m^-3) at which ice
// nucleation is assumed to start.
const DefaultThreshold = 1.0

// BiologicalIN is a class of ice-nucleating particles whose activity depends
// only on temperature.
type BiologicalIN struct {
	Name  string  `json:"name" yaml:"name"`
	N     float64 `json:"n" yaml:"n"`         // total concentration, m^-3
	T50   float64 `json:"t50" yaml:"t50"`     // 50% active temperature, K
	Width float64 `json:"width" yaml:"width"` // transition width, K
}

// Validate reports non-physical parameters.
func (b BiologicalIN) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidNuclei)
	}
	if !(b.N > 0) || math.IsInf(b.N, 0) {
		return fmt.Errorf("%w: %s n must be positive and finite, got %g", ErrInvalidNuclei, b.Name, b.N)
	}
	if !(b.Width > 0) || math.IsInf(b.Width, 0) {
		return fmt.Errorf("%w: %s width must be positive and finite, got %g", ErrInvalidNuclei, b.Name, b.Width)
	}
	if math.IsNaN(b.T50) || math.IsInf(b.T50, 0) {
		return fmt.Errorf("%w: %s t50 must be finite, got %g", ErrInvalidNuclei, b.Name, b.T50)
	}
	return nil
}

// IceActiveFraction returns the fraction of particles nucleating ice at
// temperature t, a logistic in (T50 - t)/width. Colder means more active.
func (b BiologicalIN) IceActiveFraction(t float64) float64 {
	x := (b.T50 - t) / math.Max(b.Width, thermo.Floor)
	f := 1 / (1 + math.Exp(-x))
	return math.Max(0, math.Min(1, f))
}

// ActiveNumber returns the ice-active concentration N*f(t) in m^-3.
func (b BiologicalIN) ActiveNumber(t float64) float64 {
	return b.N * b.IceActiveFraction(t)
}

// CheckNucleation reports whether the active concentration at t reaches
// threshold, along with that concentration.
func CheckNucleation(t float64, b BiologicalIN, threshold float64) (bool, float64) {
	nActive := b.ActiveNumber(t)
	return nActive >= threshold, nActive
}
