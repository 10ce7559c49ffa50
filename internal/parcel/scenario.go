package parcel

import (
	"fmt"
	"math"

	"github.com/san-kum/cloudparcel/internal/aerosol"
	"github.com/san-kum/cloudparcel/internal/icenuc"
)

// LiquidSink selects how activated droplets remove vapor.
type LiquidSink string

const (
	// LiquidRelax removes KRelax*S*es*dt whenever any population is activated.
	LiquidRelax LiquidSink = "relax"
	// LiquidCompetition scales the relaxation by the activated N*r^2 relative
	// to the reference population's N*r^2.
	LiquidCompetition LiquidSink = "competition"
)

// IceSink selects the deposition closure used once the parcel is ice-active.
type IceSink string

const (
	// IceLinear removes KIce*S*es*dt and grows qi by QiGrowthCoeff*S*es*dt.
	IceLinear IceSink = "linear"
	// IceDeposition uses the growth-enhanced Deposition parameters.
	IceDeposition IceSink = "deposition"
)

// Scenario holds every parameter of one run.
type Scenario struct {
	Name string

	T0          float64 // initial temperature, K
	RH0         float64 // initial relative humidity, 0-1
	CoolingRate float64 // K/s
	Dt          float64 // s
	TEnd        float64 // s

	LiquidSink    LiquidSink
	KRelax        float64 // 1/s
	SinkReference string  // competition normalization; first population if empty

	IceEnabled    bool
	IceSink       IceSink
	KIce          float64 // 1/s, linear sink
	QiGrowthCoeff float64 // qi per Pa, linear sink
	Deposition    icenuc.DepositionParams
	IceThreshold  float64 // active IN per m^3

	Aerosols  []aerosol.Population
	IceNuclei []icenuc.BiologicalIN
}

// DefaultScenario returns the mixed-phase reference case: sulfate and pollen
// CCN, one biological IN class, parcel starting at 0 °C and 95% RH cooling at
// 0.01 K/s for 20 minutes. Ice physics are off.
func DefaultScenario() Scenario {
	return Scenario{
		Name:          "mixed_phase",
		T0:            273.15,
		RH0:           0.95,
		CoolingRate:   0.01,
		Dt:            1.0,
		TEnd:          1200.0,
		LiquidSink:    LiquidRelax,
		KRelax:        0.2,
		IceSink:       IceLinear,
		KIce:          0.4,
		QiGrowthCoeff: 5e-12,
		Deposition:    icenuc.DefaultDeposition(),
		IceThreshold:  icenuc.DefaultThreshold,
		Aerosols: []aerosol.Population{
			{Name: "sulfate", N: 500e6, Radius: 30e-9, Kappa: 1.0, RhoP: 1770},
			{Name: "pollen", N: 3000, Radius: 5e-6, Kappa: 0.1, RhoP: 1000},
		},
		IceNuclei: []icenuc.BiologicalIN{
			{Name: "bioIN", N: 50, T50: 263.15, Width: 2},
		},
	}
}

// Clone returns a deep copy; populations are never shared between runs.
func (s Scenario) Clone() Scenario {
	c := s
	c.Aerosols = append([]aerosol.Population(nil), s.Aerosols...)
	c.IceNuclei = append([]icenuc.BiologicalIN(nil), s.IceNuclei...)
	for i := range c.Aerosols {
		c.Aerosols[i].Activated = false
	}
	return c
}

// Steps returns the number of samples a run records: t = 0, dt, ... <= TEnd.
func (s Scenario) Steps() int {
	return int(math.Floor(s.TEnd/s.Dt+1e-9)) + 1
}

// IceDepositionParams returns the deposition closure for the configured ice
// sink mode.
func (s Scenario) IceDepositionParams() icenuc.DepositionParams {
	if s.IceSink == IceDeposition {
		return s.Deposition
	}
	return icenuc.LinearDeposition(s.KIce, s.QiGrowthCoeff)
}

func (s Scenario) withDefaults() Scenario {
	if s.LiquidSink == "" {
		s.LiquidSink = LiquidRelax
	}
	if s.IceSink == "" {
		s.IceSink = IceLinear
	}
	if s.LiquidSink == LiquidCompetition && s.SinkReference == "" && len(s.Aerosols) > 0 {
		s.SinkReference = s.Aerosols[0].Name
	}
	return s
}

// Validate rejects scenarios that cannot be run. It is called by New, so
// invalid configurations fail before the first step.
func (s Scenario) Validate() error {
	s = s.withDefaults()

	if !(s.T0 > 0) || math.IsInf(s.T0, 0) {
		return invalid("t0", "must be positive and finite, got %g", s.T0)
	}
	if !(s.RH0 >= 0) || math.IsInf(s.RH0, 0) {
		return invalid("rh0", "must be non-negative and finite, got %g", s.RH0)
	}
	if math.IsNaN(s.CoolingRate) || math.IsInf(s.CoolingRate, 0) {
		return invalid("cooling_rate", "must be finite, got %g", s.CoolingRate)
	}
	if !(s.Dt > 0) || math.IsInf(s.Dt, 0) {
		return invalid("dt", "must be positive and finite, got %g", s.Dt)
	}
	if !(s.TEnd >= 0) || math.IsInf(s.TEnd, 0) {
		return invalid("t_end", "must be non-negative and finite, got %g", s.TEnd)
	}
	if !(s.KRelax >= 0) {
		return invalid("k_relax", "must be non-negative, got %g", s.KRelax)
	}
	if !(s.KIce >= 0) {
		return invalid("k_ice", "must be non-negative, got %g", s.KIce)
	}
	if !(s.QiGrowthCoeff >= 0) {
		return invalid("qi_growth_coeff", "must be non-negative, got %g", s.QiGrowthCoeff)
	}
	if !(s.IceThreshold > 0) {
		return invalid("ice_threshold", "must be positive, got %g", s.IceThreshold)
	}
	if err := s.Deposition.Validate(); err != nil {
		return &ScenarioError{Field: "deposition", Wrapped: err}
	}

	switch s.LiquidSink {
	case LiquidRelax, LiquidCompetition:
	default:
		return invalid("liquid_sink", "unknown mode %q", s.LiquidSink)
	}
	switch s.IceSink {
	case IceLinear, IceDeposition:
	default:
		return invalid("ice_sink", "unknown mode %q", s.IceSink)
	}

	seen := make(map[string]bool, len(s.Aerosols))
	for i, p := range s.Aerosols {
		if err := p.Validate(); err != nil {
			return &ScenarioError{Field: fmt.Sprintf("aerosols[%d]", i), Wrapped: err}
		}
		if seen[p.Name] {
			return invalid(fmt.Sprintf("aerosols[%d]", i), "duplicate population %q", p.Name)
		}
		seen[p.Name] = true
	}
	if s.LiquidSink == LiquidCompetition && len(s.Aerosols) > 0 && !seen[s.SinkReference] {
		return invalid("sink_reference", "unknown population %q", s.SinkReference)
	}

	for i, in := range s.IceNuclei {
		if err := in.Validate(); err != nil {
			return &ScenarioError{Field: fmt.Sprintf("ice_nuclei[%d]", i), Wrapped: err}
		}
	}
	return nil
}
