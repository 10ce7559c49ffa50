package parcel

import (
	"github.com/sirupsen/logrus"

	"github.com/san-kum/cloudparcel/internal/aerosol"
	"github.com/san-kum/cloudparcel/internal/icenuc"
	"github.com/san-kum/cloudparcel/internal/thermo"
)

// Stepper advances one parcel through the fixed-horizon explicit Euler loop.
type Stepper struct {
	sc         Scenario
	deposition icenuc.DepositionParams
	refSurface float64
	steps      int

	step  int
	state State
	pops  []aerosol.Population
	onset *Onset
	log   logrus.FieldLogger
}

// NewStepper validates sc and returns a Stepper positioned at t = 0.
func NewStepper(sc Scenario) (*Stepper, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return newStepper(sc, logrus.StandardLogger()), nil
}

func newStepper(sc Scenario, log logrus.FieldLogger) *Stepper {
	sc = sc.Clone().withDefaults()
	st := &Stepper{
		sc:         sc,
		deposition: sc.IceDepositionParams(),
		steps:      sc.Steps(),
		pops:       sc.Aerosols,
		log:        log,
		state: State{
			T: sc.T0,
			E: thermo.VaporPressure(sc.RH0, sc.T0),
		},
	}
	for _, p := range sc.Aerosols {
		if p.Name == sc.SinkReference {
			st.refSurface = p.SurfaceProxy()
		}
	}
	return st
}

// Done reports whether the horizon has been reached.
func (st *Stepper) Done() bool { return st.step >= st.steps }

// Progress returns the completed fraction of the run.
func (st *Stepper) Progress() float64 {
	return float64(st.step) / float64(st.steps)
}

// State returns the state the next step will start from.
func (st *Stepper) State() State { return st.state }

// Onset returns the ice onset, or nil if the latch has not fired.
func (st *Stepper) Onset() *Onset { return st.onset }

// Populations returns a copy of the current aerosol records.
func (st *Stepper) Populations() []aerosol.Population {
	return append([]aerosol.Population(nil), st.pops...)
}

// Scenario returns the normalized scenario being integrated.
func (st *Stepper) Scenario() Scenario { return st.sc.Clone() }

// Next performs one step and returns its sample. After the horizon it
// returns ErrHorizonReached.
func (st *Stepper) Next() (Sample, error) {
	if st.Done() {
		return Sample{}, ErrHorizonReached
	}

	dt := st.sc.Dt
	s := &st.state
	s.Time = float64(st.step) * dt

	es := thermo.SaturationVaporPressure(s.T)
	sPre := thermo.Supersaturation(s.E, es)

	for i := range st.pops {
		st.pops[i], _, _ = aerosol.CheckActivation(sPre, st.pops[i], s.T)
	}

	if st.sc.IceEnabled && !s.IceActive {
		st.checkOnset()
	}

	clamped := false
	if sPre > 0 {
		if k := st.liquidRate(); k > 0 {
			clamped = st.remove(k*sPre*es*dt) || clamped
		}
	}
	if s.IceActive && sPre > 0 {
		removed, qi := icenuc.DepositionSink(sPre, es, s.Qi, dt, st.deposition)
		clamped = st.remove(removed) || clamped
		s.Qi = qi
	}

	es = thermo.SaturationVaporPressure(s.T)
	sample := Sample{
		Time:      s.Time,
		T:         s.T,
		Es:        es,
		SPre:      sPre,
		S:         thermo.Supersaturation(s.E, es),
		E:         s.E,
		Qi:        s.Qi,
		IceActive: s.IceActive,
		Activated: make([]bool, len(st.pops)),
		Clamped:   clamped,
	}
	for i, p := range st.pops {
		sample.Activated[i] = p.Activated
	}

	s.T -= st.sc.CoolingRate * dt
	st.step++
	s.Time = float64(st.step) * dt

	return sample, nil
}

func (st *Stepper) checkOnset() {
	s := &st.state
	for _, in := range st.sc.IceNuclei {
		nucleated, nActive := icenuc.CheckNucleation(s.T, in, st.sc.IceThreshold)
		if !nucleated {
			continue
		}
		s.IceActive = true
		st.onset = &Onset{Time: s.Time, Temperature: s.T, Species: in.Name, NActive: nActive}
		st.log.WithFields(logrus.Fields{
			"scenario":    st.sc.Name,
			"species":     in.Name,
			"t":           s.Time,
			"temperature": s.T,
			"n_active":    nActive,
		}).Debug("ice onset")
		return
	}
}

// liquidRate returns the effective condensation sink rate in 1/s.
func (st *Stepper) liquidRate() float64 {
	if st.sc.LiquidSink == LiquidCompetition {
		if st.refSurface <= 0 {
			return 0
		}
		return st.sc.KRelax * aerosol.ActivatedSurface(st.pops) / st.refSurface
	}
	if aerosol.AnyActivated(st.pops) {
		return st.sc.KRelax
	}
	return 0
}

// remove subtracts de from the vapor pressure, clamping at zero. It reports
// whether the clamp fired.
func (st *Stepper) remove(de float64) bool {
	st.state.E -= de
	if st.state.E < 0 {
		st.state.E = 0
		return true
	}
	return false
}
