package parcel

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"
)

// Simulator runs one scenario to its horizon.
type Simulator struct {
	scenario  Scenario
	metrics   []Metric
	observers []Observer
	log       logrus.FieldLogger
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sets the logger used for onset and completion events.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Simulator) { s.log = l }
}

// WithMetrics registers metrics evaluated over every sample.
func WithMetrics(m ...Metric) Option {
	return func(s *Simulator) { s.metrics = append(s.metrics, m...) }
}

// New validates sc and returns a simulator for it.
func New(sc Scenario, opts ...Option) (*Simulator, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	s := &Simulator{
		scenario:  sc.Clone(),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Scenario returns a copy of the scenario this simulator runs.
func (s *Simulator) Scenario() Scenario { return s.scenario.Clone() }

// Stepper returns a fresh stepper over the simulator's scenario.
func (s *Simulator) Stepper() *Stepper {
	return newStepper(s.scenario, s.log)
}

// Run integrates until t > t_end. On cancellation it returns the samples
// recorded so far together with ctx.Err().
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	st := s.Stepper()

	result := &Result{
		Scenario:    s.scenario.Name,
		Populations: make([]string, len(s.scenario.Aerosols)),
		Samples:     make([]Sample, 0, st.steps),
		PeakS:       math.Inf(-1),
		Metrics:     make(map[string]float64),
	}
	for i, p := range s.scenario.Aerosols {
		result.Populations[i] = p.Name
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	var runErr error
	for !st.Done() {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		sample, err := st.Next()
		if err != nil {
			runErr = err
			break
		}

		result.Samples = append(result.Samples, sample)
		if sample.S > result.PeakS {
			result.PeakS = sample.S
			result.PeakTime = sample.Time
		}
		if sample.Clamped {
			result.ClampCount++
		}

		for _, m := range s.metrics {
			m.Observe(sample)
		}
		for _, obs := range s.observers {
			obs.OnStep(sample)
		}
	}

	result.IceOnset = st.Onset()
	result.Final = st.Populations()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.log.WithFields(logrus.Fields{
		"scenario":  s.scenario.Name,
		"samples":   len(result.Samples),
		"peak_s":    result.PeakS,
		"peak_time": result.PeakTime,
		"clamps":    result.ClampCount,
		"ice_onset": result.IceOnset != nil,
	}).Debug("parcel run complete")

	return result, runErr
}

// RunWithCallback steps the parcel and calls fn with each sample until fn
// returns false, the horizon is reached or ctx is done.
func (s *Simulator) RunWithCallback(ctx context.Context, fn func(Sample) bool) error {
	st := s.Stepper()
	for !st.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		sample, err := st.Next()
		if err != nil {
			return err
		}
		if !fn(sample) {
			return nil
		}
	}
	return nil
}
