package parcel

import "github.com/san-kum/cloudparcel/internal/aerosol"

// State is the prognostic parcel state between steps.
type State struct {
	T         float64 // temperature, K
	E         float64 // vapor pressure, Pa; never negative
	Time      float64 // elapsed time, s
	Qi        float64 // ice growth proxy, arbitrary units
	IceActive bool    // one-way latch
}

// Sample is one recorded step. S and E are taken after the sinks; SPre is
// the supersaturation the activation and nucleation decisions saw.
type Sample struct {
	Time      float64 `json:"t"`
	T         float64 `json:"temperature"`
	Es        float64 `json:"es"`
	SPre      float64 `json:"s_pre"`
	S         float64 `json:"s"`
	E         float64 `json:"e"`
	Qi        float64 `json:"qi"`
	IceActive bool    `json:"ice_active"`
	Activated []bool  `json:"activated"`
	// Clamped is set when a sink would have driven E below zero this step.
	Clamped bool `json:"clamped"`
}

// Onset records when the parcel became ice-active.
type Onset struct {
	Time        float64 `json:"time"`
	Temperature float64 `json:"temperature"`
	Species     string  `json:"species"`
	NActive     float64 `json:"n_active"`
}

// Result is the outcome of one run.
type Result struct {
	Scenario    string               `json:"scenario"`
	Populations []string             `json:"populations"`
	Samples     []Sample             `json:"samples"`
	PeakS       float64              `json:"peak_s"`
	PeakTime    float64              `json:"peak_time"`
	IceOnset    *Onset               `json:"ice_onset,omitempty"`
	ClampCount  int                  `json:"clamp_count"`
	Final       []aerosol.Population `json:"final"`
	Metrics     map[string]float64   `json:"metrics"`
}

// Series extracts one value per sample.
func (r *Result) Series(fn func(Sample) float64) []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = fn(s)
	}
	return out
}

// Metric accumulates a scalar over the samples of a run.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Observer is notified of every recorded sample.
type Observer interface {
	OnStep(s Sample)
}
