package metrics

import (
	"math"

	"github.com/san-kum/cloudparcel/internal/parcel"
)

// OvershootFloor is the post-sink supersaturation at or below which a step
// that started supersaturated counts as having overshot saturation.
const OvershootFloor = 1e-12

type ClampCount struct {
	name  string
	count int
}

func NewClampCount() *ClampCount {
	return &ClampCount{name: "clamp_count"}
}

func (c *ClampCount) Name() string { return c.name }

func (c *ClampCount) Observe(s parcel.Sample) {
	if s.Clamped {
		c.count++
	}
}

func (c *ClampCount) Value() float64 { return float64(c.count) }

func (c *ClampCount) Reset() { c.count = 0 }

// Overshoot counts steps where the sinks pushed a supersaturated parcel to or
// below saturation in a single step.
type Overshoot struct {
	name  string
	count int
}

func NewOvershoot() *Overshoot {
	return &Overshoot{name: "overshoot"}
}

func (o *Overshoot) Name() string { return o.name }

func (o *Overshoot) Observe(s parcel.Sample) {
	if s.SPre > 0 && s.S <= OvershootFloor {
		o.count++
	}
}

func (o *Overshoot) Value() float64 { return float64(o.count) }

func (o *Overshoot) Reset() { o.count = 0 }

type MinSupersaturation struct {
	name    string
	min     float64
	samples int
}

func NewMinSupersaturation() *MinSupersaturation {
	return &MinSupersaturation{name: "min_s", min: math.Inf(1)}
}

func (m *MinSupersaturation) Name() string { return m.name }

func (m *MinSupersaturation) Observe(s parcel.Sample) {
	m.samples++
	if s.S < m.min {
		m.min = s.S
	}
}

func (m *MinSupersaturation) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.min
}

func (m *MinSupersaturation) Reset() {
	m.min = math.Inf(1)
	m.samples = 0
}

// IceFraction is the share of samples recorded with the ice latch set.
type IceFraction struct {
	name    string
	active  int
	samples int
}

func NewIceFraction() *IceFraction {
	return &IceFraction{name: "ice_fraction"}
}

func (f *IceFraction) Name() string { return f.name }

func (f *IceFraction) Observe(s parcel.Sample) {
	f.samples++
	if s.IceActive {
		f.active++
	}
}

func (f *IceFraction) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return float64(f.active) / float64(f.samples)
}

func (f *IceFraction) Reset() {
	f.active = 0
	f.samples = 0
}

// Default returns a fresh set of the standard diagnostics.
func Default() []parcel.Metric {
	return []parcel.Metric{
		NewClampCount(),
		NewOvershoot(),
		NewMinSupersaturation(),
		NewIceFraction(),
	}
}
