package metrics

import (
	"fmt"

	"github.com/san-kum/cloudparcel/internal/parcel"
)

const (
	Stable   = "Stable"
	Unstable = "Unstable"
)

// NegativeSLimit is the supersaturation below which a sample counts as
// deeply subsaturated for classification.
const NegativeSLimit = -0.01

// Classification is a post hoc verdict on the numerical health of a run.
type Classification struct {
	Label  string `json:"label"`
	Reason string `json:"reason,omitempty"`
}

func (c Classification) String() string {
	if c.Reason == "" {
		return c.Label
	}
	return fmt.Sprintf("%s (%s)", c.Label, c.Reason)
}

func (c Classification) Stable() bool { return c.Label == Stable }

// Classify inspects the recorded series. A run is unstable when vapor
// pressure was ever clamped, when a sink step overshot a supersaturated
// parcel to saturation or below, or when S stayed below NegativeSLimit for
// more than half of the samples after the parcel first became
// supersaturated.
func Classify(r *parcel.Result) Classification {
	if r == nil || len(r.Samples) == 0 {
		return Classification{Label: Stable, Reason: "no samples"}
	}

	clamps := 0
	overshoots := 0
	first := -1
	for i, s := range r.Samples {
		if s.Clamped {
			clamps++
		}
		if s.SPre > 0 {
			if s.S <= OvershootFloor {
				overshoots++
			}
			if first < 0 {
				first = i
			}
		}
	}

	if clamps > 0 {
		return Classification{Label: Unstable, Reason: fmt.Sprintf("vapor pressure clamped %d times", clamps)}
	}
	if overshoots > 0 {
		return Classification{Label: Unstable, Reason: "negative S"}
	}
	if first >= 0 {
		after := r.Samples[first:]
		negative := 0
		for _, s := range after {
			if s.S < NegativeSLimit {
				negative++
			}
		}
		if 2*negative > len(after) {
			return Classification{Label: Unstable, Reason: "persistently subsaturated"}
		}
	}
	return Classification{Label: Stable}
}

// StabilityNumber is the largest fraction of the saturation excess the sinks
// can remove in one step. Values of 1 or more let a single explicit step
// cross saturation.
func StabilityNumber(sc parcel.Scenario) float64 {
	k := sc.KRelax
	if sc.LiquidSink == parcel.LiquidCompetition {
		k *= maxSinkNorm(sc)
	}
	if sc.IceEnabled && len(sc.IceNuclei) > 0 {
		k += sc.IceDepositionParams().K0
	}
	return k * sc.Dt
}

func maxSinkNorm(sc parcel.Scenario) float64 {
	ref := sc.SinkReference
	if ref == "" && len(sc.Aerosols) > 0 {
		ref = sc.Aerosols[0].Name
	}
	var total, refSurface float64
	for _, p := range sc.Aerosols {
		total += p.SurfaceProxy()
		if p.Name == ref {
			refSurface = p.SurfaceProxy()
		}
	}
	if refSurface <= 0 {
		return 0
	}
	return total / refSurface
}
