package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/cloudparcel/internal/parcel"
)

// Summary condenses a run into the scalars the CLI and the run store report.
type Summary struct {
	Scenario           string          `json:"scenario"`
	Samples            int             `json:"samples"`
	PeakS              float64         `json:"peak_s"`
	PeakTime           float64         `json:"peak_time"`
	MeanS              float64         `json:"mean_s"`
	StdS               float64         `json:"std_s"`
	MinS               float64         `json:"min_s"`
	MaxS               float64         `json:"max_s"`
	TimeSupersaturated float64         `json:"time_supersaturated"`
	FinalT             float64         `json:"final_temperature"`
	FinalQi            float64         `json:"final_qi"`
	Activated          map[string]bool `json:"activated"`
	IceOnset           *parcel.Onset   `json:"ice_onset,omitempty"`
	ClampCount         int             `json:"clamp_count"`
	Stability          Classification  `json:"stability"`
}

func Summarize(r *parcel.Result) Summary {
	sum := Summary{
		Scenario:   r.Scenario,
		Samples:    len(r.Samples),
		PeakS:      r.PeakS,
		PeakTime:   r.PeakTime,
		IceOnset:   r.IceOnset,
		ClampCount: r.ClampCount,
		Activated:  make(map[string]bool, len(r.Final)),
		Stability:  Classify(r),
	}
	for _, p := range r.Final {
		sum.Activated[p.Name] = p.Activated
	}
	if len(r.Samples) == 0 {
		return sum
	}

	s := r.Series(func(x parcel.Sample) float64 { return x.S })
	sum.MeanS, sum.StdS = stat.MeanStdDev(s, nil)
	if len(s) < 2 {
		sum.StdS = 0
	}
	sum.MinS = floats.Min(s)
	sum.MaxS = floats.Max(s)

	for i := 1; i < len(r.Samples); i++ {
		if r.Samples[i-1].S > 0 {
			sum.TimeSupersaturated += r.Samples[i].Time - r.Samples[i-1].Time
		}
	}

	last := r.Samples[len(r.Samples)-1]
	sum.FinalT = last.T
	sum.FinalQi = last.Qi
	return sum
}
