package sweep

import (
	"strconv"

	"github.com/san-kum/cloudparcel/internal/aerosol"
	"github.com/san-kum/cloudparcel/internal/config"
	"github.com/san-kum/cloudparcel/internal/parcel"
)

// Variant is one point of a sweep: a label, the swept value and the change
// it makes to a copy of the base scenario.
type Variant struct {
	Label string
	Value float64
	Apply func(*parcel.Scenario)
}

func label(prefix string, v float64, unit string) string {
	return prefix + "=" + strconv.FormatFloat(v, 'g', -1, 64) + unit
}

// Updraft maps each velocity through the cooling policy.
func Updraft(policy config.CoolingPolicy, ws ...float64) ([]Variant, error) {
	out := make([]Variant, 0, len(ws))
	for _, w := range ws {
		rate, err := policy.Rate(w)
		if err != nil {
			return nil, err
		}
		out = append(out, Variant{
			Label: label("w", w, " m/s"),
			Value: w,
			Apply: func(sc *parcel.Scenario) { sc.CoolingRate = rate },
		})
	}
	return out, nil
}

func CoolingRate(rates ...float64) []Variant {
	out := make([]Variant, 0, len(rates))
	for _, r := range rates {
		r := r
		out = append(out, Variant{
			Label: label("cooling", r, " K/s"),
			Value: r,
			Apply: func(sc *parcel.Scenario) { sc.CoolingRate = r },
		})
	}
	return out
}

func TimeStep(dts ...float64) []Variant {
	out := make([]Variant, 0, len(dts))
	for _, dt := range dts {
		dt := dt
		out = append(out, Variant{
			Label: label("dt", dt, " s"),
			Value: dt,
			Apply: func(sc *parcel.Scenario) { sc.Dt = dt },
		})
	}
	return out
}

// PopulationNumber sets the number concentration of the named aerosol
// population. A value of zero removes the population from the run.
func PopulationNumber(name string, ns ...float64) []Variant {
	out := make([]Variant, 0, len(ns))
	for _, n := range ns {
		n := n
		out = append(out, Variant{
			Label: label(name+" N", n, " m^-3"),
			Value: n,
			Apply: func(sc *parcel.Scenario) {
				kept := make([]aerosol.Population, 0, len(sc.Aerosols))
				for _, p := range sc.Aerosols {
					if p.Name == name {
						if n == 0 {
							continue
						}
						p.N = n
					}
					kept = append(kept, p)
				}
				sc.Aerosols = kept
			},
		})
	}
	return out
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	step := (hi - lo) / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
