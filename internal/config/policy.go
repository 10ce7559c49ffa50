package config

import (
	"fmt"

	"github.com/san-kum/cloudparcel/internal/thermo"
)

// CoolingPolicy maps an updraft velocity (m/s) to a parcel cooling rate (K/s).
type CoolingPolicy string

const (
	// PolicyLinear cools 0.01 K/s per m/s of updraft.
	PolicyLinear CoolingPolicy = "linear"
	// PolicyDryAdiabatic cools at g/cp per metre of ascent.
	PolicyDryAdiabatic CoolingPolicy = "dry_adiabatic"
)

const linearCoolingPerUpdraft = 0.01

func (p CoolingPolicy) Rate(w float64) (float64, error) {
	switch p {
	case "", PolicyLinear:
		return linearCoolingPerUpdraft * w, nil
	case PolicyDryAdiabatic:
		return thermo.Gravity / thermo.Cp * w, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, string(p))
	}
}
