package thermo

import "math"

// SaturationVaporPressure returns es in Pa at temperature t (K) using a
// simple Clausius-Clapeyron form with constant latent heat.
func SaturationVaporPressure(t float64) float64 {
	return Es0 * math.Exp((Lv/Rv)*(1/T0-1/t))
}

// Supersaturation returns e/es - 1. Negative values mean subsaturated air.
func Supersaturation(e, es float64) float64 {
	return e/es - 1
}

// VaporPressure returns the vapor pressure for relative humidity rh (0-1)
// at temperature t.
func VaporPressure(rh, t float64) float64 {
	return rh * SaturationVaporPressure(t)
}
