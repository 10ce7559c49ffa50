// Package thermo provides the saturation thermodynamics used by the parcel
// integrator.
//
// The package is intentionally small and free of state:
//
//   - [SaturationVaporPressure]: Clausius-Clapeyron es(T) referenced to 0 °C
//   - [Supersaturation]: S = e/es - 1
//   - [VaporPressure]: e from relative humidity and temperature
//
// Temperatures are in Kelvin and pressures in Pascal throughout. None of the
// functions check their domain; callers must pass physically reasonable,
// strictly positive temperatures.
package thermo
