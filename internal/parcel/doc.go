// Package parcel integrates an adiabatically rising air parcel with explicit
// Euler steps.
//
// Each step couples saturation thermodynamics, kappa-Köhler activation of
// every aerosol population, a one-way biological ice-nucleation latch and the
// condensation and deposition vapor sinks that feed back on supersaturation:
//
//   - [Scenario]: every parameter of one run, validated by [New]
//   - [Stepper]: the loop body, one [Sample] per call to [Stepper.Next]
//   - [Simulator]: runs a Stepper to the horizon, feeding metrics and observers
//   - [Result]: the recorded series and its summary scalars
//
// # Example
//
//	sc := parcel.DefaultScenario()
//	sc.IceEnabled = true
//	sim, err := parcel.New(sc)
//	if err != nil {
//	    return err
//	}
//	res, err := sim.Run(ctx)
//
// # Numerical behavior
//
// Vapor pressure is clamped at zero after every subtractive sink; that is the
// only guard against the explicit sink overshooting. Large k*dt values drive
// supersaturation to zero or below without raising errors; see the metrics
// package for post-hoc stability classification.
//
// Simulators and Steppers are NOT safe for concurrent use. Independent runs
// share nothing, so sweeps may run one Simulator per goroutine.
package parcel
