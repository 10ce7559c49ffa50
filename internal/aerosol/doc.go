// Package aerosol models cloud condensation nuclei populations and their
// activation under kappa-Köhler theory.
//
// A [Population] is a plain value. [CheckActivation] never mutates its
// argument; it returns an updated copy together with the activation flag and
// the critical supersaturation it compared against, so callers decide when a
// population's state is replaced.
package aerosol
