// Package icenuc holds the ice-phase closures: a temperature-only logistic
// onset model for biological ice-nucleating particles and the canonical ice
// deposition vapor sink.
//
// Nothing here has a time dimension. The parcel integrator decides when to
// evaluate [CheckNucleation] and owns the one-way ice-active latch.
package icenuc
