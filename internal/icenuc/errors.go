package icenuc

import "errors"

var (
	// ErrInvalidNuclei indicates an IN population with non-physical parameters.
	ErrInvalidNuclei = errors.New("icenuc: invalid ice-nucleating population")

	// ErrInvalidDeposition indicates negative deposition coefficients.
	ErrInvalidDeposition = errors.New("icenuc: invalid deposition parameters")
)
