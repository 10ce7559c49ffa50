package aerosol

import "errors"

// ErrInvalidPopulation indicates a population with non-physical parameters.
var ErrInvalidPopulation = errors.New("aerosol: invalid population")
