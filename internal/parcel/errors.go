package parcel

import (
	"errors"
	"fmt"
)

// Domain errors for scenario construction and runs.
var (
	// ErrInvalidScenario indicates a scenario rejected before the run starts.
	ErrInvalidScenario = errors.New("parcel: invalid scenario")

	// ErrHorizonReached indicates a Stepper advanced past t_end.
	ErrHorizonReached = errors.New("parcel: horizon reached")
)

// ScenarioError wraps a validation failure with the offending field.
type ScenarioError struct {
	Field   string
	Wrapped error
}

func (e *ScenarioError) Error() string {
	if e.Wrapped == nil {
		return fmt.Sprintf("%v: %s", ErrInvalidScenario, e.Field)
	}
	return fmt.Sprintf("%v: %s: %v", ErrInvalidScenario, e.Field, e.Wrapped)
}

func (e *ScenarioError) Unwrap() []error {
	if e.Wrapped == nil {
		return []error{ErrInvalidScenario}
	}
	return []error{ErrInvalidScenario, e.Wrapped}
}

func invalid(field, format string, args ...any) error {
	return &ScenarioError{Field: field, Wrapped: fmt.Errorf(format, args...)}
}
