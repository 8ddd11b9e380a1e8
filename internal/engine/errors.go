package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry indicates a geometry violating the tube ordering.
	ErrInvalidGeometry = errors.New("engine: invalid geometry")

	// ErrUnknownMode indicates an unrecognised deflection mode name.
	ErrUnknownMode = errors.New("engine: unknown deflection mode")

	// ErrInvalidOptions indicates non-positive sample or step counts.
	ErrInvalidOptions = errors.New("engine: invalid options")
)

// ConfigurationError reports which geometry field is wrong and why.
type ConfigurationError struct {
	Field   string
	Reason  string
	Wrapped error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %s %s", e.Wrapped, e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Wrapped
}
