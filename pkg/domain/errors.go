package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput matches any InvalidInputError.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConfiguration matches any ConfigurationError.
	ErrConfiguration = errors.New("configuration error")
)

// InvalidInputError reports a missing, non-numeric or implausible field.
type InvalidInputError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid input: %s=%v %s", e.Field, e.Value, e.Reason)
}

// Is lets errors.Is match ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// ConfigurationError reports a malformed optimal-range table entry.
type ConfigurationError struct {
	Factor Factor
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Factor, e.Reason)
}

// Is lets errors.Is match ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }
