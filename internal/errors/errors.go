// Package errors provides custom error types for pricing and CLI errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidKind      = errors.New("invalid option kind")
	ErrInvalidPayer     = errors.New("invalid swap payer")
	ErrUsage            = errors.New("usage error")
	ErrConfigInvalid    = errors.New("invalid configuration")
)

// Process exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// ValidationError represents a rejected input value.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s (%v): %s", e.Err, e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError classified under sentinel.
func NewValidationError(sentinel error, field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
		Err:     sentinel,
	}
}

// InvalidParameter is shorthand for a ValidationError wrapping ErrInvalidParameter.
func InvalidParameter(field string, value interface{}, message string) *ValidationError {
	return NewValidationError(ErrInvalidParameter, field, value, message)
}

// UsageError represents malformed or missing command-line input.
type UsageError struct {
	Command string
	Err     error
}

func (e *UsageError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("usage: %v", e.Err)
	}
	return fmt.Sprintf("usage [%s]: %v", e.Command, e.Err)
}

// Unwrap returns both the sentinel and the underlying cause.
func (e *UsageError) Unwrap() []error {
	return []error{ErrUsage, e.Err}
}

// NewUsageError creates a new UsageError.
func NewUsageError(command string, err error) *UsageError {
	return &UsageError{
		Command: command,
		Err:     err,
	}
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	default:
		return ExitError
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
