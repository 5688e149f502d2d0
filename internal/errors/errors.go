// Package errors defines the process-level error type of the parkinglot CLI.
// Every error that ends the process carries the exit code it should produce.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes for parkinglot
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitInvalidCapacity = 2
	ExitConfigError     = 3
	ExitInputError      = 4
)

// Error is the base error type for parkinglot
type Error struct {
	Code    int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *Error) ExitCode() int {
	return e.Code
}

// New creates a new Error
func New(code int, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an Error
func Wrap(code int, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// InvalidCapacity returns the error that halts a session after a rejected lot creation
func InvalidCapacity(cause error) *Error {
	return Wrap(ExitInvalidCapacity, "please enter valid capacity", cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *Error {
	return Wrap(ExitConfigError, message, cause)
}

// InputError returns an error for unreadable command input
func InputError(message string, cause error) *Error {
	return Wrap(ExitInputError, message, cause)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var parkErr *Error
	if errors.As(err, &parkErr) {
		return parkErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
