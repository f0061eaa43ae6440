package eye

import (
	"errors"
	"fmt"
)

// Common errors returned by eye operations
var (
	// ErrMissingArgument indicates a required parameter was empty
	ErrMissingArgument = errors.New("eye: missing argument")

	// ErrConfigLoadFailed indicates eye did not confirm loading a config
	ErrConfigLoadFailed = errors.New("eye: config load failed")

	// ErrCommandFailed indicates the command output did not match the expected
	// success pattern
	ErrCommandFailed = errors.New("eye: command failed")

	// ErrDecode indicates the info report could not be decoded
	ErrDecode = errors.New("eye: report decode")
)

// ArgumentError reports a required parameter that was absent.
// It is returned before any command is run.
type ArgumentError struct {
	Op    Operation
	Field string
}

// Error returns a formatted error message
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("eye %s: %s is required", e.Op.String(), e.Field)
}

// Unwrap returns ErrMissingArgument
func (e *ArgumentError) Unwrap() error {
	return ErrMissingArgument
}

// OpError represents a failed eye command
type OpError struct {
	// Op is the operation that failed
	Op Operation
	// Command is the command line that was issued
	Command string
	// Output is the raw captured output
	Output string
	// Err is the underlying error
	Err error
}

// Error returns a formatted error message
func (e *OpError) Error() string {
	return fmt.Sprintf("eye %s %q: %v. Output: %s", e.Op.String(), e.Command, e.Err, e.Output)
}

// Unwrap returns the underlying error for error chain inspection
func (e *OpError) Unwrap() error {
	return e.Err
}

// MultiError aggregates multiple errors from bulk operations
type MultiError struct {
	// Errors contains all accumulated errors
	Errors []error
}

// Error returns a summary of the accumulated errors
func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors occurred", len(m.Errors))
}

// Add appends an error to the collection if it's not nil
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// Err returns nil if no errors occurred, otherwise returns the MultiError itself
func (m *MultiError) Err() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}

// Unwrap exposes the accumulated errors to errors.Is and errors.As
func (m *MultiError) Unwrap() []error {
	return m.Errors
}
