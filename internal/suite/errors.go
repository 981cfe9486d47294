package suite

import (
	"errors"
	"fmt"
)

// ErrSuiteRunning is returned when Run is invoked while a previous invocation
// has not finished.
var ErrSuiteRunning = errors.New("suite already running")

// PreconditionError reports that a required collaborator or capability was
// absent or misconfigured before the scenario could exercise anything.
type PreconditionError struct {
	Message string // What was missing or misconfigured
}

// NewPreconditionError creates a PreconditionError with a formatted message.
func NewPreconditionError(format string, args ...any) *PreconditionError {
	return &PreconditionError{Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	return e.Message
}

// AssertionError reports that preconditions held but the observed state did
// not match the expected post-condition.
type AssertionError struct {
	Message  string // What check failed
	Observed string // What the suite actually saw
	Expected string // What the scenario expected
}

// NewAssertionError creates an AssertionError.
func NewAssertionError(message, observed, expected string) *AssertionError {
	return &AssertionError{Message: message, Observed: observed, Expected: expected}
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	if e.Observed == "" && e.Expected == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (observed %s, expected %s)", e.Message, e.Observed, e.Expected)
}

// Detail returns the observed-vs-expected line, or empty when the error
// carries none.
func (e *AssertionError) Detail() string {
	if e.Observed == "" && e.Expected == "" {
		return ""
	}
	return fmt.Sprintf("observed %s, expected %s", e.Observed, e.Expected)
}
