package rxselect

import (
	"errors"
	"fmt"
)

// Common rxselect errors
var (
	// ErrInvalidSelector indicates a selector value that is not nil, an
	// int, a string, a Key, or a slice of those
	ErrInvalidSelector = errors.New("invalid selector")

	// ErrEngine indicates a failure reported by the regex engine
	ErrEngine = errors.New("regex engine error")

	// ErrNilSubject indicates MatchReplace was given no subject to update
	ErrNilSubject = errors.New("nil subject")
)

// SelectorError reports a selector value ParseSelector cannot classify
type SelectorError struct {
	Value  any
	Reason string
}

// Error implements the error interface
func (e *SelectorError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidSelector, e.Reason)
}

// Unwrap returns ErrInvalidSelector
func (e *SelectorError) Unwrap() error {
	return ErrInvalidSelector
}

// EngineError wraps an error from the regex engine with the operation and
// pattern that caused it
type EngineError struct {
	Op      string
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *EngineError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Pattern, e.Err)
}

// Unwrap returns the engine error
func (e *EngineError) Unwrap() error {
	return e.Err
}

// Is reports ErrEngine as matching every EngineError
func (e *EngineError) Is(target error) bool {
	return target == ErrEngine
}
