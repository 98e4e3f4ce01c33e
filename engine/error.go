package engine

import (
	"errors"
	"fmt"
)

// Common engine errors
var (
	// ErrOffsetOutOfRange indicates a search offset outside [0, len(subject)]
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrUnsupportedFlag indicates a modifier the backend cannot express
	ErrUnsupportedFlag = errors.New("unsupported flag")

	// ErrBadReference indicates a malformed or dangling replacement reference
	ErrBadReference = errors.New("bad replacement reference")

	// ErrBadDelimiter indicates a delimited pattern that cannot be split
	ErrBadDelimiter = errors.New("bad pattern delimiter")

	// ErrUnknownBackend indicates a backend name the engine does not know
	ErrUnknownBackend = errors.New("unknown backend")
)

// CompileError wraps a pattern compilation failure with its context
type CompileError struct {
	Backend Backend
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: compiling %q: %v", e.Backend, e.Pattern, e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// ReplaceError reports a replacement template the engine rejected
type ReplaceError struct {
	Template string
	Pos      int
	Err      error
}

// Error implements the error interface
func (e *ReplaceError) Error() string {
	return fmt.Sprintf("replacement %q at %d: %v", e.Template, e.Pos, e.Err)
}

// Unwrap returns the underlying error
func (e *ReplaceError) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid configuration field
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("engine config: %s %s", e.Field, e.Message)
}
