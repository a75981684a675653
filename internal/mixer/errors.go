package mixer

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrInvalidConfig reports a configuration rejected at construction time.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrShapeMismatch reports a forward input whose shape disagrees with the
	// configured model.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// ConfigError provides detailed information about a rejected configuration
// value. It matches ErrInvalidConfig with errors.Is.
type ConfigError struct {
	Field  string // YAML name of the offending option (e.g., "patch_size")
	Value  any    // Rejected value
	Reason string // Constraint that was violated
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s=%v: %s", ErrInvalidConfig, e.Field, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// ShapeError describes a tensor whose shape does not match what an operation
// expects. It matches ErrShapeMismatch with errors.Is.
//
// A -1 in Expected accepts any size for that axis.
type ShapeError struct {
	Op       string // Operation that rejected the input (e.g., "patch_embedding")
	Expected []int
	Got      []int
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s: expected %v, got %v", ErrShapeMismatch, e.Op, e.Expected, e.Got)
}

// Unwrap returns ErrShapeMismatch.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

// checkShape returns a *ShapeError unless got has the same rank as expected
// and agrees on every axis whose expected size is not -1.
func checkShape(op string, expected, got []int) error {
	if len(expected) != len(got) {
		return &ShapeError{Op: op, Expected: expected, Got: got}
	}
	for i, want := range expected {
		if want != -1 && want != got[i] {
			return &ShapeError{Op: op, Expected: expected, Got: got}
		}
	}
	return nil
}
