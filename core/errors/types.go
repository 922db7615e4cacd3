// ABOUTME: Custom error types for the pipeline core
// ABOUTME: Provides the error taxonomy and the named invalid-record policies

package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents a missing document in the content store.
// Missing inputs (profile, collection index pages) are treated as
// empty/default by callers, never as batch failures.
type NotFoundError struct {
	Path string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Path)
}

// ValidationError represents a schema or invariant validation failure.
type ValidationError struct {
	Schema  string
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error (%s): %s", e.Schema, e.Message)
	}
	return fmt.Sprintf("validation error (%s) on field '%s': %s", e.Schema, e.Field, e.Message)
}

// StoreError represents a read/write failure against the content store.
// These are orchestration failures: they propagate and abort the run.
type StoreError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *StoreError) Unwrap() error { return e.Err }

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// InvalidRecordPolicy names the two handling strategies for validation
// failures. Import paths tolerate bad records; derived artifacts do not:
// a malformed generated feed indicates an aggregator bug, not a data
// quality issue.
type InvalidRecordPolicy int

const (
	// SkipRecord discards the offending record, logs, and continues the
	// batch. The existing on-disk document is left untouched.
	SkipRecord InvalidRecordPolicy = iota

	// AbortRun fails the aggregation unit immediately.
	AbortRun
)

// String returns the policy name for log fields.
func (p InvalidRecordPolicy) String() string {
	if p == AbortRun {
		return "abort"
	}
	return "skip"
}
