package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrMapping is returned when a result row does not have the expected
	// shape. It indicates schema drift and is never recoverable per request.
	ErrMapping = errors.New("row mapping failed")

	// ErrExecution is the sentinel wrapped by ExecutionError.
	ErrExecution = errors.New("query execution failed")

	// ErrInvalidEntity is returned when the database rejects a row because
	// it violates a constraint.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrPostNotFound indicates that the requested board post does not exist.
	ErrPostNotFound = fmt.Errorf("%w: post", ErrNotFound)

	// ErrMemoNotFound indicates that the requested memo does not exist.
	ErrMemoNotFound = fmt.Errorf("%w: memo", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// MappingError reports a result row that is missing a required column or
// holds a value of the wrong type.
type MappingError struct {
	Entity string
	Column string
	Reason string
}

// Error implements the error interface.
func (e *MappingError) Error() string {
	return fmt.Sprintf("%s: %s column %q: %s", ErrMapping, e.Entity, e.Column, e.Reason)
}

// Unwrap allows errors.Is(err, ErrMapping).
func (e *MappingError) Unwrap() error {
	return ErrMapping
}

// ExecutionError wraps a failure of the underlying query executor:
// connection loss, timeouts, cancellation or a rejected statement.
type ExecutionError struct {
	Entity    string // The entity type (e.g., "post", "memo")
	Operation string // The operation that failed (e.g., "list", "insert")
	Err       error  // Original error
}

// Error implements the error interface for ExecutionError.
func (e *ExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %v", e.Operation, e.Entity, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed", e.Operation, e.Entity)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ExecutionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrExecution}
	}
	return []error{ErrExecution, e.Err}
}

// NewExecutionError wraps err for the given entity and operation. Errors
// that already carry a store kind (not found, mapping, execution) are
// returned unchanged so callers can still match them.
func NewExecutionError(entity, operation string, err error) error {
	if err == nil {
		return nil
	}
	if IsNotFoundError(err) || errors.Is(err, ErrMapping) || errors.Is(err, ErrExecution) {
		return err
	}
	return &ExecutionError{Entity: entity, Operation: operation, Err: err}
}
