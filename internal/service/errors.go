package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/memoboard-api/internal/domain"
	"github.com/phrazzld/memoboard-api/internal/store"
)

// Sentinel errors returned by the services. Callers check them with errors.Is.
var (
	// ErrPostNotFound indicates that the requested board post does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrPostNotFound = errors.New("post not found")

	// ErrMemoNotFound indicates that the requested memo does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrMemoNotFound = errors.New("memo not found")
)

// ServiceError wraps errors from the services with context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_post", "upsert_memo")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
// Validation errors and not-found conditions are returned as sentinels
// without wrapping.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrPostNotFound), errors.Is(err, store.ErrPostNotFound):
		return ErrPostNotFound
	case errors.Is(err, ErrMemoNotFound), errors.Is(err, store.ErrMemoNotFound):
		return ErrMemoNotFound
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return err
	}

	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return err
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
