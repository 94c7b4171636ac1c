// Package service provides the listing and request use cases.
package service

import (
	"errors"
	"fmt"
)

// Service-level sentinel errors. Callers check them with errors.Is; the API
// layer maps them to HTTP status codes. Not-found and forbidden conditions
// surface as store.ErrNotFound and authz.ErrForbidden respectively.
var (
	// ErrMissingRequestFilter indicates a request listing named neither a
	// user nor a listing. It is reported as a validation error.
	ErrMissingRequestFilter = errors.New("userEmail or foodId is required")

	// ErrMissingStatus indicates a status update without a status.
	ErrMissingStatus = errors.New("foodStatus is required")
)

// ServiceError wraps an unexpected failure with the service and operation
// that hit it.
type ServiceError struct {
	Service string // e.g. "listing"
	Op      string // e.g. "update"
	Err     error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
	}
	return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, op string, err error) error {
	return &ServiceError{
		Service: service,
		Op:      op,
		Err:     err,
	}
}
