package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidID is returned when a document identifier is malformed.
	ErrInvalidID = errors.New("invalid document id")

	// ErrInvalidResult is returned when a decode target has the wrong shape.
	ErrInvalidResult = errors.New("invalid result target")

	// ErrDuplicate is returned when an insert collides with an existing
	// identifier.
	ErrDuplicate = errors.New("duplicate document")

	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store is closed")

	// Entity-specific "not found" errors

	// ErrListingNotFound indicates that the requested listing does not exist.
	ErrListingNotFound = fmt.Errorf("%w: listing", ErrNotFound)

	// ErrRequestNotFound indicates that the requested request does not exist.
	ErrRequestNotFound = fmt.Errorf("%w: request", ErrNotFound)
)

// IsNotFoundError reports whether err is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError is a store failure with the collection and operation attached.
type StoreError struct {
	Collection string // e.g. "foods"
	Operation  string // e.g. "find", "updateOne"
	Err        error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s on %s failed: %v", e.Operation, e.Collection, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err with the collection and operation that failed.
func NewStoreError(collection, operation string, err error) *StoreError {
	return &StoreError{
		Collection: collection,
		Operation:  operation,
		Err:        err,
	}
}
