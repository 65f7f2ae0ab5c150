package repositories

import (
	"errors"
	"fmt"
)

// ErrStorageUnavailable matches every failure of a backing store. Callers
// may retry on it; repositories never retry themselves.
var ErrStorageUnavailable = errors.New("storage unavailable")

// StorageError wraps a backend failure with the operation that hit it
type StorageError struct {
	// Op names the repository operation, e.g. "get session"
	Op string

	// Err is the error returned by the driver
	Err error
}

// NewStorageError wraps err for op
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorageUnavailable, e.Op, e.Err)
}

// Unwrap exposes the driver error
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrStorageUnavailable) hold for every StorageError
func (e *StorageError) Is(target error) bool {
	return target == ErrStorageUnavailable
}
