package storage

import (
	"errors"
	"fmt"
)

// Common storage error types
var (
	ErrStorageUnavailable = errors.New("storage service unavailable")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidConfig      = errors.New("invalid storage configuration")
)

// StorageError represents a storage operation error with additional context
type StorageError struct {
	Op       string // Operation that failed (e.g., "ListBuckets")
	Provider string // Storage provider involved in the operation
	Err      error  // Underlying error
}

func (e *StorageError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("storage %s operation failed on %s: %v", e.Op, e.Provider, e.Err)
	}
	return fmt.Sprintf("storage %s operation failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError
func NewStorageError(op, provider string, err error) *StorageError {
	return &StorageError{
		Op:       op,
		Provider: provider,
		Err:      err,
	}
}

// IsUnavailable returns true if the error indicates the provider could not be reached
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}

// IsPermissionDenied returns true if the caller lacks access to the operation
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}
