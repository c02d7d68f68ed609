// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Storage errors.
var (
	// ErrKeyNotFound is returned by key-value stores when a key holds no value.
	ErrKeyNotFound = errors.New("key not found")

	// ErrCorruptRecord is returned when a stored value cannot be decoded.
	ErrCorruptRecord = errors.New("stored record is corrupt")

	// ErrUnsupportedStorageDriver is returned when the configured driver is unknown.
	ErrUnsupportedStorageDriver = errors.New("storage driver must be: memory, sqlite, postgres, or redis")
)

// StorageErrorCode defines error codes for storage errors.
// Format: STO-XXYYYY where XX is category and YYYY is specific error.
type StorageErrorCode string

const (
	// Lookup errors (01XXXX)
	ErrCodeKeyNotFound StorageErrorCode = "STO-010001"

	// Data errors (02XXXX)
	ErrCodeCorruptRecord StorageErrorCode = "STO-020001"

	// Configuration errors (03XXXX)
	ErrCodeUnsupportedStorageDriver StorageErrorCode = "STO-030001"
)

// StorageError represents a storage error with code and message.
type StorageError struct {
	Code    StorageErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError with the given code and message.
func NewStorageError(code StorageErrorCode, message string, err error) *StorageError {
	return &StorageError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
