package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
var (
	// ErrNilDependency is returned by constructors when a required
	// collaborator is missing.
	ErrNilDependency = errors.New("required dependency is nil")

	// ErrPersistence is returned when a generated kit could not be stored.
	// The API layer maps it to HTTP 500.
	ErrPersistence = errors.New("brand kit could not be saved")
)

// BrandKitServiceError is a custom error type for brand kit service errors.
type BrandKitServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for BrandKitServiceError.
func (e *BrandKitServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("brand kit service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("brand kit service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *BrandKitServiceError) Unwrap() error {
	return e.Err
}

// NewBrandKitServiceError creates a new BrandKitServiceError.
func NewBrandKitServiceError(operation, message string, err error) *BrandKitServiceError {
	return &BrandKitServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
