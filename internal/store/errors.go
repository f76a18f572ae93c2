package store

import (
	"errors"
	"fmt"
)

// Sentinels shared by every KitStore backend.
var (
	// ErrNotFound is the parent of every not-found sentinel.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity wraps the reason a kit was refused before, or by, the
	// backend.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrKitNotFound is returned by Get for an id that was never stored or
	// has expired.
	ErrKitNotFound = fmt.Errorf("%w: brand kit", ErrNotFound)
)

// IsNotFoundError reports whether err wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError records which backend operation failed and on what entity.
type StoreError struct {
	Entity    string // e.g. KitEntity
	Operation string // "put" or "get"
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	msg := e.Operation + " operation on " + e.Entity + " failed: " + e.Message
	if e.Err == nil {
		return msg
	}
	return msg + ": " + e.Err.Error()
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Message: message, Err: err}
}
