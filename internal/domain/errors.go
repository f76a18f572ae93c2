package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyBusinessName is returned when BrandInputs has no business name.
	ErrEmptyBusinessName = errors.New("business name cannot be empty")

	// ErrEmptyOffering is returned when BrandInputs has no offering description.
	ErrEmptyOffering = errors.New("offering cannot be empty")

	// ErrInvalidKitID is returned when a brand kit has a nil identifier.
	ErrInvalidKitID = errors.New("brand kit ID cannot be empty")
)
