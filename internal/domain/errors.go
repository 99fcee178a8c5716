// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrEmptyEmail is returned when a required email is missing.
	ErrEmptyEmail = errors.New("email cannot be empty")

	// ErrInvalidRole is returned for a role outside user, instructor and admin.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidPrice is returned when a price is not a positive amount.
	ErrInvalidPrice = errors.New("invalid price")

	// ErrEmptyClassID is returned when a cart item does not reference a class.
	ErrEmptyClassID = errors.New("class ID cannot be empty")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError. When err is nil the error
// unwraps to ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Field, e.Message, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is makes every ValidationError match ErrValidation as well as its cause.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
