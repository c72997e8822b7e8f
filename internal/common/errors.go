package common

import (
	"errors"
	"fmt"
)

var (
	// ErrorNotFound is returned by local repositories when a row is absent.
	ErrorNotFound = errors.New("not found")

	// ErrValidation classifies input rejected before any request is sent.
	ErrValidation = errors.New("validation error")

	// ErrIllegalTransition is returned when a session operation is not allowed
	// from the current session status.
	ErrIllegalTransition = errors.New("illegal session transition")

	// ErrTokenExpired marks a persisted token whose exp claim is in the past.
	ErrTokenExpired = errors.New("token expired")
)

// ValidationError describes a single rejected input field. It matches
// ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
