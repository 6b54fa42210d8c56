package domain

import (
	"errors"
	"fmt"
)

// Credential and authorization errors.
var (
	ErrCredentialMalformed = errors.New("credential malformed")
	ErrCredentialExpired   = errors.New("credential expired")
	ErrUnauthenticated     = errors.New("not authenticated")
	ErrForbidden           = errors.New("access forbidden")
)

// Account errors.
var (
	ErrAccountExists      = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)

// Profile repository errors.
var (
	ErrProfileNotFound        = errors.New("profile not found")
	ErrConcurrentModification = errors.New("profile was modified concurrently")
)

// Verification errors.
var ErrVerificationNotFound = errors.New("verification token not found or expired")

// ValidationError identifies the single profile field that rejected a new
// value. Callers match it with errors.As to surface per-field feedback.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
