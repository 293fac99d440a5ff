package domain

import "errors"

// Scan errors.
var (
	ErrIdentityNotFound    = errors.New("invalid identifier")
	ErrMalformedIdentifier = errors.New("malformed identifier")
	ErrScanInProgress      = errors.New("scan already in progress")
	ErrScanConflict        = errors.New("concurrent scan detected")
	ErrNoOpenEvent         = errors.New("no open attendance event")
	ErrEventNotFound       = errors.New("attendance event not found")
)

// Account and CRUD errors.
var (
	ErrAccessDenied       = errors.New("access denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrIdentityExists     = errors.New("identifier already registered")
	ErrItemNotFound       = errors.New("item not found")
	ErrValidation         = errors.New("validation failed")
)

// ValidationError carries field-level messages for a rejected payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
