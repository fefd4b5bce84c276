package models

import "errors"

// Error kinds shared by every layer. None of them are retried.
var (
	ErrNotFound             = errors.New("record not found")
	ErrUniquenessViolation  = errors.New("value already taken")
	ErrReferentialIntegrity = errors.New("referenced account does not exist")
	ErrCredentialAccess     = errors.New("credentials are write-only and may not be read")
	ErrForbidden            = errors.New("not allowed to modify this resource")
)

// ValidationError reports a field that failed a business rule.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err (or anything it wraps) is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
