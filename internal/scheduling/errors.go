package scheduling

import "fmt"

// ValidationError signals malformed input: an invalid time range, an
// out-of-bounds day of week or an unparseable date/time string.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError signals an overlap with another schedule entry or an
// existing appointment. It is distinct from ValidationError so callers
// can offer alternate slots instead of rejecting the request outright.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflictError creates a ConflictError.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}
