package analysis

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRequest is returned for requests whose operation tag is unknown.
	ErrInvalidRequest = errors.New("invalid request type")
	// ErrValidation is the sentinel every *ValidationError unwraps to.
	ErrValidation = errors.New("validation error")
	// ErrIncompleteResult marks model output that parsed but violates the result invariants.
	ErrIncompleteResult = errors.New("incomplete analysis result")
)

// FieldError describes a validation failure for one request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field-level problem found in a request.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("%s %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+" "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}
