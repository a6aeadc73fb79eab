package client

import (
	"errors"
	"fmt"

	"github.com/bryanwahyu/ayurconnect/internal/domain/analysis"
)

// ErrCancelled is the outcome of a request that was superseded or
// cancelled. It is not a failure and should not be shown to users.
var ErrCancelled = errors.New("request cancelled")

// ValidationError is a local input problem; nothing was sent.
type ValidationError = analysis.ValidationError

// RequestFailedError covers network failures, non-2xx replies and bodies
// that are not the expected JSON. Its message is always the generic retry
// text; Status, Detail and Err are kept for diagnostics.
type RequestFailedError struct {
	Status int
	Detail string
	Err    error
}

func (e *RequestFailedError) Error() string {
	return "Failed to get a response from the server. Please try again."
}

func (e *RequestFailedError) Unwrap() error { return e.Err }

// Diagnostic describes what actually went wrong, for logs.
func (e *RequestFailedError) Diagnostic() string {
	switch {
	case e.Err != nil && e.Status != 0:
		return fmt.Sprintf("status %d: %v", e.Status, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case e.Detail != "":
		return fmt.Sprintf("status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("status %d", e.Status)
}

// DomainError is a well-formed reply whose error field is set, such as an
// unrecognised medicine name. Message is meant for the user verbatim.
type DomainError struct {
	Kind    analysis.Kind
	Message string
}

func (e *DomainError) Error() string { return e.Message }
