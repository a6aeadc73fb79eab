package ai

import "errors"

var (
	// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
	ErrQuotaExceeded = errors.New("ai quota exceeded")
	// ErrEmptyResponse is returned when the provider answers without any content.
	ErrEmptyResponse = errors.New("ai returned an empty response")
)
