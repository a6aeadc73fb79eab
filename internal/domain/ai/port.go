package ai

import (
	"context"
	"encoding/json"
)

// InlineData is binary content (an image or a PDF) passed to the model as base64.
type InlineData struct {
	MimeType string
	Data     string
}

// Part is one piece of user content. Exactly one of Text or Inline is set.
type Part struct {
	Text   string
	Inline *InlineData
}

// TextPart is shorthand for a text-only part.
func TextPart(s string) Part { return Part{Text: s} }

// Prompt is everything a model call needs.
type Prompt struct {
	System     string
	Parts      []Part
	Schema     json.Marshaler
	SchemaName string
	// Seed pins the provider sampler when non-nil. Best effort only.
	Seed *int
}

// Model generates a JSON document for a prompt and returns the raw text.
type Model interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}
