package analysis

import (
	"fmt"
	"strings"
)

// Kind is the operation tag that selects a prompt/schema pair.
type Kind string

const (
	KindMedicine Kind = "medicine"
	KindLab      Kind = "lab"
	KindDosha    Kind = "dosha"
)

// Kinds lists every supported operation tag.
var Kinds = []Kind{KindMedicine, KindLab, KindDosha}

// Valid reports whether k is a known operation tag.
func (k Kind) Valid() bool {
	switch k {
	case KindMedicine, KindLab, KindDosha:
		return true
	}
	return false
}

// Personalization is optional context supplied by the user.
type Personalization struct {
	Age     string `json:"age,omitempty"`
	Gender  string `json:"gender,omitempty"`
	Context string `json:"context,omitempty"`
}

// IsZero reports whether no personalization field is set.
func (p *Personalization) IsZero() bool {
	return p == nil || (strings.TrimSpace(p.Age) == "" && strings.TrimSpace(p.Gender) == "" && strings.TrimSpace(p.Context) == "")
}

// InlineImage is a base64 encoded attachment.
type InlineImage struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// LabInput is the payload of a lab request. At least one field must be set.
type LabInput struct {
	Text  string       `json:"text,omitempty"`
	Image *InlineImage `json:"image,omitempty"`
}

// Request is the tagged union sent from the client to the gateway.
// Only the fields belonging to Type are meaningful.
type Request struct {
	Type            Kind              `json:"type"`
	MedicineName    string            `json:"medicineName,omitempty"`
	Input           *LabInput         `json:"input,omitempty"`
	Answers         map[string]string `json:"answers,omitempty"`
	Personalization *Personalization  `json:"personalization,omitempty"`
}

// NewMedicineRequest builds a medicine request.
func NewMedicineRequest(name string, p *Personalization) Request {
	return Request{Type: KindMedicine, MedicineName: strings.TrimSpace(name), Personalization: p}
}

// NewLabRequest builds a lab request.
func NewLabRequest(input LabInput, p *Personalization) Request {
	return Request{Type: KindLab, Input: &input, Personalization: p}
}

// NewDoshaRequest builds a dosha request.
func NewDoshaRequest(answers map[string]string, p *Personalization) Request {
	return Request{Type: KindDosha, Answers: answers, Personalization: p}
}

// Validate checks the variant-specific required fields. Dosha answers are
// checked against q.
func (r *Request) Validate(q Questionnaire) error {
	switch r.Type {
	case KindMedicine:
		if strings.TrimSpace(r.MedicineName) == "" {
			return NewValidationError("medicineName", "is required")
		}
	case KindLab:
		if r.Input == nil || (strings.TrimSpace(r.Input.Text) == "" && r.Input.Image == nil) {
			return NewValidationError("input", "text or image is required")
		}
		if r.Input.Image != nil {
			return ValidateAttachment(r.Input.Image)
		}
	case KindDosha:
		missing := q.Missing(r.Answers)
		if len(missing) == 0 {
			return nil
		}
		verr := &ValidationError{}
		for _, key := range missing {
			verr.Errors = append(verr.Errors, FieldError{Field: "answers." + key, Message: "is required"})
		}
		return verr
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRequest, r.Type)
	}
	return nil
}
