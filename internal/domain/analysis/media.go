package analysis

import (
	"encoding/base64"
	"fmt"
	"slices"
)

// MaxFileSize is the upper bound for an attached lab report, in bytes.
const MaxFileSize = 30 << 20

// AcceptedMIMETypes lists the attachment types a lab report may use.
var AcceptedMIMETypes = []string{"image/png", "image/jpeg", "application/pdf"}

// IsAcceptedMIMEType reports whether mimeType may be sent as a lab attachment.
func IsAcceptedMIMEType(mimeType string) bool {
	return slices.Contains(AcceptedMIMETypes, mimeType)
}

// ValidateAttachment checks the MIME type and decoded size of an inline attachment.
func ValidateAttachment(img *InlineImage) error {
	if !IsAcceptedMIMEType(img.MimeType) {
		return NewValidationError("input.image.mimeType", fmt.Sprintf("unsupported type %q", img.MimeType))
	}
	if img.Data == "" {
		return NewValidationError("input.image.data", "is required")
	}
	if base64.StdEncoding.DecodedLen(len(img.Data)) > MaxFileSize+3 {
		return NewValidationError("input.image.data", fmt.Sprintf("exceeds %d MB", MaxFileSize>>20))
	}
	raw, err := base64.StdEncoding.DecodeString(img.Data)
	if err != nil {
		return NewValidationError("input.image.data", "is not valid base64")
	}
	if len(raw) > MaxFileSize {
		return NewValidationError("input.image.data", fmt.Sprintf("exceeds %d MB", MaxFileSize>>20))
	}
	return nil
}
