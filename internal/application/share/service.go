package share

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/ayurconnect/internal/domain/analysis"
	"github.com/bryanwahyu/ayurconnect/internal/domain/share"
)

// Request carries a result the user chose to share. Personalization is never
// part of it.
type Request struct {
	Type     analysis.Kind   `json:"type"`
	Query    string          `json:"query"`
	FileName string          `json:"fileName,omitempty"`
	Result   json.RawMessage `json:"result"`
}

type Link struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
	Text      string    `json:"text"`
}

type Service struct {
	store share.Store
	ttl   time.Duration
	now   func() time.Time
}

func NewService(store share.Store) *Service {
	return &Service{store: store, ttl: share.LinkTTL, now: time.Now}
}

// Create renders the share summary, stores it and returns a temporary link.
func (s *Service) Create(ctx context.Context, r Request) (Link, error) {
	text, err := Render(r)
	if err != nil {
		return Link{}, err
	}
	key := fmt.Sprintf("shares/%s/%s.txt", r.Type, uuid.NewString())
	if err := s.store.Put(ctx, key, text); err != nil {
		return Link{}, fmt.Errorf("store share: %w", err)
	}
	url, err := s.store.Link(ctx, key, s.ttl)
	if err != nil {
		return Link{}, fmt.Errorf("presign share: %w", err)
	}
	return Link{URL: url, ExpiresAt: s.now().Add(s.ttl), Text: text}, nil
}

// Render formats the plain text summary for a shared result.
func Render(r Request) (string, error) {
	if len(r.Result) == 0 {
		return "", analysis.NewValidationError("result", "is required")
	}
	switch r.Type {
	case analysis.KindMedicine:
		var m analysis.MedicineResult
		if err := json.Unmarshal(r.Result, &m); err != nil {
			return "", analysis.NewValidationError("result", "is not a medicine result")
		}
		if r.Query == "" {
			return "", analysis.NewValidationError("query", "is required")
		}
		return analysis.FormatMedicine(r.Query, &m), nil
	case analysis.KindLab:
		var l analysis.LabResult
		if err := json.Unmarshal(r.Result, &l); err != nil {
			return "", analysis.NewValidationError("result", "is not a lab result")
		}
		return analysis.FormatLab(analysis.LabQuery{Text: r.Query, FileName: r.FileName}, &l), nil
	case analysis.KindDosha:
		var d analysis.DoshaResult
		if err := json.Unmarshal(r.Result, &d); err != nil || d.Dosha == "" {
			return "", analysis.NewValidationError("result", "is not a dosha result")
		}
		return analysis.FormatDosha(&d), nil
	}
	return "", fmt.Errorf("%w: %q", analysis.ErrInvalidRequest, r.Type)
}
