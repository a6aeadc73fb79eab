package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bryanwahyu/ayurconnect/internal/domain/analysis"
)

// Parse decodes raw model text for the given kind and normalizes it.
// A lab reply may be an object, a bare findings array, or empty.
func Parse(kind analysis.Kind, text string) (analysis.Result, error) {
	text = stripFence(text)
	res := analysis.Result{Kind: kind}

	switch kind {
	case analysis.KindMedicine:
		var m analysis.MedicineResult
		if err := json.Unmarshal([]byte(text), &m); err != nil {
			return res, fmt.Errorf("decode medicine result: %w", err)
		}
		if err := m.Normalize(); err != nil {
			return res, err
		}
		res.Medicine = &m

	case analysis.KindLab:
		// empty text is how the model says "all normal" without a schema
		var l analysis.LabResult
		if text != "" {
			if err := json.Unmarshal([]byte(text), &l); err != nil {
				return res, fmt.Errorf("decode lab result: %w", err)
			}
		}
		if err := l.Normalize(); err != nil {
			return res, err
		}
		res.Lab = &l

	case analysis.KindDosha:
		var d analysis.DoshaResult
		if err := json.Unmarshal([]byte(text), &d); err != nil {
			return res, fmt.Errorf("decode dosha result: %w", err)
		}
		if err := d.Normalize(); err != nil {
			return res, err
		}
		res.Dosha = &d

	default:
		return res, fmt.Errorf("%w: %q", analysis.ErrInvalidRequest, kind)
	}
	return res, nil
}

// stripFence removes a surrounding ```json fence some models add anyway.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
