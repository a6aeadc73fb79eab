package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// HerbSuggestion is a complementary herb. ID is derived from Name.
type HerbSuggestion struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Summary     string `json:"summary"`
	Dosage      string `json:"dosage"`
	Form        string `json:"form"`
	SideEffects string `json:"sideEffects"`
}

// LifestyleSuggestion is an actionable recommendation that cites a textual source.
type LifestyleSuggestion struct {
	Suggestion string `json:"suggestion"`
	Details    string `json:"details,omitempty"`
	Duration   string `json:"duration,omitempty"`
	Reasoning  string `json:"reasoning,omitempty"`
	Source     string `json:"source"`
}

// MedicineResult holds either a full analysis or an Error, never both.
type MedicineResult struct {
	DrugSummary          string                `json:"drugSummary,omitempty"`
	HerbSuggestions      []HerbSuggestion      `json:"herbSuggestions"`
	LifestyleSuggestions []LifestyleSuggestion `json:"lifestyleSuggestions"`
	Error                string                `json:"error,omitempty"`
}

// LabFinding describes one out-of-range biomarker.
type LabFinding struct {
	Parameter            string                `json:"parameter"`
	Status               string                `json:"status"`
	Summary              string                `json:"summary"`
	HerbSuggestions      []HerbSuggestion      `json:"herbSuggestions"`
	LifestyleSuggestions []LifestyleSuggestion `json:"lifestyleSuggestions"`
}

// LabResult is an ordered list of findings or an Error. An empty list means
// every marker is in range.
type LabResult struct {
	Findings []LabFinding `json:"findings"`
	Error    string       `json:"error,omitempty"`
}

// DoshaRecommendations groups the advice attached to a dosha result.
type DoshaRecommendations struct {
	Diet            []string         `json:"diet"`
	Lifestyle       []string         `json:"lifestyle"`
	HerbSuggestions []HerbSuggestion `json:"herbSuggestions"`
}

// DoshaResult is the constitution classification.
type DoshaResult struct {
	Dosha           string               `json:"dosha"`
	Explanation     string               `json:"explanation"`
	Recommendations DoshaRecommendations `json:"recommendations"`
	Sources         []string             `json:"sources"`
}

// Result wraps exactly one typed result, selected by Kind.
type Result struct {
	Kind     Kind
	Medicine *MedicineResult
	Lab      *LabResult
	Dosha    *DoshaResult
}

// Payload returns the value that is encoded as the response body.
func (r Result) Payload() any {
	switch r.Kind {
	case KindMedicine:
		return r.Medicine
	case KindLab:
		return r.Lab
	case KindDosha:
		return r.Dosha
	}
	return nil
}

// DomainError returns the model supplied error message, if any.
func (r Result) DomainError() string {
	switch {
	case r.Medicine != nil:
		return r.Medicine.Error
	case r.Lab != nil:
		return r.Lab.Error
	}
	return ""
}

// MarshalJSON emits only the error field for an error-only result.
func (m MedicineResult) MarshalJSON() ([]byte, error) {
	if m.Error != "" {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{m.Error})
	}
	type plain MedicineResult
	p := plain(m)
	p.HerbSuggestions = nonNil(p.HerbSuggestions)
	p.LifestyleSuggestions = nonNil(p.LifestyleSuggestions)
	return json.Marshal(p)
}

// MarshalJSON never emits a null findings list.
func (l LabResult) MarshalJSON() ([]byte, error) {
	if l.Error != "" {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{l.Error})
	}
	type plain LabResult
	p := plain(l)
	p.Findings = nonNil(p.Findings)
	return json.Marshal(p)
}

// UnmarshalJSON accepts {"findings": [...]}, {"error": "..."} or a bare
// findings array. An object carrying neither key is not a lab result.
func (l *LabResult) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var findings []LabFinding
		if err := json.Unmarshal(b, &findings); err != nil {
			return err
		}
		*l = LabResult{Findings: nonNil(findings)}
		return nil
	}

	var raw struct {
		Findings *[]LabFinding `json:"findings"`
		Error    *string       `json:"error"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch {
	case raw.Error != nil && strings.TrimSpace(*raw.Error) != "":
		*l = LabResult{Error: *raw.Error}
	case raw.Findings != nil:
		*l = LabResult{Findings: nonNil(*raw.Findings)}
	default:
		return fmt.Errorf("%w: lab result has neither findings nor error", ErrIncompleteResult)
	}
	return nil
}

// Normalize enforces the medicine invariants: an error-only result drops
// every other field, a full result needs a drug summary.
func (m *MedicineResult) Normalize() error {
	m.Error = strings.TrimSpace(m.Error)
	if m.Error != "" {
		*m = MedicineResult{Error: m.Error}
		return nil
	}
	if strings.TrimSpace(m.DrugSummary) == "" {
		return fmt.Errorf("%w: medicine result has neither drugSummary nor error", ErrIncompleteResult)
	}
	m.HerbSuggestions = NormalizeHerbs(m.HerbSuggestions)
	m.LifestyleSuggestions = NormalizeLifestyle(m.LifestyleSuggestions)
	return nil
}

// Normalize enforces the lab invariants.
func (l *LabResult) Normalize() error {
	l.Error = strings.TrimSpace(l.Error)
	if l.Error != "" {
		*l = LabResult{Error: l.Error}
		return nil
	}
	l.Findings = nonNil(l.Findings)
	for i := range l.Findings {
		f := &l.Findings[i]
		if strings.TrimSpace(f.Parameter) == "" {
			return fmt.Errorf("%w: finding %d has no parameter", ErrIncompleteResult, i)
		}
		f.HerbSuggestions = NormalizeHerbs(f.HerbSuggestions)
		f.LifestyleSuggestions = NormalizeLifestyle(f.LifestyleSuggestions)
	}
	return nil
}

// Normalize enforces the dosha invariants.
func (d *DoshaResult) Normalize() error {
	d.Dosha = strings.TrimSpace(d.Dosha)
	if d.Dosha == "" {
		return fmt.Errorf("%w: dosha result has no classification", ErrIncompleteResult)
	}
	d.Recommendations.Diet = nonNil(d.Recommendations.Diet)
	d.Recommendations.Lifestyle = nonNil(d.Recommendations.Lifestyle)
	d.Recommendations.HerbSuggestions = NormalizeHerbs(d.Recommendations.HerbSuggestions)
	d.Sources = nonNil(d.Sources)
	return nil
}

// NormalizeHerbs assigns slug IDs, drops nameless herbs and later duplicates.
func NormalizeHerbs(herbs []HerbSuggestion) []HerbSuggestion {
	out := make([]HerbSuggestion, 0, len(herbs))
	seen := make(map[string]bool, len(herbs))
	for _, h := range herbs {
		h.ID = Slug(h.Name)
		if h.ID == "" || seen[h.ID] {
			continue
		}
		seen[h.ID] = true
		out = append(out, h)
	}
	return out
}

// NormalizeLifestyle drops suggestions that do not cite a source.
func NormalizeLifestyle(items []LifestyleSuggestion) []LifestyleSuggestion {
	out := make([]LifestyleSuggestion, 0, len(items))
	for _, s := range items {
		if strings.TrimSpace(s.Source) == "" || strings.TrimSpace(s.Suggestion) == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
