package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainai "github.com/bryanwahyu/ayurconnect/internal/domain/ai"
	"github.com/bryanwahyu/ayurconnect/internal/domain/analysis"
)

type fakeModel struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []domainai.Prompt
}

func (f *fakeModel) Generate(_ context.Context, p domainai.Prompt) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, p)
	return f.reply, f.err
}

func (f *fakeModel) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func newTestGateway(m *fakeModel, opts ...Option) *Gateway {
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return NewGateway(m, opts...)
}

const metforminReply = `{
  "drugSummary": "Metformin is a biguanide that lowers hepatic glucose production.",
  "herbSuggestions": [
    {"name": "Gudmar", "summary": "Supports glucose metabolism", "dosage": "500 mg", "form": "Capsule", "sideEffects": "Consult a doctor"},
    {"name": "gudmar", "summary": "dup", "dosage": "", "form": "", "sideEffects": ""}
  ],
  "lifestyleSuggestions": [
    {"suggestion": "Brisk walking", "details": "30 minutes", "duration": "3 months", "source": "Sushruta Samhita"},
    {"suggestion": "Fasting", "details": "", "duration": "", "source": ""}
  ]
}`

func TestGatewayAnalyze_Medicine(t *testing.T) {
	m := &fakeModel{reply: metforminReply}
	g := newTestGateway(m)

	res, err := g.Analyze(t.Context(), analysis.NewMedicineRequest("Metformin", nil))
	require.NoError(t, err)
	require.Equal(t, 1, m.calls())

	require.NotNil(t, res.Medicine)
	assert.NotEmpty(t, res.Medicine.DrugSummary)
	assert.Empty(t, res.Medicine.Error)
	require.Len(t, res.Medicine.HerbSuggestions, 1)
	assert.Equal(t, "gudmar", res.Medicine.HerbSuggestions[0].ID)
	assert.Len(t, res.Medicine.LifestyleSuggestions, 1)

	require.NotNil(t, m.prompts[0].Seed)
	assert.Equal(t, 42, *m.prompts[0].Seed)
}

func TestGatewayAnalyze_MedicineNotRecognized(t *testing.T) {
	m := &fakeModel{reply: `{"error": "The medicine name provided was not recognized.", "drugSummary": ""}`}
	g := newTestGateway(m)

	res, err := g.Analyze(t.Context(), analysis.NewMedicineRequest("Xyzzyflarp123", nil))
	require.NoError(t, err)
	assert.Equal(t, "The medicine name provided was not recognized.", res.DomainError())
	assert.Empty(t, res.Medicine.DrugSummary)
	assert.Nil(t, res.Medicine.HerbSuggestions)
}

func TestGatewayAnalyze_LabVariants(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		findings int
	}{
		{"object empty", `{"findings": [], "error": null}`, 0},
		{"bare array", `[]`, 0},
		{"empty text", "  ", 0},
		{"fenced", "```json\n{\"findings\":[{\"parameter\":\"TSH\",\"status\":\"High\",\"summary\":\"s\",\"herbSuggestions\":[],\"lifestyleSuggestions\":[]}]}\n```", 1},
		{"bare array one finding", `[{"parameter":"LDL","status":"High","summary":"s"}]`, 1},
		{"bare array two findings", `[{"parameter":"LDL","status":"High"},{"parameter":"TSH","status":"Low"}]`, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGateway(&fakeModel{reply: tt.reply})
			res, err := g.Analyze(t.Context(), analysis.NewLabRequest(analysis.LabInput{Text: "Hemoglobin: 13.5 g/dL (normal)"}, nil))
			require.NoError(t, err)
			require.NotNil(t, res.Lab)
			assert.NotNil(t, res.Lab.Findings)
			assert.Len(t, res.Lab.Findings, tt.findings)
			assert.Empty(t, res.DomainError())
		})
	}
}

func TestGatewayAnalyze_LabPromptHasNoSeed(t *testing.T) {
	m := &fakeModel{reply: `{"findings":[]}`}
	img := &analysis.InlineImage{MimeType: "image/jpeg", Data: base64.StdEncoding.EncodeToString([]byte("jpeg"))}
	_, err := newTestGateway(m).Analyze(t.Context(), analysis.NewLabRequest(analysis.LabInput{Image: img}, nil))
	require.NoError(t, err)
	assert.Nil(t, m.prompts[0].Seed)
	require.Len(t, m.prompts[0].Parts, 1)
	assert.NotNil(t, m.prompts[0].Parts[0].Inline)
}

func TestGatewayAnalyze_Dosha(t *testing.T) {
	reply := `{"dosha":"Pitta","explanation":"Warm and sharp.","recommendations":{"diet":["Cooling foods"],"lifestyle":["Moonlight walks"],"herbSuggestions":[{"name":"Amalaki","summary":"","dosage":"","form":"","sideEffects":""}]},"sources":["Charaka Samhita"]}`
	m := &fakeModel{reply: reply}
	answers := map[string]string{}
	for _, k := range analysis.DefaultQuestionnaire().Keys() {
		answers[k] = "something"
	}

	res, err := newTestGateway(m).Analyze(t.Context(), analysis.NewDoshaRequest(answers, nil))
	require.NoError(t, err)
	assert.Equal(t, "Pitta", res.Dosha.Dosha)
	assert.Equal(t, "amalaki", res.Dosha.Recommendations.HerbSuggestions[0].ID)
}

func TestGatewayAnalyze_RejectsBeforeModel(t *testing.T) {
	tests := []struct {
		name    string
		req     analysis.Request
		wantErr error
	}{
		{"unknown type", analysis.Request{Type: "astrology"}, analysis.ErrInvalidRequest},
		{"empty medicine", analysis.NewMedicineRequest(" ", nil), analysis.ErrValidation},
		{"empty lab", analysis.NewLabRequest(analysis.LabInput{}, nil), analysis.ErrValidation},
		{"bad mime", analysis.NewLabRequest(analysis.LabInput{Image: &analysis.InlineImage{MimeType: "text/html", Data: "aGk="}}, nil), analysis.ErrValidation},
		{"incomplete dosha", analysis.NewDoshaRequest(map[string]string{"build": "Thin"}, nil), analysis.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeModel{reply: "{}"}
			_, err := newTestGateway(m).Analyze(t.Context(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, m.calls())
		})
	}
}

func TestGatewayAnalyze_ModelFailures(t *testing.T) {
	t.Run("provider error is hidden", func(t *testing.T) {
		m := &fakeModel{err: errors.New("dial tcp: secret-host refused")}
		_, err := newTestGateway(m).Analyze(t.Context(), analysis.NewMedicineRequest("Metformin", nil))
		require.ErrorIs(t, err, ErrModelUnavailable)
		assert.NotContains(t, err.Error(), "secret-host")
	})

	t.Run("quota", func(t *testing.T) {
		m := &fakeModel{err: domainai.ErrQuotaExceeded}
		_, err := newTestGateway(m).Analyze(t.Context(), analysis.NewMedicineRequest("Metformin", nil))
		require.ErrorIs(t, err, ErrModelUnavailable)
		require.ErrorIs(t, err, domainai.ErrQuotaExceeded)
	})

	t.Run("unparseable", func(t *testing.T) {
		m := &fakeModel{reply: "I think Metformin is great"}
		_, err := newTestGateway(m).Analyze(t.Context(), analysis.NewMedicineRequest("Metformin", nil))
		require.ErrorIs(t, err, ErrInvalidModelOutput)
		assert.NotContains(t, err.Error(), "great")
		assert.Equal(t, 1, m.calls())
	})

	t.Run("neither summary nor error", func(t *testing.T) {
		m := &fakeModel{reply: `{"herbSuggestions": []}`}
		_, err := newTestGateway(m).Analyze(t.Context(), analysis.NewMedicineRequest("Metformin", nil))
		require.ErrorIs(t, err, ErrInvalidModelOutput)
	})

	t.Run("lab object without findings", func(t *testing.T) {
		m := &fakeModel{reply: `{"foo":1}`}
		_, err := newTestGateway(m).Analyze(t.Context(), analysis.NewLabRequest(analysis.LabInput{Text: "x"}, nil))
		require.ErrorIs(t, err, ErrInvalidModelOutput)
	})

	t.Run("finding without parameter", func(t *testing.T) {
		m := &fakeModel{reply: `{"findings":[{"status":"High"}]}`}
		_, err := newTestGateway(m).Analyze(t.Context(), analysis.NewLabRequest(analysis.LabInput{Text: "x"}, nil))
		require.ErrorIs(t, err, ErrInvalidModelOutput)
	})
}

func TestGatewayAnalyze_SeedOverride(t *testing.T) {
	seven := 7
	m := &fakeModel{reply: metforminReply}
	_, err := newTestGateway(m, WithSeed(&seven)).Analyze(t.Context(), analysis.NewMedicineRequest("Metformin", nil))
	require.NoError(t, err)
	assert.Equal(t, 7, *m.prompts[0].Seed)

	m = &fakeModel{reply: metforminReply}
	_, err = newTestGateway(m, WithSeed(nil)).Analyze(t.Context(), analysis.NewMedicineRequest("Metformin", nil))
	require.NoError(t, err)
	assert.Nil(t, m.prompts[0].Seed)
}
