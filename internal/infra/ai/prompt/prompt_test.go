package prompt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/ayurconnect/internal/domain/analysis"
)

func TestBuild_Medicine(t *testing.T) {
	p, err := Build(analysis.NewMedicineRequest("Metformin", &analysis.Personalization{Age: "52", Context: "allergic to ginger"}))
	require.NoError(t, err)

	require.Len(t, p.Parts, 1)
	assert.Contains(t, p.Parts[0].Text, `"Metformin"`)
	assert.Contains(t, p.Parts[0].Text, "- Age: 52")
	assert.Contains(t, p.Parts[0].Text, "allergic to ginger")
	assert.Empty(t, p.System)
	require.NotNil(t, p.Seed)
	assert.Equal(t, DefaultSeed, *p.Seed)
	assert.Equal(t, "medicine_analysis", p.SchemaName)
}

func TestBuild_LabParts(t *testing.T) {
	in := analysis.LabInput{Text: "TSH 6.1", Image: &analysis.InlineImage{MimeType: "application/pdf", Data: "JVBERi0="}}
	p, err := Build(analysis.NewLabRequest(in, nil))
	require.NoError(t, err)

	require.Len(t, p.Parts, 2)
	assert.Contains(t, p.Parts[0].Text, "TSH 6.1")
	require.NotNil(t, p.Parts[1].Inline)
	assert.Equal(t, "application/pdf", p.Parts[1].Inline.MimeType)
	assert.NotEmpty(t, p.System)
	assert.Nil(t, p.Seed)
	assert.NotContains(t, p.System, "Tailor every suggestion")
}

func TestBuild_DoshaSortedAnswers(t *testing.T) {
	p, err := Build(analysis.NewDoshaRequest(map[string]string{"skin": "Dry", "build": "Thin"}, nil))
	require.NoError(t, err)

	text := p.Parts[0].Text
	assert.Less(t, strings.Index(text, "- build: Thin"), strings.Index(text, "- skin: Dry"))
	require.NotNil(t, p.Seed)
}

func TestBuild_UnknownType(t *testing.T) {
	_, err := Build(analysis.Request{Type: "horoscope"})
	require.ErrorIs(t, err, analysis.ErrInvalidRequest)
}

func TestSchemasMarshal(t *testing.T) {
	for name, s := range map[string]json.Marshaler{
		"medicine": &MedicineSchema,
		"lab":      &LabSchema,
		"dosha":    &DoshaSchema,
	} {
		raw, err := s.MarshalJSON()
		require.NoError(t, err, name)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(raw, &decoded), name)
		assert.Equal(t, "object", decoded["type"], name)
	}
}
