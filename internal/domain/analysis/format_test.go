package analysis

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMedicine(t *testing.T) {
	m := &MedicineResult{
		DrugSummary:     "Lowers blood sugar.",
		HerbSuggestions: []HerbSuggestion{{Name: "Gudmar", Summary: "s", Dosage: "d", Form: "f", SideEffects: "none"}},
		LifestyleSuggestions: []LifestyleSuggestion{
			{Suggestion: "Walk", Details: "30 minutes", Duration: "3 months", Source: "Sushruta Samhita"},
		},
	}
	text := FormatMedicine("Metformin", m)

	assert.True(t, strings.HasPrefix(text, "AyurConnect AI Analysis for: Metformin\n"))
	assert.Contains(t, text, "Drug Summary:\nLowers blood sugar.")
	assert.Contains(t, text, "- Gudmar:\n  Summary: s\n")
	assert.Contains(t, text, "  Source: Sushruta Samhita")
	assert.True(t, strings.HasSuffix(text, shareDisclaimer))
}

func TestFormatLab_AllNormal(t *testing.T) {
	text := FormatLab(LabQuery{FileName: "report.pdf"}, &LabResult{Findings: []LabFinding{}})
	assert.Contains(t, text, "For file: report.pdf")
	assert.Contains(t, text, "all markers appear to be within normal ranges")
}

func TestFormatLab_Findings(t *testing.T) {
	l := &LabResult{Findings: []LabFinding{{Parameter: "TSH", Status: "High", Summary: "thyroid"}}}
	text := FormatLab(LabQuery{Text: "TSH 6.1"}, l)
	assert.Contains(t, text, `For text: "TSH 6.1"`)
	assert.Contains(t, text, "Finding: TSH (High)")
}

func TestFormatDosha(t *testing.T) {
	d := &DoshaResult{
		Dosha:       "Vata",
		Explanation: "Air and space.",
		Recommendations: DoshaRecommendations{
			Diet: []string{"Warm meals"},
		},
		Sources: []string{"Charaka Samhita"},
	}
	text := FormatDosha(d)
	assert.Contains(t, text, "Dominant Dosha: Vata")
	assert.Contains(t, text, "About Vata:\nAir and space.")
	assert.Contains(t, text, "Diet Recommendations:\n- Warm meals")
	assert.Contains(t, text, "Sources:\n- Charaka Samhita")
}

func TestWhatsAppOrderURL(t *testing.T) {
	herbs := []HerbSuggestion{{Name: "Ashwagandha"}, {Name: "Arjuna Bark"}}

	link, err := WhatsAppOrderURL("+91 98765-43210", herbs)
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/919876543210", u.Path)
	assert.Equal(t, orderGreeting+"- Ashwagandha\n- Arjuna Bark", u.Query().Get("text"))
	assert.NotContains(t, link, "+")
}

func TestWhatsAppOrderURL_Errors(t *testing.T) {
	_, err := WhatsAppOrderURL("123", nil)
	require.ErrorIs(t, err, ErrNoHerbs)

	_, err = WhatsAppOrderURL("n/a", []HerbSuggestion{{Name: "Neem"}})
	require.ErrorIs(t, err, ErrValidation)
}
