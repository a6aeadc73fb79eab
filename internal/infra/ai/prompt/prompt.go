package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bryanwahyu/ayurconnect/internal/domain/ai"
	"github.com/bryanwahyu/ayurconnect/internal/domain/analysis"
)

// DefaultSeed is pinned for medicine and dosha requests.
const DefaultSeed = 42

const books = `the books "Rasayana: Ayurvedic herbs for longevity and rejuvenation" by H.S. Puri and "Sushruta Samhita"`

const medicineNotRecognized = "The medicine name provided was not recognized. Please check the spelling and try again."

const labNotRecognized = "The provided input does not appear to be a valid lab report. Please provide text or an image containing lab results."

// Build selects the template and schema for req.Type. The request is assumed
// to be validated already.
func Build(req analysis.Request) (ai.Prompt, error) {
	switch req.Type {
	case analysis.KindMedicine:
		return Medicine(req.MedicineName, req.Personalization), nil
	case analysis.KindLab:
		if req.Input == nil {
			return ai.Prompt{}, analysis.NewValidationError("input", "text or image is required")
		}
		return Lab(*req.Input, req.Personalization), nil
	case analysis.KindDosha:
		return Dosha(req.Answers, req.Personalization), nil
	}
	return ai.Prompt{}, fmt.Errorf("%w: %q", analysis.ErrInvalidRequest, req.Type)
}

// Medicine builds the medicine analysis prompt.
func Medicine(name string, p *analysis.Personalization) ai.Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, `You are an expert AI assistant with deep knowledge in both allopathic medicine and Ayurveda. A user has provided the following allopathic medicine name: %q.
Your tasks are:
1. First, verify if %q is a recognized allopathic medicine or molecule name.
2. If the name is NOT valid or not recognized, your entire response MUST be a JSON object with only one key: "error", and its value should be a string like %q. Do not include any other fields.
3. If the name IS valid, provide a detailed analysis. Your response MUST be a JSON object containing the 'drugSummary', 'herbSuggestions', and 'lifestyleSuggestions' fields, and no 'error' field.
4. For 'lifestyleSuggestions', provide 2-3 relevant suggestions based on the principles found in %s. Each lifestyle suggestion must be specific and actionable, including quantifiable details (e.g., 'for 30 minutes daily') and a recommended duration (e.g., 'for at least 2 months'). You must cite the book's title in the 'source' field.
`, name, name, medicineNotRecognized, books)
	writePersonalization(&b, p)
	b.WriteString("\nIMPORTANT: Structure your entire response as a single JSON object that conforms to the provided schema. Do not add any text outside of the JSON object.")

	return ai.Prompt{
		Parts:      []ai.Part{ai.TextPart(b.String())},
		Schema:     &MedicineSchema,
		SchemaName: "medicine_analysis",
		Seed:       seed(),
	}
}

// Lab builds the lab report prompt: a system instruction plus text and/or inline parts.
func Lab(in analysis.LabInput, p *analysis.Personalization) ai.Prompt {
	var sys strings.Builder
	fmt.Fprintf(&sys, `You are an expert AI assistant specializing in analyzing medical lab reports from both an allopathic and Ayurvedic perspective. Your task is to analyze the provided lab report data (which can be text, an image or a PDF). Follow these instructions carefully:
1. First, determine if the input contains recognizable lab report data (e.g., biomarkers like 'Cholesterol', 'Hemoglobin', 'TSH', with corresponding values and units). If no recognizable biomarkers are found, you MUST return an error.
2. If the input is NOT a valid lab report, your entire response MUST be a JSON object with a single 'error' key. The error message should be %q
3. If the input IS a valid lab report, identify key biomarkers that are outside of the standard normal range.
4. For EACH biomarker that is out of range, create a distinct finding object.
5. If all biomarkers are within the normal range, return {"findings": []}.
6. For each out-of-range finding, provide a simple summary explaining what the result might indicate.
7. For each finding, suggest 1-2 complementary Ayurvedic herbs that could help bring the marker back to balance.
8. For each finding, suggest 1-2 relevant lifestyle modifications based on the principles found in %s. Each lifestyle suggestion must be specific and actionable, including quantifiable details and a recommended duration. You must cite the book's title in the 'source' field of the lifestyle suggestion.
`, labNotRecognized, books)
	writePersonalization(&sys, p)
	sys.WriteString("\nIMPORTANT: Your entire response MUST be a single JSON object conforming to the provided schema, containing either the 'findings' array or the 'error' message. Do not add any text outside of the JSON object.")

	var parts []ai.Part
	if text := strings.TrimSpace(in.Text); text != "" {
		parts = append(parts, ai.TextPart("Analyze the following lab report data:\n\n"+text))
	}
	if in.Image != nil {
		parts = append(parts, ai.Part{Inline: &ai.InlineData{MimeType: in.Image.MimeType, Data: in.Image.Data}})
	}

	return ai.Prompt{
		System:     sys.String(),
		Parts:      parts,
		Schema:     &LabSchema,
		SchemaName: "lab_report_analysis",
	}
}

// Dosha builds the constitution prompt from the full answer set.
func Dosha(answers map[string]string, p *analysis.Personalization) ai.Prompt {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(`You are an expert Ayurvedic practitioner. Based on the following answers to a Prakriti (constitution) questionnaire, determine the user's dominant dosha (Vata, Pitta, Kapha, or a combination).
Answers:
`)
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: %s\n", k, answers[k])
	}
	fmt.Fprintf(&b, `
Provide a short explanation of why the answers indicate this dosha, 3-5 diet recommendations, 3-5 lifestyle recommendations and 1-3 balancing Ayurvedic herbs. Base the recommendations on classical texts such as %s and list the texts you relied on in 'sources'.
`, books)
	writePersonalization(&b, p)
	b.WriteString("\nIMPORTANT: Structure your entire response as a single JSON object that conforms to the provided schema. Do not add any text outside of the JSON object.")

	return ai.Prompt{
		Parts:      []ai.Part{ai.TextPart(b.String())},
		Schema:     &DoshaSchema,
		SchemaName: "dosha_analysis",
		Seed:       seed(),
	}
}

func writePersonalization(b *strings.Builder, p *analysis.Personalization) {
	if p.IsZero() {
		return
	}
	b.WriteString("\nTailor every suggestion to this user and avoid anything unsafe for them:\n")
	if v := strings.TrimSpace(p.Age); v != "" {
		fmt.Fprintf(b, "- Age: %s\n", v)
	}
	if v := strings.TrimSpace(p.Gender); v != "" {
		fmt.Fprintf(b, "- Gender: %s\n", v)
	}
	if v := strings.TrimSpace(p.Context); v != "" {
		fmt.Fprintf(b, "- Allergies, symptoms or other context: %s\n", v)
	}
}

func seed() *int {
	s := DefaultSeed
	return &s
}
