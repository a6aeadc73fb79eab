package prompt

import "github.com/sashabaranov/go-openai/jsonschema"

func herbSchema(summary string) jsonschema.Definition {
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"name":        {Type: jsonschema.String, Description: "Name of the Ayurvedic herb."},
			"summary":     {Type: jsonschema.String, Description: summary},
			"dosage":      {Type: jsonschema.String, Description: "Recommended dosage. E.g., '1-2 tablets twice a day'."},
			"form":        {Type: jsonschema.String, Description: "Common form of consumption. E.g., 'Powder, Tablet'."},
			"sideEffects": {Type: jsonschema.String, Description: "Potential side effects or precautions. Mention 'Consult a doctor' if applicable."},
		},
		Required: []string{"name", "summary", "dosage", "form", "sideEffects"},
	}
}

var lifestyleSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"suggestion": {Type: jsonschema.String, Description: "The core lifestyle recommendation. E.g., 'Engage in moderate daily exercise'."},
		"details":    {Type: jsonschema.String, Description: "Specific, quantifiable details for the suggestion. E.g., 'Brisk walking for 30 minutes'."},
		"duration":   {Type: jsonschema.String, Description: "Recommended duration for the practice. E.g., '5 times a week for at least 3 months'."},
		"source":     {Type: jsonschema.String, Description: "The book the suggestion is based on. E.g., 'Sushruta Samhita'."},
	},
	Required: []string{"suggestion", "details", "duration", "source"},
}

// MedicineSchema allows either the full analysis or an object holding only "error".
var MedicineSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"drugSummary": {
			Type:        jsonschema.String,
			Description: "A brief summary of the allopathic drug, its uses, and mechanism of action. Present only if the medicine name is valid.",
		},
		"herbSuggestions": {
			Type:        jsonschema.Array,
			Description: "Suggested complementary Ayurvedic herbs. Present only if the medicine name is valid.",
			Items:       ptr(herbSchema("Summary of the herb's benefits, particularly in relation to the drug's purpose.")),
		},
		"lifestyleSuggestions": {
			Type:        jsonschema.Array,
			Description: "Suggested lifestyle changes that complement the treatment. Present only if the medicine name is valid.",
			Items:       &lifestyleSchema,
		},
		"error": {
			Type:        jsonschema.String,
			Description: "Returned ONLY if the medicine name is not recognized. In that case it is the only field in the response.",
		},
	},
}

var labFindingSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"parameter": {Type: jsonschema.String, Description: "The lab marker that is out of range, e.g., 'Total Cholesterol'."},
		"status":    {Type: jsonschema.String, Description: "The status of the marker, e.g., 'High', 'Low'."},
		"summary":   {Type: jsonschema.String, Description: "A brief summary explaining the implication of this finding."},
		"herbSuggestions": {
			Type:        jsonschema.Array,
			Description: "Suggested complementary Ayurvedic herbs for this finding.",
			Items:       ptr(herbSchema("Summary of the herb's benefits related to the finding.")),
		},
		"lifestyleSuggestions": {
			Type:        jsonschema.Array,
			Description: "Suggested lifestyle changes for this finding.",
			Items:       &lifestyleSchema,
		},
	},
	Required: []string{"parameter", "status", "summary", "herbSuggestions", "lifestyleSuggestions"},
}

// LabSchema holds the findings list or an error.
var LabSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"findings": {
			Type:        jsonschema.Array,
			Description: "One finding per out-of-range biomarker. Empty when every marker is within range.",
			Items:       &labFindingSchema,
		},
		"error": {
			Type:        jsonschema.String,
			Description: "Returned ONLY if the input does not contain recognizable lab report data.",
		},
	},
}

// DoshaSchema describes the constitution classification.
var DoshaSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"dosha":       {Type: jsonschema.String, Description: "The dominant dosha or combination, e.g., 'Pitta' or 'Vata-Pitta'."},
		"explanation": {Type: jsonschema.String, Description: "Why the answers point to this dosha."},
		"recommendations": {
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"diet":      {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
				"lifestyle": {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
				"herbSuggestions": {
					Type:  jsonschema.Array,
					Items: ptr(herbSchema("Summary of how the herb balances this constitution.")),
				},
			},
			Required: []string{"diet", "lifestyle", "herbSuggestions"},
		},
		"sources": {
			Type:        jsonschema.Array,
			Description: "Classical texts the recommendations are drawn from.",
			Items:       &jsonschema.Definition{Type: jsonschema.String},
		},
	},
	Required: []string{"dosha", "explanation", "recommendations", "sources"},
}

func ptr[T any](v T) *T { return &v }
