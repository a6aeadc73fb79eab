package analysis

import (
	"fmt"
	"strings"
)

const shareDisclaimer = "Disclaimer: This tool provides information for educational purposes only and is not a substitute for professional medical advice. Always consult with a qualified healthcare provider."

const shareRule = "------------------------\n\n"

// FormatMedicine renders a medicine result as plain text for sharing.
func FormatMedicine(query string, m *MedicineResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "AyurConnect AI Analysis for: %s\n%s", query, shareRule)
	if m.Error != "" {
		fmt.Fprintf(&b, "%s\n\n", m.Error)
	}
	if m.DrugSummary != "" {
		fmt.Fprintf(&b, "Drug Summary:\n%s\n\n", m.DrugSummary)
	}
	writeHerbs(&b, "", m.HerbSuggestions)
	writeLifestyle(&b, "", m.LifestyleSuggestions)
	b.WriteString(shareDisclaimer)
	return strings.TrimSpace(b.String())
}

// LabQuery identifies what a lab analysis was run on.
type LabQuery struct {
	Text     string
	FileName string
}

// FormatLab renders a lab result as plain text for sharing.
func FormatLab(query LabQuery, l *LabResult) string {
	var b strings.Builder
	b.WriteString("AyurConnect AI Lab Report Analysis\n")
	if query.Text != "" {
		fmt.Fprintf(&b, "For text: %q\n", query.Text)
	}
	if query.FileName != "" {
		fmt.Fprintf(&b, "For file: %s\n", query.FileName)
	}
	b.WriteString(shareRule)

	switch {
	case l.Error != "":
		fmt.Fprintf(&b, "%s\n\n", l.Error)
	case len(l.Findings) == 0:
		b.WriteString("Based on the provided data, all markers appear to be within normal ranges.\n\n")
	default:
		b.WriteString("Analysis & Suggestions:\n\n")
		for _, f := range l.Findings {
			fmt.Fprintf(&b, "Finding: %s (%s)\n", f.Parameter, f.Status)
			fmt.Fprintf(&b, "Summary: %s\n\n", f.Summary)
			writeHerbs(&b, "  ", f.HerbSuggestions)
			writeLifestyle(&b, "  ", f.LifestyleSuggestions)
		}
	}
	b.WriteString(shareDisclaimer)
	return strings.TrimSpace(b.String())
}

// FormatDosha renders a dosha result as plain text for sharing.
func FormatDosha(d *DoshaResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "AyurConnect AI - My Dosha Analysis\n%s", shareRule)
	fmt.Fprintf(&b, "Dominant Dosha: %s\n\n", d.Dosha)
	if d.Explanation != "" {
		fmt.Fprintf(&b, "About %s:\n%s\n\n", d.Dosha, d.Explanation)
	}
	writeList(&b, "Diet Recommendations:", d.Recommendations.Diet)
	writeList(&b, "Lifestyle Recommendations:", d.Recommendations.Lifestyle)
	writeHerbs(&b, "", d.Recommendations.HerbSuggestions)
	writeList(&b, "Sources:", d.Sources)
	b.WriteString(shareDisclaimer)
	return strings.TrimSpace(b.String())
}

func writeHerbs(b *strings.Builder, indent string, herbs []HerbSuggestion) {
	if len(herbs) == 0 {
		return
	}
	fmt.Fprintf(b, "%sComplementary Herb Suggestions:\n", indent)
	for _, h := range herbs {
		fmt.Fprintf(b, "%s- %s:\n", indent, h.Name)
		fmt.Fprintf(b, "%s  Summary: %s\n", indent, h.Summary)
		fmt.Fprintf(b, "%s  Dosage: %s\n", indent, h.Dosage)
		fmt.Fprintf(b, "%s  Form: %s\n", indent, h.Form)
		fmt.Fprintf(b, "%s  Side Effects: %s\n\n", indent, h.SideEffects)
	}
}

func writeLifestyle(b *strings.Builder, indent string, items []LifestyleSuggestion) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%sLifestyle Recommendations:\n", indent)
	for _, s := range items {
		fmt.Fprintf(b, "%s- %s:\n", indent, s.Suggestion)
		if s.Details != "" {
			fmt.Fprintf(b, "%s  Details: %s\n", indent, s.Details)
		}
		if s.Duration != "" {
			fmt.Fprintf(b, "%s  Duration: %s\n", indent, s.Duration)
		}
		if s.Reasoning != "" {
			fmt.Fprintf(b, "%s  Reasoning: %s\n", indent, s.Reasoning)
		}
		fmt.Fprintf(b, "%s  Source: %s\n\n", indent, s.Source)
	}
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(title + "\n")
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
	b.WriteString("\n")
}
