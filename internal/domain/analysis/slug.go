package analysis

import "strings"

// Slug derives the stable identifier of a herb from its display name:
// lowercased, trimmed, with every run of whitespace collapsed into one hyphen.
// Slug(Slug(s)) == Slug(s).
func Slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
