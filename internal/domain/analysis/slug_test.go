package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"two words", "Arjuna Bark", "arjuna-bark"},
		{"extra whitespace", "  Arjuna \t  Bark ", "arjuna-bark"},
		{"single word", "Ashwagandha", "ashwagandha"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slug(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Slug(got), "slug must be idempotent")
		})
	}
}
