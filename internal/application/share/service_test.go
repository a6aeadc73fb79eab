package share

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/ayurconnect/internal/domain/analysis"
)

type memStore struct {
	objects map[string]string
	ttl     time.Duration
}

func (m *memStore) Put(_ context.Context, key, text string) error {
	m.objects[key] = text
	return nil
}

func (m *memStore) Link(_ context.Context, key string, ttl time.Duration) (string, error) {
	m.ttl = ttl
	return "https://objects.test/" + key + "?sig=x", nil
}

func TestCreate(t *testing.T) {
	store := &memStore{objects: map[string]string{}}
	s := NewService(store)

	link, err := s.Create(t.Context(), Request{
		Type:   analysis.KindMedicine,
		Query:  "Metformin",
		Result: []byte(`{"drugSummary":"Lowers sugar","herbSuggestions":[],"lifestyleSuggestions":[]}`),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(link.URL, "https://objects.test/shares/medicine/"))
	assert.Equal(t, 24*time.Hour, store.ttl)
	require.Len(t, store.objects, 1)
	for _, text := range store.objects {
		assert.Contains(t, text, "AyurConnect AI Analysis for: Metformin")
		assert.Equal(t, link.Text, text)
	}
}

func TestRender_Errors(t *testing.T) {
	_, err := Render(Request{Type: analysis.KindLab})
	require.ErrorIs(t, err, analysis.ErrValidation)

	_, err = Render(Request{Type: analysis.KindDosha, Result: []byte(`{"explanation":"x"}`)})
	require.ErrorIs(t, err, analysis.ErrValidation)

	_, err = Render(Request{Type: "tarot", Result: []byte(`{}`)})
	require.ErrorIs(t, err, analysis.ErrInvalidRequest)
}

func TestRender_LabAllNormal(t *testing.T) {
	text, err := Render(Request{Type: analysis.KindLab, FileName: "cbc.pdf", Result: []byte(`{"findings":[]}`)})
	require.NoError(t, err)
	assert.Contains(t, text, "For file: cbc.pdf")
	assert.Contains(t, text, "within normal ranges")
}
