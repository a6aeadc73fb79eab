package openai

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/ayurconnect/internal/domain/ai"
	"github.com/bryanwahyu/ayurconnect/internal/infra/ai/prompt"
)

func TestClientGenerate(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"error\":\"unknown\"}"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, "", srv.Client())
	out, err := c.Generate(t.Context(), prompt.Medicine("Xyzzyflarp123", nil))
	require.NoError(t, err)
	assert.Equal(t, `{"error":"unknown"}`, out)

	assert.Equal(t, DefaultModel, body["model"])
	assert.EqualValues(t, 42, body["seed"])
	format, ok := body["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_schema", format["type"])
}

func TestClientGenerate_InlineImage(t *testing.T) {
	var body struct {
		Messages []struct {
			Role    string          `json:"role"`
			Content json.RawMessage `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"findings\":[]}"}}]}`))
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL, "gemini-2.5-flash", srv.Client())
	p := ai.Prompt{
		System: "sys",
		Parts: []ai.Part{
			ai.TextPart("look"),
			{Inline: &ai.InlineData{MimeType: "image/png", Data: "iVBORw0K"}},
		},
	}
	_, err := c.Generate(t.Context(), p)
	require.NoError(t, err)

	require.Len(t, body.Messages, 2)
	assert.Equal(t, "system", body.Messages[0].Role)
	assert.Contains(t, string(body.Messages[1].Content), "data:image/png;base64,iVBORw0K")
}

func TestClientGenerate_Quota(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Resource has been exhausted","type":"rate_limit_error"}}`))
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL, "", srv.Client())
	_, err := c.Generate(t.Context(), prompt.Medicine("Metformin", nil))
	require.ErrorIs(t, err, ai.ErrQuotaExceeded)
}

func TestClientGenerate_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL, "", srv.Client())
	_, err := c.Generate(t.Context(), prompt.Medicine("Metformin", nil))
	require.ErrorIs(t, err, ai.ErrEmptyResponse)
}

func TestIsReasoningModel(t *testing.T) {
	assert.True(t, isReasoningModel("o3-mini"))
	assert.True(t, isReasoningModel("gpt-5"))
	assert.False(t, isReasoningModel("gemini-2.5-flash"))
}
