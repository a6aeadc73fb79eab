package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/bryanwahyu/ayurconnect/internal/domain/ai"
)

const (
	maxTokens    = 8192
	DefaultModel = "claude-sonnet-4-5"
)

// Client adapts the Messages API to ai.Model. Claude has no response schema
// parameter here, so the schema is appended to the system instruction and the
// JSON object is cut out of the reply.
type Client struct {
	api   anthropic.Client
	model string
}

func NewClient(apiKey, baseURL, model string, httpClient *http.Client) *Client {
	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{api: anthropic.NewClient(opts...), model: model}
}

func (c *Client) Generate(ctx context.Context, p ai.Prompt) (string, error) {
	system, err := systemText(p)
	if err != nil {
		return "", err
	}

	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(p.Parts))
	for _, part := range p.Parts {
		switch {
		case part.Inline == nil:
			blocks = append(blocks, anthropic.NewTextBlock(part.Text))
		case part.Inline.MimeType == "application/pdf":
			blocks = append(blocks, anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{Data: part.Inline.Data}))
		default:
			blocks = append(blocks, anthropic.NewImageBlockBase64(part.Inline.MimeType, part.Inline.Data))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxTokens,
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	// no seed parameter; a pinned seed means greedy sampling instead
	if p.Seed != nil {
		params.Temperature = anthropic.Float(0)
	}

	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %v", ai.ErrQuotaExceeded, err)
		}
		return "", fmt.Errorf("llm api call: %w", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		text.WriteString(block.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", ai.ErrEmptyResponse
	}
	return extractJSON(text.String())
}

func systemText(p ai.Prompt) (string, error) {
	if p.Schema == nil {
		return p.System, nil
	}
	schema, err := p.Schema.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("marshal schema: %w", err)
	}
	var b strings.Builder
	if p.System != "" {
		b.WriteString(p.System)
		b.WriteString("\n\n")
	}
	b.WriteString("Respond with a single JSON object only, no markdown and no commentary, valid against this JSON schema:\n")
	b.Write(schema)
	return b.String(), nil
}

// extractJSON returns the first JSON value in s, object or array, ignoring
// any prose or fences around it.
func extractJSON(s string) (string, error) {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", fmt.Errorf("no JSON in response")
	}
	var v json.RawMessage
	if err := json.NewDecoder(strings.NewReader(s[start:])).Decode(&v); err != nil {
		return "", fmt.Errorf("response does not contain valid JSON: %w", err)
	}
	return string(v), nil
}
