package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/ayurconnect/internal/domain/ai"
)

const (
	maxTokens = 8192

	// DefaultBaseURL is Gemini's OpenAI compatible endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultModel   = "gemini-2.5-flash"
)

type Client struct {
	*openai.Client
	Model string
}

// NewClient creates a chat completion client. An empty baseURL targets Gemini.
func NewClient(apiKey, baseURL, model string, httpClient *http.Client) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model}
}

// Generate sends one chat completion with a json_schema response format.
func (c *Client) Generate(ctx context.Context, p ai.Prompt) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.Model,
		Messages: messages(p),
		Seed:     p.Seed,
	}
	if p.Schema != nil {
		name := p.SchemaName
		if name == "" {
			name = "response"
		}
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   name,
				Schema: p.Schema,
			},
		}
	} else {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}
	// reasoning models (o1/o3/o4/gpt-5*) reject max_tokens
	if isReasoningModel(c.Model) {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		if isQuota(err) {
			return "", fmt.Errorf("%w: %v", ai.ErrQuotaExceeded, err)
		}
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ai.ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func messages(p ai.Prompt) []openai.ChatCompletionMessage {
	var msgs []openai.ChatCompletionMessage
	if p.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: p.System})
	}

	// plain text stays in Content, anything with an attachment goes multimodal
	multimodal := false
	for _, part := range p.Parts {
		if part.Inline != nil {
			multimodal = true
			break
		}
	}
	if !multimodal {
		texts := make([]string, 0, len(p.Parts))
		for _, part := range p.Parts {
			texts = append(texts, part.Text)
		}
		return append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: strings.Join(texts, "\n\n")})
	}

	contents := make([]openai.ChatMessagePart, 0, len(p.Parts))
	for _, part := range p.Parts {
		if part.Inline != nil {
			contents = append(contents, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: "data:" + part.Inline.MimeType + ";base64," + part.Inline.Data,
				},
			})
			continue
		}
		contents = append(contents, openai.ChatMessagePart{Type: openai.ChatMessagePartTypeText, Text: part.Text})
	}
	return append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, MultiContent: contents})
}

func isReasoningModel(model string) bool {
	for _, prefix := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}

func isQuota(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	return false
}
