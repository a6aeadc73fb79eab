package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bryanwahyu/ayurconnect/internal/domain/analysis"
)

// Session is the login issued by VerifyOTP.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ShareLink points at a stored plain text summary.
type ShareLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
	Text      string    `json:"text"`
}

type message struct {
	Message string `json:"message"`
}

// SendOTP asks the server to mail a login code.
func (c *Client) SendOTP(ctx context.Context, email, phone string) error {
	email, phone = strings.TrimSpace(email), strings.TrimSpace(phone)
	if email == "" {
		return analysis.NewValidationError("email", "is required")
	}
	if phone == "" {
		return analysis.NewValidationError("phone", "is required")
	}
	return c.call(ctx, http.MethodPost, "/api/send-otp", map[string]string{"email": email, "phone": phone}, &message{})
}

// VerifyOTP exchanges a code for a session and keeps its token for later
// calls.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) (Session, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Session{}, analysis.NewValidationError("otp", "is required")
	}
	var s Session
	if err := c.call(ctx, http.MethodPost, "/api/verify-otp", map[string]string{"email": strings.TrimSpace(email), "otp": code}, &s); err != nil {
		return Session{}, err
	}
	c.SetToken(s.Token)
	return s, nil
}

// Contact sends a consultation request and returns the server's
// acknowledgement.
func (c *Client) Contact(ctx context.Context, name, email, phone string) (string, error) {
	body := map[string]string{
		"name":  strings.TrimSpace(name),
		"email": strings.TrimSpace(email),
		"phone": strings.TrimSpace(phone),
	}
	for _, f := range []string{"name", "email", "phone"} {
		if body[f] == "" {
			return "", analysis.NewValidationError(f, "is required")
		}
	}
	var m message
	if err := c.call(ctx, http.MethodPost, "/api/contact", body, &m); err != nil {
		return "", err
	}
	return m.Message, nil
}

// Share stores the summary of a result the caller already holds.
// fileName only matters for lab results that came from an upload.
func (c *Client) Share(ctx context.Context, kind analysis.Kind, query, fileName string, result any) (ShareLink, error) {
	if !kind.Valid() {
		return ShareLink{}, fmt.Errorf("%w: %q", analysis.ErrInvalidRequest, kind)
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return ShareLink{}, fmt.Errorf("encode result: %w", err)
	}
	body := struct {
		Type     analysis.Kind   `json:"type"`
		Query    string          `json:"query"`
		FileName string          `json:"fileName,omitempty"`
		Result   json.RawMessage `json:"result"`
	}{kind, query, fileName, raw}

	var link ShareLink
	if err := c.call(ctx, http.MethodPost, "/api/share", body, &link); err != nil {
		return ShareLink{}, err
	}
	return link, nil
}

// LoadQuestionnaire fetches the server's dosha questions and uses them for
// later AnalyzeDosha validation.
func (c *Client) LoadQuestionnaire(ctx context.Context) (analysis.Questionnaire, error) {
	var q analysis.Questionnaire
	if err := c.call(ctx, http.MethodGet, "/api/questionnaire", nil, &q); err != nil {
		return analysis.Questionnaire{}, err
	}
	if len(q.Questions) == 0 {
		return analysis.Questionnaire{}, &RequestFailedError{Status: http.StatusOK, Detail: "empty questionnaire"}
	}
	c.mu.Lock()
	c.questionnaire = q
	c.mu.Unlock()
	return q, nil
}

// Questionnaire returns the questions AnalyzeDosha validates against.
func (c *Client) Questionnaire() analysis.Questionnaire {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.questionnaire
}
