// Package client is the typed caller of the AyurConnect HTTP API.
//
// Each analysis kind owns one slot: starting a request cancels the one
// still in flight for the same kind, and a superseded request resolves to
// ErrCancelled even if its response already arrived.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bryanwahyu/ayurconnect/internal/domain/analysis"
)

const defaultTimeout = 120 * time.Second

type Client struct {
	baseURL       string
	http          *http.Client
	logger        *slog.Logger
	questionnaire analysis.Questionnaire

	mu    sync.Mutex
	slots map[analysis.Kind]*slot
	token string
}

// slot tracks the newest request of one kind. gen increases on every
// start and every Cancel, so an older generation is always stale.
type slot struct {
	gen    uint64
	cancel context.CancelFunc
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithQuestionnaire sets the questions AnalyzeDosha checks answers against.
func WithQuestionnaire(q analysis.Questionnaire) Option {
	return func(c *Client) { c.questionnaire = q }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a client for the API served at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		http:          &http.Client{Timeout: defaultTimeout},
		logger:        slog.Default(),
		questionnaire: analysis.DefaultQuestionnaire(),
		slots:         make(map[analysis.Kind]*slot, len(analysis.Kinds)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken sets the session token sent as a bearer credential.
// VerifyOTP calls it on success.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Cancel aborts the in-flight request of kind, if any.
func (c *Client) Cancel(kind analysis.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s := c.slots[kind]; s != nil {
		s.gen++
		if s.cancel != nil {
			s.cancel()
			s.cancel = nil
		}
	}
}

// begin supersedes whatever runs in kind's slot and returns the context
// and generation of the new request.
func (c *Client) begin(ctx context.Context, kind analysis.Kind) (context.Context, uint64, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.slots[kind]
	if s == nil {
		s = &slot{}
		c.slots[kind] = s
	}
	if s.cancel != nil {
		s.cancel()
		c.logger.Debug("superseded in-flight request", slog.String("kind", string(kind)))
	}
	s.gen++
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	gen := s.gen

	return ctx, gen, func() {
		c.mu.Lock()
		if s.gen == gen {
			s.cancel = nil
		}
		c.mu.Unlock()
		cancel()
	}
}

func (c *Client) current(kind analysis.Kind, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.slots[kind]
	return s != nil && s.gen == gen
}

type apiError struct {
	Error string `json:"error"`
}

// call sends a JSON request and decodes a 2xx JSON reply into out.
// Context cancellation is returned as is; every other failure is a
// *RequestFailedError.
func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return &RequestFailedError{Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &RequestFailedError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
			return ctxErr
		}
		return &RequestFailedError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
			return ctxErr
		}
		return &RequestFailedError{Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ae apiError
		_ = json.Unmarshal(raw, &ae)
		return &RequestFailedError{Status: resp.StatusCode, Detail: ae.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &RequestFailedError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
