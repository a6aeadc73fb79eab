package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/ayurconnect/internal/domain/analysis"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", seen)
}

func TestLoggingOmitsBody(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/gemini", bytes.NewBufferString(`{"secret":"lab"}`))
	h.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "/api/gemini", line["path"])
	assert.EqualValues(t, http.StatusTeapot, line["status"])
	assert.NotContains(t, buf.String(), "secret")
}

func TestRecovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h := Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"An internal server error occurred."}`, rec.Body.String())
}

func TestSession(t *testing.T) {
	subject := func(token string) (string, error) {
		if token == "good" {
			return "a@b.com", nil
		}
		return "", errors.New("bad token")
	}
	var email string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email = EmailFromContext(r.Context())
	})

	tests := []struct {
		name     string
		header   string
		required bool
		code     int
		email    string
	}{
		{"anonymous allowed", "", false, http.StatusOK, ""},
		{"anonymous rejected", "", true, http.StatusUnauthorized, ""},
		{"valid token", "Bearer good", true, http.StatusOK, "a@b.com"},
		{"lowercase scheme", "bearer good", false, http.StatusOK, "a@b.com"},
		{"bad token optional", "Bearer nope", false, http.StatusOK, ""},
		{"bad token required", "Bearer nope", true, http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email = ""
			req := httptest.NewRequest(http.MethodPost, "/api/gemini", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			Session(subject, tt.required)(next).ServeHTTP(rec, req)
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.email, email)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	defer rl.Stop()
	h := rl.Limit(http.HandlerFunc(okHandler))

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1002"))
	// other clients keep their own bucket
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1000"))
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))
	m.Analysis(analysis.KindDosha).Succeeded.Add(1)

	assert.EqualValues(t, 2, m.RequestsTotal.Load())
	assert.EqualValues(t, 1, m.RequestsSuccess.Load())
	assert.EqualValues(t, 1, m.RequestsFailed.Load())
	assert.EqualValues(t, 0, m.RequestsInProgress.Load())
	assert.Nil(t, m.Analysis("other"))

	rec := httptest.NewRecorder()
	m.Handler(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	kinds := body["analyses"].(map[string]any)
	assert.EqualValues(t, 1, kinds["dosha"].(map[string]any)["succeeded"])
}

func TestHealthHandler(t *testing.T) {
	ok := CheckFunc(func(context.Context) error { return nil })
	down := CheckFunc(func(context.Context) error { return errors.New("connection refused") })

	rec := httptest.NewRecorder()
	HealthHandler(map[string]HealthChecker{"db": ok})(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	HealthHandler(map[string]HealthChecker{"db": ok, "storage": down})(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var h HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.Equal(t, "unhealthy", h.Status)
	assert.Equal(t, "connection refused", h.Checks["storage"].Message)
	assert.Equal(t, "healthy", h.Checks["db"].Status)
}
