package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	appai "github.com/bryanwahyu/ayurconnect/internal/application/ai"
	appauth "github.com/bryanwahyu/ayurconnect/internal/application/auth"
	appcontact "github.com/bryanwahyu/ayurconnect/internal/application/contact"
	appshare "github.com/bryanwahyu/ayurconnect/internal/application/share"
	domai "github.com/bryanwahyu/ayurconnect/internal/domain/ai"
	"github.com/bryanwahyu/ayurconnect/internal/domain/analysis"
	"github.com/bryanwahyu/ayurconnect/internal/domain/otp"
	"github.com/bryanwahyu/ayurconnect/internal/middleware"
)

const (
	defaultMaxBodyBytes = 50 << 20
	// nginx convention for a client that disconnected before the reply
	statusClientClosedRequest = 499
)

// Deps wires the services behind the HTTP surface. Share may be nil, in
// which case /api/share is not mounted.
type Deps struct {
	Gateway *appai.Gateway
	Auth    *appauth.Service
	Contact *appcontact.Service
	Share   *appshare.Service

	Metrics  *middleware.Metrics
	Limiter  *middleware.RateLimiter
	Checkers map[string]middleware.HealthChecker
	Logger   *slog.Logger

	RequireLogin bool
	MaxBodyBytes int64
	CORSOrigins  []string
	CORSMaxAge   int
}

type Router struct {
	gateway *appai.Gateway
	auth    *appauth.Service
	contact *appcontact.Service
	share   *appshare.Service
	metrics *middleware.Metrics
	logger  *slog.Logger
}

func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Metrics == nil {
		d.Metrics = middleware.NewMetrics()
	}
	if d.MaxBodyBytes <= 0 {
		d.MaxBodyBytes = defaultMaxBodyBytes
	}
	if len(d.CORSOrigins) == 0 {
		d.CORSOrigins = []string{"*"}
	}

	r := &Router{
		gateway: d.Gateway,
		auth:    d.Auth,
		contact: d.Contact,
		share:   d.Share,
		metrics: d.Metrics,
		logger:  d.Logger,
	}

	mux := chi.NewRouter()
	mux.Use(
		chimw.RealIP,
		middleware.RequestID,
		middleware.Logging(d.Logger),
		middleware.Recovery(d.Logger),
		d.Metrics.Middleware,
		cors.Handler(cors.Options{
			AllowedOrigins: d.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"X-Request-Id", "Retry-After"},
			MaxAge:         d.CORSMaxAge,
		}),
	)
	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	health := middleware.HealthHandler(d.Checkers)
	mux.Get("/health", health)
	mux.Get("/readyz", health)
	mux.Get("/livez", middleware.LivenessHandler)
	mux.Get("/metrics", d.Metrics.Handler)

	mux.Route("/api", func(rt chi.Router) {
		rt.Use(bodyLimit(d.MaxBodyBytes))
		if d.Limiter != nil {
			rt.Use(d.Limiter.Limit)
		}

		rt.Get("/questionnaire", r.wrap(r.handleQuestionnaire))
		rt.Post("/contact", r.wrap(r.handleContact))
		if r.auth != nil {
			rt.Post("/send-otp", r.wrap(r.handleSendOTP))
			rt.Post("/verify-otp", r.wrap(r.handleVerifyOTP))
		}

		rt.Group(func(gated chi.Router) {
			if r.auth != nil {
				gated.Use(middleware.Session(r.auth.Tokens().Subject, d.RequireLogin))
			}
			gated.Post("/gemini", r.wrap(r.handleAnalyze))
			if r.share != nil {
				gated.Post("/share", r.wrap(r.handleShare))
			}
		})
	})

	return mux
}

func bodyLimit(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			req.Body = http.MaxBytesReader(w, req.Body, n)
			next.ServeHTTP(w, req)
		})
	}
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// errorBody is the only error shape the API returns.
type errorBody struct {
	Error  string                `json:"error"`
	Fields []analysis.FieldError `json:"fields,omitempty"`
}

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var ve *analysis.ValidationError
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		case errors.As(err, &ve):
			writeJSON(w, http.StatusBadRequest, errorBody{Error: ve.Error(), Fields: ve.Errors})
		case errors.Is(err, analysis.ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, "Invalid request type")
		case errors.Is(err, otp.ErrNotFound), errors.Is(err, otp.ErrMismatch):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, appauth.ErrInvalidToken):
			writeError(w, http.StatusUnauthorized, "Session expired, please log in again")
		case errors.Is(err, context.Canceled):
			// client sudah pergi; 499 cuma untuk log dan metrics
			r.logger.InfoContext(req.Context(), "request abandoned by client", slog.String("path", req.URL.Path))
			w.WriteHeader(statusClientClosedRequest)
		case errors.Is(err, domai.ErrQuotaExceeded):
			writeError(w, http.StatusTooManyRequests, "The AI service is busy right now. Please try again in a moment.")
		case errors.Is(err, appai.ErrInvalidModelOutput):
			writeError(w, http.StatusInternalServerError, "The AI returned an invalid response format. Please try again.")
		case errors.Is(err, appai.ErrModelUnavailable):
			writeError(w, http.StatusInternalServerError, "Failed to get a response from the AI model. Please try again.")
		default:
			r.logger.ErrorContext(req.Context(), "request failed",
				slog.String("path", req.URL.Path),
				slog.Any("error", err),
			)
			writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
		}
	}
}

// decode reads a JSON body. Syntax errors become a validation error on
// "body"; an oversized body keeps its *http.MaxBytesError.
func decode(req *http.Request, v any) error {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return analysis.NewValidationError("body", "is not valid JSON")
	}
	return nil
}

// invalid turns a validator error into a field error without repeating
// the field name.
func invalid(field string, err error) *analysis.ValidationError {
	return analysis.NewValidationError(field, strings.TrimPrefix(err.Error(), field+" "))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}
