package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bryanwahyu/ayurconnect/internal/application"
	"github.com/bryanwahyu/ayurconnect/internal/domain/ai"
	"github.com/bryanwahyu/ayurconnect/internal/domain/analysis"
	"github.com/bryanwahyu/ayurconnect/internal/infra/ai/prompt"
)

var (
	// ErrModelUnavailable wraps every failure of the model call itself.
	ErrModelUnavailable = errors.New("model unavailable")
	// ErrInvalidModelOutput is returned when the model text cannot be parsed
	// into a valid result.
	ErrInvalidModelOutput = errors.New("invalid model output")
)

// Gateway turns one analysis request into exactly one model call.
type Gateway struct {
	model         ai.Model
	questionnaire analysis.Questionnaire
	logger        *slog.Logger
	clock         application.Clock
	seed          *int
	noSeed        bool
}

type Option func(*Gateway)

// WithQuestionnaire replaces the dosha questionnaire used for validation.
func WithQuestionnaire(q analysis.Questionnaire) Option {
	return func(g *Gateway) { g.questionnaire = q }
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

func WithClock(c application.Clock) Option {
	return func(g *Gateway) { g.clock = c }
}

// WithSeed overrides the seed pinned on medicine and dosha prompts.
// A nil seed disables pinning.
func WithSeed(seed *int) Option {
	return func(g *Gateway) {
		g.seed = seed
		g.noSeed = seed == nil
	}
}

func NewGateway(model ai.Model, opts ...Option) *Gateway {
	g := &Gateway{
		model:         model,
		questionnaire: analysis.DefaultQuestionnaire(),
		logger:        slog.Default(),
		clock:         application.SystemClock{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Questionnaire returns the questions a dosha request must answer.
func (g *Gateway) Questionnaire() analysis.Questionnaire { return g.questionnaire }

// Analyze validates req, calls the model once and returns the normalized
// result. Validation failures never reach the model.
func (g *Gateway) Analyze(ctx context.Context, req analysis.Request) (analysis.Result, error) {
	if !req.Type.Valid() {
		return analysis.Result{}, fmt.Errorf("%w: %q", analysis.ErrInvalidRequest, req.Type)
	}
	if err := req.Validate(g.questionnaire); err != nil {
		return analysis.Result{}, err
	}

	p, err := prompt.Build(req)
	if err != nil {
		return analysis.Result{}, err
	}
	if p.Seed != nil {
		switch {
		case g.noSeed:
			p.Seed = nil
		case g.seed != nil:
			s := *g.seed
			p.Seed = &s
		}
	}

	log := g.logger.With(slog.String("type", string(req.Type)))
	start := g.clock.Now()
	text, err := g.model.Generate(ctx, p)
	elapsed := g.clock.Now().Sub(start)
	if err != nil {
		if ctx.Err() != nil {
			log.InfoContext(ctx, "model call abandoned", slog.Any("error", ctx.Err()))
			return analysis.Result{}, fmt.Errorf("%w: %w", ErrModelUnavailable, ctx.Err())
		}
		log.ErrorContext(ctx, "model call failed", slog.Any("error", err), slog.Duration("elapsed", elapsed))
		if errors.Is(err, ai.ErrQuotaExceeded) {
			return analysis.Result{}, fmt.Errorf("%w: %w", ErrModelUnavailable, ai.ErrQuotaExceeded)
		}
		return analysis.Result{}, ErrModelUnavailable
	}

	res, err := Parse(req.Type, text)
	if err != nil {
		log.ErrorContext(ctx, "model returned unusable output",
			slog.Any("error", err),
			slog.String("raw", truncate(text, 2000)),
		)
		return analysis.Result{}, ErrInvalidModelOutput
	}

	log.InfoContext(ctx, "analysis completed",
		slog.Duration("elapsed", elapsed.Round(time.Millisecond)),
		slog.Bool("domain_error", res.DomainError() != ""),
	)
	return res, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
