package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/ayurconnect/internal/application"
	"github.com/bryanwahyu/ayurconnect/internal/domain/leads"
	"github.com/bryanwahyu/ayurconnect/internal/domain/otp"
)

// Session is returned after a successful OTP verification.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service runs the email OTP login flow.
type Service struct {
	store    otp.Store
	sender   otp.Sender
	leads    leads.Repository
	tokens   *Tokens
	clock    application.Clock
	logger   *slog.Logger
	generate func() (string, error)
}

type Deps struct {
	Store  otp.Store
	Sender otp.Sender
	// Leads may be nil.
	Leads  leads.Repository
	Tokens *Tokens
	Clock  application.Clock
	Logger *slog.Logger
}

func NewService(d Deps) *Service {
	s := &Service{
		store:    d.Store,
		sender:   d.Sender,
		leads:    d.Leads,
		tokens:   d.Tokens,
		clock:    d.Clock,
		logger:   d.Logger,
		generate: GenerateCode,
	}
	if s.clock == nil {
		s.clock = application.SystemClock{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// SendOTP issues a new code for email, replacing any pending one. Inputs
// are expected to be validated by the caller.
func (s *Service) SendOTP(ctx context.Context, email, phone string) error {
	code, err := s.generate()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	if err := s.store.Save(ctx, email, code); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	if err := s.sender.SendOTP(ctx, email, code); err != nil {
		return fmt.Errorf("send otp: %w", err)
	}

	if s.leads != nil {
		lead := leads.Lead{ID: uuid.New(), Source: leads.SourceLogin, Email: email, Phone: phone, CreatedAt: s.clock.Now()}
		if err := s.leads.Save(ctx, lead); err != nil {
			s.logger.WarnContext(ctx, "lead log write failed", slog.Any("error", err))
		}
	}
	s.logger.InfoContext(ctx, "otp sent")
	return nil
}

// VerifyOTP consumes the pending code and returns a session token.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) (Session, error) {
	if err := s.store.Verify(ctx, email, code); err != nil {
		return Session{}, err
	}
	token, exp, err := s.tokens.Issue(email)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: exp}, nil
}

// Tokens exposes the token issuer for the session middleware.
func (s *Service) Tokens() *Tokens { return s.tokens }

// GenerateCode returns a uniformly random 6 digit code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
