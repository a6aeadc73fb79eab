package contact

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bryanwahyu/ayurconnect/internal/application"
	"github.com/bryanwahyu/ayurconnect/internal/domain/leads"
	"github.com/bryanwahyu/ayurconnect/internal/domain/mail"
)

// Request is a validated consultation request.
type Request struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Service forwards consultation requests to the expert inbox.
type Service struct {
	mailer  mail.Mailer
	compose func(inbox, name, email, phone string) mail.Message
	inbox   string
	leads   leads.Repository
	clock   application.Clock
	logger  *slog.Logger
}

func NewService(mailer mail.Mailer, compose func(inbox, name, email, phone string) mail.Message, inbox string, lr leads.Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{mailer: mailer, compose: compose, inbox: inbox, leads: lr, clock: application.SystemClock{}, logger: logger}
}

// Submit notifies the inbox and appends a lead. Both are best-effort: a
// failure is logged and the request still succeeds.
func (s *Service) Submit(ctx context.Context, r Request) {
	if s.inbox != "" {
		if err := s.mailer.Send(ctx, s.compose(s.inbox, r.Name, r.Email, r.Phone)); err != nil {
			s.logger.WarnContext(ctx, "contact mail failed", slog.Any("error", err))
		}
	}
	if s.leads != nil {
		lead := leads.Lead{
			ID:        uuid.New(),
			Source:    leads.SourceContact,
			Name:      r.Name,
			Email:     r.Email,
			Phone:     r.Phone,
			CreatedAt: s.clock.Now(),
		}
		if err := s.leads.Save(ctx, lead); err != nil {
			s.logger.WarnContext(ctx, "lead log write failed", slog.Any("error", err))
		}
	}
}
