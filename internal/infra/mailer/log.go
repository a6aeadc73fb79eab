package mailer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bryanwahyu/ayurconnect/internal/domain/mail"
)

// Log writes mail to the logger instead of sending it. Used when no SMTP
// relay is configured.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Send(ctx context.Context, m mail.Message) error {
	l.logger.InfoContext(ctx, "mail not sent, smtp disabled",
		slog.String("to", strings.Join(m.To, ",")),
		slog.String("subject", m.Subject),
		slog.Int("body_bytes", len(m.Body)),
	)
	return nil
}
