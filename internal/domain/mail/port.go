package mail

import "context"

type Message struct {
	To      []string
	Subject string
	Body    string
	ReplyTo string
}

// Mailer sends plain text mail.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}
