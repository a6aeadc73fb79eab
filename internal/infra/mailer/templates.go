package mailer

import (
	"context"
	"fmt"

	"github.com/bryanwahyu/ayurconnect/internal/domain/mail"
	"github.com/bryanwahyu/ayurconnect/internal/domain/otp"
)

// OTPSender mails login codes.
type OTPSender struct {
	Mailer mail.Mailer
}

var _ otp.Sender = OTPSender{}

func (s OTPSender) SendOTP(ctx context.Context, email, code string) error {
	return s.Mailer.Send(ctx, OTPMessage(email, code))
}

// OTPMessage is the login code email.
func OTPMessage(email, code string) mail.Message {
	return mail.Message{
		To:      []string{email},
		Subject: "Your AyurConnect AI login code",
		Body: fmt.Sprintf(`Your one-time login code is %s

It expires in %d minutes. If you did not request it, you can ignore this email.

AyurConnect AI`, code, int(otp.TTL.Minutes())),
	}
}

// ContactMessage notifies the expert inbox about a consultation request.
func ContactMessage(inbox, name, email, phone string) mail.Message {
	return mail.Message{
		To:      []string{inbox},
		ReplyTo: email,
		Subject: "New consultation request from " + name,
		Body: fmt.Sprintf(`A user asked to connect with an Ayurvedic expert.

Name:  %s
Email: %s
Phone: %s
`, name, email, phone),
	}
}
