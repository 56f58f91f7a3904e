// Package mail delivers transactional email through Resend.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// Mailer sends verification-code email. Without an API key it runs in log
// mode: the message is logged instead of sent, which keeps local
// development working without credentials.
type Mailer struct {
	client *resend.Client
	from   string
}

// NewMailer creates a Mailer. An empty apiKey enables log mode.
func NewMailer(apiKey, from string) *Mailer {
	var client *resend.Client
	if apiKey != "" {
		client = resend.NewClient(apiKey)
	}
	return &Mailer{client: client, from: from}
}

// SendVerificationCode mails the 5-digit verification code to a freshly
// registered user.
func (m *Mailer) SendVerificationCode(ctx context.Context, email, name, code string) error {
	subject := "Verify your Plant Console account"
	body := fmt.Sprintf("Hi %s,\n\nYour verification code is %s.\n\nHappy growing!", name, code)

	if m.client == nil {
		slog.Info("verification email skipped (log mode)", "to", email, "code", code)
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{email},
		Subject: subject,
		Text:    body,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return err
	}
	slog.Info("verification email sent", "to", email)
	return nil
}
