// Package mailer sends transactional email. The Mailgun implementation is
// used in production; Nop serves tests and deployments with verification
// disabled.
package mailer

import (
	"context"

	"github.com/mailgun/mailgun-go/v4"

	"shargea/internal/config"
	"shargea/internal/logger"
)

// Mailer sends account emails.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, toEmail, token string) error
}

// Mailgun sends email through the Mailgun API.
type Mailgun struct {
	client   *mailgun.MailgunImpl
	from     string
	hostname string
}

// NewMailgun creates a Mailer backed by Mailgun using the given settings.
func NewMailgun(cfg config.EmailConfig) *Mailgun {
	return &Mailgun{
		client:   mailgun.NewMailgun(cfg.Domain, cfg.MailgunAPIKey),
		from:     cfg.From,
		hostname: cfg.Hostname,
	}
}

// SendVerificationEmail sends the account verification email carrying the
// one-time token.
func (m *Mailgun) SendVerificationEmail(ctx context.Context, toEmail, token string) error {
	msg := m.client.NewMessage(m.from, "Please verify your Shargea account", "", toEmail)
	msg.SetTemplate("email_confirm")
	if err := msg.AddTemplateVariable("hostname", m.hostname); err != nil {
		return err
	}
	if err := msg.AddTemplateVariable("token", token); err != nil {
		return err
	}

	_, id, err := m.client.Send(ctx, msg)
	if err != nil {
		return err
	}
	logger.Get().Debugw("verification email sent", "to", toEmail, "message_id", id)
	return nil
}

// Nop is a Mailer that does nothing.
type Nop struct{}

// SendVerificationEmail is a no-op.
func (Nop) SendVerificationEmail(context.Context, string, string) error { return nil }
