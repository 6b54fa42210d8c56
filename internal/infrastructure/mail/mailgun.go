// Package mail implements the MailSender port over Mailgun.
package mail

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v5"
)

const verificationSubject = "Confirm your email address"

// MailgunSender sends transactional mail through the Mailgun API.
type MailgunSender struct {
	client *mailgun.Client
	domain string
	from   string
}

// NewMailgunSender builds a sender for the given Mailgun domain. from is the
// full sender address, e.g. "no-reply@example.com".
func NewMailgunSender(apiKey, domain, from string) *MailgunSender {
	return &MailgunSender{
		client: mailgun.NewMailgun(apiKey),
		domain: domain,
		from:   from,
	}
}

// SendVerification delivers the confirmation link to the address.
func (s *MailgunSender) SendVerification(ctx context.Context, email, confirmationLink string) error {
	body := fmt.Sprintf(
		"Please confirm your email address by following this link:\n\n%s\n\nThe link is valid for 24 hours.",
		confirmationLink,
	)

	message := mailgun.NewMessage(s.domain, s.from, verificationSubject, body, email)
	if _, err := s.client.Send(ctx, message); err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}
	return nil
}
