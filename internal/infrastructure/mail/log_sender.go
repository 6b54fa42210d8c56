package mail

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender is a MailSender for environments without mail credentials: it
// logs the confirmation link instead of delivering it.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendVerification(_ context.Context, email, confirmationLink string) error {
	s.log.Info().
		Str("email", email).
		Str("confirmation_link", confirmationLink).
		Msg("verification mail (log only)")
	return nil
}
