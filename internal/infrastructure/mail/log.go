package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/blog-escritores/publishing-api/internal/core/ports"
)

// LogMailer writes notifications to the log instead of delivering them.
// Used when SMTP is not configured.
type LogMailer struct {
	log zerolog.Logger
}

func NewLog(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendCredentialReset(_ context.Context, to, resetURL string) error {
	m.log.Info().Str("to", to).Str("reset_url", resetURL).Msg("credential reset email (log only)")
	return nil
}

func (m *LogMailer) SendContact(_ context.Context, msg ports.ContactMessage) error {
	m.log.Info().Str("from", msg.Email).Str("subject", msg.Subject).Msg("contact message (log only)")
	return nil
}
