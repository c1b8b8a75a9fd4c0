// Package mail delivers outbound notifications over SMTP. When SMTP is not
// configured the log mailer stands in so development environments work
// without a relay.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/blog-escritores/publishing-api/internal/core/ports"
)

// Config carries the SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// ContactTo receives contact-form relays.
	ContactTo string
}

// SMTPMailer implements ports.Mailer over a plain SMTP relay.
type SMTPMailer struct {
	cfg Config
}

// NewSMTP returns an SMTP mailer, or nil when no host is configured.
func NewSMTP(cfg Config) *SMTPMailer {
	if cfg.Host == "" {
		return nil
	}
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendCredentialReset(_ context.Context, to, resetURL string) error {
	body := fmt.Sprintf(
		"Hola,\r\n\r\n"+
			"Se ha creado una cuenta de escritor para esta dirección. "+
			"Establecé tu contraseña con el siguiente enlace:\r\n\r\n%s\r\n\r\n"+
			"El enlace vence en una hora. Si no esperabas este correo, ignoralo.\r\n",
		resetURL,
	)
	return m.send(to, "Establecé tu contraseña", body)
}

func (m *SMTPMailer) SendContact(_ context.Context, msg ports.ContactMessage) error {
	body := fmt.Sprintf(
		"Nombre: %s\r\nEmail: %s\r\n\r\n%s\r\n",
		msg.Name, msg.Email, msg.Body,
	)
	subject := "Contacto: " + msg.Subject
	return m.send(m.cfg.ContactTo, subject, body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(body)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
