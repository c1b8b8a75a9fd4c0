package ports

import "context"

// ContactMessage is a transactional contact-form submission relayed to the
// site operators.
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// Mailer delivers outbound notifications.
type Mailer interface {
	// SendCredentialReset mails a credential-setup link to a principal.
	SendCredentialReset(ctx context.Context, to, resetURL string) error
	// SendContact relays a contact-form message to the operators.
	SendContact(ctx context.Context, msg ContactMessage) error
}
