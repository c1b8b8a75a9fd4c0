package ports

import (
	"context"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
)

// Session is an authenticated gateway session: a bearer token plus the
// principal it belongs to.
type Session struct {
	Token     string
	Principal domain.Principal
}

// AuthContext is a short-lived authentication context isolated from every
// other session. Creating a credential inside one never touches the primary
// session of the caller, so an admin can provision accounts for third
// parties without signing itself out. Dispose with Close when done.
type AuthContext interface {
	// CreatePrincipal registers a new account under this isolated context.
	// Returns domain.ErrEmailInUse or domain.ErrInvalidEmail on rejection.
	CreatePrincipal(ctx context.Context, email, password string) (*domain.Principal, error)
	// Close signs the context out and discards any credential it holds.
	Close(ctx context.Context) error
}

// IdentityGateway abstracts the authentication provider. It owns credential
// verification, session issuance, and the out-of-band credential-reset flow.
type IdentityGateway interface {
	// SignIn verifies the credential and returns a session.
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// CreatePrincipal registers a new account against the primary context.
	CreatePrincipal(ctx context.Context, email, password string) (*domain.Principal, error)
	// VerifyToken validates a session token and returns its principal.
	VerifyToken(ctx context.Context, token string) (*domain.Principal, error)
	// SendCredentialResetEmail issues a single-use reset token and mails a
	// setup link carrying returnURL back into the login surface.
	SendCredentialResetEmail(ctx context.Context, email, returnURL string) error
	// ConfirmCredentialReset consumes a reset token and sets the new password.
	ConfirmCredentialReset(ctx context.Context, token, newPassword string) error
	// NewSecondaryContext acquires an isolated AuthContext for provisioning.
	NewSecondaryContext(ctx context.Context) (AuthContext, error)
}
