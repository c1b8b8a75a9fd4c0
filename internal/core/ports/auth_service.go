package ports

import (
	"context"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
)

// RoleResolver computes the effective role of a principal. The sentinel
// empty principal id resolves to RoleUnauthenticated; a missing profile
// resolves to RoleUser.
type RoleResolver interface {
	ResolveRole(ctx context.Context, principalID string) domain.Role
}

// AuthService defines the authentication use cases exposed to the API.
type AuthService interface {
	// Register self-registers a new account and writes its profile with
	// role=user, isAdmin=false.
	Register(ctx context.Context, email, password, displayName string) (*Session, error)
	// Login authenticates and returns a session token plus the principal.
	Login(ctx context.Context, email, password string) (*Session, error)
	// RequestReset triggers a credential-reset notification.
	RequestReset(ctx context.Context, email string) error
	// ConfirmReset consumes a reset token and sets the new password.
	ConfirmReset(ctx context.Context, token, newPassword string) error
}
