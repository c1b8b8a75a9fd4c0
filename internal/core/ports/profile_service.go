package ports

import (
	"context"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
)

// UpdateProfileInput patches the caller's own descriptive fields. Nil fields
// are left unchanged. Role and admin status are never self-editable.
type UpdateProfileInput struct {
	DisplayName *string
	Bio         *string
	Province    *string
	Country     *string
	PhotoURL    *string
}

// WriterPage is the public view of a writer: profile plus published articles.
type WriterPage struct {
	Profile  *domain.Profile
	Articles []*domain.Article
}

// ProfileService defines profile and user-management use cases.
type ProfileService interface {
	// GetOwn returns the caller's profile, creating an implicit default view
	// when no document exists yet.
	GetOwn(ctx context.Context, caller domain.Principal) (*domain.Profile, error)
	// UpdateOwn patches the caller's descriptive fields and clears the
	// first-login flag.
	UpdateOwn(ctx context.Context, caller domain.Principal, patch UpdateProfileInput) (*domain.Profile, error)
	// ListWriters returns the public writer directory.
	ListWriters(ctx context.Context) ([]*domain.Profile, error)
	// GetWriter returns a writer's public page with its articles.
	GetWriter(ctx context.Context, writerID string) (*WriterPage, error)
	// ListUsers returns every profile. Admin only.
	ListUsers(ctx context.Context, callerID string) ([]*domain.Profile, error)
	// SetRole toggles a profile between user and writer. Admin only; any
	// other role value is rejected, admin elevation has no workflow here.
	SetRole(ctx context.Context, callerID, targetID, role string) (*domain.Profile, error)
}
