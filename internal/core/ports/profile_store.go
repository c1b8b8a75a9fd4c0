package ports

import (
	"context"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
)

// ProfileStore persists the one-per-principal profile documents.
type ProfileStore interface {
	// Get returns the profile for a principal id, or domain.ErrProfileNotFound.
	Get(ctx context.Context, id string) (*domain.Profile, error)
	// Set writes the full profile document keyed by its ID, creating it when
	// absent (merge-style upsert).
	Set(ctx context.Context, p *domain.Profile) error
	// SetRole updates only the role field of an existing profile.
	SetRole(ctx context.Context, id, role string) error
	// List returns every profile (admin user-management view).
	List(ctx context.Context) ([]*domain.Profile, error)
	// ListByRole returns profiles with the given role (public writer directory).
	ListByRole(ctx context.Context, role string) ([]*domain.Profile, error)
}
