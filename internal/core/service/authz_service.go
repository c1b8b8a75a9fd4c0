package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
	"github.com/blog-escritores/publishing-api/internal/core/ports"
)

// Authorizer resolves effective roles from the profile store. The pure
// decision functions live in domain; this service only supplies the lookup.
type Authorizer struct {
	profiles ports.ProfileStore
	log      zerolog.Logger
}

func NewAuthorizer(profiles ports.ProfileStore, log zerolog.Logger) *Authorizer {
	return &Authorizer{profiles: profiles, log: log}
}

// ResolveRole returns the effective role for a principal id. An empty id is
// the unauthenticated sentinel. A missing profile, or any store failure,
// degrades to RoleUser rather than failing: the account keeps a defined,
// minimal permission set and the surface stays navigable.
func (a *Authorizer) ResolveRole(ctx context.Context, principalID string) domain.Role {
	if principalID == "" {
		return domain.RoleUnauthenticated
	}

	profile, err := a.profiles.Get(ctx, principalID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			a.log.Warn().Err(err).Str("principal_id", principalID).Msg("profile lookup failed, falling back to user role")
		}
		return domain.RoleUser
	}

	return domain.RoleFromProfile(profile)
}
