package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
	"github.com/blog-escritores/publishing-api/internal/core/ports"
)

type profileService struct {
	profiles ports.ProfileStore
	articles ports.ArticleRepository
	resolver ports.RoleResolver
	log      zerolog.Logger
}

func NewProfileService(profiles ports.ProfileStore, articles ports.ArticleRepository, resolver ports.RoleResolver, log zerolog.Logger) ports.ProfileService {
	return &profileService{profiles: profiles, articles: articles, resolver: resolver, log: log}
}

// GetOwn returns the caller's profile. A principal without a profile
// document gets a default user view instead of an error, mirroring the
// ResolveRole fallback.
func (s *profileService) GetOwn(ctx context.Context, caller domain.Principal) (*domain.Profile, error) {
	if caller.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	profile, err := s.profiles.Get(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return &domain.Profile{
				ID:          caller.ID,
				DisplayName: caller.DisplayName,
				Email:       caller.Email,
				Role:        string(domain.RoleUser),
			}, nil
		}
		return nil, err
	}
	return profile, nil
}

// UpdateOwn patches the caller's descriptive fields. Role and IsAdmin are
// preserved from the stored document; the first-login flag is cleared once
// the writer has filled in its own profile.
func (s *profileService) UpdateOwn(ctx context.Context, caller domain.Principal, patch ports.UpdateProfileInput) (*domain.Profile, error) {
	profile, err := s.GetOwn(ctx, caller)
	if err != nil {
		return nil, err
	}

	if patch.DisplayName != nil {
		if *patch.DisplayName == "" {
			return nil, fmt.Errorf("%w: display name cannot be empty", domain.ErrValidation)
		}
		profile.DisplayName = *patch.DisplayName
	}
	if patch.Bio != nil {
		profile.Bio = *patch.Bio
	}
	if patch.Province != nil {
		profile.Province = *patch.Province
	}
	if patch.Country != nil {
		profile.Country = *patch.Country
	}
	if patch.PhotoURL != nil {
		profile.PhotoURL = *patch.PhotoURL
	}
	profile.FirstLogin = false
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profiles.Set(ctx, profile); err != nil {
		s.log.Error().Err(err).Str("principal_id", caller.ID).Msg("failed to update profile")
		return nil, err
	}
	return profile, nil
}

func (s *profileService) ListWriters(ctx context.Context) ([]*domain.Profile, error) {
	return s.profiles.ListByRole(ctx, string(domain.RoleWriter))
}

// GetWriter returns a writer's public page: profile plus published articles.
func (s *profileService) GetWriter(ctx context.Context, writerID string) (*ports.WriterPage, error) {
	profile, err := s.profiles.Get(ctx, writerID)
	if err != nil {
		return nil, err
	}
	articles, err := s.articles.List(ctx, ports.ListArticlesFilter{OwnerID: writerID})
	if err != nil {
		return nil, err
	}
	return &ports.WriterPage{Profile: profile, Articles: articles}, nil
}

func (s *profileService) ListUsers(ctx context.Context, callerID string) ([]*domain.Profile, error) {
	if !domain.CanAccessAdminSurface(s.resolver.ResolveRole(ctx, callerID)) {
		return nil, domain.ErrPermissionDenied
	}
	return s.profiles.List(ctx)
}

// SetRole toggles a profile between user and writer. Admin elevation has no
// workflow here: IsAdmin is provisioned out-of-band and never writable
// through this path. Two admins toggling the same profile race with
// last-write-wins semantics.
func (s *profileService) SetRole(ctx context.Context, callerID, targetID, role string) (*domain.Profile, error) {
	if !domain.CanAccessAdminSurface(s.resolver.ResolveRole(ctx, callerID)) {
		return nil, domain.ErrPermissionDenied
	}
	if role != string(domain.RoleUser) && role != string(domain.RoleWriter) {
		return nil, fmt.Errorf("%w: role must be user or writer", domain.ErrValidation)
	}

	if err := s.profiles.SetRole(ctx, targetID, role); err != nil {
		return nil, err
	}
	s.log.Info().Str("admin_id", callerID).Str("target_id", targetID).Str("role", role).Msg("role updated")

	return s.profiles.Get(ctx, targetID)
}
