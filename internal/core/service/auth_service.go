package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
	"github.com/blog-escritores/publishing-api/internal/core/ports"
)

// authService composes the identity gateway with the profile store for the
// self-service authentication flows.
type authService struct {
	gateway  ports.IdentityGateway
	profiles ports.ProfileStore
	log      zerolog.Logger
}

func NewAuthService(gateway ports.IdentityGateway, profiles ports.ProfileStore, log zerolog.Logger) ports.AuthService {
	return &authService{gateway: gateway, profiles: profiles, log: log}
}

// Register self-registers a new account against the primary context and
// writes its profile with the default user role.
func (s *authService) Register(ctx context.Context, email, password, displayName string) (*ports.Session, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	principal, err := s.gateway.CreatePrincipal(ctx, email, password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		ID:          principal.ID,
		DisplayName: displayName,
		Email:       email,
		Role:        string(domain.RoleUser),
		IsAdmin:     false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.profiles.Set(ctx, profile); err != nil {
		// The account exists; the profile lookup fallback keeps it usable
		// with the default user role until the next profile write.
		s.log.Warn().Err(err).Str("principal_id", principal.ID).Msg("profile write failed after registration")
	}

	session, err := s.gateway.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("principal_id", principal.ID).Msg("account registered")
	return session, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}
	return s.gateway.SignIn(ctx, email, password)
}

func (s *authService) RequestReset(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	return s.gateway.SendCredentialResetEmail(ctx, email, "")
}

func (s *authService) ConfirmReset(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return fmt.Errorf("%w: token and password are required", domain.ErrValidation)
	}
	return s.gateway.ConfirmCredentialReset(ctx, token, newPassword)
}
