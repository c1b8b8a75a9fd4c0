package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
	"github.com/blog-escritores/publishing-api/internal/core/ports"
)

// provisioningService implements the writer-provisioning workflow. The
// workflow is linear and aborts on the first failure; steps already
// completed are not rolled back. A principal created in step 3 that never
// reaches the notification in step 6 is reported as partial provisioning so
// operators can reconcile it by hand.
type provisioningService struct {
	gateway   ports.IdentityGateway
	profiles  ports.ProfileStore
	resolver  ports.RoleResolver
	returnURL string
	log       zerolog.Logger
}

// NewProvisioningService returns a ProvisioningService. returnURL is the
// login surface the credential-setup email links back to.
func NewProvisioningService(
	gateway ports.IdentityGateway,
	profiles ports.ProfileStore,
	resolver ports.RoleResolver,
	returnURL string,
	log zerolog.Logger,
) ports.ProvisioningService {
	return &provisioningService{
		gateway:   gateway,
		profiles:  profiles,
		resolver:  resolver,
		returnURL: returnURL,
		log:       log,
	}
}

// CreateWriter runs the seven-step provisioning workflow on behalf of the
// admin identified by adminID.
func (s *provisioningService) CreateWriter(ctx context.Context, adminID string, input ports.CreateWriterInput) (*domain.Profile, error) {
	// 1. Init: the caller must resolve to admin, name and email are required.
	// Route gating is advisory only, so the role is re-checked here.
	if !domain.CanAccessAdminSurface(s.resolver.ResolveRole(ctx, adminID)) {
		return nil, domain.ErrPermissionDenied
	}
	if input.Name == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrValidation)
	}

	// 2. Acquire a secondary auth context. Creating a credential against the
	// primary context would clobber the admin's own authenticated identity.
	secondary, err := s.gateway.NewSecondaryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire secondary auth context: %w", err)
	}

	// 3. Create the principal under the secondary context with a random
	// placeholder credential. It is never surfaced anywhere and is made moot
	// by the reset email in step 6. EmailAlreadyInUse aborts here with no
	// account created.
	principal, err := secondary.CreatePrincipal(ctx, input.Email, placeholderPassword())
	if err != nil {
		_ = secondary.Close(ctx)
		return nil, err
	}

	s.log.Info().
		Str("admin_id", adminID).
		Str("writer_id", principal.ID).
		Str("email", input.Email).
		Msg("writer principal created")

	// 4. Write the profile attributed to the admin's primary authority. The
	// brand-new, not-yet-verified principal is not an authorized writer of
	// this record.
	now := time.Now().UTC()
	profile := &domain.Profile{
		ID:          principal.ID,
		DisplayName: input.Name,
		Email:       input.Email,
		Role:        string(domain.RoleWriter),
		IsAdmin:     false,
		Province:    input.Province,
		Country:     input.Country,
		Bio:         input.Bio,
		FirstLogin:  true,
		CreatedBy:   adminID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.profiles.Set(ctx, profile); err != nil {
		_ = secondary.Close(ctx)
		return nil, s.partial(principal.ID, input.Email, fmt.Errorf("write writer profile: %w", err))
	}

	// 5. Tear down the secondary context so it holds no lingering credential.
	if err := secondary.Close(ctx); err != nil {
		return nil, s.partial(principal.ID, input.Email, fmt.Errorf("release secondary auth context: %w", err))
	}

	// 6. Out-of-band credential setup: a reset-style email addressed to the
	// new writer, linking back into the login surface.
	if err := s.gateway.SendCredentialResetEmail(ctx, input.Email, s.returnURL); err != nil {
		return nil, s.partial(principal.ID, input.Email, fmt.Errorf("send credential-setup notification: %w", err))
	}

	// 7. Done.
	s.log.Info().
		Str("admin_id", adminID).
		Str("writer_id", principal.ID).
		Msg("writer provisioned")

	return profile, nil
}

// partial logs and wraps a failure that happened after the principal was
// created but before the notification went out. The gateway account survives
// with an unusable placeholder credential; no compensating deletion exists.
func (s *provisioningService) partial(principalID, email string, cause error) error {
	s.log.Error().
		Err(cause).
		Str("writer_id", principalID).
		Str("email", email).
		Msg("partial provisioning: principal exists without usable credential")
	return fmt.Errorf("%w: %s: %w", domain.ErrPartialProvisioning, email, cause)
}

// placeholderPassword returns a high-entropy throwaway credential for the
// freshly created principal.
func placeholderPassword() string {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("fallback-%d!A1", time.Now().UnixNano())
	}
	return base64.RawURLEncoding.EncodeToString(b) + "A1!"
}
