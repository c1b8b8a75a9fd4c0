package ports

import (
	"context"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
)

// CreateWriterInput is the admin-supplied data for provisioning a new
// writer. Name and Email are required; the rest is descriptive.
type CreateWriterInput struct {
	Name     string
	Email    string
	Province string
	Country  string
	Bio      string
}

// ProvisioningService creates writer accounts on behalf of third parties.
type ProvisioningService interface {
	// CreateWriter runs the provisioning workflow: a new principal is
	// created under an isolated secondary auth context, its profile is
	// written with role=writer attributed to the admin, and a
	// credential-setup notification is mailed to the new writer. The
	// admin's own session is never touched.
	CreateWriter(ctx context.Context, adminID string, input CreateWriterInput) (*domain.Profile, error)
}
