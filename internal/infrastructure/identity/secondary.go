package identity

import (
	"context"
	"sync"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
)

// secondaryContext is a short-lived auth context whose session state lives
// entirely inside the struct. Creating a principal signs in this context,
// and only this context; the primary session of whoever acquired it is
// untouched. Close discards the held session.
type secondaryContext struct {
	gateway *Gateway

	mu      sync.Mutex
	current *domain.Principal
	closed  bool
}

func (c *secondaryContext) CreatePrincipal(ctx context.Context, email, password string) (*domain.Principal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, domain.ErrInvalidToken
	}

	principal, err := c.gateway.CreatePrincipal(ctx, email, password)
	if err != nil {
		return nil, err
	}

	// The provider signs a freshly created credential into the creating
	// context. Keeping that session here is what isolates it.
	c.current = principal
	return principal, nil
}

// Close signs the context out. Idempotent.
func (c *secondaryContext) Close(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
	c.closed = true
	return nil
}

// Current returns the principal this context is signed in as, or nil.
func (c *secondaryContext) Current() *domain.Principal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}
