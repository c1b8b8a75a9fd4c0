package ports

import (
	"context"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
)

// CreateArticleInput carries all data needed to publish a new article.
// OwnerID and the author snapshot are stamped by the service from the
// caller's identity, never taken from the request body.
type CreateArticleInput struct {
	Title        string
	Category     string
	Content      string
	ThumbnailURL string
}

// UpdateArticleInput is a patch for an existing article. Nil fields are left
// unchanged.
type UpdateArticleInput struct {
	Title        *string
	Category     *string
	Content      *string
	ThumbnailURL *string
}

// ArticleService wraps raw article CRUD with the authorization decision so
// no caller can mutate or view beyond its permission.
type ArticleService interface {
	// Create publishes a new article owned by the caller. Requires the
	// writer role or above.
	Create(ctx context.Context, caller domain.Principal, input CreateArticleInput) (*domain.Article, error)
	// Get returns a single article. Public.
	Get(ctx context.Context, id string) (*domain.Article, error)
	// ListPublic returns published articles, optionally by category. Public.
	ListPublic(ctx context.Context, category string) ([]*domain.Article, error)
	// ListOwn returns the caller's own articles for its dashboard.
	ListOwn(ctx context.Context, callerID string) ([]*domain.Article, error)
	// ListAll returns every article. Admin only.
	ListAll(ctx context.Context, callerID string) ([]*domain.Article, error)
	// Update patches an article after the role/ownership gate passes.
	Update(ctx context.Context, callerID, articleID string, patch UpdateArticleInput) (*domain.Article, error)
	// Remove deletes an article after the role/ownership gate passes.
	Remove(ctx context.Context, callerID, articleID string) error
}
