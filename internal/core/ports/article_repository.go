package ports

import (
	"context"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
)

// ListArticlesFilter carries the query parameters for listing articles.
// OwnerID scoping is always decided by the service layer, never by callers.
type ListArticlesFilter struct {
	OwnerID  string          // empty = no owner filter (admin / public views)
	Category domain.Category // optional: filter by category
}

// ArticleRepository defines persistence operations for articles. Ordering is
// by title ascending, case-insensitive, for every list operation.
type ArticleRepository interface {
	Create(ctx context.Context, a *domain.Article) (string, error)
	// Get returns the article or domain.ErrArticleNotFound.
	Get(ctx context.Context, id string) (*domain.Article, error)
	Update(ctx context.Context, a *domain.Article) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListArticlesFilter) ([]*domain.Article, error)
}
