package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
	"github.com/blog-escritores/publishing-api/internal/core/ports"
)

// articleService is the ownership-checked facade over the article
// repository. Every mutation goes through domain.CanMutateArticle with a
// freshly resolved role.
type articleService struct {
	repo     ports.ArticleRepository
	profiles ports.ProfileStore
	resolver ports.RoleResolver
	log      zerolog.Logger
}

func NewArticleService(repo ports.ArticleRepository, profiles ports.ProfileStore, resolver ports.RoleResolver, log zerolog.Logger) ports.ArticleService {
	return &articleService{repo: repo, profiles: profiles, resolver: resolver, log: log}
}

func (s *articleService) Create(ctx context.Context, caller domain.Principal, input ports.CreateArticleInput) (*domain.Article, error) {
	role := s.resolver.ResolveRole(ctx, caller.ID)
	if !role.AtLeast(domain.RoleWriter) {
		return nil, domain.ErrPermissionDenied
	}
	if input.Title == "" || input.Content == "" {
		return nil, fmt.Errorf("%w: title and content are required", domain.ErrValidation)
	}
	category := domain.Category(input.Category)
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, input.Category)
	}

	// Author snapshot: prefer the stored profile name so later renames do
	// not rewrite published bylines retroactively.
	authorName := caller.DisplayName
	if profile, err := s.profiles.Get(ctx, caller.ID); err == nil && profile.DisplayName != "" {
		authorName = profile.DisplayName
	}
	if authorName == "" {
		authorName = caller.Email
	}

	now := time.Now().UTC()
	article := &domain.Article{
		Title:        input.Title,
		Category:     category,
		Content:      input.Content,
		ThumbnailURL: input.ThumbnailURL,
		OwnerID:      caller.ID,
		AuthorName:   authorName,
		AuthorEmail:  caller.Email,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.repo.Create(ctx, article)
	if err != nil {
		s.log.Error().Err(err).Str("owner_id", caller.ID).Msg("failed to create article")
		return nil, err
	}
	article.ID = id

	s.log.Info().Str("article_id", id).Str("owner_id", caller.ID).Str("category", input.Category).Msg("article published")
	return article, nil
}

func (s *articleService) Get(ctx context.Context, id string) (*domain.Article, error) {
	return s.repo.Get(ctx, id)
}

func (s *articleService) ListPublic(ctx context.Context, category string) ([]*domain.Article, error) {
	filter := ports.ListArticlesFilter{}
	if category != "" {
		c := domain.Category(category)
		if !c.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, category)
		}
		filter.Category = c
	}
	return s.repo.List(ctx, filter)
}

// ListOwn returns the caller's own articles ordered by title ascending,
// case-insensitive. Own data, permitted for any authenticated principal.
func (s *articleService) ListOwn(ctx context.Context, callerID string) ([]*domain.Article, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	articles, err := s.repo.List(ctx, ports.ListArticlesFilter{OwnerID: callerID})
	if err != nil {
		return nil, err
	}
	sortByTitle(articles)
	return articles, nil
}

// ListAll returns every article. Admin only, re-checked here rather than
// trusting the route gate.
func (s *articleService) ListAll(ctx context.Context, callerID string) ([]*domain.Article, error) {
	if !domain.CanAccessAdminSurface(s.resolver.ResolveRole(ctx, callerID)) {
		return nil, domain.ErrPermissionDenied
	}
	articles, err := s.repo.List(ctx, ports.ListArticlesFilter{})
	if err != nil {
		return nil, err
	}
	sortByTitle(articles)
	return articles, nil
}

func (s *articleService) Update(ctx context.Context, callerID, articleID string, patch ports.UpdateArticleInput) (*domain.Article, error) {
	article, err := s.gateMutation(ctx, callerID, articleID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
		}
		article.Title = *patch.Title
	}
	if patch.Category != nil {
		c := domain.Category(*patch.Category)
		if !c.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, *patch.Category)
		}
		article.Category = c
	}
	if patch.Content != nil {
		article.Content = *patch.Content
	}
	if patch.ThumbnailURL != nil {
		article.ThumbnailURL = *patch.ThumbnailURL
	}
	article.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, article); err != nil {
		s.log.Error().Err(err).Str("article_id", articleID).Msg("failed to update article")
		return nil, err
	}
	return article, nil
}

func (s *articleService) Remove(ctx context.Context, callerID, articleID string) error {
	if _, err := s.gateMutation(ctx, callerID, articleID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, articleID); err != nil {
		s.log.Error().Err(err).Str("article_id", articleID).Msg("failed to delete article")
		return err
	}
	s.log.Info().Str("article_id", articleID).Str("caller_id", callerID).Msg("article deleted")
	return nil
}

// gateMutation loads the article and evaluates the role/ownership gate.
// When the gate fails nothing has been mutated.
func (s *articleService) gateMutation(ctx context.Context, callerID, articleID string) (*domain.Article, error) {
	article, err := s.repo.Get(ctx, articleID)
	if err != nil {
		return nil, err
	}
	role := s.resolver.ResolveRole(ctx, callerID)
	if !domain.CanMutateArticle(role, callerID, article) {
		return nil, domain.ErrPermissionDenied
	}
	return article, nil
}

func sortByTitle(articles []*domain.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return strings.ToLower(articles[i].Title) < strings.ToLower(articles[j].Title)
	})
}
