package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blog-escritores/publishing-api/internal/api/metrics"
	"github.com/blog-escritores/publishing-api/internal/core/domain"
	"github.com/blog-escritores/publishing-api/internal/core/ports"
)

// ArticleHandler handles HTTP requests for article operations.
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

type createArticleRequest struct {
	Title        string `json:"title" validate:"required"`
	Category     string `json:"category" validate:"required"`
	Content      string `json:"content" validate:"required"`
	ThumbnailURL string `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
}

type updateArticleRequest struct {
	Title        *string `json:"title,omitempty"`
	Category     *string `json:"category,omitempty"`
	Content      *string `json:"content,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
}

type articleListResponse struct {
	Items []*domain.Article `json:"items"`
	Total int               `json:"total"`
}

// ListPublic handles GET /v1/articles — the public blog surface.
//
// @Summary      List published articles
// @Tags         articles
// @Produce      json
// @Param        category  query     string  false  "Filter by category"
// @Success      200       {object}  articleListResponse
// @Failure      400       {object}  map[string]string
// @Router       /v1/articles [get]
func (h *ArticleHandler) ListPublic(c echo.Context) error {
	articles, err := h.service.ListPublic(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articleListResponse{Items: articles, Total: len(articles)})
}

// Get handles GET /v1/articles/:id.
//
// @Summary      Get an article
// @Tags         articles
// @Produce      json
// @Param        id   path      string  true  "Article id"
// @Success      200  {object}  domain.Article
// @Failure      404  {object}  map[string]string
// @Router       /v1/articles/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	article, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}

// Create handles POST /v1/articles. Requires the writer role or above; the
// owner and author snapshot come from the caller's identity.
//
// @Summary      Publish a new article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createArticleRequest  true  "Article"
// @Success      201   {object}  domain.Article
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}

	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	article, err := h.service.Create(c.Request().Context(), principal, ports.CreateArticleInput{
		Title:        req.Title,
		Category:     req.Category,
		Content:      req.Content,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		return err
	}

	metrics.ArticlesCreatedTotal.WithLabelValues(string(article.Category)).Inc()
	return c.JSON(http.StatusCreated, article)
}

// Update handles PUT /v1/articles/:id. Owner or admin only.
//
// @Summary      Update an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Article id"
// @Param        body  body      updateArticleRequest  true  "Fields to change"
// @Success      200   {object}  domain.Article
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/articles/{id} [put]
func (h *ArticleHandler) Update(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}

	var req updateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	article, err := h.service.Update(c.Request().Context(), principal.ID, c.Param("id"), ports.UpdateArticleInput{
		Title:        req.Title,
		Category:     req.Category,
		Content:      req.Content,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			metrics.ArticleMutationsDenied.WithLabelValues("update").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, article)
}

// Delete handles DELETE /v1/articles/:id. Owner or admin only.
//
// @Summary      Delete an article
// @Tags         articles
// @Security     BearerAuth
// @Param        id  path  string  true  "Article id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}

	if err := h.service.Remove(c.Request().Context(), principal.ID, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			metrics.ArticleMutationsDenied.WithLabelValues("delete").Inc()
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListOwn handles GET /v1/dashboard/articles — the caller's own articles,
// title ascending.
//
// @Summary      List own articles
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  articleListResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/dashboard/articles [get]
func (h *ArticleHandler) ListOwn(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}

	articles, err := h.service.ListOwn(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articleListResponse{Items: articles, Total: len(articles)})
}

// ListAll handles GET /v1/admin/articles — every article, admins only.
//
// @Summary      List all articles
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  articleListResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/articles [get]
func (h *ArticleHandler) ListAll(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}

	articles, err := h.service.ListAll(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articleListResponse{Items: articles, Total: len(articles)})
}
