package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
	"github.com/blog-escritores/publishing-api/internal/core/ports"
)

// ProfileHandler handles profile, writer-directory, and user-management
// requests.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type updateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Province    *string `json:"province,omitempty"`
	Country     *string `json:"country,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user writer"`
}

type profileListResponse struct {
	Items []*domain.Profile `json:"items"`
	Total int               `json:"total"`
}

type writerPageResponse struct {
	Profile  *domain.Profile   `json:"profile"`
	Articles []*domain.Article `json:"articles"`
}

// GetMe handles GET /v1/profiles/me.
//
// @Summary      Get own profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  map[string]string
// @Router       /v1/profiles/me [get]
func (h *ProfileHandler) GetMe(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	profile, err := h.service.GetOwn(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateMe handles PUT /v1/profiles/me — self-edit of descriptive fields.
// Role and admin status are never writable through this path.
//
// @Summary      Update own profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  map[string]string
// @Router       /v1/profiles/me [put]
func (h *ProfileHandler) UpdateMe(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	profile, err := h.service.UpdateOwn(c.Request().Context(), principal, ports.UpdateProfileInput{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Province:    req.Province,
		Country:     req.Country,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// ListWriters handles GET /v1/writers — the public writer directory.
//
// @Summary      List writers
// @Tags         writers
// @Produce      json
// @Success      200  {object}  profileListResponse
// @Router       /v1/writers [get]
func (h *ProfileHandler) ListWriters(c echo.Context) error {
	writers, err := h.service.ListWriters(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileListResponse{Items: writers, Total: len(writers)})
}

// GetWriter handles GET /v1/writers/:id — a writer's public page with its
// published articles.
//
// @Summary      Get a writer's page
// @Tags         writers
// @Produce      json
// @Param        id   path      string  true  "Writer principal id"
// @Success      200  {object}  writerPageResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/writers/{id} [get]
func (h *ProfileHandler) GetWriter(c echo.Context) error {
	page, err := h.service.GetWriter(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, writerPageResponse{Profile: page.Profile, Articles: page.Articles})
}

// ListUsers handles GET /v1/admin/users — every profile, admins only.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileListResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/users [get]
func (h *ProfileHandler) ListUsers(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}
	users, err := h.service.ListUsers(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileListResponse{Items: users, Total: len(users)})
}

// SetRole handles PUT /v1/admin/users/:id/role — toggles a profile between
// user and writer.
//
// @Summary      Set a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Target principal id"
// @Param        body  body      setRoleRequest  true  "New role"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/users/{id}/role [put]
func (h *ProfileHandler) SetRole(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}

	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.service.SetRole(c.Request().Context(), principal.ID, c.Param("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
