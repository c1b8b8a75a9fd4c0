package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blog-escritores/publishing-api/internal/api/metrics"
	"github.com/blog-escritores/publishing-api/internal/core/domain"
	"github.com/blog-escritores/publishing-api/internal/core/ports"
)

// ProvisioningHandler exposes the admin writer-provisioning workflow.
type ProvisioningHandler struct {
	service ports.ProvisioningService
}

func NewProvisioningHandler(service ports.ProvisioningService) *ProvisioningHandler {
	return &ProvisioningHandler{service: service}
}

type createWriterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Province string `json:"province,omitempty"`
	Country  string `json:"country,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

// CreateWriter handles POST /v1/admin/writers. On success exactly one new
// principal and profile exist and one credential-setup email has been sent;
// the admin's own session is untouched.
//
// @Summary      Provision a new writer
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createWriterRequest  true  "Writer details"
// @Success      201   {object}  domain.Profile
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/admin/writers [post]
func (h *ProvisioningHandler) CreateWriter(c echo.Context) error {
	principal, err := caller(c)
	if err != nil {
		return err
	}

	var req createWriterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.ProvisioningTotal.WithLabelValues("validation_failed").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.service.CreateWriter(c.Request().Context(), principal.ID, ports.CreateWriterInput{
		Name:     req.Name,
		Email:    req.Email,
		Province: req.Province,
		Country:  req.Country,
		Bio:      req.Bio,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			metrics.ProvisioningTotal.WithLabelValues("validation_failed").Inc()
		case errors.Is(err, domain.ErrEmailInUse):
			metrics.ProvisioningTotal.WithLabelValues("email_in_use").Inc()
		case errors.Is(err, domain.ErrPartialProvisioning):
			metrics.ProvisioningTotal.WithLabelValues("partial").Inc()
		default:
			metrics.ProvisioningTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.ProvisioningTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusCreated, profile)
}
