package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blog-escritores/publishing-api/internal/core/ports"
)

// ContactEnqueuer hands contact messages to the delivery workers.
type ContactEnqueuer interface {
	Enqueue(msg ports.ContactMessage)
}

// ContactHandler accepts public contact-form submissions.
type ContactHandler struct {
	queue ContactEnqueuer
}

func NewContactHandler(queue ContactEnqueuer) *ContactHandler {
	return &ContactHandler{queue: queue}
}

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

// Send handles POST /v1/contact. Delivery is asynchronous; the submission is
// acknowledged as soon as it is queued.
//
// @Summary      Send a contact message
// @Tags         contact
// @Accept       json
// @Param        body  body  contactRequest  true  "Contact message"
// @Success      202
// @Failure      400   {object}  map[string]string
// @Router       /v1/contact [post]
func (h *ContactHandler) Send(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.queue.Enqueue(ports.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
	})
	return c.NoContent(http.StatusAccepted)
}
