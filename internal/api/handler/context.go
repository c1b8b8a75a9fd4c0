package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
)

// caller extracts the principal injected by the Auth middleware and
// fast-fails before any service call: a missing id means the middleware
// never ran on this route, which is a wiring bug surfaced as 401.
func caller(c echo.Context) (domain.Principal, error) {
	id, _ := c.Get("principal_id").(string)
	if id == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	email, _ := c.Get("principal_email").(string)
	return domain.Principal{ID: id, Email: email}, nil
}
