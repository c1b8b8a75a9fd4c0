package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
	"github.com/blog-escritores/publishing-api/internal/core/ports"
)

// RequireRole gates a route group behind a minimum role in the dominance
// order. The role is resolved from the profile store on every request, so a
// toggle takes effect immediately and a stale token never carries authority.
// Route gating remains advisory: services re-check their own invariants.
func RequireRole(resolver ports.RoleResolver, min domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principalID, _ := c.Get("principal_id").(string)
			role := resolver.ResolveRole(c.Request().Context(), principalID)
			if !role.AtLeast(min) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			c.Set("role", string(role))
			return next(c)
		}
	}
}
