package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
)

// TokenVerifier validates a session token and returns its principal.
// Satisfied by the identity gateway.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*domain.Principal, error)
}

// Auth validates the bearer token with the identity gateway and injects the
// principal into the request context. The token proves identity only; the
// effective role is resolved from the profile store per request.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			principal, err := verifier.VerifyToken(c.Request().Context(), parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("principal_id", principal.ID)
			c.Set("principal_email", principal.Email)

			return next(c)
		}
	}
}
