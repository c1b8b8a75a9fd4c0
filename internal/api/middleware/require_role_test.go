package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/blog-escritores/publishing-api/internal/core/domain"
)

type stubResolver struct {
	roles map[string]domain.Role
}

func (s *stubResolver) ResolveRole(_ context.Context, principalID string) domain.Role {
	if principalID == "" {
		return domain.RoleUnauthenticated
	}
	if role, ok := s.roles[principalID]; ok {
		return role
	}
	return domain.RoleUser
}

func runRequireRole(t *testing.T, resolver *stubResolver, principalID string, min domain.Role) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principalID != "" {
		c.Set("principal_id", principalID)
	}

	called := false
	err := RequireRole(resolver, min)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	return rec, called
}

func TestRequireRole_DominanceOrder(t *testing.T) {
	resolver := &stubResolver{roles: map[string]domain.Role{
		"boss": domain.RoleAdmin,
		"w1":   domain.RoleWriter,
		"u1":   domain.RoleUser,
	}}

	cases := []struct {
		name      string
		principal string
		min       domain.Role
		allowed   bool
	}{
		{"admin passes admin gate", "boss", domain.RoleAdmin, true},
		{"admin passes writer gate", "boss", domain.RoleWriter, true},
		{"writer passes writer gate", "w1", domain.RoleWriter, true},
		{"writer denied at admin gate", "w1", domain.RoleAdmin, false},
		{"user denied at writer gate", "u1", domain.RoleWriter, false},
		{"unauthenticated denied at user gate", "", domain.RoleUser, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, called := runRequireRole(t, resolver, tc.principal, tc.min)
			if called != tc.allowed {
				t.Fatalf("called = %v, want %v", called, tc.allowed)
			}
			if !tc.allowed && rec.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", rec.Code)
			}
		})
	}
}

// The role comes from the resolver on every request; a principal without any
// profile still resolves to user and may pass user-level gates.
func TestRequireRole_ProfilelessPrincipal(t *testing.T) {
	resolver := &stubResolver{roles: map[string]domain.Role{}}
	_, called := runRequireRole(t, resolver, "fresh", domain.RoleUser)
	if !called {
		t.Fatalf("profileless principal should pass a user-level gate")
	}
	rec, called := runRequireRole(t, resolver, "fresh", domain.RoleWriter)
	if called || rec.Code != http.StatusForbidden {
		t.Fatalf("profileless principal must not pass a writer gate")
	}
}
