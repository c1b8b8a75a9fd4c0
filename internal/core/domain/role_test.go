package domain

import "testing"

func TestRole_AtLeast(t *testing.T) {
	cases := []struct {
		role Role
		min  Role
		want bool
	}{
		{RoleAdmin, RoleUnauthenticated, true},
		{RoleAdmin, RoleUser, true},
		{RoleAdmin, RoleWriter, true},
		{RoleAdmin, RoleAdmin, true},
		{RoleWriter, RoleUser, true},
		{RoleWriter, RoleWriter, true},
		{RoleWriter, RoleAdmin, false},
		{RoleUser, RoleWriter, false},
		{RoleUser, RoleUser, true},
		{RoleUnauthenticated, RoleUser, false},
		{Role("bogus"), RoleUser, false},
	}
	for _, tc := range cases {
		if got := tc.role.AtLeast(tc.min); got != tc.want {
			t.Errorf("%s.AtLeast(%s) = %v, want %v", tc.role, tc.min, got, tc.want)
		}
	}
}

func TestRoleFromProfile(t *testing.T) {
	if got := RoleFromProfile(nil); got != RoleUser {
		t.Fatalf("nil profile: got %s, want %s", got, RoleUser)
	}
	if got := RoleFromProfile(&Profile{Role: "writer"}); got != RoleWriter {
		t.Fatalf("writer profile: got %s", got)
	}
	if got := RoleFromProfile(&Profile{Role: "user"}); got != RoleUser {
		t.Fatalf("user profile: got %s", got)
	}
	if got := RoleFromProfile(&Profile{Role: "something-else"}); got != RoleUser {
		t.Fatalf("unknown role value: got %s", got)
	}
}

// Admin status comes from the IsAdmin flag alone; the stored role value
// never changes the outcome.
func TestRoleFromProfile_AdminFlagDominates(t *testing.T) {
	for _, roleValue := range []string{"user", "writer", ""} {
		p := &Profile{Role: roleValue, IsAdmin: true}
		if got := RoleFromProfile(p); got != RoleAdmin {
			t.Errorf("IsAdmin with role=%q: got %s, want %s", roleValue, got, RoleAdmin)
		}
	}
}

func TestCanMutateArticle(t *testing.T) {
	owned := &Article{ID: "a1", OwnerID: "p1"}
	foreign := &Article{ID: "a2", OwnerID: "p2"}

	cases := []struct {
		name      string
		role      Role
		principal string
		article   *Article
		want      bool
	}{
		{"admin mutates anything", RoleAdmin, "p9", foreign, true},
		{"writer mutates own", RoleWriter, "p1", owned, true},
		{"writer denied on foreign", RoleWriter, "p1", foreign, false},
		{"owner without writer role denied", RoleUser, "p1", owned, false},
		{"user denied on foreign", RoleUser, "p1", foreign, false},
		{"unauthenticated denied", RoleUnauthenticated, "", owned, false},
		{"nil article denied", RoleWriter, "p1", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanMutateArticle(tc.role, tc.principal, tc.article); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanAccessAdminSurface(t *testing.T) {
	if !CanAccessAdminSurface(RoleAdmin) {
		t.Fatalf("admin should access the admin surface")
	}
	for _, r := range []Role{RoleWriter, RoleUser, RoleUnauthenticated} {
		if CanAccessAdminSurface(r) {
			t.Errorf("%s should not access the admin surface", r)
		}
	}
}

func TestCategory_IsValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.IsValid() {
			t.Errorf("category %s should be valid", c)
		}
	}
	if Category("gastronomia").IsValid() {
		t.Fatalf("unknown category accepted")
	}
	if Category("").IsValid() {
		t.Fatalf("empty category accepted")
	}
}
