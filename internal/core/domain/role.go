package domain

// Role is the effective permission tier of a principal. Tiers are strictly
// ordered: Admin dominates Writer, Writer dominates User, User dominates
// Unauthenticated. Every capability granted to a lower tier is granted to
// all higher tiers.
type Role string

const (
	RoleUnauthenticated Role = "unauthenticated"
	RoleUser            Role = "user"
	RoleWriter          Role = "writer"
	RoleAdmin           Role = "admin"
)

var roleRank = map[Role]int{
	RoleUnauthenticated: 0,
	RoleUser:            1,
	RoleWriter:          2,
	RoleAdmin:           3,
}

// AtLeast reports whether r sits at or above min in the dominance order.
// Unknown roles rank below Unauthenticated.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

// RoleFromProfile derives the effective role from a profile record.
// IsAdmin grants Admin regardless of the stored role value. A nil profile
// (authenticated principal without a profile document) falls back to User
// so the account still gets a defined, minimal permission set.
func RoleFromProfile(p *Profile) Role {
	if p == nil {
		return RoleUser
	}
	if p.IsAdmin {
		return RoleAdmin
	}
	if p.Role == string(RoleWriter) {
		return RoleWriter
	}
	return RoleUser
}

// CanMutateArticle reports whether a principal may edit or delete the given
// article. Admins may mutate anything; a Writer may mutate only articles it
// owns. Ownership alone is not enough: a plain User cannot mutate an article
// it owns, because the writer role gates content capability. Pure decision
// function, every mutation path goes through it.
func CanMutateArticle(role Role, principalID string, a *Article) bool {
	if role == RoleAdmin {
		return true
	}
	return role.AtLeast(RoleWriter) && a != nil && a.OwnerID == principalID
}

// CanAccessAdminSurface reports whether the role may see the user-management
// and writer-provisioning surface. Gating at the route layer is advisory;
// services re-check this before acting.
func CanAccessAdminSurface(role Role) bool {
	return role == RoleAdmin
}
