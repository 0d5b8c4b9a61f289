package domain

import "strings"

// RolePrefix is prepended to every canonical role name.
const RolePrefix = "ROLE_"

// RoleAdmin is the single distinguished administrator role. It may never
// coexist with any other role on the same account.
const RoleAdmin = "ROLE_ADMINISTRATOR"

const (
	RoleUser       = "ROLE_USER"
	RoleAccountant = "ROLE_ACCOUNTANT"
	RoleAuditor    = "ROLE_AUDITOR"
)

// Role is an entry of the system role catalog.
type Role struct {
	ID   int64
	Name string
}

// RoleAssignment is one (email, role) membership row.
type RoleAssignment struct {
	Email string
	Role  string
}

// CanonicalRole normalizes a requested role name to the catalog convention.
func CanonicalRole(name string) string {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if strings.HasPrefix(upper, RolePrefix) {
		return upper
	}
	return RolePrefix + upper
}

// RoleCatalog is the fixed system-wide role list, loaded once at startup and
// immutable afterwards.
type RoleCatalog struct {
	roles []Role
}

// NewRoleCatalog builds a catalog from the loaded role rows.
func NewRoleCatalog(roles []Role) *RoleCatalog {
	copied := make([]Role, len(roles))
	copy(copied, roles)
	return &RoleCatalog{roles: copied}
}

// List returns the catalog entries.
func (c *RoleCatalog) List() []Role {
	out := make([]Role, len(c.roles))
	copy(out, c.roles)
	return out
}

// Contains reports whether a requested role name resolves to a catalog entry.
// Matching is by canonical-name suffix, so both "AUDITOR" and "ROLE_AUDITOR"
// resolve to the same entry.
func (c *RoleCatalog) Contains(requested string) bool {
	suffix := strings.ToUpper(strings.TrimSpace(requested))
	suffix = strings.TrimPrefix(suffix, RolePrefix)
	for _, role := range c.roles {
		if strings.HasSuffix(role.Name, suffix) {
			return true
		}
	}
	return false
}
