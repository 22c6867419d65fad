// Package entitlement decides content access from membership roles.
package entitlement

import "fmt"

// Role is a membership tier. Values match the stored member data.
type Role string

const (
	RoleFree    Role = "Free_User"
	RolePremium Role = "Premium"
	RoleMaster  Role = "Master"
)

// rank orders roles for access comparison. Unknown roles rank below
// every known tier so gating fails closed.
func rank(r Role) int {
	switch r {
	case RoleFree:
		return 1
	case RolePremium:
		return 2
	case RoleMaster:
		return 3
	default:
		return 0
	}
}

// Valid reports whether r is a known membership tier.
func (r Role) Valid() bool {
	return rank(r) > 0
}

// ParseRole converts a stored string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("entitlement: unknown role %q", s)
	}
	return r, nil
}

// CanAccess reports whether a member with userRole may open content
// gated at requiredRole.
func CanAccess(userRole, requiredRole Role) bool {
	return rank(userRole) >= rank(requiredRole)
}
