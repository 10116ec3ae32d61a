package domain

import "strings"

// Role is the session role of the console user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleClerk   Role = "clerk"
)

// roleLevels orders the roles; a higher level grants more rights.
var roleLevels = map[Role]int{
	RoleAdmin:   3,
	RoleManager: 2,
	RoleClerk:   1,
}

// RoleLevel returns the hierarchy level of a role. Unknown roles are 0.
func RoleLevel(r Role) int {
	return roleLevels[r]
}

// AtLeast reports whether r is at or above required in the hierarchy.
func (r Role) AtLeast(required Role) bool {
	return RoleLevel(r) >= RoleLevel(required)
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := roleLevels[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}

// ParseRole maps a role claim to a Role, ignoring case and surrounding space.
// Unrecognized values are returned as-is and carry level 0.
func ParseRole(s string) Role {
	normalized := Role(strings.ToLower(strings.TrimSpace(s)))
	if normalized.IsValid() {
		return normalized
	}
	return Role(s)
}
