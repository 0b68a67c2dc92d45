package domain

// Role is derived from the "user" claim of an access token. The clinic only
// knows two principals and the principal name doubles as its role.
type Role string

const (
	RoleAdmin Role = "admin" // reads and mutates
	RoleUser  Role = "user"  // reads only
)

func (r Role) String() string { return string(r) }

// ParseRole maps a claim value onto a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), true
	default:
		return "", false
	}
}

// CanRead reports whether the role may list and fetch records.
func (r Role) CanRead() bool { return r == RoleAdmin || r == RoleUser }

// CanMutate reports whether the role may create, update or delete records.
func (r Role) CanMutate() bool { return r == RoleAdmin }
