package user

type Role string

const (
	RoleBuyer    Role = "buyer"
	RoleMechanic Role = "mechanic"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleBuyer, RoleMechanic, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsSelfRegistrable excludes admin; admins are provisioned out of band.
func (r Role) IsSelfRegistrable() bool {
	return r == RoleBuyer || r == RoleMechanic
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
