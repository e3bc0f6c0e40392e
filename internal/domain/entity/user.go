package entity

type Role string

const (
	RoleCustomer   Role = "Customer"
	RoleSpecialist Role = "Specialist"
	RoleAdmin      Role = "Admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSpecialist, RoleAdmin:
		return true
	}
	return false
}

// User is owned by the identity side of the system; the domain services only
// read it for role and ownership checks.
type User struct {
	ID    int64
	Name  string
	Email string
	Phone string
	Role  Role
}

func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// RequireRole fails with ErrUnauthorized when the user holds none of the
// given roles.
func RequireRole(u *User, roles ...Role) error {
	if u == nil || !u.HasRole(roles...) {
		return ErrUnauthorized
	}
	return nil
}
