package domain

// Role of the caller as resolved by the upstream gateway
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleStaff      Role = "staff"
	RoleSuperStaff Role = "superstaff"
)

// ParseRole returns the role for a header value. Empty means customer.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case "", RoleCustomer:
		return RoleCustomer, true
	case RoleStaff:
		return RoleStaff, true
	case RoleSuperStaff:
		return RoleSuperStaff, true
	}
	return "", false
}

// Caller identity of the authenticated user
type Caller struct {
	UserID int64
	Role   Role
}

// IsStaff returns true for shop staff and super-staff
func (c Caller) IsStaff() bool {
	return c.Role == RoleStaff || c.Role == RoleSuperStaff
}
