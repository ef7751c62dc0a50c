package domain

// Role is the closed set of account roles carried in the token's user_type claim.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCustomer:
		return true
	}
	return false
}

// NormalizeRole maps a stored user type to a token role. Anything other than
// admin is issued as customer.
func NormalizeRole(userType string) Role {
	if Role(userType) == RoleAdmin {
		return RoleAdmin
	}
	return RoleCustomer
}
