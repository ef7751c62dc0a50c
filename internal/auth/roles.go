package auth

import (
	"fmt"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// Policy is the per-route role requirement.
type Policy int

const (
	RequireAdmin Policy = iota + 1
	RequireCustomer
	// RequireAny accepts either recognized role.
	RequireAny
)

// Allows reports whether a decoded role satisfies the policy. Roles outside the
// recognized set never satisfy any policy.
func (p Policy) Allows(role domain.Role) bool {
	if !role.Valid() {
		return false
	}
	switch p {
	case RequireAdmin:
		return role == domain.RoleAdmin
	case RequireCustomer:
		return role == domain.RoleCustomer
	case RequireAny:
		return true
	}
	return false
}

func (p Policy) String() string {
	switch p {
	case RequireAdmin:
		return "admin"
	case RequireCustomer:
		return "customer"
	case RequireAny:
		return "both"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}
