package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the FarmCred access-token claims. TenantID identifies the
// lender or cooperative organisation the caller acts for.
type Claims struct {
	jwt.RegisteredClaims
	Roles    []string  `json:"roles"`
	UserID   uuid.UUID `json:"user_id"`
	TenantID uuid.UUID `json:"tenant_id"`
}

// HasRole checks if the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// HasAnyRole reports whether at least one of roles is granted.
func (c Claims) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if c.HasRole(r) {
			return true
		}
	}
	return false
}

const (
	RoleAdmin       = "admin"
	RoleLender      = "lender"
	RoleCooperative = "cooperative"
	RoleFarmer      = "farmer"
	RoleService     = "service"
)
