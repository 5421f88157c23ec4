package usecase

import (
	"github.com/allisson/identity/internal/auth/domain"
)

// Requirement is what an endpoint demands from a caller.
type Requirement struct {
	// Permission names the catalog permission the endpoint is guarded by.
	Permission string
}

// CheckerFunc votes on whether the claims satisfy the requirement. Checkers
// are independent; a single approval authorizes the request.
type CheckerFunc func(claims *domain.Claims, requirement Requirement) bool

// Authorizer decides authorization by running every registered checker and
// approving the request if any checker does.
type Authorizer struct {
	checkers []CheckerFunc
}

// NewAuthorizer creates an Authorizer with the given checkers.
func NewAuthorizer(checkers ...CheckerFunc) *Authorizer {
	return &Authorizer{checkers: checkers}
}

// NewDefaultAuthorizer creates an Authorizer with the standard checkers:
// direct permission match and administrator override.
func NewDefaultAuthorizer() *Authorizer {
	return NewAuthorizer(PermissionChecker, AdministratorChecker)
}

// Authorize reports whether the claims satisfy the requirement. Every checker
// runs; the results are OR-combined.
func (a *Authorizer) Authorize(claims *domain.Claims, requirement Requirement) bool {
	authorized := false
	for _, checker := range a.checkers {
		if checker(claims, requirement) {
			authorized = true
		}
	}
	return authorized
}

// PermissionChecker approves when the claims carry the required permission.
func PermissionChecker(claims *domain.Claims, requirement Requirement) bool {
	return claims.HasPermission(requirement.Permission)
}

// AdministratorChecker approves when the claims carry the administrator role,
// regardless of the required permission.
func AdministratorChecker(claims *domain.Claims, _ Requirement) bool {
	return claims.HasRole(domain.AdministratorRole)
}
