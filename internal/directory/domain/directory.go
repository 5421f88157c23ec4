// Package domain defines the directory entities: domains and the roles scoped
// to them. Domains partition the role namespace; a role belongs to at most one
// domain.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Domain is a namespace for roles. Its name is globally unique.
type Domain struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Role is an identity role, optionally owned by a domain. Role names are
// unique within their domain partition (roles without a domain form their own
// partition), so two roles in different domains may share a name.
type Role struct {
	ID        uuid.UUID
	Name      string
	DomainID  *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// QualifiedRoleName returns the name a role is known by in token claims:
// "{domainName}.{roleName}" for domain-owned roles, the bare role name
// otherwise.
func QualifiedRoleName(domainName, roleName string) string {
	if domainName == "" {
		return roleName
	}
	return domainName + "." + roleName
}
