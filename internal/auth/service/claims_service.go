package service

import (
	"context"

	"github.com/google/uuid"

	apikeydomain "github.com/allisson/identity/internal/apikey/domain"
	"github.com/allisson/identity/internal/auth/domain"
	directorydomain "github.com/allisson/identity/internal/directory/domain"
	identitydomain "github.com/allisson/identity/internal/identity/domain"
)

// RoleLister lists the roles assigned to an identity.
type RoleLister interface {
	ListByIdentity(ctx context.Context, identityID uuid.UUID) ([]*directorydomain.Role, error)
}

// DomainGetter resolves a domain by ID.
type DomainGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*directorydomain.Domain, error)
}

// ClaimsService builds token claims for authenticated principals.
type ClaimsService struct {
	roleLister   RoleLister
	domainGetter DomainGetter
}

// NewClaimsService creates a new ClaimsService.
func NewClaimsService(roleLister RoleLister, domainGetter DomainGetter) *ClaimsService {
	return &ClaimsService{roleLister: roleLister, domainGetter: domainGetter}
}

// ForIdentity builds claims for an identity: the subject, the identifier as
// name, and one qualified role name per assigned role. A role referencing a
// missing domain fails the whole resolution.
func (s *ClaimsService) ForIdentity(ctx context.Context, identity *identitydomain.Identity) (*domain.Claims, error) {
	roles, err := s.roleLister.ListByIdentity(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	// Roles in the same domain resolve the domain name once.
	domainNames := make(map[uuid.UUID]string)

	qualified := make([]string, 0, len(roles))
	for _, role := range roles {
		domainName := ""
		if role.DomainID != nil {
			name, ok := domainNames[*role.DomainID]
			if !ok {
				d, err := s.domainGetter.GetByID(ctx, *role.DomainID)
				if err != nil {
					return nil, err
				}
				name = d.Name
				domainNames[*role.DomainID] = name
			}
			domainName = name
		}
		qualified = append(qualified, directorydomain.QualifiedRoleName(domainName, role.Name))
	}

	return &domain.Claims{
		Subject: identity.ID.String(),
		Name:    identity.Identifier,
		Roles:   qualified,
	}, nil
}

// ForAPIKey builds claims for an API key: the administrator role plus the
// key's granted permissions.
func (s *ClaimsService) ForAPIKey(key *apikeydomain.APIKey) *domain.Claims {
	permissions := make([]string, len(key.Permissions))
	copy(permissions, key.Permissions)

	return &domain.Claims{
		Subject:     key.ID.String(),
		Name:        key.Name,
		Roles:       []string{domain.AdministratorRole},
		Permissions: permissions,
	}
}
