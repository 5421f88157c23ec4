// Package usecase implements the directory business logic.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/identity/internal/directory/domain"
)

// DomainRepository defines the interface for domain persistence.
type DomainRepository interface {
	Create(ctx context.Context, d *domain.Domain) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Domain, error)
	GetByName(ctx context.Context, name string) (*domain.Domain, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Domain, error)
	Update(ctx context.Context, d *domain.Domain) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RoleRepository defines the interface for role persistence.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error)
	GetByNameAndDomain(ctx context.Context, name string, domainID *uuid.UUID) (*domain.Role, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Role, error)
	ListByDomain(ctx context.Context, domainID uuid.UUID) ([]*domain.Role, error)
	ListByIdentity(ctx context.Context, identityID uuid.UUID) ([]*domain.Role, error)
	Update(ctx context.Context, role *domain.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
}
