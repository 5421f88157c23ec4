package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/allisson/identity/internal/database"
	"github.com/allisson/identity/internal/directory/domain"
	apperrors "github.com/allisson/identity/internal/errors"
)

// RoleUseCase handles role management operations.
type RoleUseCase struct {
	roleRepo   RoleRepository
	domainRepo DomainRepository
	txManager  database.TxManager
	logger     *slog.Logger
}

// NewRoleUseCase creates a new RoleUseCase.
func NewRoleUseCase(
	roleRepo RoleRepository,
	domainRepo DomainRepository,
	txManager database.TxManager,
	logger *slog.Logger,
) *RoleUseCase {
	return &RoleUseCase{
		roleRepo:   roleRepo,
		domainRepo: domainRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Create creates a role, optionally owned by a domain. Role names must be
// unique within their domain partition; roles in different domains may share
// a name.
func (u *RoleUseCase) Create(ctx context.Context, name string, domainID *uuid.UUID) (*domain.Role, error) {
	if err := validateEntityName(name); err != nil {
		return nil, err
	}

	if domainID != nil {
		if _, err := u.domainRepo.GetByID(ctx, *domainID); err != nil {
			return nil, err
		}
	}

	role := &domain.Role{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     name,
		DomainID: domainID,
	}

	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		_, err := u.roleRepo.GetByNameAndDomain(ctx, name, domainID)
		if err == nil {
			return domain.ErrRoleAlreadyExists
		}
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return u.roleRepo.Create(ctx, role)
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("role created", "role_id", role.ID, "name", role.Name)
	return role, nil
}

// Get retrieves a role by ID.
func (u *RoleUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	return u.roleRepo.GetByID(ctx, id)
}

// List retrieves roles with pagination.
func (u *RoleUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Role, error) {
	return u.roleRepo.List(ctx, offset, limit)
}

// ListByDomain retrieves all roles owned by a domain. The domain must exist.
func (u *RoleUseCase) ListByDomain(ctx context.Context, domainID uuid.UUID) ([]*domain.Role, error) {
	if _, err := u.domainRepo.GetByID(ctx, domainID); err != nil {
		return nil, err
	}
	return u.roleRepo.ListByDomain(ctx, domainID)
}

// Update renames a role. The new name must stay unique within the role's
// domain partition.
func (u *RoleUseCase) Update(ctx context.Context, id uuid.UUID, name string) (*domain.Role, error) {
	if err := validateEntityName(name); err != nil {
		return nil, err
	}

	role, err := u.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role.Name = name
	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		existing, err := u.roleRepo.GetByNameAndDomain(ctx, name, role.DomainID)
		if err == nil && existing.ID != role.ID {
			return domain.ErrRoleAlreadyExists
		}
		if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return u.roleRepo.Update(ctx, role)
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("role updated", "role_id", role.ID, "name", role.Name)
	return role, nil
}

// Delete removes a role and its assignments. Deleting an absent role
// succeeds.
func (u *RoleUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.roleRepo.Delete(ctx, id); err != nil {
		return err
	}

	u.logger.Info("role deleted", "role_id", id)
	return nil
}
