package usecase

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/identity/internal/directory/domain"
	apperrors "github.com/allisson/identity/internal/errors"
)

func TestRoleUseCase_Create(t *testing.T) {
	logger := slog.Default()

	t.Run("role in domain", func(t *testing.T) {
		domainID := uuid.New()
		domainRepo := new(mockDomainRepository)
		domainRepo.On("GetByID", mock.Anything, domainID).
			Return(&domain.Domain{ID: domainID, Name: "billing"}, nil)

		roleRepo := new(mockRoleRepository)
		roleRepo.On("GetByNameAndDomain", mock.Anything, "viewer", &domainID).
			Return(nil, domain.ErrRoleNotFound)
		roleRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Role) bool {
			return r.Name == "viewer" && r.DomainID != nil && *r.DomainID == domainID
		})).Return(nil)

		uc := NewRoleUseCase(roleRepo, domainRepo, &fakeTxManager{}, logger)
		role, err := uc.Create(context.Background(), "viewer", &domainID)

		assert.NoError(t, err)
		assert.Equal(t, "viewer", role.Name)
		roleRepo.AssertExpectations(t)
	})

	t.Run("role without domain", func(t *testing.T) {
		domainRepo := new(mockDomainRepository)
		roleRepo := new(mockRoleRepository)
		roleRepo.On("GetByNameAndDomain", mock.Anything, "auditor", (*uuid.UUID)(nil)).
			Return(nil, domain.ErrRoleNotFound)
		roleRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Role) bool {
			return r.Name == "auditor" && r.DomainID == nil
		})).Return(nil)

		uc := NewRoleUseCase(roleRepo, domainRepo, &fakeTxManager{}, logger)
		role, err := uc.Create(context.Background(), "auditor", nil)

		assert.NoError(t, err)
		assert.Nil(t, role.DomainID)
		domainRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("duplicate name in same partition", func(t *testing.T) {
		domainID := uuid.New()
		domainRepo := new(mockDomainRepository)
		domainRepo.On("GetByID", mock.Anything, domainID).
			Return(&domain.Domain{ID: domainID, Name: "billing"}, nil)

		roleRepo := new(mockRoleRepository)
		roleRepo.On("GetByNameAndDomain", mock.Anything, "viewer", &domainID).
			Return(&domain.Role{ID: uuid.New(), Name: "viewer", DomainID: &domainID}, nil)

		uc := NewRoleUseCase(roleRepo, domainRepo, &fakeTxManager{}, logger)
		role, err := uc.Create(context.Background(), "viewer", &domainID)

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Nil(t, role)
		roleRepo.AssertNotCalled(t, "Create")
	})

	t.Run("same name in different partition is allowed", func(t *testing.T) {
		otherDomainID := uuid.New()
		domainRepo := new(mockDomainRepository)
		domainRepo.On("GetByID", mock.Anything, otherDomainID).
			Return(&domain.Domain{ID: otherDomainID, Name: "shipping"}, nil)

		roleRepo := new(mockRoleRepository)
		roleRepo.On("GetByNameAndDomain", mock.Anything, "viewer", &otherDomainID).
			Return(nil, domain.ErrRoleNotFound)
		roleRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		uc := NewRoleUseCase(roleRepo, domainRepo, &fakeTxManager{}, logger)
		role, err := uc.Create(context.Background(), "viewer", &otherDomainID)

		assert.NoError(t, err)
		assert.Equal(t, "viewer", role.Name)
	})

	t.Run("missing domain", func(t *testing.T) {
		domainID := uuid.New()
		domainRepo := new(mockDomainRepository)
		domainRepo.On("GetByID", mock.Anything, domainID).Return(nil, domain.ErrDomainNotFound)

		roleRepo := new(mockRoleRepository)

		uc := NewRoleUseCase(roleRepo, domainRepo, &fakeTxManager{}, logger)
		role, err := uc.Create(context.Background(), "viewer", &domainID)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Nil(t, role)
		roleRepo.AssertNotCalled(t, "Create")
	})
}

func TestRoleUseCase_Update(t *testing.T) {
	logger := slog.Default()

	t.Run("rename to taken name in partition", func(t *testing.T) {
		domainID := uuid.New()
		roleID := uuid.New()
		domainRepo := new(mockDomainRepository)
		roleRepo := new(mockRoleRepository)
		roleRepo.On("GetByID", mock.Anything, roleID).
			Return(&domain.Role{ID: roleID, Name: "viewer", DomainID: &domainID}, nil)
		roleRepo.On("GetByNameAndDomain", mock.Anything, "editor", &domainID).
			Return(&domain.Role{ID: uuid.New(), Name: "editor", DomainID: &domainID}, nil)

		uc := NewRoleUseCase(roleRepo, domainRepo, &fakeTxManager{}, logger)
		role, err := uc.Update(context.Background(), roleID, "editor")

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Nil(t, role)
		roleRepo.AssertNotCalled(t, "Update")
	})

	t.Run("rename keeping own name", func(t *testing.T) {
		domainID := uuid.New()
		roleID := uuid.New()
		existing := &domain.Role{ID: roleID, Name: "viewer", DomainID: &domainID}
		domainRepo := new(mockDomainRepository)
		roleRepo := new(mockRoleRepository)
		roleRepo.On("GetByID", mock.Anything, roleID).Return(existing, nil)
		roleRepo.On("GetByNameAndDomain", mock.Anything, "viewer", &domainID).Return(existing, nil)
		roleRepo.On("Update", mock.Anything, existing).Return(nil)

		uc := NewRoleUseCase(roleRepo, domainRepo, &fakeTxManager{}, logger)
		role, err := uc.Update(context.Background(), roleID, "viewer")

		assert.NoError(t, err)
		assert.Equal(t, "viewer", role.Name)
	})
}

func TestRoleUseCase_ListByDomain(t *testing.T) {
	logger := slog.Default()

	t.Run("missing domain", func(t *testing.T) {
		domainID := uuid.New()
		domainRepo := new(mockDomainRepository)
		domainRepo.On("GetByID", mock.Anything, domainID).Return(nil, domain.ErrDomainNotFound)

		roleRepo := new(mockRoleRepository)

		uc := NewRoleUseCase(roleRepo, domainRepo, &fakeTxManager{}, logger)
		roles, err := uc.ListByDomain(context.Background(), domainID)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Nil(t, roles)
	})
}
