package usecase

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/identity/internal/auth/domain"
	directorydomain "github.com/allisson/identity/internal/directory/domain"
	apperrors "github.com/allisson/identity/internal/errors"
	identitydomain "github.com/allisson/identity/internal/identity/domain"
	identityusecase "github.com/allisson/identity/internal/identity/usecase"
)

func TestSetupUseCase_Run(t *testing.T) {
	logger := slog.Default()

	t.Run("fresh database creates everything", func(t *testing.T) {
		domainRepo := new(mockBootstrapDomainRepository)
		domainRepo.On("GetByName", mock.Anything, "mis").
			Return(nil, directorydomain.ErrDomainNotFound)
		domainRepo.On("Create", mock.Anything, mock.MatchedBy(func(d *directorydomain.Domain) bool {
			return d.Name == "mis"
		})).Return(nil)

		roleRepo := new(mockBootstrapRoleRepository)
		roleRepo.On("GetByNameAndDomain", mock.Anything, "admin", mock.Anything).
			Return(nil, directorydomain.ErrRoleNotFound)
		roleRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *directorydomain.Role) bool {
			return r.Name == "admin" && r.DomainID != nil
		})).Return(nil)

		adminID := uuid.New()
		identityService := new(mockBootstrapIdentityService)
		identityService.On("GetByIdentifier", mock.Anything, "root@example.com").
			Return(nil, identitydomain.ErrIdentityNotFound)
		identityService.On("Create", mock.Anything, identityusecase.CreateIdentityInput{
			Identifier: "root@example.com",
			Password:   "Sup3rSecret",
		}).Return(&identitydomain.Identity{ID: adminID, Identifier: "root@example.com"}, nil)
		identityService.On("SetRoles", mock.Anything, adminID, mock.MatchedBy(func(ids []uuid.UUID) bool {
			return len(ids) == 1
		})).Return(nil)

		uc := NewSetupUseCase(domainRepo, roleRepo, identityService, SetupConfig{
			CreateAdminIfMissing: true,
			AdminIdentifier:      "root@example.com",
			AdminPassword:        "Sup3rSecret",
		}, logger)

		assert.NoError(t, uc.Run(context.Background()))
		domainRepo.AssertExpectations(t)
		roleRepo.AssertExpectations(t)
		identityService.AssertExpectations(t)
	})

	t.Run("second run creates nothing", func(t *testing.T) {
		domainID := uuid.New()
		domainRepo := new(mockBootstrapDomainRepository)
		domainRepo.On("GetByName", mock.Anything, "mis").
			Return(&directorydomain.Domain{ID: domainID, Name: "mis"}, nil)

		roleRepo := new(mockBootstrapRoleRepository)
		roleRepo.On("GetByNameAndDomain", mock.Anything, "admin", &domainID).
			Return(&directorydomain.Role{ID: uuid.New(), Name: "admin", DomainID: &domainID}, nil)

		identityService := new(mockBootstrapIdentityService)
		identityService.On("GetByIdentifier", mock.Anything, "root@example.com").
			Return(&identitydomain.Identity{ID: uuid.New(), Identifier: "root@example.com"}, nil)

		uc := NewSetupUseCase(domainRepo, roleRepo, identityService, SetupConfig{
			CreateAdminIfMissing: true,
			AdminIdentifier:      "root@example.com",
			AdminPassword:        "Sup3rSecret",
		}, logger)

		assert.NoError(t, uc.Run(context.Background()))
		domainRepo.AssertNotCalled(t, "Create")
		roleRepo.AssertNotCalled(t, "Create")
		identityService.AssertNotCalled(t, "Create")
		identityService.AssertNotCalled(t, "SetRoles")
	})

	t.Run("domain failure aborts", func(t *testing.T) {
		domainRepo := new(mockBootstrapDomainRepository)
		domainRepo.On("GetByName", mock.Anything, "mis").
			Return(nil, apperrors.New("connection refused"))

		roleRepo := new(mockBootstrapRoleRepository)
		identityService := new(mockBootstrapIdentityService)

		uc := NewSetupUseCase(domainRepo, roleRepo, identityService, SetupConfig{}, logger)

		assert.Error(t, uc.Run(context.Background()))
		roleRepo.AssertNotCalled(t, "GetByNameAndDomain")
	})

	t.Run("role failure aborts", func(t *testing.T) {
		domainID := uuid.New()
		domainRepo := new(mockBootstrapDomainRepository)
		domainRepo.On("GetByName", mock.Anything, "mis").
			Return(&directorydomain.Domain{ID: domainID, Name: "mis"}, nil)

		roleRepo := new(mockBootstrapRoleRepository)
		roleRepo.On("GetByNameAndDomain", mock.Anything, "admin", &domainID).
			Return(nil, directorydomain.ErrRoleNotFound)
		roleRepo.On("Create", mock.Anything, mock.Anything).
			Return(apperrors.New("connection refused"))

		uc := NewSetupUseCase(domainRepo, roleRepo, new(mockBootstrapIdentityService), SetupConfig{}, logger)

		assert.Error(t, uc.Run(context.Background()))
	})

	t.Run("administrator failure does not abort", func(t *testing.T) {
		domainID := uuid.New()
		domainRepo := new(mockBootstrapDomainRepository)
		domainRepo.On("GetByName", mock.Anything, "mis").
			Return(&directorydomain.Domain{ID: domainID, Name: "mis"}, nil)

		roleRepo := new(mockBootstrapRoleRepository)
		roleRepo.On("GetByNameAndDomain", mock.Anything, "admin", &domainID).
			Return(&directorydomain.Role{ID: uuid.New(), Name: "admin", DomainID: &domainID}, nil)

		identityService := new(mockBootstrapIdentityService)
		identityService.On("GetByIdentifier", mock.Anything, "root@example.com").
			Return(nil, identitydomain.ErrIdentityNotFound)
		identityService.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperrors.Wrap(apperrors.ErrInvalidInput, "weak password"))

		uc := NewSetupUseCase(domainRepo, roleRepo, identityService, SetupConfig{
			CreateAdminIfMissing: true,
			AdminIdentifier:      "root@example.com",
			AdminPassword:        "weak",
		}, logger)

		assert.NoError(t, uc.Run(context.Background()))
	})

	t.Run("blank admin credentials skip the step", func(t *testing.T) {
		domainID := uuid.New()
		domainRepo := new(mockBootstrapDomainRepository)
		domainRepo.On("GetByName", mock.Anything, "mis").
			Return(&directorydomain.Domain{ID: domainID, Name: "mis"}, nil)

		roleRepo := new(mockBootstrapRoleRepository)
		roleRepo.On("GetByNameAndDomain", mock.Anything, "admin", &domainID).
			Return(&directorydomain.Role{ID: uuid.New(), Name: "admin", DomainID: &domainID}, nil)

		identityService := new(mockBootstrapIdentityService)

		uc := NewSetupUseCase(domainRepo, roleRepo, identityService, SetupConfig{
			CreateAdminIfMissing: true,
		}, logger)

		assert.NoError(t, uc.Run(context.Background()))
		identityService.AssertNotCalled(t, "GetByIdentifier")
	})

	t.Run("reserved names are provisioned", func(t *testing.T) {
		assert.Equal(t, "mis", domain.DomainName)
		assert.Equal(t, "admin", domain.AdministratorRoleName)
	})
}
