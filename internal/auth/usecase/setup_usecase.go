package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/allisson/identity/internal/auth/domain"
	directorydomain "github.com/allisson/identity/internal/directory/domain"
	apperrors "github.com/allisson/identity/internal/errors"
	identityusecase "github.com/allisson/identity/internal/identity/usecase"
)

// SetupConfig controls the optional administrator bootstrap.
type SetupConfig struct {
	// CreateAdminIfMissing enables creation of the bootstrap administrator.
	CreateAdminIfMissing bool
	// AdminIdentifier is the administrator identity's identifier.
	AdminIdentifier string
	// AdminPassword is the administrator identity's password.
	AdminPassword string
}

// SetupUseCase provisions the reserved directory entities on startup: the
// "mis" domain, its "admin" role, and optionally an administrator identity.
// Every step is idempotent, so running it on each start is safe.
type SetupUseCase struct {
	domainRepo      BootstrapDomainRepository
	roleRepo        BootstrapRoleRepository
	identityService BootstrapIdentityService
	config          SetupConfig
	logger          *slog.Logger
}

// NewSetupUseCase creates a new SetupUseCase.
func NewSetupUseCase(
	domainRepo BootstrapDomainRepository,
	roleRepo BootstrapRoleRepository,
	identityService BootstrapIdentityService,
	config SetupConfig,
	logger *slog.Logger,
) *SetupUseCase {
	return &SetupUseCase{
		domainRepo:      domainRepo,
		roleRepo:        roleRepo,
		identityService: identityService,
		config:          config,
		logger:          logger,
	}
}

// Run ensures the reserved entities exist. A failure to provision the domain
// or role is returned to the caller and should abort startup; a failure to
// provision the administrator identity is only logged, since an operator can
// create one later through the API.
func (uc *SetupUseCase) Run(ctx context.Context) error {
	reservedDomain, err := uc.ensureDomain(ctx)
	if err != nil {
		return err
	}

	adminRole, err := uc.ensureAdministratorRole(ctx, reservedDomain)
	if err != nil {
		return err
	}

	uc.ensureAdministratorIdentity(ctx, adminRole)
	return nil
}

func (uc *SetupUseCase) ensureDomain(ctx context.Context) (*directorydomain.Domain, error) {
	existing, err := uc.domainRepo.GetByName(ctx, domain.DomainName)
	if err == nil {
		return existing, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	created := &directorydomain.Domain{
		ID:   uuid.Must(uuid.NewV7()),
		Name: domain.DomainName,
	}
	if err := uc.domainRepo.Create(ctx, created); err != nil {
		return nil, err
	}

	uc.logger.Info("reserved domain created", "name", domain.DomainName)
	return created, nil
}

func (uc *SetupUseCase) ensureAdministratorRole(ctx context.Context, reservedDomain *directorydomain.Domain) (*directorydomain.Role, error) {
	existing, err := uc.roleRepo.GetByNameAndDomain(ctx, domain.AdministratorRoleName, &reservedDomain.ID)
	if err == nil {
		return existing, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	domainID := reservedDomain.ID
	created := &directorydomain.Role{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     domain.AdministratorRoleName,
		DomainID: &domainID,
	}
	if err := uc.roleRepo.Create(ctx, created); err != nil {
		return nil, err
	}

	uc.logger.Info("administrator role created", "name", domain.AdministratorRole)
	return created, nil
}

func (uc *SetupUseCase) ensureAdministratorIdentity(ctx context.Context, adminRole *directorydomain.Role) {
	if !uc.config.CreateAdminIfMissing {
		return
	}

	if uc.config.AdminIdentifier == "" || uc.config.AdminPassword == "" {
		uc.logger.Warn("administrator bootstrap skipped", "reason", "missing identifier or password")
		return
	}

	_, err := uc.identityService.GetByIdentifier(ctx, uc.config.AdminIdentifier)
	if err == nil {
		// An existing identity is left untouched, even if its roles changed.
		return
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		uc.logger.Warn("administrator bootstrap failed", "error", err)
		return
	}

	identity, err := uc.identityService.Create(ctx, identityusecase.CreateIdentityInput{
		Identifier: uc.config.AdminIdentifier,
		Password:   uc.config.AdminPassword,
	})
	if err != nil {
		uc.logger.Warn("administrator bootstrap failed", "error", err)
		return
	}

	if err := uc.identityService.SetRoles(ctx, identity.ID, []uuid.UUID{adminRole.ID}); err != nil {
		uc.logger.Warn("administrator bootstrap failed", "error", err)
		return
	}

	uc.logger.Info("administrator identity created", "identity_id", identity.ID)
}
