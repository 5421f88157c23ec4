// Package usecase implements the identity business logic.
package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/identity/internal/database"
	directorydomain "github.com/allisson/identity/internal/directory/domain"
	apperrors "github.com/allisson/identity/internal/errors"
	"github.com/allisson/identity/internal/identity/domain"
	appvalidation "github.com/allisson/identity/internal/validation"
)

// Identifier validation strategies.
const (
	IdentifierValidationNone  = "none"
	IdentifierValidationEmail = "email"
)

// IdentityRepository defines the interface for identity persistence.
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error)
	GetByIdentifier(ctx context.Context, identifier string) (*domain.Identity, error)
	List(ctx context.Context, offset, limit int, showDisabled bool) ([]*domain.Identity, error)
	Update(ctx context.Context, identity *domain.Identity) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetRoles(ctx context.Context, identityID uuid.UUID, roleIDs []uuid.UUID) error
}

// RoleRepository defines the role lookups the identity module needs.
type RoleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*directorydomain.Role, error)
	ListByIdentity(ctx context.Context, identityID uuid.UUID) ([]*directorydomain.Role, error)
}

// CreateIdentityInput contains the input data for identity creation.
type CreateIdentityInput struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// IdentityUseCase handles identity-related business logic.
type IdentityUseCase struct {
	txManager            database.TxManager
	identityRepo         IdentityRepository
	roleRepo             RoleRepository
	passwordHasher       *pwdhash.PasswordHasher
	identifierValidation string
	logger               *slog.Logger
}

// NewIdentityUseCase creates a new IdentityUseCase.
func NewIdentityUseCase(
	txManager database.TxManager,
	identityRepo IdentityRepository,
	roleRepo RoleRepository,
	identifierValidation string,
	logger *slog.Logger,
) (*IdentityUseCase, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &IdentityUseCase{
		txManager:            txManager,
		identityRepo:         identityRepo,
		roleRepo:             roleRepo,
		passwordHasher:       hasher,
		identifierValidation: identifierValidation,
		logger:               logger,
	}, nil
}

func (uc *IdentityUseCase) validateCreateInput(input CreateIdentityInput) error {
	identifierRules := []validation.Rule{
		validation.Required.Error("identifier is required"),
		appvalidation.NotBlank,
		validation.Length(1, 255).Error("identifier must be between 1 and 255 characters"),
		appvalidation.Identifier,
	}
	if uc.identifierValidation == IdentifierValidationEmail {
		identifierRules = append(identifierRules, appvalidation.Email)
	}

	err := validation.ValidateStruct(&input,
		validation.Field(&input.Identifier, identifierRules...),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appvalidation.PasswordStrength{
				MinLength:     8,
				RequireUpper:  true,
				RequireLower:  true,
				RequireNumber: true,
			},
		),
	)
	return appvalidation.WrapValidationError(err)
}

// Create registers a new identity with a unique identifier and a hashed
// password.
func (uc *IdentityUseCase) Create(ctx context.Context, input CreateIdentityInput) (*domain.Identity, error) {
	if err := uc.validateCreateInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := uc.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	identity := &domain.Identity{
		ID:             uuid.Must(uuid.NewV7()),
		Identifier:     strings.TrimSpace(input.Identifier),
		HashedPassword: hashedPassword,
	}

	if err := uc.identityRepo.Create(ctx, identity); err != nil {
		return nil, err
	}

	uc.logger.Info("identity created", "identity_id", identity.ID, "identifier", identity.Identifier)
	return identity, nil
}

// Get retrieves an identity by ID.
func (uc *IdentityUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	return uc.identityRepo.GetByID(ctx, id)
}

// GetByIdentifier retrieves an identity by identifier.
func (uc *IdentityUseCase) GetByIdentifier(ctx context.Context, identifier string) (*domain.Identity, error) {
	return uc.identityRepo.GetByIdentifier(ctx, identifier)
}

// List retrieves identities with pagination. Disabled identities are excluded
// unless showDisabled is set.
func (uc *IdentityUseCase) List(
	ctx context.Context, offset, limit int, showDisabled bool,
) ([]*domain.Identity, error) {
	return uc.identityRepo.List(ctx, offset, limit, showDisabled)
}

// SetStatus enables or disables an identity. Disabled identities cannot
// authenticate.
func (uc *IdentityUseCase) SetStatus(ctx context.Context, id uuid.UUID, disabled bool) (*domain.Identity, error) {
	identity, err := uc.identityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	identity.Disabled = disabled
	if err := uc.identityRepo.Update(ctx, identity); err != nil {
		return nil, err
	}

	uc.logger.Info("identity status updated", "identity_id", identity.ID, "disabled", identity.Disabled)
	return identity, nil
}

// ChangePassword replaces an identity's password.
func (uc *IdentityUseCase) ChangePassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	err := validation.Validate(newPassword,
		validation.Required.Error("password is required"),
		validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
		appvalidation.PasswordStrength{
			MinLength:     8,
			RequireUpper:  true,
			RequireLower:  true,
			RequireNumber: true,
		},
	)
	if err := appvalidation.WrapValidationError(err); err != nil {
		return err
	}

	identity, err := uc.identityRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	hashedPassword, err := uc.passwordHasher.Hash([]byte(newPassword))
	if err != nil {
		return apperrors.Wrap(err, "failed to hash password")
	}

	identity.HashedPassword = hashedPassword
	if err := uc.identityRepo.Update(ctx, identity); err != nil {
		return err
	}

	uc.logger.Info("identity password changed", "identity_id", identity.ID)
	return nil
}

// Delete removes an identity and its role assignments. Deleting an absent
// identity succeeds.
func (uc *IdentityUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.identityRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("identity deleted", "identity_id", id)
	return nil
}

// GetRoles retrieves the roles assigned to an identity. The identity must
// exist.
func (uc *IdentityUseCase) GetRoles(ctx context.Context, id uuid.UUID) ([]*directorydomain.Role, error) {
	if _, err := uc.identityRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return uc.roleRepo.ListByIdentity(ctx, id)
}

// SetRoles replaces an identity's role assignments atomically. Every role
// must exist; unknown role IDs fail the whole operation.
func (uc *IdentityUseCase) SetRoles(ctx context.Context, id uuid.UUID, roleIDs []uuid.UUID) error {
	if _, err := uc.identityRepo.GetByID(ctx, id); err != nil {
		return err
	}

	for _, roleID := range roleIDs {
		if _, err := uc.roleRepo.GetByID(ctx, roleID); err != nil {
			return err
		}
	}

	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		return uc.identityRepo.SetRoles(ctx, id, roleIDs)
	})
	if err != nil {
		return err
	}

	uc.logger.Info("identity roles updated", "identity_id", id, "role_count", len(roleIDs))
	return nil
}
