// Package usecase implements the API key business logic.
package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/identity/internal/apikey/domain"
	authdomain "github.com/allisson/identity/internal/auth/domain"
	"github.com/allisson/identity/internal/database"
	appvalidation "github.com/allisson/identity/internal/validation"
)

// APIKeyRepository defines the interface for API key persistence.
type APIKeyRepository interface {
	Create(ctx context.Context, key *domain.APIKey) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.APIKey, error)
	List(ctx context.Context, offset, limit int) ([]*domain.APIKey, error)
	Update(ctx context.Context, key *domain.APIKey) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetPermissions(ctx context.Context, id uuid.UUID, permissions []string) error
}

// APIKeyUseCase handles API key management operations.
type APIKeyUseCase struct {
	txManager  database.TxManager
	apiKeyRepo APIKeyRepository
	logger     *slog.Logger
}

// NewAPIKeyUseCase creates a new APIKeyUseCase.
func NewAPIKeyUseCase(txManager database.TxManager, apiKeyRepo APIKeyRepository, logger *slog.Logger) *APIKeyUseCase {
	return &APIKeyUseCase{txManager: txManager, apiKeyRepo: apiKeyRepo, logger: logger}
}

// Create creates a new API key. Keys start disabled and without permissions;
// both are granted explicitly afterwards.
func (uc *APIKeyUseCase) Create(ctx context.Context, name string) (*domain.APIKey, error) {
	if err := validateAPIKeyName(name); err != nil {
		return nil, err
	}

	key := &domain.APIKey{
		ID:   uuid.Must(uuid.NewV7()),
		Name: name,
	}
	if err := uc.apiKeyRepo.Create(ctx, key); err != nil {
		return nil, err
	}

	uc.logger.Info("api key created", "api_key_id", key.ID, "name", key.Name)
	return key, nil
}

// Get retrieves an API key by ID.
func (uc *APIKeyUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.APIKey, error) {
	return uc.apiKeyRepo.GetByID(ctx, id)
}

// List retrieves API keys with pagination.
func (uc *APIKeyUseCase) List(ctx context.Context, offset, limit int) ([]*domain.APIKey, error) {
	return uc.apiKeyRepo.List(ctx, offset, limit)
}

// Update renames an API key and sets its status. Disabled keys cannot
// authenticate.
func (uc *APIKeyUseCase) Update(ctx context.Context, id uuid.UUID, name string, enabled bool) (*domain.APIKey, error) {
	if err := validateAPIKeyName(name); err != nil {
		return nil, err
	}

	key, err := uc.apiKeyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key.Name = name
	key.Enabled = enabled
	if err := uc.apiKeyRepo.Update(ctx, key); err != nil {
		return nil, err
	}

	uc.logger.Info("api key updated", "api_key_id", key.ID, "name", key.Name, "enabled", key.Enabled)
	return key, nil
}

// Delete removes an API key and its permission grants. Deleting an absent key
// succeeds.
func (uc *APIKeyUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.apiKeyRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("api key deleted", "api_key_id", id)
	return nil
}

// GetPermissions retrieves the permissions granted to an API key. The key
// must exist.
func (uc *APIKeyUseCase) GetPermissions(ctx context.Context, id uuid.UUID) ([]string, error) {
	key, err := uc.apiKeyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return key.Permissions, nil
}

// SetPermissions replaces an API key's permission grants atomically. Every
// name must come from the permission catalog; the first unknown one fails the
// whole operation.
func (uc *APIKeyUseCase) SetPermissions(ctx context.Context, id uuid.UUID, permissions []string) error {
	if err := authdomain.ValidatePermissions(permissions); err != nil {
		return err
	}

	if _, err := uc.apiKeyRepo.GetByID(ctx, id); err != nil {
		return err
	}

	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		return uc.apiKeyRepo.SetPermissions(ctx, id, permissions)
	})
	if err != nil {
		return err
	}

	uc.logger.Info("api key permissions updated", "api_key_id", id, "permission_count", len(permissions))
	return nil
}

func validateAPIKeyName(name string) error {
	err := validation.Validate(name,
		validation.Required.Error("name is required"),
		appvalidation.NotBlank,
		validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
	)
	return appvalidation.WrapValidationError(err)
}
