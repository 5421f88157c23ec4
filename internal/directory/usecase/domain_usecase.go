package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jellydator/validation"

	"github.com/allisson/identity/internal/directory/domain"
	appvalidation "github.com/allisson/identity/internal/validation"
)

// DomainUseCase handles domain management operations.
type DomainUseCase struct {
	domainRepo DomainRepository
	logger     *slog.Logger
}

// NewDomainUseCase creates a new DomainUseCase.
func NewDomainUseCase(domainRepo DomainRepository, logger *slog.Logger) *DomainUseCase {
	return &DomainUseCase{domainRepo: domainRepo, logger: logger}
}

// Create creates a new domain with a globally unique name.
func (u *DomainUseCase) Create(ctx context.Context, name string) (*domain.Domain, error) {
	if err := validateEntityName(name); err != nil {
		return nil, err
	}

	d := &domain.Domain{
		ID:   uuid.Must(uuid.NewV7()),
		Name: name,
	}
	if err := u.domainRepo.Create(ctx, d); err != nil {
		return nil, err
	}

	u.logger.Info("domain created", "domain_id", d.ID, "name", d.Name)
	return d, nil
}

// Get retrieves a domain by ID.
func (u *DomainUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Domain, error) {
	return u.domainRepo.GetByID(ctx, id)
}

// GetByName retrieves a domain by name.
func (u *DomainUseCase) GetByName(ctx context.Context, name string) (*domain.Domain, error) {
	return u.domainRepo.GetByName(ctx, name)
}

// List retrieves domains with pagination.
func (u *DomainUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Domain, error) {
	return u.domainRepo.List(ctx, offset, limit)
}

// Update renames a domain.
func (u *DomainUseCase) Update(ctx context.Context, id uuid.UUID, name string) (*domain.Domain, error) {
	if err := validateEntityName(name); err != nil {
		return nil, err
	}

	d, err := u.domainRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d.Name = name
	if err := u.domainRepo.Update(ctx, d); err != nil {
		return nil, err
	}

	u.logger.Info("domain updated", "domain_id", d.ID, "name", d.Name)
	return d, nil
}

// Delete removes a domain and, through cascading, its roles. Deleting an
// absent domain succeeds.
func (u *DomainUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.domainRepo.Delete(ctx, id); err != nil {
		return err
	}

	u.logger.Info("domain deleted", "domain_id", id)
	return nil
}

func validateEntityName(name string) error {
	err := validation.Validate(name,
		validation.Required,
		validation.Length(1, 255),
		appvalidation.NoWhitespace,
	)
	return appvalidation.WrapValidationError(err)
}
