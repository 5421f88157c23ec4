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

func TestDomainUseCase_Create(t *testing.T) {
	logger := slog.Default()

	t.Run("success", func(t *testing.T) {
		domainRepo := new(mockDomainRepository)
		domainRepo.On("Create", mock.Anything, mock.MatchedBy(func(d *domain.Domain) bool {
			return d.Name == "billing" && d.ID != uuid.Nil
		})).Return(nil)

		uc := NewDomainUseCase(domainRepo, logger)
		d, err := uc.Create(context.Background(), "billing")

		assert.NoError(t, err)
		assert.Equal(t, "billing", d.Name)
		domainRepo.AssertExpectations(t)
	})

	t.Run("duplicate name", func(t *testing.T) {
		domainRepo := new(mockDomainRepository)
		domainRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDomainAlreadyExists)

		uc := NewDomainUseCase(domainRepo, logger)
		d, err := uc.Create(context.Background(), "billing")

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Nil(t, d)
	})

	t.Run("invalid name", func(t *testing.T) {
		domainRepo := new(mockDomainRepository)

		uc := NewDomainUseCase(domainRepo, logger)
		d, err := uc.Create(context.Background(), "")

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Nil(t, d)
		domainRepo.AssertNotCalled(t, "Create")
	})
}

func TestDomainUseCase_Update(t *testing.T) {
	logger := slog.Default()

	t.Run("success", func(t *testing.T) {
		id := uuid.New()
		domainRepo := new(mockDomainRepository)
		domainRepo.On("GetByID", mock.Anything, id).Return(&domain.Domain{ID: id, Name: "old"}, nil)
		domainRepo.On("Update", mock.Anything, mock.MatchedBy(func(d *domain.Domain) bool {
			return d.ID == id && d.Name == "new"
		})).Return(nil)

		uc := NewDomainUseCase(domainRepo, logger)
		d, err := uc.Update(context.Background(), id, "new")

		assert.NoError(t, err)
		assert.Equal(t, "new", d.Name)
		domainRepo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New()
		domainRepo := new(mockDomainRepository)
		domainRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrDomainNotFound)

		uc := NewDomainUseCase(domainRepo, logger)
		d, err := uc.Update(context.Background(), id, "new")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Nil(t, d)
	})
}

func TestDomainUseCase_Delete(t *testing.T) {
	logger := slog.Default()

	t.Run("absent domain succeeds", func(t *testing.T) {
		id := uuid.New()
		domainRepo := new(mockDomainRepository)
		domainRepo.On("Delete", mock.Anything, id).Return(nil)

		uc := NewDomainUseCase(domainRepo, logger)
		assert.NoError(t, uc.Delete(context.Background(), id))
		domainRepo.AssertExpectations(t)
	})
}
