package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/identity/internal/database"
	"github.com/allisson/identity/internal/directory/domain"
	apperrors "github.com/allisson/identity/internal/errors"
)

// MySQLDomainRepository handles domain persistence for MySQL.
type MySQLDomainRepository struct {
	db *sql.DB
}

// NewMySQLDomainRepository creates a new MySQLDomainRepository.
func NewMySQLDomainRepository(db *sql.DB) *MySQLDomainRepository {
	return &MySQLDomainRepository{db: db}
}

// Create inserts a new domain.
func (r *MySQLDomainRepository) Create(ctx context.Context, d *domain.Domain) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO domains (id, name, created_at, updated_at)
			  VALUES (?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, d.ID, d.Name)
	if err != nil {
		if isMySQLDuplicateEntry(err) {
			return domain.ErrDomainAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create domain")
	}
	return nil
}

// GetByID retrieves a domain by ID.
func (r *MySQLDomainRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Domain, error) {
	var d domain.Domain
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at FROM domains WHERE id = ?`

	err := querier.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDomainNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get domain by id")
	}

	return &d, nil
}

// GetByName retrieves a domain by its unique name.
func (r *MySQLDomainRepository) GetByName(ctx context.Context, name string) (*domain.Domain, error) {
	var d domain.Domain
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at FROM domains WHERE name = ?`

	err := querier.QueryRowContext(ctx, query, name).Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDomainNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get domain by name")
	}

	return &d, nil
}

// List retrieves domains ordered by creation time.
func (r *MySQLDomainRepository) List(ctx context.Context, offset, limit int) ([]*domain.Domain, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at FROM domains
			  ORDER BY created_at LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list domains")
	}
	defer rows.Close()

	var domains []*domain.Domain
	for rows.Next() {
		var d domain.Domain
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan domain")
		}
		domains = append(domains, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate domains")
	}

	return domains, nil
}

// Update updates a domain's name.
func (r *MySQLDomainRepository) Update(ctx context.Context, d *domain.Domain) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE domains SET name = ?, updated_at = NOW() WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, d.Name, d.ID)
	if err != nil {
		if isMySQLDuplicateEntry(err) {
			return domain.ErrDomainAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update domain")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrDomainNotFound
	}

	return nil
}

// Delete removes a domain. Deleting an absent domain is not an error.
func (r *MySQLDomainRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM domains WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, id); err != nil {
		return apperrors.Wrap(err, "failed to delete domain")
	}
	return nil
}

// isMySQLDuplicateEntry checks if the error is a MySQL duplicate entry error (1062).
func isMySQLDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "error 1062") || strings.Contains(errMsg, "duplicate entry")
}
