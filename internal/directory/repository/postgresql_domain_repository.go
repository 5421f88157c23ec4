// Package repository provides data persistence implementations for directory entities.
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

// PostgreSQLDomainRepository handles domain persistence for PostgreSQL.
type PostgreSQLDomainRepository struct {
	db *sql.DB
}

// NewPostgreSQLDomainRepository creates a new PostgreSQLDomainRepository.
func NewPostgreSQLDomainRepository(db *sql.DB) *PostgreSQLDomainRepository {
	return &PostgreSQLDomainRepository{db: db}
}

// Create inserts a new domain.
func (r *PostgreSQLDomainRepository) Create(ctx context.Context, d *domain.Domain) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO domains (id, name, created_at, updated_at)
			  VALUES ($1, $2, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, d.ID, d.Name)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrDomainAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create domain")
	}
	return nil
}

// GetByID retrieves a domain by ID.
func (r *PostgreSQLDomainRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Domain, error) {
	var d domain.Domain
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at FROM domains WHERE id = $1`

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
func (r *PostgreSQLDomainRepository) GetByName(ctx context.Context, name string) (*domain.Domain, error) {
	var d domain.Domain
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at FROM domains WHERE name = $1`

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
func (r *PostgreSQLDomainRepository) List(ctx context.Context, offset, limit int) ([]*domain.Domain, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at FROM domains
			  ORDER BY created_at OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
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
func (r *PostgreSQLDomainRepository) Update(ctx context.Context, d *domain.Domain) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE domains SET name = $1, updated_at = NOW() WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, d.Name, d.ID)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
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
func (r *PostgreSQLDomainRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM domains WHERE id = $1`

	if _, err := querier.ExecContext(ctx, query, id); err != nil {
		return apperrors.Wrap(err, "failed to delete domain")
	}
	return nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
