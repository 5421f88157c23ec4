package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/identity/internal/database"
	"github.com/allisson/identity/internal/directory/domain"
	apperrors "github.com/allisson/identity/internal/errors"
)

// PostgreSQLRoleRepository handles role persistence for PostgreSQL.
type PostgreSQLRoleRepository struct {
	db *sql.DB
}

// NewPostgreSQLRoleRepository creates a new PostgreSQLRoleRepository.
func NewPostgreSQLRoleRepository(db *sql.DB) *PostgreSQLRoleRepository {
	return &PostgreSQLRoleRepository{db: db}
}

// Create inserts a new role.
func (r *PostgreSQLRoleRepository) Create(ctx context.Context, role *domain.Role) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO roles (id, name, domain_id, created_at, updated_at)
			  VALUES ($1, $2, $3, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, role.ID, role.Name, role.DomainID)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrRoleAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create role")
	}
	return nil
}

// GetByID retrieves a role by ID.
func (r *PostgreSQLRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	var role domain.Role
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, domain_id, created_at, updated_at FROM roles WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&role.ID, &role.Name, &role.DomainID, &role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role by id")
	}

	return &role, nil
}

// GetByNameAndDomain retrieves a role by its name within a domain partition.
// A nil domainID addresses the partition of roles that belong to no domain.
func (r *PostgreSQLRoleRepository) GetByNameAndDomain(ctx context.Context, name string, domainID *uuid.UUID) (*domain.Role, error) {
	var role domain.Role
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, domain_id, created_at, updated_at FROM roles
			  WHERE name = $1 AND domain_id = $2`
	args := []any{name, domainID}
	if domainID == nil {
		query = `SELECT id, name, domain_id, created_at, updated_at FROM roles
				 WHERE name = $1 AND domain_id IS NULL`
		args = []any{name}
	}

	err := querier.QueryRowContext(ctx, query, args...).Scan(
		&role.ID, &role.Name, &role.DomainID, &role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role by name and domain")
	}

	return &role, nil
}

// List retrieves roles ordered by creation time.
func (r *PostgreSQLRoleRepository) List(ctx context.Context, offset, limit int) ([]*domain.Role, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, domain_id, created_at, updated_at FROM roles
			  ORDER BY created_at OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list roles")
	}
	defer rows.Close()

	return scanRoles(rows)
}

// ListByDomain retrieves all roles owned by a domain.
func (r *PostgreSQLRoleRepository) ListByDomain(ctx context.Context, domainID uuid.UUID) ([]*domain.Role, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, domain_id, created_at, updated_at FROM roles
			  WHERE domain_id = $1 ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query, domainID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list roles by domain")
	}
	defer rows.Close()

	return scanRoles(rows)
}

// ListByIdentity retrieves all roles assigned to an identity.
func (r *PostgreSQLRoleRepository) ListByIdentity(ctx context.Context, identityID uuid.UUID) ([]*domain.Role, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT r.id, r.name, r.domain_id, r.created_at, r.updated_at
			  FROM roles r
			  INNER JOIN identity_roles ir ON ir.role_id = r.id
			  WHERE ir.identity_id = $1
			  ORDER BY r.created_at`

	rows, err := querier.QueryContext(ctx, query, identityID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list roles by identity")
	}
	defer rows.Close()

	return scanRoles(rows)
}

// Update updates a role's name.
func (r *PostgreSQLRoleRepository) Update(ctx context.Context, role *domain.Role) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE roles SET name = $1, updated_at = NOW() WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, role.Name, role.ID)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrRoleAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update role")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrRoleNotFound
	}

	return nil
}

// Delete removes a role. Deleting an absent role is not an error.
func (r *PostgreSQLRoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM roles WHERE id = $1`

	if _, err := querier.ExecContext(ctx, query, id); err != nil {
		return apperrors.Wrap(err, "failed to delete role")
	}
	return nil
}

func scanRoles(rows *sql.Rows) ([]*domain.Role, error) {
	var roles []*domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.DomainID, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role")
		}
		roles = append(roles, &role)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate roles")
	}
	return roles, nil
}
