// Package repository provides data persistence implementations for identities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/identity/internal/database"
	apperrors "github.com/allisson/identity/internal/errors"
	"github.com/allisson/identity/internal/identity/domain"
)

// PostgreSQLIdentityRepository handles identity persistence for PostgreSQL.
type PostgreSQLIdentityRepository struct {
	db *sql.DB
}

// NewPostgreSQLIdentityRepository creates a new PostgreSQLIdentityRepository.
func NewPostgreSQLIdentityRepository(db *sql.DB) *PostgreSQLIdentityRepository {
	return &PostgreSQLIdentityRepository{db: db}
}

// Create inserts a new identity.
func (r *PostgreSQLIdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO identities (id, identifier, hashed_password, disabled, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		identity.ID, identity.Identifier, identity.HashedPassword, identity.Disabled,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrIdentityAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create identity")
	}
	return nil
}

// GetByID retrieves an identity by ID.
func (r *PostgreSQLIdentityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, identifier, hashed_password, disabled, created_at, updated_at
			  FROM identities WHERE id = $1`

	return scanIdentityRow(querier.QueryRowContext(ctx, query, id), "failed to get identity by id")
}

// GetByIdentifier retrieves an identity by its unique identifier.
func (r *PostgreSQLIdentityRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.Identity, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, identifier, hashed_password, disabled, created_at, updated_at
			  FROM identities WHERE identifier = $1`

	return scanIdentityRow(querier.QueryRowContext(ctx, query, identifier), "failed to get identity by identifier")
}

// List retrieves identities ordered by creation time. Disabled identities are
// excluded unless showDisabled is set.
func (r *PostgreSQLIdentityRepository) List(
	ctx context.Context, offset, limit int, showDisabled bool,
) ([]*domain.Identity, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, identifier, hashed_password, disabled, created_at, updated_at
			  FROM identities WHERE disabled = FALSE ORDER BY created_at OFFSET $1 LIMIT $2`
	if showDisabled {
		query = `SELECT id, identifier, hashed_password, disabled, created_at, updated_at
				 FROM identities ORDER BY created_at OFFSET $1 LIMIT $2`
	}

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list identities")
	}
	defer rows.Close()

	return scanIdentities(rows)
}

// Update updates an identity's mutable fields (password hash and status).
func (r *PostgreSQLIdentityRepository) Update(ctx context.Context, identity *domain.Identity) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE identities SET hashed_password = $1, disabled = $2, updated_at = NOW()
			  WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, identity.HashedPassword, identity.Disabled, identity.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update identity")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrIdentityNotFound
	}

	return nil
}

// Delete removes an identity. Deleting an absent identity is not an error.
func (r *PostgreSQLIdentityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM identities WHERE id = $1`

	if _, err := querier.ExecContext(ctx, query, id); err != nil {
		return apperrors.Wrap(err, "failed to delete identity")
	}
	return nil
}

// SetRoles replaces the identity's role assignments. Callers wrap this in a
// transaction so the replacement is atomic.
func (r *PostgreSQLIdentityRepository) SetRoles(ctx context.Context, identityID uuid.UUID, roleIDs []uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	deleteQuery := `DELETE FROM identity_roles WHERE identity_id = $1`
	if _, err := querier.ExecContext(ctx, deleteQuery, identityID); err != nil {
		return apperrors.Wrap(err, "failed to clear identity roles")
	}

	insertQuery := `INSERT INTO identity_roles (identity_id, role_id) VALUES ($1, $2)`
	for _, roleID := range roleIDs {
		if _, err := querier.ExecContext(ctx, insertQuery, identityID, roleID); err != nil {
			return apperrors.Wrap(err, "failed to assign identity role")
		}
	}

	return nil
}

func scanIdentityRow(row *sql.Row, failureMsg string) (*domain.Identity, error) {
	var identity domain.Identity
	err := row.Scan(
		&identity.ID, &identity.Identifier, &identity.HashedPassword,
		&identity.Disabled, &identity.CreatedAt, &identity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, apperrors.Wrap(err, failureMsg)
	}
	return &identity, nil
}

func scanIdentities(rows *sql.Rows) ([]*domain.Identity, error) {
	var identities []*domain.Identity
	for rows.Next() {
		var identity domain.Identity
		err := rows.Scan(
			&identity.ID, &identity.Identifier, &identity.HashedPassword,
			&identity.Disabled, &identity.CreatedAt, &identity.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan identity")
		}
		identities = append(identities, &identity)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate identities")
	}
	return identities, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
