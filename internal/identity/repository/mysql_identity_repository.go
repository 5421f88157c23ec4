package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/identity/internal/database"
	apperrors "github.com/allisson/identity/internal/errors"
	"github.com/allisson/identity/internal/identity/domain"
)

// MySQLIdentityRepository handles identity persistence for MySQL.
type MySQLIdentityRepository struct {
	db *sql.DB
}

// NewMySQLIdentityRepository creates a new MySQLIdentityRepository.
func NewMySQLIdentityRepository(db *sql.DB) *MySQLIdentityRepository {
	return &MySQLIdentityRepository{db: db}
}

// Create inserts a new identity.
func (r *MySQLIdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO identities (id, identifier, hashed_password, disabled, created_at, updated_at)
			  VALUES (?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		identity.ID, identity.Identifier, identity.HashedPassword, identity.Disabled,
	)
	if err != nil {
		if isMySQLDuplicateEntry(err) {
			return domain.ErrIdentityAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create identity")
	}
	return nil
}

// GetByID retrieves an identity by ID.
func (r *MySQLIdentityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, identifier, hashed_password, disabled, created_at, updated_at
			  FROM identities WHERE id = ?`

	return scanIdentityRow(querier.QueryRowContext(ctx, query, id), "failed to get identity by id")
}

// GetByIdentifier retrieves an identity by its unique identifier.
func (r *MySQLIdentityRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.Identity, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, identifier, hashed_password, disabled, created_at, updated_at
			  FROM identities WHERE identifier = ?`

	return scanIdentityRow(querier.QueryRowContext(ctx, query, identifier), "failed to get identity by identifier")
}

// List retrieves identities ordered by creation time. Disabled identities are
// excluded unless showDisabled is set.
func (r *MySQLIdentityRepository) List(
	ctx context.Context, offset, limit int, showDisabled bool,
) ([]*domain.Identity, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, identifier, hashed_password, disabled, created_at, updated_at
			  FROM identities WHERE disabled = FALSE ORDER BY created_at LIMIT ? OFFSET ?`
	if showDisabled {
		query = `SELECT id, identifier, hashed_password, disabled, created_at, updated_at
				 FROM identities ORDER BY created_at LIMIT ? OFFSET ?`
	}

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list identities")
	}
	defer rows.Close()

	return scanIdentities(rows)
}

// Update updates an identity's mutable fields (password hash and status).
func (r *MySQLIdentityRepository) Update(ctx context.Context, identity *domain.Identity) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE identities SET hashed_password = ?, disabled = ?, updated_at = NOW()
			  WHERE id = ?`

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
func (r *MySQLIdentityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM identities WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, id); err != nil {
		return apperrors.Wrap(err, "failed to delete identity")
	}
	return nil
}

// SetRoles replaces the identity's role assignments. Callers wrap this in a
// transaction so the replacement is atomic.
func (r *MySQLIdentityRepository) SetRoles(ctx context.Context, identityID uuid.UUID, roleIDs []uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	deleteQuery := `DELETE FROM identity_roles WHERE identity_id = ?`
	if _, err := querier.ExecContext(ctx, deleteQuery, identityID); err != nil {
		return apperrors.Wrap(err, "failed to clear identity roles")
	}

	insertQuery := `INSERT INTO identity_roles (identity_id, role_id) VALUES (?, ?)`
	for _, roleID := range roleIDs {
		if _, err := querier.ExecContext(ctx, insertQuery, identityID, roleID); err != nil {
			return apperrors.Wrap(err, "failed to assign identity role")
		}
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
