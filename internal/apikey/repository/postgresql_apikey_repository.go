// Package repository provides data persistence implementations for API keys.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/identity/internal/apikey/domain"
	"github.com/allisson/identity/internal/database"
	apperrors "github.com/allisson/identity/internal/errors"
)

// PostgreSQLAPIKeyRepository handles API key persistence for PostgreSQL.
type PostgreSQLAPIKeyRepository struct {
	db *sql.DB
}

// NewPostgreSQLAPIKeyRepository creates a new PostgreSQLAPIKeyRepository.
func NewPostgreSQLAPIKeyRepository(db *sql.DB) *PostgreSQLAPIKeyRepository {
	return &PostgreSQLAPIKeyRepository{db: db}
}

// Create inserts a new API key.
func (r *PostgreSQLAPIKeyRepository) Create(ctx context.Context, key *domain.APIKey) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO api_keys (id, name, enabled, created_at, updated_at)
			  VALUES ($1, $2, $3, NOW(), NOW())`

	if _, err := querier.ExecContext(ctx, query, key.ID, key.Name, key.Enabled); err != nil {
		return apperrors.Wrap(err, "failed to create api key")
	}
	return nil
}

// GetByID retrieves an API key by ID, including its granted permissions.
func (r *PostgreSQLAPIKeyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.APIKey, error) {
	var key domain.APIKey
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, enabled, created_at, updated_at FROM api_keys WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&key.ID, &key.Name, &key.Enabled, &key.CreatedAt, &key.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAPIKeyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get api key by id")
	}

	permissions, err := r.getPermissions(ctx, id)
	if err != nil {
		return nil, err
	}
	key.Permissions = permissions

	return &key, nil
}

// List retrieves API keys ordered by creation time, without permissions.
func (r *PostgreSQLAPIKeyRepository) List(ctx context.Context, offset, limit int) ([]*domain.APIKey, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, enabled, created_at, updated_at FROM api_keys
			  ORDER BY created_at OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list api keys")
	}
	defer rows.Close()

	var keys []*domain.APIKey
	for rows.Next() {
		var key domain.APIKey
		if err := rows.Scan(&key.ID, &key.Name, &key.Enabled, &key.CreatedAt, &key.UpdatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan api key")
		}
		keys = append(keys, &key)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate api keys")
	}

	return keys, nil
}

// Update updates an API key's name and status.
func (r *PostgreSQLAPIKeyRepository) Update(ctx context.Context, key *domain.APIKey) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE api_keys SET name = $1, enabled = $2, updated_at = NOW() WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, key.Name, key.Enabled, key.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update api key")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrAPIKeyNotFound
	}

	return nil
}

// Delete removes an API key. Deleting an absent key is not an error.
func (r *PostgreSQLAPIKeyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM api_keys WHERE id = $1`

	if _, err := querier.ExecContext(ctx, query, id); err != nil {
		return apperrors.Wrap(err, "failed to delete api key")
	}
	return nil
}

// SetPermissions replaces the key's granted permissions. Callers wrap this in
// a transaction so the replacement is atomic.
func (r *PostgreSQLAPIKeyRepository) SetPermissions(ctx context.Context, id uuid.UUID, permissions []string) error {
	querier := database.GetTx(ctx, r.db)

	deleteQuery := `DELETE FROM api_key_permissions WHERE api_key_id = $1`
	if _, err := querier.ExecContext(ctx, deleteQuery, id); err != nil {
		return apperrors.Wrap(err, "failed to clear api key permissions")
	}

	insertQuery := `INSERT INTO api_key_permissions (api_key_id, permission) VALUES ($1, $2)`
	for _, permission := range permissions {
		if _, err := querier.ExecContext(ctx, insertQuery, id, permission); err != nil {
			return apperrors.Wrap(err, "failed to grant api key permission")
		}
	}

	return nil
}

func (r *PostgreSQLAPIKeyRepository) getPermissions(ctx context.Context, id uuid.UUID) ([]string, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT permission FROM api_key_permissions WHERE api_key_id = $1 ORDER BY permission`

	rows, err := querier.QueryContext(ctx, query, id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get api key permissions")
	}
	defer rows.Close()

	var permissions []string
	for rows.Next() {
		var permission string
		if err := rows.Scan(&permission); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan api key permission")
		}
		permissions = append(permissions, permission)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate api key permissions")
	}

	return permissions, nil
}
