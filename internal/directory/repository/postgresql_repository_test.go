package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/allisson/identity/internal/directory/domain"
)

func TestPostgreSQLDomainRepository_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		d := &domain.Domain{ID: uuid.New(), Name: "billing"}

		mock.ExpectExec("INSERT INTO domains").
			WithArgs(d.ID, d.Name).
			WillReturnResult(sqlmock.NewResult(1, 1))

		repo := NewPostgreSQLDomainRepository(db)
		assert.NoError(t, repo.Create(context.Background(), d))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate name", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		d := &domain.Domain{ID: uuid.New(), Name: "billing"}

		mock.ExpectExec("INSERT INTO domains").
			WithArgs(d.ID, d.Name).
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "domains_name_key"`))

		repo := NewPostgreSQLDomainRepository(db)
		err = repo.Create(context.Background(), d)
		assert.ErrorIs(t, err, domain.ErrDomainAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLDomainRepository_GetByName(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		id := uuid.New()
		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow(id, "mis", now, now)

		mock.ExpectQuery("SELECT id, name, created_at, updated_at FROM domains WHERE name").
			WithArgs("mis").
			WillReturnRows(rows)

		repo := NewPostgreSQLDomainRepository(db)
		d, err := repo.GetByName(context.Background(), "mis")
		assert.NoError(t, err)
		assert.Equal(t, id, d.ID)
		assert.Equal(t, "mis", d.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT id, name, created_at, updated_at FROM domains WHERE name").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewPostgreSQLDomainRepository(db)
		d, err := repo.GetByName(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrDomainNotFound)
		assert.Nil(t, d)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLDomainRepository_Delete(t *testing.T) {
	t.Run("absent domain is not an error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		id := uuid.New()
		mock.ExpectExec("DELETE FROM domains").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewPostgreSQLDomainRepository(db)
		assert.NoError(t, repo.Delete(context.Background(), id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLRoleRepository_GetByNameAndDomain(t *testing.T) {
	t.Run("domain partition", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		roleID := uuid.New()
		domainID := uuid.New()
		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "name", "domain_id", "created_at", "updated_at"}).
			AddRow(roleID, "admin", domainID, now, now)

		mock.ExpectQuery("SELECT id, name, domain_id, created_at, updated_at FROM roles").
			WithArgs("admin", &domainID).
			WillReturnRows(rows)

		repo := NewPostgreSQLRoleRepository(db)
		role, err := repo.GetByNameAndDomain(context.Background(), "admin", &domainID)
		assert.NoError(t, err)
		assert.Equal(t, roleID, role.ID)
		assert.Equal(t, domainID, *role.DomainID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("domainless partition", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		roleID := uuid.New()
		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "name", "domain_id", "created_at", "updated_at"}).
			AddRow(roleID, "auditor", nil, now, now)

		mock.ExpectQuery("domain_id IS NULL").
			WithArgs("auditor").
			WillReturnRows(rows)

		repo := NewPostgreSQLRoleRepository(db)
		role, err := repo.GetByNameAndDomain(context.Background(), "auditor", nil)
		assert.NoError(t, err)
		assert.Nil(t, role.DomainID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLRoleRepository_ListByIdentity(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	identityID := uuid.New()
	domainID := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "domain_id", "created_at", "updated_at"}).
		AddRow(uuid.New(), "viewer", domainID, now, now).
		AddRow(uuid.New(), "auditor", nil, now, now)

	mock.ExpectQuery("INNER JOIN identity_roles").
		WithArgs(identityID).
		WillReturnRows(rows)

	repo := NewPostgreSQLRoleRepository(db)
	roles, err := repo.ListByIdentity(context.Background(), identityID)
	assert.NoError(t, err)
	assert.Len(t, roles, 2)
	assert.Equal(t, "viewer", roles[0].Name)
	assert.Nil(t, roles[1].DomainID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
