package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apikeydomain "github.com/allisson/identity/internal/apikey/domain"
	"github.com/allisson/identity/internal/auth/domain"
	directorydomain "github.com/allisson/identity/internal/directory/domain"
	apperrors "github.com/allisson/identity/internal/errors"
	identitydomain "github.com/allisson/identity/internal/identity/domain"
)

type mockRoleLister struct {
	mock.Mock
}

func (m *mockRoleLister) ListByIdentity(ctx context.Context, identityID uuid.UUID) ([]*directorydomain.Role, error) {
	args := m.Called(ctx, identityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*directorydomain.Role), args.Error(1)
}

type mockDomainGetter struct {
	mock.Mock
}

func (m *mockDomainGetter) GetByID(ctx context.Context, id uuid.UUID) (*directorydomain.Domain, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directorydomain.Domain), args.Error(1)
}

func TestClaimsService_ForIdentity(t *testing.T) {
	t.Run("qualifies roles with their domain names", func(t *testing.T) {
		identity := &identitydomain.Identity{ID: uuid.New(), Identifier: "alice"}
		billingID := uuid.New()

		roleLister := new(mockRoleLister)
		roleLister.On("ListByIdentity", mock.Anything, identity.ID).Return([]*directorydomain.Role{
			{ID: uuid.New(), Name: "viewer", DomainID: &billingID},
			{ID: uuid.New(), Name: "auditor"},
		}, nil)

		domainGetter := new(mockDomainGetter)
		domainGetter.On("GetByID", mock.Anything, billingID).
			Return(&directorydomain.Domain{ID: billingID, Name: "billing"}, nil)

		svc := NewClaimsService(roleLister, domainGetter)
		claims, err := svc.ForIdentity(context.Background(), identity)

		assert.NoError(t, err)
		assert.Equal(t, identity.ID.String(), claims.Subject)
		assert.Equal(t, "alice", claims.Name)
		assert.Equal(t, []string{"billing.viewer", "auditor"}, claims.Roles)
		assert.Empty(t, claims.Permissions)
	})

	t.Run("resolves each domain once", func(t *testing.T) {
		identity := &identitydomain.Identity{ID: uuid.New(), Identifier: "alice"}
		billingID := uuid.New()

		roleLister := new(mockRoleLister)
		roleLister.On("ListByIdentity", mock.Anything, identity.ID).Return([]*directorydomain.Role{
			{ID: uuid.New(), Name: "viewer", DomainID: &billingID},
			{ID: uuid.New(), Name: "editor", DomainID: &billingID},
		}, nil)

		domainGetter := new(mockDomainGetter)
		domainGetter.On("GetByID", mock.Anything, billingID).
			Return(&directorydomain.Domain{ID: billingID, Name: "billing"}, nil).Once()

		svc := NewClaimsService(roleLister, domainGetter)
		claims, err := svc.ForIdentity(context.Background(), identity)

		assert.NoError(t, err)
		assert.Equal(t, []string{"billing.viewer", "billing.editor"}, claims.Roles)
		domainGetter.AssertExpectations(t)
	})

	t.Run("missing domain fails the resolution", func(t *testing.T) {
		identity := &identitydomain.Identity{ID: uuid.New(), Identifier: "alice"}
		ghostID := uuid.New()

		roleLister := new(mockRoleLister)
		roleLister.On("ListByIdentity", mock.Anything, identity.ID).Return([]*directorydomain.Role{
			{ID: uuid.New(), Name: "viewer", DomainID: &ghostID},
		}, nil)

		domainGetter := new(mockDomainGetter)
		domainGetter.On("GetByID", mock.Anything, ghostID).
			Return(nil, directorydomain.ErrDomainNotFound)

		svc := NewClaimsService(roleLister, domainGetter)
		claims, err := svc.ForIdentity(context.Background(), identity)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Nil(t, claims)
	})

	t.Run("no roles yields empty role claim", func(t *testing.T) {
		identity := &identitydomain.Identity{ID: uuid.New(), Identifier: "bob"}

		roleLister := new(mockRoleLister)
		roleLister.On("ListByIdentity", mock.Anything, identity.ID).
			Return([]*directorydomain.Role{}, nil)

		svc := NewClaimsService(roleLister, new(mockDomainGetter))
		claims, err := svc.ForIdentity(context.Background(), identity)

		assert.NoError(t, err)
		assert.Empty(t, claims.Roles)
	})
}

func TestClaimsService_ForAPIKey(t *testing.T) {
	key := &apikeydomain.APIKey{
		ID:          uuid.New(),
		Name:        "ci",
		Enabled:     true,
		Permissions: []string{domain.PermissionDomainsGet, domain.PermissionRolesGet},
	}

	svc := NewClaimsService(new(mockRoleLister), new(mockDomainGetter))
	claims := svc.ForAPIKey(key)

	assert.Equal(t, key.ID.String(), claims.Subject)
	assert.Equal(t, "ci", claims.Name)
	assert.Equal(t, []string{domain.AdministratorRole}, claims.Roles)
	assert.Equal(t, key.Permissions, claims.Permissions)
}
