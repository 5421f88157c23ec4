package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	apikeydomain "github.com/allisson/identity/internal/apikey/domain"
	"github.com/allisson/identity/internal/auth/domain"
	directorydomain "github.com/allisson/identity/internal/directory/domain"
	identitydomain "github.com/allisson/identity/internal/identity/domain"
	identityusecase "github.com/allisson/identity/internal/identity/usecase"
)

type mockIdentityGetter struct {
	mock.Mock
}

func (m *mockIdentityGetter) GetByIdentifier(ctx context.Context, identifier string) (*identitydomain.Identity, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identitydomain.Identity), args.Error(1)
}

type mockAPIKeyGetter struct {
	mock.Mock
}

func (m *mockAPIKeyGetter) GetByID(ctx context.Context, id uuid.UUID) (*apikeydomain.APIKey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apikeydomain.APIKey), args.Error(1)
}

type mockClaimsBuilder struct {
	mock.Mock
}

func (m *mockClaimsBuilder) ForIdentity(ctx context.Context, identity *identitydomain.Identity) (*domain.Claims, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claims), args.Error(1)
}

func (m *mockClaimsBuilder) ForAPIKey(key *apikeydomain.APIKey) *domain.Claims {
	args := m.Called(key)
	return args.Get(0).(*domain.Claims)
}

type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) Issue(claims *domain.Claims) (string, time.Time, error) {
	args := m.Called(claims)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockTokenIssuer) Verify(tokenString string) (*domain.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claims), args.Error(1)
}

func (m *mockTokenIssuer) Refresh(tokenString string) (string, time.Time, error) {
	args := m.Called(tokenString)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

type mockPasswordVerifier struct {
	mock.Mock
}

func (m *mockPasswordVerifier) Verify(password []byte, encodedHash string) (bool, error) {
	args := m.Called(password, encodedHash)
	return args.Bool(0), args.Error(1)
}

type mockBootstrapDomainRepository struct {
	mock.Mock
}

func (m *mockBootstrapDomainRepository) GetByName(ctx context.Context, name string) (*directorydomain.Domain, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directorydomain.Domain), args.Error(1)
}

func (m *mockBootstrapDomainRepository) Create(ctx context.Context, d *directorydomain.Domain) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

type mockBootstrapRoleRepository struct {
	mock.Mock
}

func (m *mockBootstrapRoleRepository) GetByNameAndDomain(ctx context.Context, name string, domainID *uuid.UUID) (*directorydomain.Role, error) {
	args := m.Called(ctx, name, domainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directorydomain.Role), args.Error(1)
}

func (m *mockBootstrapRoleRepository) Create(ctx context.Context, role *directorydomain.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

type mockBootstrapIdentityService struct {
	mock.Mock
}

func (m *mockBootstrapIdentityService) GetByIdentifier(ctx context.Context, identifier string) (*identitydomain.Identity, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identitydomain.Identity), args.Error(1)
}

func (m *mockBootstrapIdentityService) Create(ctx context.Context, input identityusecase.CreateIdentityInput) (*identitydomain.Identity, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identitydomain.Identity), args.Error(1)
}

func (m *mockBootstrapIdentityService) SetRoles(ctx context.Context, id uuid.UUID, roleIDs []uuid.UUID) error {
	args := m.Called(ctx, id, roleIDs)
	return args.Error(0)
}
