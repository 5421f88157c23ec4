// Package usecase implements authentication, authorization and bootstrap
// logic.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	apikeydomain "github.com/allisson/identity/internal/apikey/domain"
	"github.com/allisson/identity/internal/auth/domain"
	directorydomain "github.com/allisson/identity/internal/directory/domain"
	identitydomain "github.com/allisson/identity/internal/identity/domain"
	identityusecase "github.com/allisson/identity/internal/identity/usecase"
)

// AuthService is the authentication entry point exposed to transports. It is
// implemented by AuthUseCase and by its metrics decorator.
type AuthService interface {
	AuthenticateIdentity(ctx context.Context, identifier, password string) (*Token, error)
	AuthenticateAPIKey(ctx context.Context, keyID uuid.UUID) (*Token, error)
	Refresh(ctx context.Context, tokenString string) (*Token, error)
	Verify(ctx context.Context, tokenString string) (*domain.Claims, error)
}

// IdentityGetter looks identities up by identifier.
type IdentityGetter interface {
	GetByIdentifier(ctx context.Context, identifier string) (*identitydomain.Identity, error)
}

// APIKeyGetter looks API keys up by ID.
type APIKeyGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*apikeydomain.APIKey, error)
}

// ClaimsBuilder builds token claims for authenticated principals.
type ClaimsBuilder interface {
	ForIdentity(ctx context.Context, identity *identitydomain.Identity) (*domain.Claims, error)
	ForAPIKey(key *apikeydomain.APIKey) *domain.Claims
}

// TokenIssuer issues, verifies and refreshes access tokens.
type TokenIssuer interface {
	Issue(claims *domain.Claims) (string, time.Time, error)
	Verify(tokenString string) (*domain.Claims, error)
	Refresh(tokenString string) (string, time.Time, error)
}

// PasswordVerifier checks a password against its stored hash.
type PasswordVerifier interface {
	Verify(password []byte, encodedHash string) (bool, error)
}

// BootstrapDomainRepository covers the domain operations bootstrap needs.
type BootstrapDomainRepository interface {
	GetByName(ctx context.Context, name string) (*directorydomain.Domain, error)
	Create(ctx context.Context, d *directorydomain.Domain) error
}

// BootstrapRoleRepository covers the role operations bootstrap needs.
type BootstrapRoleRepository interface {
	GetByNameAndDomain(ctx context.Context, name string, domainID *uuid.UUID) (*directorydomain.Role, error)
	Create(ctx context.Context, role *directorydomain.Role) error
}

// BootstrapIdentityService covers the identity operations bootstrap needs.
type BootstrapIdentityService interface {
	GetByIdentifier(ctx context.Context, identifier string) (*identitydomain.Identity, error)
	Create(ctx context.Context, input identityusecase.CreateIdentityInput) (*identitydomain.Identity, error)
	SetRoles(ctx context.Context, id uuid.UUID, roleIDs []uuid.UUID) error
}
