package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/identity/internal/auth/domain"
	apperrors "github.com/allisson/identity/internal/errors"
)

// Token is an issued access token and its expiry.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// AuthUseCase handles principal authentication and token lifecycle.
type AuthUseCase struct {
	identityGetter   IdentityGetter
	apiKeyGetter     APIKeyGetter
	claimsBuilder    ClaimsBuilder
	tokenIssuer      TokenIssuer
	passwordVerifier PasswordVerifier
	logger           *slog.Logger
}

// NewAuthUseCase creates a new AuthUseCase.
func NewAuthUseCase(
	identityGetter IdentityGetter,
	apiKeyGetter APIKeyGetter,
	claimsBuilder ClaimsBuilder,
	tokenIssuer TokenIssuer,
	passwordVerifier PasswordVerifier,
	logger *slog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		identityGetter:   identityGetter,
		apiKeyGetter:     apiKeyGetter,
		claimsBuilder:    claimsBuilder,
		tokenIssuer:      tokenIssuer,
		passwordVerifier: passwordVerifier,
		logger:           logger,
	}
}

// AuthenticateIdentity verifies an identifier and password pair and issues an
// access token. Unknown identifiers, wrong passwords and disabled identities
// all yield ErrInvalidCredentials so the caller cannot tell them apart.
func (uc *AuthUseCase) AuthenticateIdentity(ctx context.Context, identifier, password string) (*Token, error) {
	identity, err := uc.identityGetter.GetByIdentifier(ctx, identifier)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			uc.logger.Info("authentication failed", "reason", "unknown identifier")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if identity.Disabled {
		uc.logger.Info("authentication failed", "reason", "identity disabled", "identity_id", identity.ID)
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := uc.passwordVerifier.Verify([]byte(password), identity.HashedPassword)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to verify password")
	}
	if !ok {
		uc.logger.Info("authentication failed", "reason", "wrong password", "identity_id", identity.ID)
		return nil, domain.ErrInvalidCredentials
	}

	claims, err := uc.claimsBuilder.ForIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}

	accessToken, expiresAt, err := uc.tokenIssuer.Issue(claims)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("identity authenticated", "identity_id", identity.ID)
	return &Token{AccessToken: accessToken, ExpiresAt: expiresAt}, nil
}

// AuthenticateAPIKey verifies an API key by its secret ID and issues an
// access token. Unknown and disabled keys both yield ErrInvalidCredentials.
func (uc *AuthUseCase) AuthenticateAPIKey(ctx context.Context, keyID uuid.UUID) (*Token, error) {
	key, err := uc.apiKeyGetter.GetByID(ctx, keyID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			uc.logger.Info("authentication failed", "reason", "unknown api key")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !key.Enabled {
		uc.logger.Info("authentication failed", "reason", "api key disabled", "api_key_id", key.ID)
		return nil, domain.ErrInvalidCredentials
	}

	claims := uc.claimsBuilder.ForAPIKey(key)

	accessToken, expiresAt, err := uc.tokenIssuer.Issue(claims)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("api key authenticated", "api_key_id", key.ID)
	return &Token{AccessToken: accessToken, ExpiresAt: expiresAt}, nil
}

// Refresh re-signs a token's claims with a fresh expiry. The claims are
// trusted as issued; revoked roles or permissions persist until the next full
// authentication.
func (uc *AuthUseCase) Refresh(ctx context.Context, tokenString string) (*Token, error) {
	accessToken, expiresAt, err := uc.tokenIssuer.Refresh(tokenString)
	if err != nil {
		return nil, err
	}
	return &Token{AccessToken: accessToken, ExpiresAt: expiresAt}, nil
}

// Verify validates a token and returns its claims.
func (uc *AuthUseCase) Verify(ctx context.Context, tokenString string) (*domain.Claims, error) {
	return uc.tokenIssuer.Verify(tokenString)
}
