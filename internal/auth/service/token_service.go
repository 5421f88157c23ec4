// Package service implements token issuance and claims resolution.
package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/allisson/identity/internal/auth/domain"
	apperrors "github.com/allisson/identity/internal/errors"
)

// minSecretLength is the minimum HMAC secret size accepted at startup.
const minSecretLength = 16

// TokenService issues, verifies and refreshes HMAC-SHA256 signed access
// tokens.
type TokenService struct {
	secret   []byte
	issuer   string
	lifetime time.Duration
}

// NewTokenService creates a new TokenService. The secret must be at least 16
// characters; a shorter one is a configuration error.
func NewTokenService(secret, issuer string, lifetime time.Duration) (*TokenService, error) {
	if len(secret) < minSecretLength {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput,
			"jwt secret must be at least %d characters", minSecretLength)
	}
	if issuer == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "jwt issuer must not be empty")
	}
	if lifetime <= 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "jwt lifetime must be positive")
	}

	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		lifetime: lifetime,
	}, nil
}

// Issue signs a new access token carrying the given claims. It returns the
// compact token and its expiry time.
func (s *TokenService) Issue(claims *domain.Claims) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.lifetime)

	mapClaims := jwt.MapClaims{
		"sub":                   claims.Subject,
		"name":                  claims.Name,
		domain.ClaimRoles:       claims.Roles,
		domain.ClaimPermissions: claims.Permissions,
		"iss":                   s.issuer,
		"iat":                   now.Unix(),
		"exp":                   expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign token")
	}

	return signed, expiresAt, nil
}

// Verify validates the token's signature, issuer and expiry and returns its
// claims.
func (s *TokenService) Verify(tokenString string) (*domain.Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.Parse(tokenString, s.keyFunc)
	if err != nil {
		return nil, apperrors.Wrap(domain.ErrInvalidToken, err.Error())
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrInvalidToken
	}

	return claimsFromMap(mapClaims), nil
}

// Refresh re-signs the token's claims with a fresh expiry. The signature must
// verify but an already expired token is still refreshable; the claims are
// reused as issued, so role or permission changes only take effect on full
// reauthentication.
func (s *TokenService) Refresh(tokenString string) (string, time.Time, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.Parse(tokenString, s.keyFunc)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(domain.ErrInvalidToken, err.Error())
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", time.Time{}, domain.ErrInvalidToken
	}

	return s.Issue(claimsFromMap(mapClaims))
}

func (s *TokenService) keyFunc(token *jwt.Token) (any, error) {
	return s.secret, nil
}

func claimsFromMap(mapClaims jwt.MapClaims) *domain.Claims {
	claims := &domain.Claims{}
	if sub, ok := mapClaims["sub"].(string); ok {
		claims.Subject = sub
	}
	if name, ok := mapClaims["name"].(string); ok {
		claims.Name = name
	}
	claims.Roles = stringSlice(mapClaims[domain.ClaimRoles])
	claims.Permissions = stringSlice(mapClaims[domain.ClaimPermissions])
	return claims
}

// stringSlice converts the decoded JSON array claim back to a string slice.
func stringSlice(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
