// Package http provides HTTP middleware and handlers for authentication.
package http

import (
	"context"

	authdomain "github.com/allisson/identity/internal/auth/domain"
)

// claimsKey is a context key type for storing verified token claims.
type claimsKey struct{}

// WithClaims stores verified token claims in the context. Called by the
// authentication middleware after token verification.
func WithClaims(ctx context.Context, claims *authdomain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims retrieves verified token claims from the context. Returns
// (claims, true) if present, or (nil, false) if the authentication middleware
// has not run.
func GetClaims(ctx context.Context) (*authdomain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*authdomain.Claims)
	return claims, ok
}
