package http

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authdomain "github.com/allisson/identity/internal/auth/domain"
	authusecase "github.com/allisson/identity/internal/auth/usecase"
	apperrors "github.com/allisson/identity/internal/errors"
	"github.com/allisson/identity/internal/httputil"
)

// TokenVerifier validates an access token and returns its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, tokenString string) (*authdomain.Claims, error)
}

// AuthenticationMiddleware authenticates requests via a Bearer access token
// in the Authorization header and stores the verified claims in the request
// context.
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Invalid, tampered or expired token → 401 Unauthorized
func AuthenticationMiddleware(verifier TokenVerifier, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		claims, err := verifier.Verify(c.Request.Context(), tokenString)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithClaims(c.Request.Context(), claims)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("subject", claims.Subject),
			slog.String("name", claims.Name))

		c.Next()
	}
}

// RequirePermission authorizes authenticated requests against a required
// permission. It must run after AuthenticationMiddleware. The decision is
// delegated to the authorizer, so either the permission itself or the
// administrator role satisfies it.
//
// Error handling:
//   - No claims in context → 401 Unauthorized
//   - Claims do not satisfy the requirement → 403 Forbidden
func RequirePermission(authorizer *authusecase.Authorizer, permission string, logger *slog.Logger) gin.HandlerFunc {
	requirement := authusecase.Requirement{Permission: permission}

	return func(c *gin.Context) {
		claims, ok := GetClaims(c.Request.Context())
		if !ok || claims == nil {
			logger.Debug("authorization failed: no claims in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !authorizer.Authorize(claims, requirement) {
			logger.Debug("authorization failed: requirement not satisfied",
				slog.String("subject", claims.Subject),
				slog.String("permission", permission))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// bearerToken extracts the Bearer token from the Authorization header. The
// scheme comparison is case-insensitive.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	const bearerPrefix = "bearer "
	if len(authHeader) < len(bearerPrefix) ||
		!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := authHeader[len(bearerPrefix):]
	if token == "" {
		return "", false
	}
	return token, true
}
