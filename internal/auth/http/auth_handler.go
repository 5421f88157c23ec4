package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/identity/internal/auth/http/dto"
	authusecase "github.com/allisson/identity/internal/auth/usecase"
	apperrors "github.com/allisson/identity/internal/errors"
	"github.com/allisson/identity/internal/httputil"
	customvalidation "github.com/allisson/identity/internal/validation"
)

// AuthHandler handles HTTP requests for authentication and token refresh.
type AuthHandler struct {
	authService authusecase.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService authusecase.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// AuthenticateIdentityHandler authenticates an identity with identifier and
// password credentials.
// POST /api/v1/auth/identity - No authentication required.
// Returns 200 OK with a signed access token.
func (h *AuthHandler) AuthenticateIdentityHandler(c *gin.Context) {
	var req dto.AuthenticateIdentityRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customvalidation.WrapValidationError(err), h.logger)
		return
	}

	token, err := h.authService.AuthenticateIdentity(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewTokenResponse(token.AccessToken, token.ExpiresAt))
}

// AuthenticateAPIKeyHandler authenticates a machine client with its API key.
// POST /api/v1/auth/api-key - No authentication required.
// Returns 200 OK with a signed access token.
func (h *AuthHandler) AuthenticateAPIKeyHandler(c *gin.Context) {
	var req dto.AuthenticateAPIKeyRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customvalidation.WrapValidationError(err), h.logger)
		return
	}

	keyID, err := uuid.Parse(req.APIKey)
	if err != nil {
		// An unparseable key cannot match any stored key. Same response as an
		// unknown one so the format is not probeable.
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	token, err := h.authService.AuthenticateAPIKey(c.Request.Context(), keyID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewTokenResponse(token.AccessToken, token.ExpiresAt))
}

// RefreshTokenHandler re-signs the presented token with a fresh expiry. The
// token comes from the Authorization header; an expired token is still
// accepted as long as its signature verifies.
// POST /api/v1/auth/refresh - Bearer token required (may be expired).
// Returns 200 OK with a new access token.
func (h *AuthHandler) RefreshTokenHandler(c *gin.Context) {
	tokenString, ok := bearerToken(c)
	if !ok {
		httputil.HandleBadRequestGin(c, fmt.Errorf("missing bearer token"), h.logger)
		return
	}

	token, err := h.authService.Refresh(c.Request.Context(), tokenString)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewTokenResponse(token.AccessToken, token.ExpiresAt))
}
