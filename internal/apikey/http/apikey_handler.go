// Package http provides HTTP handlers for API key management.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/identity/internal/apikey/http/dto"
	"github.com/allisson/identity/internal/apikey/usecase"
	authdomain "github.com/allisson/identity/internal/auth/domain"
	"github.com/allisson/identity/internal/httputil"
	customvalidation "github.com/allisson/identity/internal/validation"
)

// APIKeyHandler handles HTTP requests for API key management.
type APIKeyHandler struct {
	apiKeyUseCase *usecase.APIKeyUseCase
	logger        *slog.Logger
}

// NewAPIKeyHandler creates a new APIKeyHandler.
func NewAPIKeyHandler(apiKeyUseCase *usecase.APIKeyUseCase, logger *slog.Logger) *APIKeyHandler {
	return &APIKeyHandler{apiKeyUseCase: apiKeyUseCase, logger: logger}
}

// CreateAPIKeyHandler creates a new API key.
// POST /api/v1/api-keys - Requires api-keys.create.
// Returns 201 Created with the key. The returned ID is the secret the client
// authenticates with.
func (h *APIKeyHandler) CreateAPIKeyHandler(c *gin.Context) {
	var req dto.CreateAPIKeyRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customvalidation.WrapValidationError(err), h.logger)
		return
	}

	key, err := h.apiKeyUseCase.Create(c.Request.Context(), req.Name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAPIKeyResponse(key))
}

// GetAPIKeyHandler retrieves an API key by ID.
// GET /api/v1/api-keys/:id - Requires api-keys.get.
func (h *APIKeyHandler) GetAPIKeyHandler(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	key, err := h.apiKeyUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIKeyResponse(key))
}

// ListAPIKeysHandler lists API keys with pagination.
// GET /api/v1/api-keys - Requires api-keys.get.
func (h *APIKeyHandler) ListAPIKeysHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	keys, err := h.apiKeyUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIKeyListResponse(keys))
}

// UpdateAPIKeyHandler renames an API key and sets its status.
// PUT /api/v1/api-keys/:id - Requires api-keys.update.
func (h *APIKeyHandler) UpdateAPIKeyHandler(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UpdateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customvalidation.WrapValidationError(err), h.logger)
		return
	}

	key, err := h.apiKeyUseCase.Update(c.Request.Context(), id, req.Name, req.Enabled)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIKeyResponse(key))
}

// DeleteAPIKeyHandler removes an API key.
// DELETE /api/v1/api-keys/:id - Requires api-keys.delete.
// Returns 204 No Content even if the key was already absent.
func (h *APIKeyHandler) DeleteAPIKeyHandler(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.apiKeyUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAPIKeyPermissionsHandler lists the permissions granted to an API key.
// GET /api/v1/api-keys/:id/permissions - Requires api-keys.get-permissions.
func (h *APIKeyHandler) GetAPIKeyPermissionsHandler(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	permissions, err := h.apiKeyUseCase.GetPermissions(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.PermissionsResponse{Permissions: permissions})
}

// SetAPIKeyPermissionsHandler replaces the permissions granted to an API key.
// PUT /api/v1/api-keys/:id/permissions - Requires api-keys.set-permissions.
// Returns 204 No Content.
func (h *APIKeyHandler) SetAPIKeyPermissionsHandler(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.SetPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customvalidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.apiKeyUseCase.SetPermissions(c.Request.Context(), id, req.Permissions); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListPermissionCatalogHandler lists every permission the service knows.
// GET /api/v1/permissions - Requires api-keys.get-permissions.
func (h *APIKeyHandler) ListPermissionCatalogHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.PermissionsResponse{Permissions: authdomain.Permissions()})
}

// parseUUIDParam parses a UUID path parameter.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s parameter: must be a valid UUID", name)
	}
	return id, nil
}
