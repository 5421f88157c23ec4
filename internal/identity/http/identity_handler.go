// Package http provides HTTP handlers for identity management.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	directorydto "github.com/allisson/identity/internal/directory/http/dto"
	"github.com/allisson/identity/internal/httputil"
	"github.com/allisson/identity/internal/identity/http/dto"
	"github.com/allisson/identity/internal/identity/usecase"
	customvalidation "github.com/allisson/identity/internal/validation"
)

// IdentityHandler handles HTTP requests for identity management.
type IdentityHandler struct {
	identityUseCase *usecase.IdentityUseCase
	logger          *slog.Logger
}

// NewIdentityHandler creates a new IdentityHandler.
func NewIdentityHandler(identityUseCase *usecase.IdentityUseCase, logger *slog.Logger) *IdentityHandler {
	return &IdentityHandler{identityUseCase: identityUseCase, logger: logger}
}

// CreateIdentityHandler creates a new identity.
// POST /api/v1/identities - Requires identities.create.
// Returns 201 Created with the identity.
func (h *IdentityHandler) CreateIdentityHandler(c *gin.Context) {
	var req dto.CreateIdentityRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customvalidation.WrapValidationError(err), h.logger)
		return
	}

	identity, err := h.identityUseCase.Create(c.Request.Context(), usecase.CreateIdentityInput{
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.NewIdentityResponse(identity))
}

// GetIdentityHandler retrieves an identity by ID.
// GET /api/v1/identities/:id - Requires identities.get.
func (h *IdentityHandler) GetIdentityHandler(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	identity, err := h.identityUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewIdentityResponse(identity))
}

// ListIdentitiesHandler lists identities with pagination. Disabled identities
// are excluded unless show_disabled=true is passed.
// GET /api/v1/identities - Requires identities.get.
func (h *IdentityHandler) ListIdentitiesHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	showDisabled, err := strconv.ParseBool(c.DefaultQuery("show_disabled", "false"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid show_disabled parameter: must be a boolean"), h.logger)
		return
	}

	identities, err := h.identityUseCase.List(c.Request.Context(), offset, limit, showDisabled)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewIdentityListResponse(identities))
}

// UpdateIdentityStatusHandler enables or disables an identity.
// PUT /api/v1/identities/:id/status - Requires identities.update.
func (h *IdentityHandler) UpdateIdentityStatusHandler(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UpdateIdentityStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	identity, err := h.identityUseCase.SetStatus(c.Request.Context(), id, req.Disabled)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewIdentityResponse(identity))
}

// ChangePasswordHandler replaces an identity's password.
// PUT /api/v1/identities/:id/password - Requires identities.update.
// Returns 204 No Content.
func (h *IdentityHandler) ChangePasswordHandler(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customvalidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.identityUseCase.ChangePassword(c.Request.Context(), id, req.Password); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteIdentityHandler removes an identity.
// DELETE /api/v1/identities/:id - Requires identities.delete.
// Returns 204 No Content even if the identity was already absent.
func (h *IdentityHandler) DeleteIdentityHandler(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.identityUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetIdentityRolesHandler lists the roles assigned to an identity.
// GET /api/v1/identities/:id/roles - Requires identities.get-roles.
func (h *IdentityHandler) GetIdentityRolesHandler(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	roles, err := h.identityUseCase.GetRoles(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, directorydto.NewRoleListResponse(roles))
}

// SetIdentityRolesHandler replaces the roles assigned to an identity.
// PUT /api/v1/identities/:id/roles - Requires identities.set-roles.
// Returns 204 No Content.
func (h *IdentityHandler) SetIdentityRolesHandler(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.SetRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customvalidation.WrapValidationError(err), h.logger)
		return
	}

	roleIDs := make([]uuid.UUID, 0, len(req.RoleIDs))
	for _, roleIDStr := range req.RoleIDs {
		roleID, err := uuid.Parse(roleIDStr)
		if err != nil {
			httputil.HandleBadRequestGin(c,
				fmt.Errorf("invalid role id %q: must be a valid UUID", roleIDStr), h.logger)
			return
		}
		roleIDs = append(roleIDs, roleID)
	}

	if err := h.identityUseCase.SetRoles(c.Request.Context(), id, roleIDs); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseUUIDParam parses a UUID path parameter.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s parameter: must be a valid UUID", name)
	}
	return id, nil
}
