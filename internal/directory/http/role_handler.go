package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/identity/internal/directory/http/dto"
	"github.com/allisson/identity/internal/directory/usecase"
	"github.com/allisson/identity/internal/httputil"
	customvalidation "github.com/allisson/identity/internal/validation"
)

// RoleHandler handles HTTP requests for role management.
type RoleHandler struct {
	roleUseCase *usecase.RoleUseCase
	logger      *slog.Logger
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(roleUseCase *usecase.RoleUseCase, logger *slog.Logger) *RoleHandler {
	return &RoleHandler{roleUseCase: roleUseCase, logger: logger}
}

// CreateRoleHandler creates a new role, optionally owned by a domain.
// POST /api/v1/roles - Requires roles.create.
// Returns 201 Created with the role.
func (h *RoleHandler) CreateRoleHandler(c *gin.Context) {
	var req dto.CreateRoleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customvalidation.WrapValidationError(err), h.logger)
		return
	}

	var domainID *uuid.UUID
	if req.DomainID != nil {
		parsed, err := uuid.Parse(*req.DomainID)
		if err != nil {
			httputil.HandleBadRequestGin(c,
				fmt.Errorf("invalid domain_id: must be a valid UUID"), h.logger)
			return
		}
		domainID = &parsed
	}

	role, err := h.roleUseCase.Create(c.Request.Context(), req.Name, domainID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.NewRoleResponse(role))
}

// GetRoleHandler retrieves a role by ID.
// GET /api/v1/roles/:id - Requires roles.get.
func (h *RoleHandler) GetRoleHandler(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	role, err := h.roleUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewRoleResponse(role))
}

// ListRolesHandler lists roles with pagination, optionally filtered by
// domain.
// GET /api/v1/roles[?domain_id=...] - Requires roles.get.
func (h *RoleHandler) ListRolesHandler(c *gin.Context) {
	if domainIDStr := c.Query("domain_id"); domainIDStr != "" {
		domainID, err := uuid.Parse(domainIDStr)
		if err != nil {
			httputil.HandleBadRequestGin(c,
				fmt.Errorf("invalid domain_id parameter: must be a valid UUID"), h.logger)
			return
		}

		roles, err := h.roleUseCase.ListByDomain(c.Request.Context(), domainID)
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}

		c.JSON(http.StatusOK, dto.NewRoleListResponse(roles))
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	roles, err := h.roleUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewRoleListResponse(roles))
}

// UpdateRoleHandler renames a role.
// PUT /api/v1/roles/:id - Requires roles.update.
func (h *RoleHandler) UpdateRoleHandler(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customvalidation.WrapValidationError(err), h.logger)
		return
	}

	role, err := h.roleUseCase.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewRoleResponse(role))
}

// DeleteRoleHandler removes a role.
// DELETE /api/v1/roles/:id - Requires roles.delete.
// Returns 204 No Content even if the role was already absent.
func (h *RoleHandler) DeleteRoleHandler(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.roleUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
