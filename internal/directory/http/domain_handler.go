// Package http provides HTTP handlers for directory management.
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

// DomainHandler handles HTTP requests for domain management.
type DomainHandler struct {
	domainUseCase *usecase.DomainUseCase
	logger        *slog.Logger
}

// NewDomainHandler creates a new DomainHandler.
func NewDomainHandler(domainUseCase *usecase.DomainUseCase, logger *slog.Logger) *DomainHandler {
	return &DomainHandler{domainUseCase: domainUseCase, logger: logger}
}

// CreateDomainHandler creates a new domain.
// POST /api/v1/domains - Requires domains.create.
// Returns 201 Created with the domain.
func (h *DomainHandler) CreateDomainHandler(c *gin.Context) {
	var req dto.CreateDomainRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customvalidation.WrapValidationError(err), h.logger)
		return
	}

	d, err := h.domainUseCase.Create(c.Request.Context(), req.Name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.NewDomainResponse(d))
}

// GetDomainHandler retrieves a domain by ID.
// GET /api/v1/domains/:id - Requires domains.get.
func (h *DomainHandler) GetDomainHandler(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	d, err := h.domainUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewDomainResponse(d))
}

// ListDomainsHandler lists domains with pagination.
// GET /api/v1/domains - Requires domains.get.
func (h *DomainHandler) ListDomainsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	domains, err := h.domainUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewDomainListResponse(domains))
}

// UpdateDomainHandler renames a domain.
// PUT /api/v1/domains/:id - Requires domains.update.
func (h *DomainHandler) UpdateDomainHandler(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UpdateDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customvalidation.WrapValidationError(err), h.logger)
		return
	}

	d, err := h.domainUseCase.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewDomainResponse(d))
}

// DeleteDomainHandler removes a domain.
// DELETE /api/v1/domains/:id - Requires domains.delete.
// Returns 204 No Content even if the domain was already absent.
func (h *DomainHandler) DeleteDomainHandler(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.domainUseCase.Delete(c.Request.Context(), id); err != nil {
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
