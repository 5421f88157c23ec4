package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/identity/internal/directory/domain"
)

// DomainResponse is the wire representation of a domain.
type DomainResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDomainResponse builds a DomainResponse from a domain entity.
func NewDomainResponse(d *domain.Domain) DomainResponse {
	return DomainResponse{
		ID:        d.ID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// NewDomainListResponse builds the wire representation of a domain list.
func NewDomainListResponse(domains []*domain.Domain) []DomainResponse {
	out := make([]DomainResponse, 0, len(domains))
	for _, d := range domains {
		out = append(out, NewDomainResponse(d))
	}
	return out
}

// RoleResponse is the wire representation of a role.
type RoleResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	DomainID  *uuid.UUID `json:"domain_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewRoleResponse builds a RoleResponse from a role entity.
func NewRoleResponse(role *domain.Role) RoleResponse {
	return RoleResponse{
		ID:        role.ID,
		Name:      role.Name,
		DomainID:  role.DomainID,
		CreatedAt: role.CreatedAt,
		UpdatedAt: role.UpdatedAt,
	}
}

// NewRoleListResponse builds the wire representation of a role list.
func NewRoleListResponse(roles []*domain.Role) []RoleResponse {
	out := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		out = append(out, NewRoleResponse(role))
	}
	return out
}
