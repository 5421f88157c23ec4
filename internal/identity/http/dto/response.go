package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/identity/internal/identity/domain"
)

// IdentityResponse is the wire representation of an identity. The password
// hash never leaves the service.
type IdentityResponse struct {
	ID         uuid.UUID `json:"id"`
	Identifier string    `json:"identifier"`
	Disabled   bool      `json:"disabled"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewIdentityResponse builds an IdentityResponse from an identity entity.
func NewIdentityResponse(identity *domain.Identity) IdentityResponse {
	return IdentityResponse{
		ID:         identity.ID,
		Identifier: identity.Identifier,
		Disabled:   identity.Disabled,
		CreatedAt:  identity.CreatedAt,
		UpdatedAt:  identity.UpdatedAt,
	}
}

// NewIdentityListResponse builds the wire representation of an identity list.
func NewIdentityListResponse(identities []*domain.Identity) []IdentityResponse {
	out := make([]IdentityResponse, 0, len(identities))
	for _, identity := range identities {
		out = append(out, NewIdentityResponse(identity))
	}
	return out
}
