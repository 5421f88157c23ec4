package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/identity/internal/apikey/domain"
)

// APIKeyResponse is the wire representation of an API key.
type APIKeyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Enabled     bool      `json:"enabled"`
	Permissions []string  `json:"permissions,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewAPIKeyResponse builds an APIKeyResponse from an API key entity.
func NewAPIKeyResponse(key *domain.APIKey) APIKeyResponse {
	return APIKeyResponse{
		ID:          key.ID,
		Name:        key.Name,
		Enabled:     key.Enabled,
		Permissions: key.Permissions,
		CreatedAt:   key.CreatedAt,
		UpdatedAt:   key.UpdatedAt,
	}
}

// NewAPIKeyListResponse builds the wire representation of an API key list.
func NewAPIKeyListResponse(keys []*domain.APIKey) []APIKeyResponse {
	out := make([]APIKeyResponse, 0, len(keys))
	for _, key := range keys {
		out = append(out, NewAPIKeyResponse(key))
	}
	return out
}

// PermissionsResponse is the wire representation of a permission name list.
type PermissionsResponse struct {
	Permissions []string `json:"permissions"`
}
