// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customvalidation "github.com/allisson/identity/internal/validation"
)

// CreateIdentityRequest contains the parameters for creating an identity.
type CreateIdentityRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Validate checks if the create identity request is valid. Identifier
// strategy and password strength are enforced by the use case; this only
// rejects obviously malformed payloads early.
func (r *CreateIdentityRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Identifier,
			validation.Required,
			customvalidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(8, 128),
		),
	)
}

// UpdateIdentityStatusRequest contains the parameters for enabling or
// disabling an identity.
type UpdateIdentityStatusRequest struct {
	Disabled bool `json:"disabled"`
}

// ChangePasswordRequest contains the parameters for replacing an identity's
// password.
type ChangePasswordRequest struct {
	Password string `json:"password"`
}

// Validate checks if the change password request is valid.
func (r *ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(8, 128),
		),
	)
}

// SetRolesRequest contains the role IDs to assign to an identity, replacing
// any existing assignments.
type SetRolesRequest struct {
	RoleIDs []string `json:"role_ids"`
}

// Validate checks if the set roles request is valid.
func (r *SetRolesRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.RoleIDs,
			validation.NotNil,
			validation.Each(validation.Required, validation.Length(36, 36)),
		),
	)
}
