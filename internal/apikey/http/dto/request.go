// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customvalidation "github.com/allisson/identity/internal/validation"
)

// CreateAPIKeyRequest contains the parameters for creating an API key.
type CreateAPIKeyRequest struct {
	Name string `json:"name"`
}

// Validate checks if the create API key request is valid.
func (r *CreateAPIKeyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customvalidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// UpdateAPIKeyRequest contains the parameters for renaming an API key and
// setting its status.
type UpdateAPIKeyRequest struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// Validate checks if the update API key request is valid.
func (r *UpdateAPIKeyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customvalidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// SetPermissionsRequest contains the permission names to grant to an API key,
// replacing any existing grants.
type SetPermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

// Validate checks if the set permissions request is valid. Catalog membership
// is enforced by the use case.
func (r *SetPermissionsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Permissions,
			validation.NotNil,
			validation.Each(validation.Required, customvalidation.NotBlank),
		),
	)
}
