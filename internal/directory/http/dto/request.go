// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customvalidation "github.com/allisson/identity/internal/validation"
)

// CreateDomainRequest contains the parameters for creating a domain.
type CreateDomainRequest struct {
	Name string `json:"name"`
}

// Validate checks if the create domain request is valid.
func (r *CreateDomainRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customvalidation.NotBlank,
			customvalidation.NoWhitespace,
			validation.Length(1, 255),
		),
	)
}

// UpdateDomainRequest contains the parameters for renaming a domain.
type UpdateDomainRequest struct {
	Name string `json:"name"`
}

// Validate checks if the update domain request is valid.
func (r *UpdateDomainRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customvalidation.NotBlank,
			customvalidation.NoWhitespace,
			validation.Length(1, 255),
		),
	)
}

// CreateRoleRequest contains the parameters for creating a role. DomainID is
// optional; a role without one belongs to no domain.
type CreateRoleRequest struct {
	Name     string  `json:"name"`
	DomainID *string `json:"domain_id"`
}

// Validate checks if the create role request is valid.
func (r *CreateRoleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customvalidation.NotBlank,
			customvalidation.NoWhitespace,
			validation.Length(1, 255),
		),
		validation.Field(&r.DomainID,
			validation.When(r.DomainID != nil, validation.Required, validation.Length(36, 36)),
		),
	)
}

// UpdateRoleRequest contains the parameters for renaming a role.
type UpdateRoleRequest struct {
	Name string `json:"name"`
}

// Validate checks if the update role request is valid.
func (r *UpdateRoleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customvalidation.NotBlank,
			customvalidation.NoWhitespace,
			validation.Length(1, 255),
		),
	)
}
