// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customvalidation "github.com/allisson/identity/internal/validation"
)

// AuthenticateIdentityRequest contains the credentials for identity
// authentication.
type AuthenticateIdentityRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Validate checks if the identity authentication request is valid.
func (r *AuthenticateIdentityRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Identifier,
			validation.Required,
			customvalidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(1, 128),
		),
	)
}

// AuthenticateAPIKeyRequest contains the secret for API key authentication.
type AuthenticateAPIKeyRequest struct {
	APIKey string `json:"api_key"`
}

// Validate checks if the API key authentication request is valid.
func (r *AuthenticateAPIKeyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.APIKey,
			validation.Required,
			customvalidation.NotBlank,
		),
	)
}
