// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/paservices/auth-service/internal/auth/domain"
	customValidation "github.com/paservices/auth-service/internal/validation"
)

// IssueTokenRequest carries the client credentials grant presented to the
// token endpoint.
type IssueTokenRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// Validate checks the required fields are present. Grant type correctness is
// checked separately by the handler so an unsupported grant maps to 400, not 422.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.GrantType,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.ClientID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.ClientSecret,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// SupportsGrantType reports whether the requested grant type is the supported
// client credentials grant.
func (r *IssueTokenRequest) SupportsGrantType() bool {
	return r.GrantType == authDomain.GrantTypeClientCredentials
}

// CreateClientRequest contains the parameters for creating a new authentication client.
type CreateClientRequest struct {
	Name     string   `json:"name"`
	IsActive bool     `json:"is_active"`
	Roles    []string `json:"roles"`
}

// Validate checks if the create client request is valid.
func (r *CreateClientRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Roles,
			validation.Each(customValidation.NotBlank),
		),
	)
}

// UpdateClientRequest contains the parameters for updating an existing client.
type UpdateClientRequest struct {
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// Validate checks if the update client request is valid.
func (r *UpdateClientRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// AssignRoleRequest contains the parameters for assigning a role to a client.
type AssignRoleRequest struct {
	Role string `json:"role"`
}

// Validate checks if the assign role request is valid.
func (r *AssignRoleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Role,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}
