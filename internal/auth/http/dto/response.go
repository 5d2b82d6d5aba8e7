package dto

import (
	"time"

	"github.com/google/uuid"

	authDomain "github.com/paservices/auth-service/internal/auth/domain"
)

// IssueTokenResponse is the token endpoint success payload.
type IssueTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// MapIssueTokenOutputToResponse converts a token issuance result to its response DTO.
func MapIssueTokenOutputToResponse(output authDomain.IssueTokenOutput) IssueTokenResponse {
	return IssueTokenResponse{
		AccessToken: output.AccessToken,
		TokenType:   output.TokenType,
		ExpiresIn:   output.ExpiresIn,
	}
}

// CreateClientResponse carries the new client id and the plaintext secret.
// The secret is shown only here and never again.
type CreateClientResponse struct {
	ID     uuid.UUID `json:"id"`
	Secret string    `json:"secret"`
}

// ClientResponse represents a client in API responses. The secret hash is
// never exposed.
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// MapClientToResponse converts a domain client to its response DTO.
func MapClientToResponse(client *authDomain.Client) ClientResponse {
	return ClientResponse{
		ID:        client.ID,
		Name:      client.Name,
		IsActive:  client.IsActive,
		CreatedAt: client.CreatedAt,
	}
}

// MapClientsToResponse converts a slice of domain clients to response DTOs.
func MapClientsToResponse(clients []*authDomain.Client) []ClientResponse {
	responses := make([]ClientResponse, len(clients))
	for i, client := range clients {
		responses[i] = MapClientToResponse(client)
	}
	return responses
}

// ClientListResponse wraps a paginated list of clients.
type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
	Offset  int              `json:"offset"`
	Limit   int              `json:"limit"`
}

// RoleResponse represents a role in API responses.
type RoleResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// MapRolesToResponse converts a slice of domain roles to response DTOs.
func MapRolesToResponse(roles []*authDomain.Role) []RoleResponse {
	responses := make([]RoleResponse, len(roles))
	for i, role := range roles {
		responses[i] = RoleResponse{
			ID:          role.ID,
			Name:        role.Name,
			Description: role.Description,
			CreatedAt:   role.CreatedAt,
		}
	}
	return responses
}

// RoleListResponse wraps a paginated list of roles.
type RoleListResponse struct {
	Roles  []RoleResponse `json:"roles"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

// PermissionResponse represents a permission in API responses.
type PermissionResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// MapPermissionsToResponse converts a slice of domain permissions to response DTOs.
func MapPermissionsToResponse(permissions []*authDomain.Permission) []PermissionResponse {
	responses := make([]PermissionResponse, len(permissions))
	for i, permission := range permissions {
		responses[i] = PermissionResponse{
			ID:          permission.ID,
			Name:        permission.Name,
			Description: permission.Description,
			CreatedAt:   permission.CreatedAt,
		}
	}
	return responses
}

// PermissionListResponse wraps a paginated list of permissions.
type PermissionListResponse struct {
	Permissions []PermissionResponse `json:"permissions"`
	Offset      int                  `json:"offset"`
	Limit       int                  `json:"limit"`
}

// AccessResponse reports the resolved roles and permissions for a client.
type AccessResponse struct {
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// MapAccessToResponse converts a resolved access set to its response DTO.
func MapAccessToResponse(access *authDomain.Access) AccessResponse {
	return AccessResponse{
		Roles:       access.Roles,
		Permissions: access.Permissions,
	}
}
