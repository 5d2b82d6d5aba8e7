// Package domain defines authentication and authorization domain models and business logic.
//
// It provides machine-to-machine client authentication with role-based access
// control. Clients authenticate with a client id and secret and receive signed
// access tokens whose claims carry the roles and permissions granted to them.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a registered application credential, distinct from an
// end-user account. Clients exchange their id and secret for access tokens.
type Client struct {
	ID        uuid.UUID // Unique identifier (UUIDv7)
	Secret    string    //nolint:gosec // hashed client secret (not plaintext)
	Name      string    // Human-readable client name
	IsActive  bool      // Inactive clients cannot obtain tokens until reactivated
	CreatedAt time.Time
}

// CreateClientInput contains the parameters for creating a new authentication client.
// The client secret will be automatically generated and cannot be specified by the caller.
type CreateClientInput struct {
	Name     string // Human-readable name for identifying the client
	IsActive bool   // Whether the client can authenticate immediately after creation
	Roles    []string
}

// CreateClientOutput contains the result of creating a new client.
// SECURITY: The PlainSecret is only returned once and must be securely transmitted
// to the client. It will never be retrievable again after this response.
type CreateClientOutput struct {
	ID          uuid.UUID // Unique identifier for the created client (UUIDv7)
	PlainSecret string    // Plain text secret for authentication (transmit securely, never log)
}

// UpdateClientInput contains the mutable fields for updating an existing client.
// The client ID and secret cannot be modified through updates; setting IsActive
// to false blocks token issuance until the client is explicitly reactivated.
type UpdateClientInput struct {
	Name     string
	IsActive bool
}
