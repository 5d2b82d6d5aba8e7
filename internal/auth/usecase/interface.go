// Package usecase defines business logic interfaces for authentication and authorization operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/paservices/auth-service/internal/auth/domain"
	authService "github.com/paservices/auth-service/internal/auth/service"
)

// ClientRepository defines persistence operations for authentication clients.
// Implementations must support transaction-aware operations via context propagation.
type ClientRepository interface {
	// Create stores a new client in the repository.
	Create(ctx context.Context, client *authDomain.Client) error

	// Update modifies an existing client in the repository.
	Update(ctx context.Context, client *authDomain.Client) error

	// Get retrieves a client by ID. Returns ErrClientNotFound if not found.
	Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error)

	// GetByName retrieves a client by its unique name. Returns ErrClientNotFound if not found.
	GetByName(ctx context.Context, name string) (*authDomain.Client, error)

	// List retrieves clients ordered by ID descending with pagination support.
	List(ctx context.Context, offset, limit int) ([]*authDomain.Client, error)
}

// RBACRepository defines persistence operations for roles, permissions, and
// the assignments that bind them to clients. Creation and assignment writes
// are idempotent so the bootstrap seeder can replay them safely.
type RBACRepository interface {
	// CreateRole stores a role; an existing role with the same name is left untouched.
	CreateRole(ctx context.Context, role *authDomain.Role) error

	// CreatePermission stores a permission; an existing permission with the same name is left untouched.
	CreatePermission(ctx context.Context, permission *authDomain.Permission) error

	// GetRoleByName retrieves a role by name. Returns ErrRoleNotFound if not found.
	GetRoleByName(ctx context.Context, name string) (*authDomain.Role, error)

	// GetPermissionByName retrieves a permission by name. Returns ErrPermissionNotFound if not found.
	GetPermissionByName(ctx context.Context, name string) (*authDomain.Permission, error)

	// AssignPermissionToRole grants a permission to a role; replays are no-ops.
	AssignPermissionToRole(ctx context.Context, roleID, permissionID uuid.UUID) error

	// AssignRoleToClient grants a role to a client; replays are no-ops.
	AssignRoleToClient(ctx context.Context, clientID, roleID uuid.UUID) error

	// AssignRoleToIdentity grants a role to an external identity account,
	// keyed by the provider's account id; replays are no-ops.
	AssignRoleToIdentity(ctx context.Context, identityID string, roleID uuid.UUID) error

	// GetRoleNamesForClient returns the names of all roles assigned to a client.
	GetRoleNamesForClient(ctx context.Context, clientID uuid.UUID) ([]string, error)

	// GetPermissionNamesForClient returns the distinct permission names reachable
	// from the client's roles.
	GetPermissionNamesForClient(ctx context.Context, clientID uuid.UUID) ([]string, error)

	// ListRoles retrieves roles ordered by name with pagination support.
	ListRoles(ctx context.Context, offset, limit int) ([]*authDomain.Role, error)

	// ListPermissions retrieves permissions ordered by name with pagination support.
	ListPermissions(ctx context.Context, offset, limit int) ([]*authDomain.Permission, error)
}

// AccessUseCase resolves the authorization state of clients and exposes the
// RBAC catalog for administrative listing.
type AccessUseCase interface {
	// Resolve computes the full authorization state of a client: its role names
	// and the deduplicated union of permissions those roles grant. A client with
	// no roles resolves to empty (non-nil) sets.
	//
	// Returns ErrClientNotFound if the client does not exist; existence is
	// checked before any role lookup so a missing client and a role-less client
	// are distinguishable.
	Resolve(ctx context.Context, clientID uuid.UUID) (*authDomain.Access, error)

	// ListRoles retrieves roles ordered by name with pagination support.
	ListRoles(ctx context.Context, offset, limit int) ([]*authDomain.Role, error)

	// ListPermissions retrieves permissions ordered by name with pagination support.
	ListPermissions(ctx context.Context, offset, limit int) ([]*authDomain.Permission, error)
}

// TokenUseCase exchanges client credentials for signed access tokens and
// verifies presented tokens.
type TokenUseCase interface {
	// Issue authenticates the client and returns a signed access token carrying
	// its resolved roles and permissions.
	//
	// Returns ErrInvalidCredentials for both unknown clients and wrong secrets
	// so callers cannot enumerate registered client ids, and ErrClientInactive
	// when the secret was correct but the client is deactivated.
	Issue(
		ctx context.Context,
		issueTokenInput *authDomain.IssueTokenInput,
	) (*authDomain.IssueTokenOutput, error)

	// Verify validates a presented access token and returns its claims.
	// Verification is purely cryptographic and touches no storage.
	Verify(ctx context.Context, token string) (*authService.AccessTokenClaims, error)
}

// ClientUseCase defines business logic operations for managing authentication clients.
type ClientUseCase interface {
	// Create generates a new authentication client with a cryptographically secure
	// secret and assigns the requested roles atomically.
	//
	// Returns the client ID and plain text secret. The plain secret is only
	// returned once; the hashed version is stored in the database.
	// Returns ErrRoleNotFound if any requested role does not exist.
	Create(
		ctx context.Context,
		createClientInput *authDomain.CreateClientInput,
	) (*authDomain.CreateClientOutput, error)

	// Update modifies an existing client's name and active status. The client
	// ID and secret remain unchanged. To block token issuance, set IsActive to
	// false.
	//
	// Returns ErrClientNotFound if the specified client doesn't exist.
	Update(ctx context.Context, clientID uuid.UUID, updateClientInput *authDomain.UpdateClientInput) error

	// Get retrieves a client by ID including its hashed secret.
	//
	// Returns ErrClientNotFound if the specified client doesn't exist.
	Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error)

	// List retrieves clients ordered by ID descending with pagination support.
	List(ctx context.Context, offset, limit int) ([]*authDomain.Client, error)

	// AssignRole grants an existing role to an existing client. Assigning a
	// role the client already holds is a no-op.
	//
	// Returns ErrClientNotFound or ErrRoleNotFound if either side is missing.
	AssignRole(ctx context.Context, clientID uuid.UUID, roleName string) error
}

// BootstrapUseCase seeds the RBAC catalog and optional privileged accounts on
// startup.
type BootstrapUseCase interface {
	// Seed ensures the configured roles, permissions, and grants exist. It is
	// idempotent and safe to run on every startup and under concurrent
	// instances: existing rows are never deleted or mutated.
	Seed(ctx context.Context) error
}
