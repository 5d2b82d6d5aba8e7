package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	authDomain "github.com/paservices/auth-service/internal/auth/domain"
	"github.com/paservices/auth-service/internal/database"
	apperrors "github.com/paservices/auth-service/internal/errors"
)

// PostgreSQLRBACRepository implements role and permission persistence for
// PostgreSQL, including the join tables that bind roles to clients and
// permissions to roles. Seeding writes use ON CONFLICT DO NOTHING so they
// are safe to replay.
type PostgreSQLRBACRepository struct {
	db *sql.DB
}

// CreateRole inserts a role, ignoring the insert when a role with the same
// name already exists.
func (p *PostgreSQLRBACRepository) CreateRole(ctx context.Context, role *authDomain.Role) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO roles (id, name, description, created_at)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (name) DO NOTHING`

	_, err := querier.ExecContext(ctx, query, role.ID, role.Name, role.Description, role.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create role")
	}
	return nil
}

// CreatePermission inserts a permission, ignoring the insert when a permission
// with the same name already exists.
func (p *PostgreSQLRBACRepository) CreatePermission(ctx context.Context, permission *authDomain.Permission) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO permissions (id, name, description, created_at)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (name) DO NOTHING`

	_, err := querier.ExecContext(ctx, query, permission.ID, permission.Name, permission.Description, permission.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create permission")
	}
	return nil
}

// GetRoleByName retrieves a role by its unique name.
func (p *PostgreSQLRBACRepository) GetRoleByName(ctx context.Context, name string) (*authDomain.Role, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, description, created_at FROM roles WHERE name = $1`

	var role authDomain.Role
	err := querier.QueryRowContext(ctx, query, name).Scan(
		&role.ID,
		&role.Name,
		&role.Description,
		&role.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role by name")
	}

	return &role, nil
}

// GetPermissionByName retrieves a permission by its unique name.
func (p *PostgreSQLRBACRepository) GetPermissionByName(ctx context.Context, name string) (*authDomain.Permission, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, description, created_at FROM permissions WHERE name = $1`

	var permission authDomain.Permission
	err := querier.QueryRowContext(ctx, query, name).Scan(
		&permission.ID,
		&permission.Name,
		&permission.Description,
		&permission.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrPermissionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get permission by name")
	}

	return &permission, nil
}

// AssignPermissionToRole grants a permission to a role. Replaying an existing
// grant is a no-op.
func (p *PostgreSQLRBACRepository) AssignPermissionToRole(ctx context.Context, roleID, permissionID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO role_permissions (role_id, permission_id)
			  VALUES ($1, $2)
			  ON CONFLICT (role_id, permission_id) DO NOTHING`

	_, err := querier.ExecContext(ctx, query, roleID, permissionID)
	if err != nil {
		return apperrors.Wrap(err, "failed to assign permission to role")
	}
	return nil
}

// AssignRoleToClient grants a role to a client. Replaying an existing grant
// is a no-op.
func (p *PostgreSQLRBACRepository) AssignRoleToClient(ctx context.Context, clientID, roleID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO client_roles (client_id, role_id)
			  VALUES ($1, $2)
			  ON CONFLICT (client_id, role_id) DO NOTHING`

	_, err := querier.ExecContext(ctx, query, clientID, roleID)
	if err != nil {
		return apperrors.Wrap(err, "failed to assign role to client")
	}
	return nil
}

// AssignRoleToIdentity grants a role to an external identity account.
// Replaying an existing grant is a no-op.
func (p *PostgreSQLRBACRepository) AssignRoleToIdentity(ctx context.Context, identityID string, roleID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO identity_roles (identity_id, role_id)
			  VALUES ($1, $2)
			  ON CONFLICT (identity_id, role_id) DO NOTHING`

	_, err := querier.ExecContext(ctx, query, identityID, roleID)
	if err != nil {
		return apperrors.Wrap(err, "failed to assign role to identity")
	}
	return nil
}

// GetRoleNamesForClient returns the names of all roles assigned to a client.
// A client with no roles yields an empty slice.
func (p *PostgreSQLRBACRepository) GetRoleNamesForClient(ctx context.Context, clientID uuid.UUID) ([]string, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT r.name
			  FROM roles r
			  INNER JOIN client_roles cr ON cr.role_id = r.id
			  WHERE cr.client_id = $1
			  ORDER BY r.name`

	rows, err := querier.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get roles for client")
	}
	defer func() {
		_ = rows.Close()
	}()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role name")
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating role rows")
	}

	return names, nil
}

// GetPermissionNamesForClient returns the distinct names of all permissions
// reachable from the client's roles. Permissions granted through multiple
// roles appear once.
func (p *PostgreSQLRBACRepository) GetPermissionNamesForClient(ctx context.Context, clientID uuid.UUID) ([]string, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT DISTINCT p.name
			  FROM permissions p
			  INNER JOIN role_permissions rp ON rp.permission_id = p.id
			  INNER JOIN client_roles cr ON cr.role_id = rp.role_id
			  WHERE cr.client_id = $1
			  ORDER BY p.name`

	rows, err := querier.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get permissions for client")
	}
	defer func() {
		_ = rows.Close()
	}()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan permission name")
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating permission rows")
	}

	return names, nil
}

// ListRoles retrieves roles ordered by name with pagination support.
func (p *PostgreSQLRBACRepository) ListRoles(ctx context.Context, offset, limit int) ([]*authDomain.Role, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, description, created_at
			  FROM roles
			  ORDER BY name
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list roles")
	}
	defer func() {
		_ = rows.Close()
	}()

	roles := make([]*authDomain.Role, 0)
	for rows.Next() {
		var role authDomain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role row")
		}
		roles = append(roles, &role)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating role rows")
	}

	return roles, nil
}

// ListPermissions retrieves permissions ordered by name with pagination support.
func (p *PostgreSQLRBACRepository) ListPermissions(ctx context.Context, offset, limit int) ([]*authDomain.Permission, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, description, created_at
			  FROM permissions
			  ORDER BY name
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list permissions")
	}
	defer func() {
		_ = rows.Close()
	}()

	permissions := make([]*authDomain.Permission, 0)
	for rows.Next() {
		var permission authDomain.Permission
		if err := rows.Scan(&permission.ID, &permission.Name, &permission.Description, &permission.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan permission row")
		}
		permissions = append(permissions, &permission)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating permission rows")
	}

	return permissions, nil
}

// NewPostgreSQLRBACRepository creates a new PostgreSQL RBAC repository.
func NewPostgreSQLRBACRepository(db *sql.DB) *PostgreSQLRBACRepository {
	return &PostgreSQLRBACRepository{db: db}
}
