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

// MySQLRBACRepository implements role and permission persistence for MySQL
// using BINARY(16) for UUID storage. Seeding writes use INSERT IGNORE so they
// are safe to replay.
type MySQLRBACRepository struct {
	db *sql.DB
}

// CreateRole inserts a role, ignoring the insert when a role with the same
// name already exists.
func (m *MySQLRBACRepository) CreateRole(ctx context.Context, role *authDomain.Role) error {
	querier := database.GetTx(ctx, m.db)

	id, err := role.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal role id")
	}

	query := `INSERT IGNORE INTO roles (id, name, description, created_at)
			  VALUES (?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, id, role.Name, role.Description, role.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create role")
	}
	return nil
}

// CreatePermission inserts a permission, ignoring the insert when a permission
// with the same name already exists.
func (m *MySQLRBACRepository) CreatePermission(ctx context.Context, permission *authDomain.Permission) error {
	querier := database.GetTx(ctx, m.db)

	id, err := permission.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal permission id")
	}

	query := `INSERT IGNORE INTO permissions (id, name, description, created_at)
			  VALUES (?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, id, permission.Name, permission.Description, permission.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create permission")
	}
	return nil
}

// GetRoleByName retrieves a role by its unique name.
func (m *MySQLRBACRepository) GetRoleByName(ctx context.Context, name string) (*authDomain.Role, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, description, created_at FROM roles WHERE name = ?`

	var role authDomain.Role
	var idBytes []byte

	err := querier.QueryRowContext(ctx, query, name).Scan(
		&idBytes,
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

	if err := role.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal role id")
	}

	return &role, nil
}

// GetPermissionByName retrieves a permission by its unique name.
func (m *MySQLRBACRepository) GetPermissionByName(ctx context.Context, name string) (*authDomain.Permission, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, description, created_at FROM permissions WHERE name = ?`

	var permission authDomain.Permission
	var idBytes []byte

	err := querier.QueryRowContext(ctx, query, name).Scan(
		&idBytes,
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

	if err := permission.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal permission id")
	}

	return &permission, nil
}

// AssignPermissionToRole grants a permission to a role. Replaying an existing
// grant is a no-op.
func (m *MySQLRBACRepository) AssignPermissionToRole(ctx context.Context, roleID, permissionID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	roleIDBytes, err := roleID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal role id")
	}
	permissionIDBytes, err := permissionID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal permission id")
	}

	query := `INSERT IGNORE INTO role_permissions (role_id, permission_id) VALUES (?, ?)`

	_, err = querier.ExecContext(ctx, query, roleIDBytes, permissionIDBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to assign permission to role")
	}
	return nil
}

// AssignRoleToClient grants a role to a client. Replaying an existing grant
// is a no-op.
func (m *MySQLRBACRepository) AssignRoleToClient(ctx context.Context, clientID, roleID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	clientIDBytes, err := clientID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}
	roleIDBytes, err := roleID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal role id")
	}

	query := `INSERT IGNORE INTO client_roles (client_id, role_id) VALUES (?, ?)`

	_, err = querier.ExecContext(ctx, query, clientIDBytes, roleIDBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to assign role to client")
	}
	return nil
}

// AssignRoleToIdentity grants a role to an external identity account.
// Replaying an existing grant is a no-op.
func (m *MySQLRBACRepository) AssignRoleToIdentity(ctx context.Context, identityID string, roleID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	roleIDBytes, err := roleID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal role id")
	}

	query := `INSERT IGNORE INTO identity_roles (identity_id, role_id) VALUES (?, ?)`

	_, err = querier.ExecContext(ctx, query, identityID, roleIDBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to assign role to identity")
	}
	return nil
}

// GetRoleNamesForClient returns the names of all roles assigned to a client.
// A client with no roles yields an empty slice.
func (m *MySQLRBACRepository) GetRoleNamesForClient(ctx context.Context, clientID uuid.UUID) ([]string, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := clientID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal client id")
	}

	query := `SELECT r.name
			  FROM roles r
			  INNER JOIN client_roles cr ON cr.role_id = r.id
			  WHERE cr.client_id = ?
			  ORDER BY r.name`

	rows, err := querier.QueryContext(ctx, query, id)
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
// reachable from the client's roles.
func (m *MySQLRBACRepository) GetPermissionNamesForClient(ctx context.Context, clientID uuid.UUID) ([]string, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := clientID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal client id")
	}

	query := `SELECT DISTINCT p.name
			  FROM permissions p
			  INNER JOIN role_permissions rp ON rp.permission_id = p.id
			  INNER JOIN client_roles cr ON cr.role_id = rp.role_id
			  WHERE cr.client_id = ?
			  ORDER BY p.name`

	rows, err := querier.QueryContext(ctx, query, id)
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
func (m *MySQLRBACRepository) ListRoles(ctx context.Context, offset, limit int) ([]*authDomain.Role, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, description, created_at
			  FROM roles
			  ORDER BY name
			  LIMIT ? OFFSET ?`

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
		var idBytes []byte

		if err := rows.Scan(&idBytes, &role.Name, &role.Description, &role.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role row")
		}
		if err := role.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal role id")
		}

		roles = append(roles, &role)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating role rows")
	}

	return roles, nil
}

// ListPermissions retrieves permissions ordered by name with pagination support.
func (m *MySQLRBACRepository) ListPermissions(ctx context.Context, offset, limit int) ([]*authDomain.Permission, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, description, created_at
			  FROM permissions
			  ORDER BY name
			  LIMIT ? OFFSET ?`

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
		var idBytes []byte

		if err := rows.Scan(&idBytes, &permission.Name, &permission.Description, &permission.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan permission row")
		}
		if err := permission.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal permission id")
		}

		permissions = append(permissions, &permission)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating permission rows")
	}

	return permissions, nil
}

// NewMySQLRBACRepository creates a new MySQL RBAC repository.
func NewMySQLRBACRepository(db *sql.DB) *MySQLRBACRepository {
	return &MySQLRBACRepository{db: db}
}
