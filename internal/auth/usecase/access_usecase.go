// Package usecase implements business logic orchestration for authentication operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/paservices/auth-service/internal/auth/domain"
)

// accessUseCase implements AccessUseCase backed by the RBAC repository.
type accessUseCase struct {
	clientRepo ClientRepository
	rbacRepo   RBACRepository
}

// Resolve computes the client's authorization state.
//
// Existence is checked first so an unknown client surfaces as ErrClientNotFound
// instead of silently resolving to empty sets. Roles and the permission union
// come from two joined queries; the Access constructor deduplicates and sorts,
// so a permission granted through several roles appears once and assignment
// order never changes the result.
func (a *accessUseCase) Resolve(ctx context.Context, clientID uuid.UUID) (*authDomain.Access, error) {
	if _, err := a.clientRepo.Get(ctx, clientID); err != nil {
		return nil, err
	}

	roles, err := a.rbacRepo.GetRoleNamesForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	permissions, err := a.rbacRepo.GetPermissionNamesForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	return authDomain.NewAccess(roles, permissions), nil
}

// ListRoles retrieves roles ordered by name with pagination support.
func (a *accessUseCase) ListRoles(ctx context.Context, offset, limit int) ([]*authDomain.Role, error) {
	return a.rbacRepo.ListRoles(ctx, offset, limit)
}

// ListPermissions retrieves permissions ordered by name with pagination support.
func (a *accessUseCase) ListPermissions(ctx context.Context, offset, limit int) ([]*authDomain.Permission, error) {
	return a.rbacRepo.ListPermissions(ctx, offset, limit)
}

// NewAccessUseCase creates a new AccessUseCase with the provided dependencies.
func NewAccessUseCase(clientRepo ClientRepository, rbacRepo RBACRepository) AccessUseCase {
	return &accessUseCase{
		clientRepo: clientRepo,
		rbacRepo:   rbacRepo,
	}
}
