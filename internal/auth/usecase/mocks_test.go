package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/paservices/auth-service/internal/auth/domain"
	authService "github.com/paservices/auth-service/internal/auth/service"
	"github.com/paservices/auth-service/internal/identity"
)

// mockClientRepository is a mock implementation of ClientRepository for testing.
type mockClientRepository struct {
	mock.Mock
}

func (m *mockClientRepository) Create(ctx context.Context, client *authDomain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *mockClientRepository) Update(ctx context.Context, client *authDomain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *mockClientRepository) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Client), args.Error(1)
}

func (m *mockClientRepository) GetByName(ctx context.Context, name string) (*authDomain.Client, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Client), args.Error(1)
}

func (m *mockClientRepository) List(ctx context.Context, offset, limit int) ([]*authDomain.Client, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Client), args.Error(1)
}

// mockRBACRepository is a mock implementation of RBACRepository for testing.
type mockRBACRepository struct {
	mock.Mock
}

func (m *mockRBACRepository) CreateRole(ctx context.Context, role *authDomain.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *mockRBACRepository) CreatePermission(ctx context.Context, permission *authDomain.Permission) error {
	args := m.Called(ctx, permission)
	return args.Error(0)
}

func (m *mockRBACRepository) GetRoleByName(ctx context.Context, name string) (*authDomain.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Role), args.Error(1)
}

func (m *mockRBACRepository) GetPermissionByName(ctx context.Context, name string) (*authDomain.Permission, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Permission), args.Error(1)
}

func (m *mockRBACRepository) AssignPermissionToRole(ctx context.Context, roleID, permissionID uuid.UUID) error {
	args := m.Called(ctx, roleID, permissionID)
	return args.Error(0)
}

func (m *mockRBACRepository) AssignRoleToClient(ctx context.Context, clientID, roleID uuid.UUID) error {
	args := m.Called(ctx, clientID, roleID)
	return args.Error(0)
}

func (m *mockRBACRepository) AssignRoleToIdentity(ctx context.Context, identityID string, roleID uuid.UUID) error {
	args := m.Called(ctx, identityID, roleID)
	return args.Error(0)
}

func (m *mockRBACRepository) GetRoleNamesForClient(ctx context.Context, clientID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockRBACRepository) GetPermissionNamesForClient(ctx context.Context, clientID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockRBACRepository) ListRoles(ctx context.Context, offset, limit int) ([]*authDomain.Role, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Role), args.Error(1)
}

func (m *mockRBACRepository) ListPermissions(ctx context.Context, offset, limit int) ([]*authDomain.Permission, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Permission), args.Error(1)
}

// mockSecretService is a mock implementation of service.SecretService for testing.
type mockSecretService struct {
	mock.Mock
}

func (m *mockSecretService) GenerateSecret() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockSecretService) HashSecret(plainSecret string) (string, error) {
	args := m.Called(plainSecret)
	return args.String(0), args.Error(1)
}

func (m *mockSecretService) CompareSecret(plainSecret, hashedSecret string) bool {
	args := m.Called(plainSecret, hashedSecret)
	return args.Bool(0)
}

// mockJWTService is a mock implementation of service.JWTService for testing.
type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) Issue(clientID uuid.UUID, roles, permissions []string, now time.Time) (string, int64, error) {
	args := m.Called(clientID, roles, permissions, now)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

func (m *mockJWTService) Verify(token string, now time.Time) (*authService.AccessTokenClaims, error) {
	args := m.Called(token, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authService.AccessTokenClaims), args.Error(1)
}

// mockAccessUseCase is a mock implementation of AccessUseCase for testing.
type mockAccessUseCase struct {
	mock.Mock
}

func (m *mockAccessUseCase) Resolve(ctx context.Context, clientID uuid.UUID) (*authDomain.Access, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Access), args.Error(1)
}

func (m *mockAccessUseCase) ListRoles(ctx context.Context, offset, limit int) ([]*authDomain.Role, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Role), args.Error(1)
}

func (m *mockAccessUseCase) ListPermissions(ctx context.Context, offset, limit int) ([]*authDomain.Permission, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Permission), args.Error(1)
}

// mockIdentityProvider is a mock implementation of identity.Provider for testing.
type mockIdentityProvider struct {
	mock.Mock
}

func (m *mockIdentityProvider) CreateAccount(ctx context.Context, email, password string) (*identity.Identity, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Identity), args.Error(1)
}

func (m *mockIdentityProvider) FindAccountByEmail(ctx context.Context, email string) (*identity.Identity, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Identity), args.Error(1)
}

// passthroughTxManager runs the function without opening a real transaction.
type passthroughTxManager struct{}

func (passthroughTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
