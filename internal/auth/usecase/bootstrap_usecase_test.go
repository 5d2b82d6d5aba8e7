package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/paservices/auth-service/internal/auth/domain"
	"github.com/paservices/auth-service/internal/config"
	apperrors "github.com/paservices/auth-service/internal/errors"
	"github.com/paservices/auth-service/internal/identity"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func smallSeed() authDomain.SeedConfig {
	return authDomain.SeedConfig{
		Roles: []authDomain.SeedRole{
			{Name: "admin", Description: "Full system access"},
		},
		Permissions: []authDomain.SeedPermission{
			{Name: "users:read", Description: "View user information"},
			{Name: "users:write", Description: "Create/update user information"},
		},
		Grants: map[string][]string{
			"admin": {"users:read", "users:write"},
		},
	}
}

func TestBootstrapUseCase_Seed(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_SeedsCatalog", func(t *testing.T) {
		mockClientRepo := &mockClientRepository{}
		mockRBACRepo := &mockRBACRepository{}

		adminRole := &authDomain.Role{ID: uuid.Must(uuid.NewV7()), Name: "admin"}
		readPerm := &authDomain.Permission{ID: uuid.Must(uuid.NewV7()), Name: "users:read"}
		writePerm := &authDomain.Permission{ID: uuid.Must(uuid.NewV7()), Name: "users:write"}

		mockRBACRepo.On("CreateRole", mock.Anything, mock.MatchedBy(func(role *authDomain.Role) bool {
			return role.Name == "admin" && role.ID != uuid.Nil
		})).Return(nil).Once()
		mockRBACRepo.On("CreatePermission", mock.Anything, mock.AnythingOfType("*domain.Permission")).
			Return(nil).
			Twice()
		mockRBACRepo.On("GetRoleByName", mock.Anything, "admin").Return(adminRole, nil).Once()
		mockRBACRepo.On("GetPermissionByName", mock.Anything, "users:read").Return(readPerm, nil).Once()
		mockRBACRepo.On("GetPermissionByName", mock.Anything, "users:write").Return(writePerm, nil).Once()
		mockRBACRepo.On("AssignPermissionToRole", mock.Anything, adminRole.ID, readPerm.ID).Return(nil).Once()
		mockRBACRepo.On("AssignPermissionToRole", mock.Anything, adminRole.ID, writePerm.ID).Return(nil).Once()

		uc := NewBootstrapUseCase(
			&config.Config{},
			passthroughTxManager{},
			mockClientRepo,
			mockRBACRepo,
			&mockSecretService{},
			nil,
			smallSeed(),
			discardLogger(),
		)

		err := uc.Seed(ctx)
		assert.NoError(t, err)
		mockRBACRepo.AssertExpectations(t)
	})

	t.Run("Error_InconsistentSeedRunsNothing", func(t *testing.T) {
		mockClientRepo := &mockClientRepository{}
		mockRBACRepo := &mockRBACRepository{}

		badSeed := smallSeed()
		badSeed.Grants["ghost-role"] = []string{"users:read"}

		uc := NewBootstrapUseCase(
			&config.Config{},
			passthroughTxManager{},
			mockClientRepo,
			mockRBACRepo,
			&mockSecretService{},
			nil,
			badSeed,
			discardLogger(),
		)

		err := uc.Seed(ctx)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		mockRBACRepo.AssertNotCalled(t, "CreateRole", mock.Anything, mock.Anything)
	})

	t.Run("Success_CreatesMissingAdminClient", func(t *testing.T) {
		mockClientRepo := &mockClientRepository{}
		mockRBACRepo := &mockRBACRepository{}
		mockSecretSvc := &mockSecretService{}

		adminRole := &authDomain.Role{ID: uuid.Must(uuid.NewV7()), Name: "admin"}

		expectCatalogSeed(mockRBACRepo, adminRole)

		mockClientRepo.On("GetByName", mock.Anything, "bootstrap-admin").
			Return(nil, authDomain.ErrClientNotFound).
			Once()
		mockSecretSvc.On("GenerateSecret").Return("one-time-secret", "hashed-secret", nil).Once()
		mockClientRepo.On("Create", mock.Anything, mock.MatchedBy(func(client *authDomain.Client) bool {
			return client.Name == "bootstrap-admin" && client.IsActive && client.Secret == "hashed-secret"
		})).Return(nil).Once()
		mockRBACRepo.On("AssignRoleToClient", mock.Anything, mock.AnythingOfType("uuid.UUID"), adminRole.ID).
			Return(nil).
			Once()

		uc := NewBootstrapUseCase(
			&config.Config{BootstrapAdminClientName: "bootstrap-admin"},
			passthroughTxManager{},
			mockClientRepo,
			mockRBACRepo,
			mockSecretSvc,
			nil,
			smallSeed(),
			discardLogger(),
		)

		err := uc.Seed(ctx)
		assert.NoError(t, err)
		mockClientRepo.AssertExpectations(t)
		mockSecretSvc.AssertExpectations(t)
	})

	t.Run("Success_ExistingAdminClientIsNotRecreated", func(t *testing.T) {
		mockClientRepo := &mockClientRepository{}
		mockRBACRepo := &mockRBACRepository{}
		mockSecretSvc := &mockSecretService{}

		adminRole := &authDomain.Role{ID: uuid.Must(uuid.NewV7()), Name: "admin"}
		existing := &authDomain.Client{ID: uuid.Must(uuid.NewV7()), Name: "bootstrap-admin", IsActive: true}

		expectCatalogSeed(mockRBACRepo, adminRole)

		mockClientRepo.On("GetByName", mock.Anything, "bootstrap-admin").Return(existing, nil).Once()
		mockRBACRepo.On("AssignRoleToClient", mock.Anything, existing.ID, adminRole.ID).Return(nil).Once()

		uc := NewBootstrapUseCase(
			&config.Config{BootstrapAdminClientName: "bootstrap-admin"},
			passthroughTxManager{},
			mockClientRepo,
			mockRBACRepo,
			mockSecretSvc,
			nil,
			smallSeed(),
			discardLogger(),
		)

		err := uc.Seed(ctx)
		assert.NoError(t, err)
		mockSecretSvc.AssertNotCalled(t, "GenerateSecret")
		mockClientRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Success_AdminIdentityConflictFallsBackToLookup", func(t *testing.T) {
		mockClientRepo := &mockClientRepository{}
		mockRBACRepo := &mockRBACRepository{}
		mockProvider := &mockIdentityProvider{}

		adminRole := &authDomain.Role{ID: uuid.Must(uuid.NewV7()), Name: "admin"}
		expectCatalogSeed(mockRBACRepo, adminRole)

		account := &identity.Identity{ID: "user-123", Email: "admin@example.com"}

		mockProvider.On("CreateAccount", mock.Anything, "admin@example.com", "password123").
			Return(nil, apperrors.Wrap(apperrors.ErrConflict, "account already exists")).
			Once()
		mockProvider.On("FindAccountByEmail", mock.Anything, "admin@example.com").
			Return(account, nil).
			Once()
		mockRBACRepo.On("AssignRoleToIdentity", mock.Anything, "user-123", adminRole.ID).
			Return(nil).
			Once()

		uc := NewBootstrapUseCase(
			&config.Config{
				BootstrapAdminEmail:    "admin@example.com",
				BootstrapAdminPassword: "password123",
			},
			passthroughTxManager{},
			mockClientRepo,
			mockRBACRepo,
			&mockSecretService{},
			mockProvider,
			smallSeed(),
			discardLogger(),
		)

		err := uc.Seed(ctx)
		assert.NoError(t, err)
		mockProvider.AssertExpectations(t)
		mockRBACRepo.AssertExpectations(t)
	})

	t.Run("Success_AdminIdentityGetsRoleOnCreate", func(t *testing.T) {
		mockClientRepo := &mockClientRepository{}
		mockRBACRepo := &mockRBACRepository{}
		mockProvider := &mockIdentityProvider{}

		adminRole := &authDomain.Role{ID: uuid.Must(uuid.NewV7()), Name: "admin"}
		expectCatalogSeed(mockRBACRepo, adminRole)

		account := &identity.Identity{ID: "user-456", Email: "admin@example.com"}

		mockProvider.On("CreateAccount", mock.Anything, "admin@example.com", "password123").
			Return(account, nil).
			Once()
		mockRBACRepo.On("AssignRoleToIdentity", mock.Anything, "user-456", adminRole.ID).
			Return(nil).
			Once()

		uc := NewBootstrapUseCase(
			&config.Config{
				BootstrapAdminEmail:    "admin@example.com",
				BootstrapAdminPassword: "password123",
			},
			passthroughTxManager{},
			mockClientRepo,
			mockRBACRepo,
			&mockSecretService{},
			mockProvider,
			smallSeed(),
			discardLogger(),
		)

		err := uc.Seed(ctx)
		assert.NoError(t, err)
		mockProvider.AssertNotCalled(t, "FindAccountByEmail", mock.Anything, mock.Anything)
		mockRBACRepo.AssertExpectations(t)
	})

	t.Run("Error_RoleCreationFailurePropagates", func(t *testing.T) {
		mockClientRepo := &mockClientRepository{}
		mockRBACRepo := &mockRBACRepository{}

		dbErr := apperrors.Wrap(apperrors.ErrUnavailable, "database gone")
		mockRBACRepo.On("CreateRole", mock.Anything, mock.AnythingOfType("*domain.Role")).
			Return(dbErr).
			Once()

		uc := NewBootstrapUseCase(
			&config.Config{},
			passthroughTxManager{},
			mockClientRepo,
			mockRBACRepo,
			&mockSecretService{},
			nil,
			smallSeed(),
			discardLogger(),
		)

		err := uc.Seed(ctx)
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	})
}

// expectCatalogSeed registers the mock expectations for seeding smallSeed().
func expectCatalogSeed(mockRBACRepo *mockRBACRepository, adminRole *authDomain.Role) {
	readPerm := &authDomain.Permission{ID: uuid.Must(uuid.NewV7()), Name: "users:read"}
	writePerm := &authDomain.Permission{ID: uuid.Must(uuid.NewV7()), Name: "users:write"}

	mockRBACRepo.On("CreateRole", mock.Anything, mock.AnythingOfType("*domain.Role")).Return(nil).Once()
	mockRBACRepo.On("CreatePermission", mock.Anything, mock.AnythingOfType("*domain.Permission")).Return(nil).Twice()
	mockRBACRepo.On("GetRoleByName", mock.Anything, "admin").Return(adminRole, nil)
	mockRBACRepo.On("GetPermissionByName", mock.Anything, "users:read").Return(readPerm, nil).Once()
	mockRBACRepo.On("GetPermissionByName", mock.Anything, "users:write").Return(writePerm, nil).Once()
	mockRBACRepo.On("AssignPermissionToRole", mock.Anything, adminRole.ID, readPerm.ID).Return(nil).Once()
	mockRBACRepo.On("AssignPermissionToRole", mock.Anything, adminRole.ID, writePerm.ID).Return(nil).Once()
}
