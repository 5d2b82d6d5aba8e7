package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/paservices/auth-service/internal/auth/domain"
	authService "github.com/paservices/auth-service/internal/auth/service"
	"github.com/paservices/auth-service/internal/config"
	"github.com/paservices/auth-service/internal/database"
	apperrors "github.com/paservices/auth-service/internal/errors"
	"github.com/paservices/auth-service/internal/identity"
)

// bootstrapUseCase implements BootstrapUseCase. It converges the RBAC catalog
// toward the configured seed set without ever deleting or mutating rows, so
// running it on every startup (or from several instances at once) is safe.
type bootstrapUseCase struct {
	config           *config.Config
	txManager        database.TxManager
	clientRepo       ClientRepository
	rbacRepo         RBACRepository
	secretService    authService.SecretService
	identityProvider identity.Provider
	seed             authDomain.SeedConfig
	logger           *slog.Logger
}

// Seed ensures the seed roles, permissions, and grants exist, then provisions
// the optional privileged client and identity account.
//
// The catalog writes run inside one transaction. Every write is an insert that
// ignores duplicates, so a concurrent instance racing on the same names cannot
// fail the run. Connectivity errors propagate so the caller can refuse to
// start on a broken database.
func (b *bootstrapUseCase) Seed(ctx context.Context) error {
	if err := b.seed.Validate(); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}

	err := b.txManager.WithTx(ctx, func(ctx context.Context) error {
		return b.seedCatalog(ctx)
	})
	if err != nil {
		return err
	}

	if b.config.BootstrapAdminClientName != "" {
		if err := b.ensureAdminClient(ctx); err != nil {
			return err
		}
	}

	if b.config.BootstrapAdminEmail != "" && b.identityProvider != nil {
		if err := b.ensureAdminIdentity(ctx); err != nil {
			return err
		}
	}

	return nil
}

// seedCatalog converges roles, permissions, and the role→permission grants.
func (b *bootstrapUseCase) seedCatalog(ctx context.Context) error {
	now := time.Now().UTC()

	for _, seedRole := range b.seed.Roles {
		role := &authDomain.Role{
			ID:          uuid.Must(uuid.NewV7()),
			Name:        seedRole.Name,
			Description: seedRole.Description,
			CreatedAt:   now,
		}
		if err := b.rbacRepo.CreateRole(ctx, role); err != nil {
			return err
		}
	}

	for _, seedPermission := range b.seed.Permissions {
		permission := &authDomain.Permission{
			ID:          uuid.Must(uuid.NewV7()),
			Name:        seedPermission.Name,
			Description: seedPermission.Description,
			CreatedAt:   now,
		}
		if err := b.rbacRepo.CreatePermission(ctx, permission); err != nil {
			return err
		}
	}

	// Grants are resolved by name after the inserts so the IDs are the stored
	// ones, not the freshly generated ones a duplicate insert discarded.
	for roleName, permissionNames := range b.seed.Grants {
		role, err := b.rbacRepo.GetRoleByName(ctx, roleName)
		if err != nil {
			return err
		}

		for _, permissionName := range permissionNames {
			permission, err := b.rbacRepo.GetPermissionByName(ctx, permissionName)
			if err != nil {
				return err
			}
			if err := b.rbacRepo.AssignPermissionToRole(ctx, role.ID, permission.ID); err != nil {
				return err
			}
		}
	}

	return nil
}

// ensureAdminClient provisions the privileged service client and guarantees it
// holds the admin role. When the client is created here, its one-time secret
// is logged once; it is never retrievable afterwards.
func (b *bootstrapUseCase) ensureAdminClient(ctx context.Context) error {
	name := b.config.BootstrapAdminClientName

	client, err := b.clientRepo.GetByName(ctx, name)
	if err != nil {
		if !errors.Is(err, authDomain.ErrClientNotFound) {
			return err
		}

		plainSecret, hashedSecret, err := b.secretService.GenerateSecret()
		if err != nil {
			return err
		}

		client = &authDomain.Client{
			ID:        uuid.Must(uuid.NewV7()),
			Secret:    hashedSecret,
			Name:      name,
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
		}
		if err := b.clientRepo.Create(ctx, client); err != nil {
			return err
		}

		b.logger.Warn("created bootstrap admin client; store this secret now, it will not be shown again",
			slog.String("client_id", client.ID.String()),
			slog.String("client_name", name),
			slog.String("client_secret", plainSecret),
		)
	}

	adminRole, err := b.rbacRepo.GetRoleByName(ctx, "admin")
	if err != nil {
		return err
	}

	return b.rbacRepo.AssignRoleToClient(ctx, client.ID, adminRole.ID)
}

// ensureAdminIdentity provisions the privileged account at the identity
// provider, tolerating an account that already exists. Whether the account
// was created here or found, it ends up holding the local admin role.
func (b *bootstrapUseCase) ensureAdminIdentity(ctx context.Context) error {
	email := b.config.BootstrapAdminEmail

	account, err := b.identityProvider.CreateAccount(ctx, email, b.config.BootstrapAdminPassword)
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			return err
		}

		account, err = b.identityProvider.FindAccountByEmail(ctx, email)
		if err != nil {
			return err
		}
	}

	adminRole, err := b.rbacRepo.GetRoleByName(ctx, "admin")
	if err != nil {
		return err
	}
	if err := b.rbacRepo.AssignRoleToIdentity(ctx, account.ID, adminRole.ID); err != nil {
		return err
	}

	b.logger.Info("bootstrap admin identity ready",
		slog.String("identity_id", account.ID),
		slog.String("email", account.Email),
	)

	return nil
}

// NewBootstrapUseCase creates a new BootstrapUseCase. identityProvider may be
// nil when no external identity provider is configured.
func NewBootstrapUseCase(
	cfg *config.Config,
	txManager database.TxManager,
	clientRepo ClientRepository,
	rbacRepo RBACRepository,
	secretService authService.SecretService,
	identityProvider identity.Provider,
	seed authDomain.SeedConfig,
	logger *slog.Logger,
) BootstrapUseCase {
	return &bootstrapUseCase{
		config:           cfg,
		txManager:        txManager,
		clientRepo:       clientRepo,
		rbacRepo:         rbacRepo,
		secretService:    secretService,
		identityProvider: identityProvider,
		seed:             seed,
		logger:           logger,
	}
}
