package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/paservices/auth-service/internal/auth/domain"
	authService "github.com/paservices/auth-service/internal/auth/service"
	"github.com/paservices/auth-service/internal/database"
)

// clientUseCase implements ClientUseCase for managing client credentials and
// role assignments.
type clientUseCase struct {
	txManager     database.TxManager
	clientRepo    ClientRepository
	rbacRepo      RBACRepository
	secretService authService.SecretService
}

// Create generates and persists a new Client with a random secret and assigns
// the requested roles. The insert and the role assignments run in a single
// transaction so a failed role lookup leaves no orphan client behind.
//
// Returns the client ID and plain text secret. The plain secret is only
// returned once and must be securely stored by the caller.
func (c *clientUseCase) Create(
	ctx context.Context,
	createClientInput *authDomain.CreateClientInput,
) (*authDomain.CreateClientOutput, error) {
	plainSecret, hashedSecret, err := c.secretService.GenerateSecret()
	if err != nil {
		return nil, err
	}

	client := &authDomain.Client{
		ID:        uuid.Must(uuid.NewV7()),
		Secret:    hashedSecret,
		Name:      createClientInput.Name,
		IsActive:  createClientInput.IsActive,
		CreatedAt: time.Now().UTC(),
	}

	err = c.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := c.clientRepo.Create(ctx, client); err != nil {
			return err
		}

		for _, roleName := range createClientInput.Roles {
			role, err := c.rbacRepo.GetRoleByName(ctx, roleName)
			if err != nil {
				return err
			}
			if err := c.rbacRepo.AssignRoleToClient(ctx, client.ID, role.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &authDomain.CreateClientOutput{
		ID:          client.ID,
		PlainSecret: plainSecret,
	}, nil
}

// Update modifies an existing client's name and active status.
// The client secret and ID remain unchanged.
func (c *clientUseCase) Update(
	ctx context.Context,
	clientID uuid.UUID,
	updateClientInput *authDomain.UpdateClientInput,
) error {
	client, err := c.clientRepo.Get(ctx, clientID)
	if err != nil {
		return err
	}

	client.Name = updateClientInput.Name
	client.IsActive = updateClientInput.IsActive

	return c.clientRepo.Update(ctx, client)
}

// Get retrieves a client by ID.
// Returns ErrClientNotFound if the client doesn't exist.
func (c *clientUseCase) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	return c.clientRepo.Get(ctx, clientID)
}

// List retrieves clients ordered by ID descending with pagination support.
// Returns empty slice if no clients found.
func (c *clientUseCase) List(ctx context.Context, offset, limit int) ([]*authDomain.Client, error) {
	return c.clientRepo.List(ctx, offset, limit)
}

// AssignRole grants an existing role to an existing client. The underlying
// write ignores duplicates, so repeating an assignment is a no-op.
func (c *clientUseCase) AssignRole(ctx context.Context, clientID uuid.UUID, roleName string) error {
	if _, err := c.clientRepo.Get(ctx, clientID); err != nil {
		return err
	}

	role, err := c.rbacRepo.GetRoleByName(ctx, roleName)
	if err != nil {
		return err
	}

	return c.rbacRepo.AssignRoleToClient(ctx, clientID, role.ID)
}

// NewClientUseCase creates a new ClientUseCase with the provided dependencies.
func NewClientUseCase(
	txManager database.TxManager,
	clientRepo ClientRepository,
	rbacRepo RBACRepository,
	secretService authService.SecretService,
) ClientUseCase {
	return &clientUseCase{
		txManager:     txManager,
		clientRepo:    clientRepo,
		rbacRepo:      rbacRepo,
		secretService: secretService,
	}
}
