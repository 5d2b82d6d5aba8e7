package commands

import (
	"context"
	"fmt"

	"github.com/paservices/auth-service/internal/app"
	"github.com/paservices/auth-service/internal/config"
)

// RunBootstrap seeds the default RBAC catalog and the administrative client.
// Seeding is idempotent: roles, permissions and grants that already exist are
// left untouched, so the command is safe to re-run against a live database.
//
// Requirements: Database must be migrated and accessible.
func RunBootstrap(ctx context.Context) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer CloseContainer(container, logger)

	bootstrapUseCase, err := container.BootstrapUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize bootstrap use case: %w", err)
	}

	if err := bootstrapUseCase.Seed(ctx); err != nil {
		return fmt.Errorf("bootstrap seeding failed: %w", err)
	}

	logger.Info("bootstrap seeding completed successfully")
	return nil
}
