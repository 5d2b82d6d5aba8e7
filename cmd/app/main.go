// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/paservices/auth-service/cmd/app/commands"
	"github.com/paservices/auth-service/internal/app"
	"github.com/paservices/auth-service/internal/config"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "app",
		Usage:   "Machine-to-machine authentication and authorization service",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
				},
			},
			{
				Name:  "bootstrap",
				Usage: "Seed the default roles, permissions and admin client",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunBootstrap(ctx)
				},
			},
			{
				Name:  "create-client",
				Usage: "Create a new authentication client with role assignments",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "Human-readable client name",
					},
					&cli.BoolFlag{
						Name:    "active",
						Aliases: []string{"a"},
						Value:   true,
						Usage:   "Whether the client can authenticate immediately",
					},
					&cli.StringFlag{
						Name:    "roles",
						Aliases: []string{"r"},
						Usage:   "Comma-separated role names (omit for interactive mode)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					container, logger := newContainer()
					defer commands.CloseContainer(container, logger)

					clientUseCase, err := container.ClientUseCase()
					if err != nil {
						return fmt.Errorf("failed to initialize client use case: %w", err)
					}

					return commands.RunCreateClient(
						ctx,
						clientUseCase,
						logger,
						cmd.String("name"),
						cmd.Bool("active"),
						cmd.String("roles"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				},
			},
			{
				Name:  "update-client",
				Usage: "Update an existing authentication client's configuration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Aliases:  []string{"i"},
						Required: true,
						Usage:    "Client ID (UUID)",
					},
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "Human-readable client name",
					},
					&cli.BoolFlag{
						Name:    "active",
						Aliases: []string{"a"},
						Value:   true,
						Usage:   "Whether the client can authenticate",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					container, logger := newContainer()
					defer commands.CloseContainer(container, logger)

					clientUseCase, err := container.ClientUseCase()
					if err != nil {
						return fmt.Errorf("failed to initialize client use case: %w", err)
					}

					return commands.RunUpdateClient(
						ctx,
						clientUseCase,
						logger,
						commands.DefaultIO(),
						cmd.String("id"),
						cmd.String("name"),
						cmd.Bool("active"),
						cmd.String("format"),
					)
				},
			},
			{
				Name:  "assign-role",
				Usage: "Grant an existing role to an existing client",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Aliases:  []string{"i"},
						Required: true,
						Usage:    "Client ID (UUID)",
					},
					&cli.StringFlag{
						Name:     "role",
						Aliases:  []string{"r"},
						Required: true,
						Usage:    "Role name to assign",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					container, logger := newContainer()
					defer commands.CloseContainer(container, logger)

					clientUseCase, err := container.ClientUseCase()
					if err != nil {
						return fmt.Errorf("failed to initialize client use case: %w", err)
					}
					accessUseCase, err := container.AccessUseCase()
					if err != nil {
						return fmt.Errorf("failed to initialize access use case: %w", err)
					}

					return commands.RunAssignRole(
						ctx,
						clientUseCase,
						accessUseCase,
						logger,
						commands.DefaultIO(),
						cmd.String("id"),
						cmd.String("role"),
						cmd.String("format"),
					)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

// newContainer builds the dependency container for CLI commands that talk to
// the database directly.
func newContainer() (*app.Container, *slog.Logger) {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	return container, container.Logger()
}
