package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	authDomain "github.com/paservices/auth-service/internal/auth/domain"
	authUseCase "github.com/paservices/auth-service/internal/auth/usecase"
)

// RunAssignRole grants an existing role to an existing client and prints the
// client's resolved access afterwards. Assigning a role the client already
// holds is a no-op, so the command is safe to re-run.
//
// Requirements: Database must be migrated; the client and role must exist.
func RunAssignRole(
	ctx context.Context,
	clientUseCase authUseCase.ClientUseCase,
	accessUseCase authUseCase.AccessUseCase,
	logger *slog.Logger,
	io IOTuple,
	clientIDStr string,
	roleName string,
	format string,
) error {
	logger.Info("assigning role to client",
		slog.String("client_id", clientIDStr),
		slog.String("role", roleName),
	)

	// Parse client ID
	clientID, err := uuid.Parse(clientIDStr)
	if err != nil {
		return fmt.Errorf("invalid client ID format: %w", err)
	}

	if strings.TrimSpace(roleName) == "" {
		return fmt.Errorf("role name is required")
	}

	// Assign the role
	if err := clientUseCase.AssignRole(ctx, clientID, roleName); err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}

	// Resolve the client's effective access after the grant
	access, err := accessUseCase.Resolve(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to resolve client access: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputAssignRoleJSON(io.Writer, clientID, access)
	} else {
		outputAssignRoleText(io.Writer, clientID, access)
	}

	logger.Info("role assigned successfully",
		slog.String("client_id", clientID.String()),
		slog.String("role", roleName),
	)

	return nil
}

// outputAssignRoleText outputs the result in human-readable text format.
func outputAssignRoleText(writer io.Writer, clientID uuid.UUID, access *authDomain.Access) {
	_, _ = fmt.Fprintln(writer, "\nRole assigned successfully!")
	_, _ = fmt.Fprintf(writer, "Client ID: %s\n", clientID.String())
	_, _ = fmt.Fprintf(writer, "Roles: [%s]\n", strings.Join(access.Roles, ", "))
	_, _ = fmt.Fprintf(writer, "Permissions: [%s]\n", strings.Join(access.Permissions, ", "))
}

// outputAssignRoleJSON outputs the result in JSON format for machine consumption.
func outputAssignRoleJSON(writer io.Writer, clientID uuid.UUID, access *authDomain.Access) {
	result := map[string]interface{}{
		"client_id":   clientID.String(),
		"roles":       access.Roles,
		"permissions": access.Permissions,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
