package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	authDomain "github.com/paservices/auth-service/internal/auth/domain"
	authUseCase "github.com/paservices/auth-service/internal/auth/usecase"
)

// RunUpdateClient updates an existing authentication client's configuration.
// Only Name and IsActive can be updated. The client ID and secret remain
// unchanged, and role assignments are managed through the assign-role command.
//
// Requirements: Database must be migrated and the client must exist.
func RunUpdateClient(
	ctx context.Context,
	clientUseCase authUseCase.ClientUseCase,
	logger *slog.Logger,
	io IOTuple,
	clientIDStr string,
	name string,
	isActive bool,
	format string,
) error {
	logger.Info("updating client", slog.String("client_id", clientIDStr))

	// Parse client ID
	clientID, err := uuid.Parse(clientIDStr)
	if err != nil {
		return fmt.Errorf("invalid client ID format: %w", err)
	}

	// Verify the client exists before updating
	if _, err := clientUseCase.Get(ctx, clientID); err != nil {
		return fmt.Errorf("failed to get existing client: %w", err)
	}

	input := &authDomain.UpdateClientInput{
		Name:     name,
		IsActive: isActive,
	}

	// Update the client
	if err := clientUseCase.Update(ctx, clientID, input); err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputUpdateJSON(io.Writer, clientID, name, isActive)
	} else {
		outputUpdateText(io.Writer, clientID, name, isActive)
	}

	logger.Info("client updated successfully",
		slog.String("client_id", clientID.String()),
		slog.String("name", name),
		slog.Bool("is_active", isActive),
	)

	return nil
}

// outputUpdateText outputs the result in human-readable text format.
func outputUpdateText(writer io.Writer, clientID uuid.UUID, name string, isActive bool) {
	_, _ = fmt.Fprintln(writer, "\nClient updated successfully!")
	_, _ = fmt.Fprintf(writer, "Client ID: %s\n", clientID.String())
	_, _ = fmt.Fprintf(writer, "Name: %s\n", name)
	_, _ = fmt.Fprintf(writer, "Active: %t\n", isActive)
}

// outputUpdateJSON outputs the result in JSON format for machine consumption.
func outputUpdateJSON(writer io.Writer, clientID uuid.UUID, name string, isActive bool) {
	result := map[string]interface{}{
		"client_id": clientID.String(),
		"name":      name,
		"is_active": isActive,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
