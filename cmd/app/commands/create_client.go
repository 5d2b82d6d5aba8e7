package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	authDomain "github.com/paservices/auth-service/internal/auth/domain"
	authUseCase "github.com/paservices/auth-service/internal/auth/usecase"
)

// RunCreateClient creates a new authentication client with role assignments.
// Supports both interactive mode (when rolesCSV is empty) and non-interactive
// mode (when rolesCSV is provided). Outputs client ID and plain secret in
// either text or JSON format.
//
// Requirements: Database must be migrated and the referenced roles must exist.
func RunCreateClient(
	ctx context.Context,
	clientUseCase authUseCase.ClientUseCase,
	logger *slog.Logger,
	name string,
	isActive bool,
	rolesCSV string,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new client", slog.String("name", name))

	// Parse or prompt for roles
	var roles []string
	var err error

	if rolesCSV == "" {
		// Interactive mode
		roles, err = promptForRoles(io)
		if err != nil {
			return fmt.Errorf("failed to get roles: %w", err)
		}
	} else {
		// Non-interactive mode: parse comma-separated list
		roles = parseRoles(rolesCSV)
	}

	// Create input
	input := &authDomain.CreateClientInput{
		Name:     name,
		IsActive: isActive,
		Roles:    roles,
	}

	// Create the client
	output, err := clientUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputJSON(output, io.Writer)
	} else {
		outputText(output, io.Writer)
	}

	logger.Info("client created successfully",
		slog.String("client_id", output.ID.String()),
		slog.String("name", name),
		slog.Bool("is_active", isActive),
	)

	return nil
}

// promptForRoles interactively prompts the user to enter role names.
// An empty line finishes input; a client without roles is valid and receives
// tokens with empty role and permission claims.
func promptForRoles(io IOTuple) ([]string, error) {
	reader := bufio.NewReader(io.Reader)
	writer := io.Writer
	var roles []string

	_, _ = fmt.Fprintln(writer, "\nEnter roles for the client")
	_, _ = fmt.Fprintln(writer, "Press Enter on an empty line to finish. Leave empty to create a client without roles.")
	_, _ = fmt.Fprintln(writer)

	for {
		_, _ = fmt.Fprintf(writer, "Role #%d (e.g., 'service'): ", len(roles)+1)
		role, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("failed to read role: %w", err)
		}
		role = strings.TrimSpace(role)

		if role == "" {
			break
		}

		roles = append(roles, role)
	}

	return roles, nil
}

// parseRoles converts a comma-separated string into a slice of role names.
func parseRoles(input string) []string {
	parts := strings.Split(input, ",")
	roles := make([]string, 0, len(parts))

	for _, part := range parts {
		role := strings.TrimSpace(part)
		if role != "" {
			roles = append(roles, role)
		}
	}

	return roles
}

// outputText outputs the result in human-readable text format.
func outputText(output *authDomain.CreateClientOutput, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nClient created successfully!")
	_, _ = fmt.Fprintf(writer, "Client ID: %s\n", output.ID.String())
	_, _ = fmt.Fprintf(writer, "Secret: %s\n", output.PlainSecret)
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The secret is shown only once. Store it securely.")
}

// outputJSON outputs the result in JSON format for machine consumption.
func outputJSON(output *authDomain.CreateClientOutput, writer io.Writer) {
	result := map[string]string{
		"client_id": output.ID.String(),
		"secret":    output.PlainSecret,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
