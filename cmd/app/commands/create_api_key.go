package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	apikeyDomain "github.com/allisson/identity/internal/apikey/domain"
	"github.com/allisson/identity/internal/app"
	"github.com/allisson/identity/internal/config"
)

// apiKeyCreator covers the API key operations the command needs.
type apiKeyCreator interface {
	Create(ctx context.Context, name string) (*apikeyDomain.APIKey, error)
	SetPermissions(ctx context.Context, id uuid.UUID, permissions []string) error
	Update(ctx context.Context, id uuid.UUID, name string, enabled bool) (*apikeyDomain.APIKey, error)
}

// RunCreateAPIKey creates a new API key from the command line. The key starts
// disabled with no permissions; the permissions and enabled flags allow
// provisioning a working key in one step. The printed ID is the secret the
// key authenticates with.
//
// Requirements: Database must be migrated and accessible.
func RunCreateAPIKey(ctx context.Context, name string, enabled bool, permissionsCSV, format string) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	apiKeyUseCase, err := container.APIKeyUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize api key use case: %w", err)
	}

	return createAPIKey(ctx, apiKeyUseCase, logger, DefaultIO(), name, enabled, permissionsCSV, format)
}

// createAPIKey performs the creation against the provided use case.
func createAPIKey(
	ctx context.Context,
	apiKeyUseCase apiKeyCreator,
	logger *slog.Logger,
	io IOTuple,
	name string,
	enabled bool,
	permissionsCSV, format string,
) error {
	logger.Info("creating new api key", slog.String("name", name))

	key, err := apiKeyUseCase.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to create api key: %w", err)
	}

	permissions := parsePermissionList(permissionsCSV)
	if len(permissions) > 0 {
		if err := apiKeyUseCase.SetPermissions(ctx, key.ID, permissions); err != nil {
			return fmt.Errorf("failed to set api key permissions: %w", err)
		}
		key.Permissions = permissions
	}

	if enabled {
		key, err = apiKeyUseCase.Update(ctx, key.ID, key.Name, true)
		if err != nil {
			return fmt.Errorf("failed to enable api key: %w", err)
		}
		key.Permissions = permissions
	}

	if format == "json" {
		outputAPIKeyJSON(key, io.Writer)
	} else {
		outputAPIKeyText(key, io.Writer)
	}

	logger.Info("api key created successfully",
		slog.String("api_key_id", key.ID.String()),
		slog.String("name", name),
		slog.Bool("enabled", key.Enabled),
	)

	return nil
}

// parsePermissionList splits a comma-separated permission list and trims
// whitespace. Returns nil for an empty input.
func parsePermissionList(permissionsCSV string) []string {
	if permissionsCSV == "" {
		return nil
	}

	parts := strings.Split(permissionsCSV, ",")
	permissions := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			permissions = append(permissions, trimmed)
		}
	}
	return permissions
}

// outputAPIKeyText prints the created key in a human-readable format.
func outputAPIKeyText(key *apikeyDomain.APIKey, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nAPI key created")
	_, _ = fmt.Fprintf(writer, "ID (secret): %s\n", key.ID)
	_, _ = fmt.Fprintf(writer, "Name:        %s\n", key.Name)
	_, _ = fmt.Fprintf(writer, "Enabled:     %t\n", key.Enabled)
	if len(key.Permissions) > 0 {
		_, _ = fmt.Fprintf(writer, "Permissions: %s\n", strings.Join(key.Permissions, ", "))
	}
	_, _ = fmt.Fprintln(writer, "\nStore the ID securely, it is the credential the key authenticates with.")
}

// outputAPIKeyJSON prints the created key as JSON.
func outputAPIKeyJSON(key *apikeyDomain.APIKey, writer io.Writer) {
	out := map[string]any{
		"id":          key.ID.String(),
		"name":        key.Name,
		"enabled":     key.Enabled,
		"permissions": key.Permissions,
	}
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(out)
}
