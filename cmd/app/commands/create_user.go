package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
	identityUsecase "github.com/allisson/projecthub/internal/identity/usecase"
)

// RunCreateUser creates a user account from the command line. It exists to
// bootstrap the first SYSTEM_ADMIN, after which user management happens over
// the API.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	userUseCase identityUsecase.UserUseCase,
	logger *slog.Logger,
	writer io.Writer,
	emailAddr string,
	firstName string,
	lastName string,
	password string,
	rolesCSV string,
	format string,
) error {
	logger.Info("creating user", slog.String("email", emailAddr))

	roles, err := parseRoles(rolesCSV)
	if err != nil {
		return err
	}

	input := &identityDomain.CreateUserInput{
		Email:     emailAddr,
		FirstName: firstName,
		LastName:  lastName,
		Password:  password,
		Roles:     roles,
	}

	user, err := userUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		outputUserJSON(user, writer)
	} else {
		outputUserText(user, writer)
	}

	logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email),
	)

	return nil
}

// parseRoles converts a comma-separated role list to domain roles.
func parseRoles(rolesCSV string) ([]identityDomain.Role, error) {
	var roles []identityDomain.Role
	for _, part := range strings.Split(rolesCSV, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		role := identityDomain.Role(trimmed)
		if !identityDomain.IsValidRole(role) {
			return nil, fmt.Errorf("invalid role: %s", trimmed)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// outputUserText prints the created user in human-readable form.
func outputUserText(user *identityDomain.User, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "User created:")
	_, _ = fmt.Fprintf(writer, "  ID:    %s\n", user.ID)
	_, _ = fmt.Fprintf(writer, "  Email: %s\n", user.Email)
	_, _ = fmt.Fprintf(writer, "  Name:  %s\n", user.FullName())
	_, _ = fmt.Fprintf(writer, "  Roles: %v\n", user.Roles)
}

// outputUserJSON prints the created user as JSON.
func outputUserJSON(user *identityDomain.User, writer io.Writer) {
	out := map[string]interface{}{
		"id":    user.ID.String(),
		"email": user.Email,
		"name":  user.FullName(),
		"roles": user.Roles,
	}
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(out)
}
