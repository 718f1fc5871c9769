// Package usecase defines business logic interfaces for project operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
	projectDomain "github.com/allisson/projecthub/internal/project/domain"
)

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	// Create stores a new project.
	Create(ctx context.Context, project *projectDomain.Project) error

	// GetByID retrieves a project by ID. Returns ErrProjectNotFound if not
	// found.
	GetByID(ctx context.Context, id uuid.UUID) (*projectDomain.Project, error)

	// Update replaces the mutable fields of a project.
	Update(ctx context.Context, project *projectDomain.Project) error

	// Delete removes a project. Returns ErrProjectNotFound if not found.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByUser retrieves the projects a user holds a grant on, newest
	// first.
	ListByUser(
		ctx context.Context,
		userID uuid.UUID,
		offset, limit int,
	) ([]*projectDomain.Project, error)
}

// ProjectUseCase defines business logic operations for managing projects.
// Read, update and delete are capability-checked against the actor's roles
// and grant.
type ProjectUseCase interface {
	// Create stores a new project and grants the creator the manager level
	// on it, atomically.
	Create(
		ctx context.Context,
		actor *identityDomain.User,
		input *projectDomain.CreateProjectInput,
	) (*projectDomain.Project, error)

	// Get retrieves a project. Requires the read capability.
	Get(
		ctx context.Context,
		actor *identityDomain.User,
		projectID uuid.UUID,
	) (*projectDomain.Project, error)

	// List retrieves the projects the actor holds a grant on.
	List(
		ctx context.Context,
		actor *identityDomain.User,
		offset, limit int,
	) ([]*projectDomain.Project, error)

	// Update modifies a project. Requires the update capability.
	Update(
		ctx context.Context,
		actor *identityDomain.User,
		projectID uuid.UUID,
		input *projectDomain.UpdateProjectInput,
	) (*projectDomain.Project, error)

	// Delete removes a project and all grants on it. Requires the delete
	// capability.
	Delete(ctx context.Context, actor *identityDomain.User, projectID uuid.UUID) error
}
