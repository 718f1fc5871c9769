// Package usecase defines business logic interfaces for access grant management.
package usecase

import (
	"context"

	"github.com/google/uuid"

	accessDomain "github.com/allisson/projecthub/internal/access/domain"
	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
)

// GrantRepository defines persistence operations for access grants.
type GrantRepository interface {
	// Upsert creates the grant or replaces the level of an existing grant
	// for the same (user, project) pair. Latest write wins.
	Upsert(ctx context.Context, grant *accessDomain.Grant) error

	// Get retrieves the grant for a (user, project) pair. Returns
	// ErrGrantNotFound if none exists.
	Get(ctx context.Context, userID, projectID uuid.UUID) (*accessDomain.Grant, error)

	// Delete removes the grant for a (user, project) pair. Returns
	// ErrGrantNotFound if none exists.
	Delete(ctx context.Context, userID, projectID uuid.UUID) error

	// ListByProject retrieves all grants on a project ordered by creation
	// time.
	ListByProject(
		ctx context.Context,
		projectID uuid.UUID,
		offset, limit int,
	) ([]*accessDomain.Grant, error)

	// DeleteByProject removes every grant on a project. Used when the
	// project itself is deleted.
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
}

// GrantUseCase defines business logic operations for managing access grants.
// Every operation is capability-checked against the actor's global roles and
// the actor's own grant on the target project.
type GrantUseCase interface {
	// SetGrant creates or replaces a grant. Requires the manage capability
	// on grants of the target project.
	SetGrant(
		ctx context.Context,
		actor *identityDomain.User,
		input *accessDomain.SetGrantInput,
	) (*accessDomain.Grant, error)

	// GetGrant retrieves a single grant. Requires the read capability.
	GetGrant(
		ctx context.Context,
		actor *identityDomain.User,
		userID, projectID uuid.UUID,
	) (*accessDomain.Grant, error)

	// ListProjectGrants retrieves the grants on a project. Requires the
	// read capability.
	ListProjectGrants(
		ctx context.Context,
		actor *identityDomain.User,
		projectID uuid.UUID,
		offset, limit int,
	) ([]*accessDomain.Grant, error)

	// RevokeGrant removes a grant. Requires the manage capability.
	RevokeGrant(
		ctx context.Context,
		actor *identityDomain.User,
		userID, projectID uuid.UUID,
	) error
}
