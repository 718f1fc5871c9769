// Package usecase implements business logic orchestration for access grants.
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	accessDomain "github.com/allisson/projecthub/internal/access/domain"
	"github.com/allisson/projecthub/internal/authz"
	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
)

// grantUseCase implements GrantUseCase.
type grantUseCase struct {
	grantRepo GrantRepository
}

// authorize resolves the actor's capability for action on grants of the
// given project. The actor's own grant is loaded first; its absence is a
// valid input to the resolver, not an error.
func (g *grantUseCase) authorize(
	ctx context.Context,
	actor *identityDomain.User,
	action authz.Action,
	projectID uuid.UUID,
) error {
	actorGrant, err := g.grantRepo.Get(ctx, actor.ID, projectID)
	if err != nil && !errors.Is(err, accessDomain.ErrGrantNotFound) {
		return err
	}

	if !authz.Resolve(actor.Roles, action, authz.SubjectGrant, actorGrant).Allowed() {
		return accessDomain.ErrAccessDenied
	}
	return nil
}

// SetGrant creates or replaces a grant, latest write wins.
func (g *grantUseCase) SetGrant(
	ctx context.Context,
	actor *identityDomain.User,
	input *accessDomain.SetGrantInput,
) (*accessDomain.Grant, error) {
	if !accessDomain.IsValidLevel(input.Level) {
		return nil, accessDomain.ErrInvalidLevel
	}

	if err := g.authorize(ctx, actor, authz.ActionManage, input.ProjectID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	grant := &accessDomain.Grant{
		UserID:    input.UserID,
		ProjectID: input.ProjectID,
		Level:     input.Level,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := g.grantRepo.Upsert(ctx, grant); err != nil {
		return nil, err
	}
	return grant, nil
}

// GetGrant retrieves a single grant.
func (g *grantUseCase) GetGrant(
	ctx context.Context,
	actor *identityDomain.User,
	userID, projectID uuid.UUID,
) (*accessDomain.Grant, error) {
	if err := g.authorize(ctx, actor, authz.ActionRead, projectID); err != nil {
		return nil, err
	}
	return g.grantRepo.Get(ctx, userID, projectID)
}

// ListProjectGrants retrieves the grants on a project.
func (g *grantUseCase) ListProjectGrants(
	ctx context.Context,
	actor *identityDomain.User,
	projectID uuid.UUID,
	offset, limit int,
) ([]*accessDomain.Grant, error) {
	if err := g.authorize(ctx, actor, authz.ActionRead, projectID); err != nil {
		return nil, err
	}
	return g.grantRepo.ListByProject(ctx, projectID, offset, limit)
}

// RevokeGrant removes a grant.
func (g *grantUseCase) RevokeGrant(
	ctx context.Context,
	actor *identityDomain.User,
	userID, projectID uuid.UUID,
) error {
	if err := g.authorize(ctx, actor, authz.ActionManage, projectID); err != nil {
		return err
	}
	return g.grantRepo.Delete(ctx, userID, projectID)
}

// NewGrantUseCase creates a new GrantUseCase with the provided dependencies.
func NewGrantUseCase(grantRepo GrantRepository) GrantUseCase {
	return &grantUseCase{grantRepo: grantRepo}
}
