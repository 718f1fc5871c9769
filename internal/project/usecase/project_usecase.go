// Package usecase implements business logic orchestration for projects.
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	accessDomain "github.com/allisson/projecthub/internal/access/domain"
	accessUsecase "github.com/allisson/projecthub/internal/access/usecase"
	"github.com/allisson/projecthub/internal/authz"
	"github.com/allisson/projecthub/internal/database"
	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
	projectDomain "github.com/allisson/projecthub/internal/project/domain"
)

// projectUseCase implements ProjectUseCase.
type projectUseCase struct {
	projectRepo ProjectRepository
	grantRepo   accessUsecase.GrantRepository
	txManager   database.TxManager
}

// authorize resolves the actor's capability for action on the given project.
func (p *projectUseCase) authorize(
	ctx context.Context,
	actor *identityDomain.User,
	action authz.Action,
	projectID uuid.UUID,
) error {
	actorGrant, err := p.grantRepo.Get(ctx, actor.ID, projectID)
	if err != nil && !errors.Is(err, accessDomain.ErrGrantNotFound) {
		return err
	}

	if !authz.Resolve(actor.Roles, action, authz.SubjectProject, actorGrant).Allowed() {
		return accessDomain.ErrAccessDenied
	}
	return nil
}

// Create stores a new project and grants the creator the manager level.
// Both writes happen in one transaction: a project without a managing grant
// would be unreachable for everyone but system admins.
func (p *projectUseCase) Create(
	ctx context.Context,
	actor *identityDomain.User,
	input *projectDomain.CreateProjectInput,
) (*projectDomain.Project, error) {
	priority := input.Priority
	if priority == "" {
		priority = projectDomain.PriorityMedium
	}
	if !projectDomain.IsValidPriority(priority) {
		return nil, projectDomain.ErrInvalidPriority
	}

	now := time.Now().UTC()
	project := &projectDomain.Project{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        input.Name,
		Description: input.Description,
		Status:      projectDomain.StatusOpen,
		Priority:    priority,
		CreatedBy:   actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := p.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := p.projectRepo.Create(ctx, project); err != nil {
			return err
		}
		creatorGrant := &accessDomain.Grant{
			UserID:    actor.ID,
			ProjectID: project.ID,
			Level:     accessDomain.LevelManager,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return p.grantRepo.Upsert(ctx, creatorGrant)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// Get retrieves a project.
func (p *projectUseCase) Get(
	ctx context.Context,
	actor *identityDomain.User,
	projectID uuid.UUID,
) (*projectDomain.Project, error) {
	if err := p.authorize(ctx, actor, authz.ActionRead, projectID); err != nil {
		return nil, err
	}
	return p.projectRepo.GetByID(ctx, projectID)
}

// List retrieves the projects the actor holds a grant on. No capability
// check: the grant join already scopes the result to the actor.
func (p *projectUseCase) List(
	ctx context.Context,
	actor *identityDomain.User,
	offset, limit int,
) ([]*projectDomain.Project, error) {
	return p.projectRepo.ListByUser(ctx, actor.ID, offset, limit)
}

// Update modifies a project.
func (p *projectUseCase) Update(
	ctx context.Context,
	actor *identityDomain.User,
	projectID uuid.UUID,
	input *projectDomain.UpdateProjectInput,
) (*projectDomain.Project, error) {
	if input.Status != nil && !projectDomain.IsValidStatus(*input.Status) {
		return nil, projectDomain.ErrInvalidStatus
	}
	if input.Priority != nil && !projectDomain.IsValidPriority(*input.Priority) {
		return nil, projectDomain.ErrInvalidPriority
	}

	if err := p.authorize(ctx, actor, authz.ActionUpdate, projectID); err != nil {
		return nil, err
	}

	project, err := p.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.Priority != nil {
		project.Priority = *input.Priority
	}
	project.UpdatedAt = time.Now().UTC()

	if err := p.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project and every grant on it, atomically.
func (p *projectUseCase) Delete(
	ctx context.Context,
	actor *identityDomain.User,
	projectID uuid.UUID,
) error {
	if err := p.authorize(ctx, actor, authz.ActionDelete, projectID); err != nil {
		return err
	}

	return p.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := p.grantRepo.DeleteByProject(ctx, projectID); err != nil {
			return err
		}
		return p.projectRepo.Delete(ctx, projectID)
	})
}

// NewProjectUseCase creates a new ProjectUseCase with the provided dependencies.
func NewProjectUseCase(
	projectRepo ProjectRepository,
	grantRepo accessUsecase.GrantRepository,
	txManager database.TxManager,
) ProjectUseCase {
	return &projectUseCase{
		projectRepo: projectRepo,
		grantRepo:   grantRepo,
		txManager:   txManager,
	}
}
