package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/projecthub/internal/database"
	apperrors "github.com/allisson/projecthub/internal/errors"
	projectDomain "github.com/allisson/projecthub/internal/project/domain"
)

// MySQLProjectRepository handles project persistence for MySQL.
type MySQLProjectRepository struct {
	db *sql.DB
}

// Create inserts a new project.
func (r *MySQLProjectRepository) Create(ctx context.Context, project *projectDomain.Project) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO projects (id, name, description, status, priority, created_by,
			  created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		project.ID,
		project.Name,
		project.Description,
		project.Status,
		project.Priority,
		project.CreatedBy,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create project")
	}
	return nil
}

// GetByID retrieves a project by ID.
func (r *MySQLProjectRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*projectDomain.Project, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, description, status, priority, created_by, created_at, updated_at
			  FROM projects WHERE id = ?`

	var project projectDomain.Project
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.Status,
		&project.Priority,
		&project.CreatedBy,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, projectDomain.ErrProjectNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get project by id")
	}
	return &project, nil
}

// Update replaces the mutable fields of a project.
func (r *MySQLProjectRepository) Update(ctx context.Context, project *projectDomain.Project) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE projects
			  SET name = ?, description = ?, status = ?, priority = ?, updated_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		project.Name,
		project.Description,
		project.Status,
		project.Priority,
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update project")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return projectDomain.ErrProjectNotFound
	}
	return nil
}

// Delete removes a project.
func (r *MySQLProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM projects WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete project")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return projectDomain.ErrProjectNotFound
	}
	return nil
}

// ListByUser retrieves the projects a user holds a grant on, newest first.
func (r *MySQLProjectRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*projectDomain.Project, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT p.id, p.name, p.description, p.status, p.priority, p.created_by,
			  p.created_at, p.updated_at
			  FROM projects p
			  INNER JOIN project_grants g ON g.project_id = p.id
			  WHERE g.user_id = ?
			  ORDER BY p.created_at DESC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list projects")
	}
	defer func() { _ = rows.Close() }()

	projects := []*projectDomain.Project{}
	for rows.Next() {
		var project projectDomain.Project
		err := rows.Scan(
			&project.ID,
			&project.Name,
			&project.Description,
			&project.Status,
			&project.Priority,
			&project.CreatedBy,
			&project.CreatedAt,
			&project.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan project row")
		}
		projects = append(projects, &project)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate project rows")
	}
	return projects, nil
}

// NewMySQLProjectRepository creates a new MySQLProjectRepository.
func NewMySQLProjectRepository(db *sql.DB) *MySQLProjectRepository {
	return &MySQLProjectRepository{db: db}
}
