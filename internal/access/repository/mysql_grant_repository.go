package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	accessDomain "github.com/allisson/projecthub/internal/access/domain"
	"github.com/allisson/projecthub/internal/database"
	apperrors "github.com/allisson/projecthub/internal/errors"
)

// MySQLGrantRepository handles grant persistence for MySQL.
type MySQLGrantRepository struct {
	db *sql.DB
}

// Upsert creates the grant or replaces the level of an existing one for the
// same (user, project) pair.
func (r *MySQLGrantRepository) Upsert(ctx context.Context, grant *accessDomain.Grant) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO project_grants (user_id, project_id, level, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE level = VALUES(level), updated_at = VALUES(updated_at)`

	_, err := querier.ExecContext(
		ctx,
		query,
		grant.UserID,
		grant.ProjectID,
		grant.Level,
		grant.CreatedAt,
		grant.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert grant")
	}
	return nil
}

// Get retrieves the grant for a (user, project) pair.
func (r *MySQLGrantRepository) Get(
	ctx context.Context,
	userID, projectID uuid.UUID,
) (*accessDomain.Grant, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT user_id, project_id, level, created_at, updated_at
			  FROM project_grants WHERE user_id = ? AND project_id = ?`

	var grant accessDomain.Grant
	err := querier.QueryRowContext(ctx, query, userID, projectID).Scan(
		&grant.UserID,
		&grant.ProjectID,
		&grant.Level,
		&grant.CreatedAt,
		&grant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accessDomain.ErrGrantNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get grant")
	}
	return &grant, nil
}

// Delete removes the grant for a (user, project) pair.
func (r *MySQLGrantRepository) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM project_grants WHERE user_id = ? AND project_id = ?`

	result, err := querier.ExecContext(ctx, query, userID, projectID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete grant")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return accessDomain.ErrGrantNotFound
	}
	return nil
}

// ListByProject retrieves all grants on a project ordered by creation time.
func (r *MySQLGrantRepository) ListByProject(
	ctx context.Context,
	projectID uuid.UUID,
	offset, limit int,
) ([]*accessDomain.Grant, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT user_id, project_id, level, created_at, updated_at
			  FROM project_grants WHERE project_id = ?
			  ORDER BY created_at ASC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list grants")
	}
	defer func() { _ = rows.Close() }()

	grants := []*accessDomain.Grant{}
	for rows.Next() {
		var grant accessDomain.Grant
		err := rows.Scan(
			&grant.UserID,
			&grant.ProjectID,
			&grant.Level,
			&grant.CreatedAt,
			&grant.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan grant row")
		}
		grants = append(grants, &grant)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate grant rows")
	}
	return grants, nil
}

// DeleteByProject removes every grant on a project.
func (r *MySQLGrantRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM project_grants WHERE project_id = ?`

	_, err := querier.ExecContext(ctx, query, projectID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete project grants")
	}
	return nil
}

// NewMySQLGrantRepository creates a new MySQLGrantRepository.
func NewMySQLGrantRepository(db *sql.DB) *MySQLGrantRepository {
	return &MySQLGrantRepository{db: db}
}
