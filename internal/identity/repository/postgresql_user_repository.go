// Package repository provides data persistence implementations for user accounts.
// Repositories support both PostgreSQL and MySQL with transaction propagation
// via database.GetTx().
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/projecthub/internal/database"
	apperrors "github.com/allisson/projecthub/internal/errors"
	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
)

// PostgreSQLUserRepository handles user persistence for PostgreSQL.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// Create inserts a new user.
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *identityDomain.User) error {
	querier := database.GetTx(ctx, r.db)

	rolesJSON, err := json.Marshal(user.Roles)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user roles")
	}

	query := `INSERT INTO users (id, email, first_name, last_name, avatar, password_hash, roles,
			  is_active, last_login_at, rotation_nonce, reset_code_hash, reset_code_expires_at,
			  created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = querier.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Avatar,
		user.PasswordHash,
		rolesJSON,
		user.IsActive,
		user.LastLoginAt,
		user.RotationNonce,
		user.ResetCodeHash,
		user.ResetCodeExpiresAt,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return identityDomain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *PostgreSQLUserRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*identityDomain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := userSelectColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identityDomain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}
	return user, nil
}

// GetByEmail retrieves a user by email.
func (r *PostgreSQLUserRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*identityDomain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := userSelectColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(querier.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identityDomain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by email")
	}
	return user, nil
}

// List retrieves users ordered by creation time, newest first.
func (r *PostgreSQLUserRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*identityDomain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := userSelectColumns + ` FROM users ORDER BY created_at DESC OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer func() { _ = rows.Close() }()

	users := []*identityDomain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user row")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate user rows")
	}
	return users, nil
}

// Delete removes a user.
func (r *PostgreSQLUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM users WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete user")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return identityDomain.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin records a successful authentication timestamp.
func (r *PostgreSQLUserRepository) UpdateLastLogin(
	ctx context.Context,
	id uuid.UUID,
	at time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET last_login_at = $1, updated_at = $2 WHERE id = $3`

	_, err := querier.ExecContext(ctx, query, at, time.Now().UTC(), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update last login")
	}
	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *PostgreSQLUserRepository) UpdatePassword(
	ctx context.Context,
	id uuid.UUID,
	passwordHash string,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, passwordHash, time.Now().UTC(), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update password")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return identityDomain.ErrUserNotFound
	}
	return nil
}

// SetRotationNonce unconditionally replaces the user's rotation nonce.
func (r *PostgreSQLUserRepository) SetRotationNonce(
	ctx context.Context,
	id uuid.UUID,
	nonce string,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET rotation_nonce = $1, updated_at = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, nonce, time.Now().UTC(), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to set rotation nonce")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return identityDomain.ErrUserNotFound
	}
	return nil
}

// CompareAndSwapRotationNonce replaces the rotation nonce only if the stored
// value still equals current. The conditional UPDATE makes the check-and-set
// atomic at the database, so two concurrent refreshes with the same token
// resolve to exactly one winner.
func (r *PostgreSQLUserRepository) CompareAndSwapRotationNonce(
	ctx context.Context,
	id uuid.UUID,
	current, next string,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET rotation_nonce = $1, updated_at = $2
			  WHERE id = $3 AND rotation_nonce = $4`

	result, err := querier.ExecContext(ctx, query, next, time.Now().UTC(), id, current)
	if err != nil {
		return apperrors.Wrap(err, "failed to swap rotation nonce")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return identityDomain.ErrNonceMismatch
	}
	return nil
}

// SetResetChallenge stores a password reset code hash and its expiry,
// replacing any prior challenge.
func (r *PostgreSQLUserRepository) SetResetChallenge(
	ctx context.Context,
	id uuid.UUID,
	codeHash string,
	expiresAt time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET reset_code_hash = $1, reset_code_expires_at = $2, updated_at = $3
			  WHERE id = $4`

	result, err := querier.ExecContext(ctx, query, codeHash, expiresAt, time.Now().UTC(), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to set reset challenge")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return identityDomain.ErrUserNotFound
	}
	return nil
}

// ClearResetChallenge removes the active password reset challenge.
func (r *PostgreSQLUserRepository) ClearResetChallenge(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET reset_code_hash = '', reset_code_expires_at = NULL, updated_at = $1
			  WHERE id = $2`

	_, err := querier.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to clear reset challenge")
	}
	return nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}
