// Package usecase defines business logic interfaces for identity operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
)

// UserRepository defines persistence operations for users.
// Implementations must support transaction-aware operations via context
// propagation and return identityDomain sentinel errors for missing rows.
type UserRepository interface {
	// Create stores a new user. Returns ErrUserAlreadyExists on a
	// duplicate email.
	Create(ctx context.Context, user *identityDomain.User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*identityDomain.User, error)

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*identityDomain.User, error)

	// List retrieves users ordered by creation time, newest first.
	List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error)

	// Delete removes a user. Returns ErrUserNotFound if not found.
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateLastLogin records a successful authentication timestamp.
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// SetRotationNonce unconditionally replaces the user's rotation nonce.
	// Used on login and logout, where rotation does not depend on the prior
	// value.
	SetRotationNonce(ctx context.Context, id uuid.UUID, nonce string) error

	// CompareAndSwapRotationNonce atomically replaces the rotation nonce
	// only if the stored value still equals current. Returns
	// ErrNonceMismatch when the stored value has moved on, which callers
	// must treat as a validation rejection, never as a retryable condition.
	CompareAndSwapRotationNonce(ctx context.Context, id uuid.UUID, current, next string) error

	// SetResetChallenge stores a password reset code hash and its absolute
	// expiry, replacing any prior challenge.
	SetResetChallenge(ctx context.Context, id uuid.UUID, codeHash string, expiresAt time.Time) error

	// ClearResetChallenge removes the active password reset challenge.
	ClearResetChallenge(ctx context.Context, id uuid.UUID) error
}

// UserUseCase defines business logic operations for managing users.
type UserUseCase interface {
	// Create registers a new user. The default USER role is always present
	// in the stored role set.
	Create(
		ctx context.Context,
		createUserInput *identityDomain.CreateUserInput,
	) (*identityDomain.User, error)

	// Get retrieves a user by ID.
	Get(ctx context.Context, userID uuid.UUID) (*identityDomain.User, error)

	// List retrieves users with pagination.
	List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error)

	// Delete removes a user account.
	Delete(ctx context.Context, userID uuid.UUID) error

	// ChangePassword replaces an authenticated user's password.
	ChangePassword(ctx context.Context, userID uuid.UUID, newPassword string) error

	// RequestPasswordReset issues a short-lived verification code and
	// delivers it to the user's email address. A new request supersedes any
	// prior outstanding code.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword verifies the code and replaces the password. The
	// challenge is cleared on success, so a code verifies productively at
	// most once.
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}
