// Package domain defines the core identity domain entities and types.
//
// A User is the system's principal: it carries the global role set consumed
// by the capability resolver, the Argon2id password hash, and the per-user
// session rotation nonce that backs the single-active-session refresh scheme.
package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/projecthub/internal/errors"
)

// Role is a global role assigned to a user. A user may hold several roles;
// capabilities are evaluated as the union of everything the roles grant.
type Role string

const (
	// RoleUser is the default role every user holds.
	RoleUser Role = "USER"

	// RoleUserAdmin allows managing user accounts.
	RoleUserAdmin Role = "USER_ADMIN"

	// RoleProjectAdmin allows managing projects across the system.
	RoleProjectAdmin Role = "PROJECT_ADMIN"

	// RoleSystemAdmin is the top administrative role. It short-circuits
	// every capability check to an allow.
	RoleSystemAdmin Role = "SYSTEM_ADMIN"

	// RoleGuest is a read-limited role for external accounts.
	RoleGuest Role = "GUEST"
)

// ValidRoles lists every role the system accepts.
var ValidRoles = []Role{RoleUser, RoleUserAdmin, RoleProjectAdmin, RoleSystemAdmin, RoleGuest}

// IsValidRole reports whether r is a known role.
func IsValidRole(r Role) bool {
	return slices.Contains(ValidRoles, r)
}

// User represents a principal in the system.
//
// RotationNonce holds the single currently valid refresh nonce: it is empty
// until the first login and replaced (never appended) on every login, token
// refresh, and logout. A refresh token embedding any other value is invalid
// regardless of its own expiry.
type User struct {
	ID            uuid.UUID
	Email         string
	FirstName     string
	LastName      string
	Avatar        string
	PasswordHash  string
	Roles         []Role
	IsActive      bool
	LastLoginAt   *time.Time
	RotationNonce string
	// ResetCodeHash and ResetCodeExpiresAt hold the single active password
	// reset challenge. Issuing a new challenge overwrites any prior one.
	ResetCodeHash      string
	ResetCodeExpiresAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// FullName returns the user's display name as embedded in token claims.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// HasRole reports whether the user holds the given global role.
func (u *User) HasRole(role Role) bool {
	return slices.Contains(u.Roles, role)
}

// CreateUserInput contains the parameters for registering a new user.
// The password is hashed by the use case before it reaches a repository.
type CreateUserInput struct {
	Email     string
	FirstName string
	LastName  string
	Avatar    string
	Password  string
	Roles     []Role
}

// Domain-specific errors for identity operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrInvalidResetCode indicates the password reset code does not match or has expired.
	ErrInvalidResetCode = errors.Wrap(errors.ErrForbidden, "verification code is invalid or has expired")

	// ErrInvalidRole indicates an unknown role value.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid role")

	// ErrNonceMismatch indicates a conditional rotation nonce update found a
	// different stored value. Treated as a validation rejection by callers,
	// never retried.
	ErrNonceMismatch = errors.Wrap(errors.ErrUnauthorized, "rotation nonce mismatch")
)
