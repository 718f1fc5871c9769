// Package domain defines the resource access grant model.
//
// A Grant binds one user to one project with a single access level. The
// (UserID, ProjectID) pair is a natural key: at most one grant exists per
// pair and the latest write wins, no history is kept.
package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/projecthub/internal/errors"
)

// Level is the access level a grant confers on its project.
type Level string

const (
	// LevelViewer allows reading the project.
	LevelViewer Level = "VIEWER"

	// LevelCollaborator allows reading and updating the project.
	LevelCollaborator Level = "COLLABORATOR"

	// LevelManager allows every operation on the project, including
	// managing other members' grants.
	LevelManager Level = "MANAGER"

	// LevelAdministration is a cross-cutting administrative level that is
	// not scoped to a single project. It is carried for completeness but
	// never matched by the resource-scoped capability rules.
	LevelAdministration Level = "ADMINISTRATION_OFFICE"
)

// ValidLevels lists every access level the system accepts on a grant.
var ValidLevels = []Level{LevelViewer, LevelCollaborator, LevelManager, LevelAdministration}

// IsValidLevel reports whether l is a known access level.
func IsValidLevel(l Level) bool {
	return slices.Contains(ValidLevels, l)
}

// Grant represents a user's relationship to one project.
type Grant struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
	Level     Level
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain-specific errors for access grant operations.
var (
	// ErrGrantNotFound indicates no grant exists for the (user, project) pair.
	ErrGrantNotFound = errors.Wrap(errors.ErrNotFound, "access grant not found")

	// ErrInvalidLevel indicates an unknown access level value.
	ErrInvalidLevel = errors.Wrap(errors.ErrInvalidInput, "invalid access level")

	// ErrAccessDenied indicates the acting principal lacks the capability
	// for the requested operation.
	ErrAccessDenied = errors.Wrap(errors.ErrForbidden, "access denied")
)

// SetGrantInput contains the data needed to create or replace a grant.
type SetGrantInput struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
	Level     Level
}
