// Package domain defines the project model.
//
// Projects exist to anchor access grants: every capability check on a
// resource resolves against the caller's grant on one project.
package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/projecthub/internal/errors"
)

// Status is the lifecycle state of a project.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusOnHold     Status = "ON_HOLD"
	StatusCompleted  Status = "COMPLETED"
	StatusCanceled   Status = "CANCELED"
)

// Priority is the scheduling priority of a project.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// ValidStatuses lists every project status the system accepts.
var ValidStatuses = []Status{
	StatusOpen, StatusInProgress, StatusOnHold, StatusCompleted, StatusCanceled,
}

// ValidPriorities lists every project priority the system accepts.
var ValidPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// IsValidStatus reports whether s is a known project status.
func IsValidStatus(s Status) bool {
	return slices.Contains(ValidStatuses, s)
}

// IsValidPriority reports whether p is a known project priority.
func IsValidPriority(p Priority) bool {
	return slices.Contains(ValidPriorities, p)
}

// Project represents a project resource.
type Project struct {
	ID          uuid.UUID
	Name        string
	Description string
	Status      Status
	Priority    Priority
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateProjectInput contains the data needed to create a project.
type CreateProjectInput struct {
	Name        string
	Description string
	Priority    Priority
}

// UpdateProjectInput contains the data needed to update a project. Nil
// fields are left unchanged.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *Status
	Priority    *Priority
}

// Domain-specific errors for project operations.
var (
	// ErrProjectNotFound indicates the requested project does not exist.
	ErrProjectNotFound = errors.Wrap(errors.ErrNotFound, "project not found")

	// ErrInvalidStatus indicates an unknown project status value.
	ErrInvalidStatus = errors.Wrap(errors.ErrInvalidInput, "invalid project status")

	// ErrInvalidPriority indicates an unknown project priority value.
	ErrInvalidPriority = errors.Wrap(errors.ErrInvalidInput, "invalid project priority")
)
