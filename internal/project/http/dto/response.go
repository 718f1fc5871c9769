package dto

import (
	"time"

	"github.com/google/uuid"

	projectDomain "github.com/allisson/projecthub/internal/project/domain"
)

// ProjectResponse is the public representation of a project.
type ProjectResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProjectResponse converts a domain project to its public representation.
func NewProjectResponse(project *projectDomain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      string(project.Status),
		Priority:    string(project.Priority),
		CreatedBy:   project.CreatedBy,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// ListProjectsResponse is the paginated project listing body.
type ListProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Offset   int               `json:"offset"`
	Limit    int               `json:"limit"`
}

// MessageResponse is a generic confirmation body.
type MessageResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}
