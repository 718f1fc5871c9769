package dto

import (
	"time"

	"github.com/google/uuid"

	accessDomain "github.com/allisson/projecthub/internal/access/domain"
)

// GrantResponse is the public representation of an access grant.
type GrantResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	ProjectID uuid.UUID `json:"project_id"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGrantResponse converts a domain grant to its public representation.
func NewGrantResponse(grant *accessDomain.Grant) GrantResponse {
	return GrantResponse{
		UserID:    grant.UserID,
		ProjectID: grant.ProjectID,
		Level:     string(grant.Level),
		CreatedAt: grant.CreatedAt,
		UpdatedAt: grant.UpdatedAt,
	}
}

// ListGrantsResponse is the paginated grant listing body.
type ListGrantsResponse struct {
	Grants []GrantResponse `json:"grants"`
	Offset int             `json:"offset"`
	Limit  int             `json:"limit"`
}

// MessageResponse is a generic confirmation body.
type MessageResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}
