// Package http provides HTTP handlers for project operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/projecthub/internal/auth/http"
	apperrors "github.com/allisson/projecthub/internal/errors"
	"github.com/allisson/projecthub/internal/httputil"
	projectDomain "github.com/allisson/projecthub/internal/project/domain"
	"github.com/allisson/projecthub/internal/project/http/dto"
	projectUsecase "github.com/allisson/projecthub/internal/project/usecase"
	customValidation "github.com/allisson/projecthub/internal/validation"
)

// ProjectHandler handles HTTP requests for project management.
type ProjectHandler struct {
	projectUseCase projectUsecase.ProjectUseCase
	logger         *slog.Logger
}

// NewProjectHandler creates a new project handler with required dependencies.
func NewProjectHandler(projectUseCase projectUsecase.ProjectUseCase, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectUseCase: projectUseCase,
		logger:         logger,
	}
}

// CreateProjectHandler creates a new project owned by the caller.
// POST /v1/projects - The caller becomes the project's first manager.
func (h *ProjectHandler) CreateProjectHandler(c *gin.Context) {
	actor, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &projectDomain.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Priority:    projectDomain.Priority(req.Priority),
	}

	project, err := h.projectUseCase.Create(c.Request.Context(), actor, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.NewProjectResponse(project))
}

// GetProjectHandler retrieves a project by ID.
// GET /v1/projects/:id - Requires the read capability on the project.
func (h *ProjectHandler) GetProjectHandler(c *gin.Context) {
	actor, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	project, err := h.projectUseCase.Get(c.Request.Context(), actor, projectID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewProjectResponse(project))
}

// ListProjectsHandler retrieves the projects the caller holds a grant on.
// GET /v1/projects?offset=0&limit=50
func (h *ProjectHandler) ListProjectsHandler(c *gin.Context) {
	actor, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	projects, err := h.projectUseCase.List(c.Request.Context(), actor, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.ListProjectsResponse{
		Projects: make([]dto.ProjectResponse, 0, len(projects)),
		Offset:   offset,
		Limit:    limit,
	}
	for _, project := range projects {
		response.Projects = append(response.Projects, dto.NewProjectResponse(project))
	}

	c.JSON(http.StatusOK, response)
}

// UpdateProjectHandler modifies a project's mutable fields.
// PATCH /v1/projects/:id - Requires the update capability on the project.
func (h *ProjectHandler) UpdateProjectHandler(c *gin.Context) {
	actor, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	project, err := h.projectUseCase.Update(c.Request.Context(), actor, projectID, req.DomainInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewProjectResponse(project))
}

// DeleteProjectHandler removes a project and every grant on it.
// DELETE /v1/projects/:id - Requires the delete capability on the project.
func (h *ProjectHandler) DeleteProjectHandler(c *gin.Context) {
	actor, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.projectUseCase.Delete(c.Request.Context(), actor, projectID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		StatusCode: http.StatusOK,
		Message:    "Project deleted",
	})
}
