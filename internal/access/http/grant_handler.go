// Package http provides HTTP handlers for access grant operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accessDomain "github.com/allisson/projecthub/internal/access/domain"
	"github.com/allisson/projecthub/internal/access/http/dto"
	accessUsecase "github.com/allisson/projecthub/internal/access/usecase"
	authHTTP "github.com/allisson/projecthub/internal/auth/http"
	apperrors "github.com/allisson/projecthub/internal/errors"
	"github.com/allisson/projecthub/internal/httputil"
	customValidation "github.com/allisson/projecthub/internal/validation"
)

// GrantHandler handles HTTP requests for access grant management. All routes
// are nested under a project and capability-checked by the use case against
// the caller's own grant on that project.
type GrantHandler struct {
	grantUseCase accessUsecase.GrantUseCase
	logger       *slog.Logger
}

// NewGrantHandler creates a new grant handler with required dependencies.
func NewGrantHandler(grantUseCase accessUsecase.GrantUseCase, logger *slog.Logger) *GrantHandler {
	return &GrantHandler{
		grantUseCase: grantUseCase,
		logger:       logger,
	}
}

// SetGrantHandler creates or replaces a member grant on a project.
// PUT /v1/projects/:id/grants - Requires the manage capability on the project.
func (h *GrantHandler) SetGrantHandler(c *gin.Context) {
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

	var req dto.SetGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &accessDomain.SetGrantInput{
		UserID:    uuid.MustParse(req.UserID),
		ProjectID: projectID,
		Level:     accessDomain.Level(req.Level),
	}

	grant, err := h.grantUseCase.SetGrant(c.Request.Context(), actor, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewGrantResponse(grant))
}

// GetGrantHandler retrieves one member grant on a project.
// GET /v1/projects/:id/grants/:user_id - Requires the read capability.
func (h *GrantHandler) GetGrantHandler(c *gin.Context) {
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

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	grant, err := h.grantUseCase.GetGrant(c.Request.Context(), actor, userID, projectID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewGrantResponse(grant))
}

// ListGrantsHandler retrieves the member grants on a project.
// GET /v1/projects/:id/grants?offset=0&limit=50 - Requires the read capability.
func (h *GrantHandler) ListGrantsHandler(c *gin.Context) {
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

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	grants, err := h.grantUseCase.ListProjectGrants(c.Request.Context(), actor, projectID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.ListGrantsResponse{
		Grants: make([]dto.GrantResponse, 0, len(grants)),
		Offset: offset,
		Limit:  limit,
	}
	for _, grant := range grants {
		response.Grants = append(response.Grants, dto.NewGrantResponse(grant))
	}

	c.JSON(http.StatusOK, response)
}

// RevokeGrantHandler removes a member grant from a project.
// DELETE /v1/projects/:id/grants/:user_id - Requires the manage capability.
func (h *GrantHandler) RevokeGrantHandler(c *gin.Context) {
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

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.grantUseCase.RevokeGrant(c.Request.Context(), actor, userID, projectID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		StatusCode: http.StatusOK,
		Message:    "Grant revoked",
	})
}
