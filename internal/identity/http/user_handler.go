// Package http provides HTTP handlers for user management operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/projecthub/internal/auth/http"
	apperrors "github.com/allisson/projecthub/internal/errors"
	"github.com/allisson/projecthub/internal/httputil"
	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
	"github.com/allisson/projecthub/internal/identity/http/dto"
	identityUsecase "github.com/allisson/projecthub/internal/identity/usecase"
	customValidation "github.com/allisson/projecthub/internal/validation"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	userUseCase identityUsecase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler with required dependencies.
func NewUserHandler(userUseCase identityUsecase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// RequireRoles restricts an endpoint to callers holding at least one of the
// given roles. Must run after the authentication middleware.
func RequireRoles(logger *slog.Logger, roles ...identityDomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authHTTP.GetUser(c.Request.Context())
		if !ok {
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.HasRole(role) {
				c.Next()
				return
			}
		}

		logger.Debug("role check failed",
			slog.String("user_id", user.ID.String()))
		httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
		c.Abort()
	}
}

// CreateUserHandler registers a new user.
// POST /v1/users - Requires a user administration role.
// Returns 201 Created with the public user representation.
func (h *UserHandler) CreateUserHandler(c *gin.Context) {
	var req dto.CreateUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &identityDomain.CreateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Avatar:    req.Avatar,
		Password:  req.Password,
		Roles:     req.DomainRoles(),
	}

	user, err := h.userUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// GetUserHandler retrieves a user by ID.
// GET /v1/users/:id - Requires a user administration role.
func (h *UserHandler) GetUserHandler(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.Get(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// ListUsersHandler retrieves users with pagination.
// GET /v1/users?offset=0&limit=50 - Requires a user administration role.
func (h *UserHandler) ListUsersHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	users, err := h.userUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.ListUsersResponse{
		Users:  make([]dto.UserResponse, 0, len(users)),
		Offset: offset,
		Limit:  limit,
	}
	for _, user := range users {
		response.Users = append(response.Users, dto.NewUserResponse(user))
	}

	c.JSON(http.StatusOK, response)
}

// DeleteUserHandler removes a user account.
// DELETE /v1/users/:id - Requires a user administration role.
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.userUseCase.Delete(c.Request.Context(), userID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		StatusCode: http.StatusOK,
		Message:    "User deleted",
	})
}

// ChangePasswordHandler replaces the caller's own password.
// POST /v1/users/change-password - Requires bearer authentication.
func (h *UserHandler) ChangePasswordHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.userUseCase.ChangePassword(c.Request.Context(), user.ID, req.Password); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		StatusCode: http.StatusOK,
		Message:    "Password changed",
	})
}

// ForgotPasswordHandler issues a password reset code.
// POST /v1/users/forgot-password - No authentication required, rate limited.
func (h *UserHandler) ForgotPasswordHandler(c *gin.Context) {
	var req dto.ForgotPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.userUseCase.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		StatusCode: http.StatusOK,
		Message:    "Verification code sent",
	})
}

// ResetPasswordHandler completes a password reset with a verification code.
// POST /v1/users/reset-password - No authentication required, rate limited.
func (h *UserHandler) ResetPasswordHandler(c *gin.Context) {
	var req dto.ResetPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	err := h.userUseCase.ResetPassword(c.Request.Context(), req.Email, req.Code, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		StatusCode: http.StatusOK,
		Message:    "Password reset",
	})
}
