package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/projecthub/internal/auth/domain"
	"github.com/allisson/projecthub/internal/auth/http/dto"
	authUseCase "github.com/allisson/projecthub/internal/auth/usecase"
	"github.com/allisson/projecthub/internal/config"
	apperrors "github.com/allisson/projecthub/internal/errors"
	"github.com/allisson/projecthub/internal/httputil"
	customValidation "github.com/allisson/projecthub/internal/validation"
)

// AuthHandler handles HTTP requests for the credential lifecycle.
type AuthHandler struct {
	config      *config.Config
	authUseCase authUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(
	cfg *config.Config,
	useCase authUseCase.AuthUseCase,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		config:      cfg,
		authUseCase: useCase,
		logger:      logger,
	}
}

// setRefreshCookie attaches the refresh token to the response as an httpOnly
// cookie scoped to the refresh endpoint. The token never appears in a
// response body.
func (h *AuthHandler) setRefreshCookie(c *gin.Context, refreshToken string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		h.config.RefreshCookieName,
		refreshToken,
		int(h.config.RefreshTokenExpiration.Seconds()),
		h.config.RefreshCookiePath,
		h.config.RefreshCookieDomain,
		h.config.RefreshCookieSecure,
		true,
	)
}

// clearRefreshCookie expires the refresh cookie.
func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		h.config.RefreshCookieName,
		"",
		-1,
		h.config.RefreshCookiePath,
		h.config.RefreshCookieDomain,
		h.config.RefreshCookieSecure,
		true,
	)
}

// LoginHandler verifies credentials and establishes a session.
// POST /v1/auth/login - No authentication required.
// Returns 200 OK with the access token; the refresh token travels in the
// cookie only.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.authUseCase.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	pair, err := h.authUseCase.Login(c.Request.Context(), user)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)

	c.JSON(http.StatusOK, dto.LoginResponse{
		StatusCode: http.StatusOK,
		Message:    "Login successful",
		AuthToken:  pair.AccessToken,
	})
}

// LogoutHandler invalidates the caller's refresh token.
// POST /v1/auth/logout - Requires bearer authentication.
// Returns 200 OK and expires the refresh cookie.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	user, ok := GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	if err := h.authUseCase.Logout(c.Request.Context(), user.ID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.clearRefreshCookie(c)

	c.JSON(http.StatusOK, dto.MessageResponse{
		StatusCode: http.StatusOK,
		Message:    "Logout successful",
	})
}

// RefreshTokenHandler exchanges the cookie refresh token for a new pair.
// POST /v1/auth/refresh-token - Authenticated by the cookie itself.
// Returns 200 OK with a new access token and rotates the cookie.
func (h *AuthHandler) RefreshTokenHandler(c *gin.Context) {
	refreshToken, err := c.Cookie(h.config.RefreshCookieName)
	if err != nil {
		httputil.HandleErrorGin(c, authDomain.ErrMissingToken, h.logger)
		return
	}

	pair, err := h.authUseCase.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		// A rejected token is unusable from here on; drop the cookie so
		// clients stop replaying it. Transient store failures keep the
		// cookie: the token may still win once the store is back.
		if errors.Is(err, apperrors.ErrUnauthorized) {
			h.clearRefreshCookie(c)
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)

	c.JSON(http.StatusOK, dto.LoginResponse{
		StatusCode: http.StatusOK,
		Message:    "Token refreshed",
		AuthToken:  pair.AccessToken,
	})
}
