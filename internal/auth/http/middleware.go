package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/allisson/projecthub/internal/auth/usecase"
	apperrors "github.com/allisson/projecthub/internal/errors"
	"github.com/allisson/projecthub/internal/httputil"
)

// AuthenticationMiddleware authenticates requests via Bearer access token.
//
// The middleware extracts the token from the Authorization header
// (case-insensitive "bearer" prefix), validates it through
// AuthUseCase.ValidateAccessToken and stores the principal in the request
// context for downstream handlers via GetUser().
//
// Missing, malformed, expired or tampered tokens all produce
// 401 Unauthorized without detail about which check failed.
func AuthenticationMiddleware(
	authUseCase authUseCase.AuthUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		token := authHeader[len(bearerPrefix):]
		if token == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Pass the use case error through: an unavailable store must
		// surface as 503, not as an authentication failure.
		user, err := authUseCase.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful", slog.String("user_id", user.ID.String()))

		c.Next()
	}
}
