// Package http provides HTTP server implementation and request routing.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accessHTTP "github.com/allisson/projecthub/internal/access/http"
	authHTTP "github.com/allisson/projecthub/internal/auth/http"
	authUsecase "github.com/allisson/projecthub/internal/auth/usecase"
	"github.com/allisson/projecthub/internal/config"
	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
	identityHTTP "github.com/allisson/projecthub/internal/identity/http"
	projectHTTP "github.com/allisson/projecthub/internal/project/http"
)

// Server represents the HTTP server.
type Server struct {
	config *config.Config
	db     *sql.DB
	router *gin.Engine
	server *http.Server
	logger *slog.Logger

	authUseCase    authUsecase.AuthUseCase
	authHandler    *authHTTP.AuthHandler
	userHandler    *identityHTTP.UserHandler
	projectHandler *projectHTTP.ProjectHandler
	grantHandler   *accessHTTP.GrantHandler
}

// NewServer creates a new HTTP server with its handlers wired in.
func NewServer(
	cfg *config.Config,
	db *sql.DB,
	logger *slog.Logger,
	authUseCase authUsecase.AuthUseCase,
	authHandler *authHTTP.AuthHandler,
	userHandler *identityHTTP.UserHandler,
	projectHandler *projectHTTP.ProjectHandler,
	grantHandler *accessHTTP.GrantHandler,
) *Server {
	return &Server{
		config:         cfg,
		db:             db,
		logger:         logger,
		authUseCase:    authUseCase,
		authHandler:    authHandler,
		userHandler:    userHandler,
		projectHandler: projectHandler,
		grantHandler:   grantHandler,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter configures the Gin router with all routes and middleware.
func (s *Server) SetupRouter() *gin.Engine {
	gin.SetMode(s.config.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(
		s.config.CORSEnabled,
		s.config.CORSAllowOrigins,
		s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	authenticated := authHTTP.AuthenticationMiddleware(s.authUseCase, s.logger)
	adminOnly := identityHTTP.RequireRoles(
		s.logger,
		identityDomain.RoleUserAdmin,
		identityDomain.RoleSystemAdmin,
	)

	// Unauthenticated endpoints share the login rate limiter since all of
	// them accept credential material.
	var credentialLimit gin.HandlerFunc
	if s.config.RateLimitLoginEnabled {
		credentialLimit = authHTTP.LoginRateLimitMiddleware(
			s.config.RateLimitLoginRequestsPerSec,
			s.config.RateLimitLoginBurst,
			s.logger,
		)
	} else {
		credentialLimit = func(c *gin.Context) { c.Next() }
	}

	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", credentialLimit, s.authHandler.LoginHandler)
			auth.POST("/logout", authenticated, s.authHandler.LogoutHandler)
			auth.POST("/refresh-token", credentialLimit, s.authHandler.RefreshTokenHandler)
		}

		users := v1.Group("/users")
		{
			users.POST("", authenticated, adminOnly, s.userHandler.CreateUserHandler)
			users.GET("", authenticated, adminOnly, s.userHandler.ListUsersHandler)
			users.GET("/:id", authenticated, adminOnly, s.userHandler.GetUserHandler)
			users.DELETE("/:id", authenticated, adminOnly, s.userHandler.DeleteUserHandler)
			users.POST("/change-password", authenticated, s.userHandler.ChangePasswordHandler)
			users.POST("/forgot-password", credentialLimit, s.userHandler.ForgotPasswordHandler)
			users.POST("/reset-password", credentialLimit, s.userHandler.ResetPasswordHandler)
		}

		projects := v1.Group("/projects", authenticated)
		{
			projects.POST("", s.projectHandler.CreateProjectHandler)
			projects.GET("", s.projectHandler.ListProjectsHandler)
			projects.GET("/:id", s.projectHandler.GetProjectHandler)
			projects.PATCH("/:id", s.projectHandler.UpdateProjectHandler)
			projects.DELETE("/:id", s.projectHandler.DeleteProjectHandler)

			projects.PUT("/:id/grants", s.grantHandler.SetGrantHandler)
			projects.GET("/:id/grants", s.grantHandler.ListGrantsHandler)
			projects.GET("/:id/grants/:user_id", s.grantHandler.GetGrantHandler)
			projects.DELETE("/:id/grants/:user_id", s.grantHandler.RevokeGrantHandler)
		}
	}

	s.router = router
	return router
}

// healthHandler responds to liveness probes.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler responds to readiness probes, checking the database.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}
	status := http.StatusOK

	if s.db == nil {
		components["database"] = "error"
		status = http.StatusServiceUnavailable
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			components["database"] = "error"
			status = http.StatusServiceUnavailable
		}
	}

	body := gin.H{"status": "ready", "components": components}
	if status != http.StatusOK {
		body["status"] = "not_ready"
	}

	c.JSON(status, body)
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		s.SetupRouter()
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
