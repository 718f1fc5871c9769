package app

import (
	"fmt"

	authHTTP "github.com/allisson/projecthub/internal/auth/http"
	authService "github.com/allisson/projecthub/internal/auth/service"
	authUsecase "github.com/allisson/projecthub/internal/auth/usecase"
	"github.com/allisson/projecthub/internal/metrics"
)

// SignerService returns the token signing service.
func (c *Container) SignerService() (authService.SignerService, error) {
	var err error
	c.signerSvcInit.Do(func() {
		c.signerService, err = authService.NewJWTSignerService(c.config)
		if err != nil {
			c.initErrors["signerService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["signerService"]; exists {
		return nil, storedErr
	}
	return c.signerService, nil
}

// NonceService returns the rotation nonce generator.
func (c *Container) NonceService() authService.NonceService {
	c.nonceSvcInit.Do(func() {
		c.nonceService = authService.NewNonceService()
	})
	return c.nonceService
}

// AuthUseCase returns the auth use case wrapped with metrics recording.
func (c *Container) AuthUseCase() (authUsecase.AuthUseCase, error) {
	var err error
	c.authUseCaseInit.Do(func() {
		c.authUseCase, err = c.initAuthUseCase()
		if err != nil {
			c.initErrors["authUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authUseCase"]; exists {
		return nil, storedErr
	}
	return c.authUseCase, nil
}

// AuthHandler returns the auth HTTP handler.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	var err error
	c.authHandlerInit.Do(func() {
		var useCase authUsecase.AuthUseCase
		useCase, err = c.AuthUseCase()
		if err != nil {
			c.initErrors["authHandler"] = err
			return
		}
		c.authHandler = authHTTP.NewAuthHandler(c.config, useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authHandler"]; exists {
		return nil, storedErr
	}
	return c.authHandler, nil
}

// initAuthUseCase creates the auth use case with all its dependencies.
func (c *Container) initAuthUseCase() (authUsecase.AuthUseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
	}

	signerService, err := c.SignerService()
	if err != nil {
		return nil, fmt.Errorf("failed to get signer service for auth use case: %w", err)
	}

	useCase := authUsecase.NewAuthUseCase(
		c.config,
		userRepo,
		signerService,
		c.NonceService(),
		c.PasswordService(),
	)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
	}
	if businessMetrics == nil {
		businessMetrics = metrics.NewNoOpBusinessMetrics()
	}

	return authUsecase.NewAuthUseCaseWithMetrics(useCase, businessMetrics), nil
}
