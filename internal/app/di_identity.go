package app

import (
	"fmt"

	"github.com/allisson/projecthub/internal/email"
	identityHTTP "github.com/allisson/projecthub/internal/identity/http"
	identityRepository "github.com/allisson/projecthub/internal/identity/repository"
	identityService "github.com/allisson/projecthub/internal/identity/service"
	identityUsecase "github.com/allisson/projecthub/internal/identity/usecase"
)

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() identityService.PasswordService {
	c.passwordSvcInit.Do(func() {
		c.passwordService = identityService.NewPasswordService()
	})
	return c.passwordService
}

// ResetCodeService returns the password reset code service.
func (c *Container) ResetCodeService() identityService.ResetCodeService {
	c.resetCodeSvcInit.Do(func() {
		c.resetCodeService = identityService.NewResetCodeService()
	})
	return c.resetCodeService
}

// EmailSender returns the email sender used for password reset codes.
func (c *Container) EmailSender() email.Sender {
	c.emailSenderInit.Do(func() {
		c.emailSender = email.NewLogSender(c.Logger())
	})
	return c.emailSender
}

// UserRepository returns the user repository based on database driver.
func (c *Container) UserRepository() (identityUsecase.UserRepository, error) {
	var err error
	c.userRepoInit.Do(func() {
		c.userRepo, err = c.initUserRepository()
		if err != nil {
			c.initErrors["userRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// UserUseCase returns the user use case.
func (c *Container) UserUseCase() (identityUsecase.UserUseCase, error) {
	var err error
	c.userUseCaseInit.Do(func() {
		c.userUseCase, err = c.initUserUseCase()
		if err != nil {
			c.initErrors["userUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUseCase, nil
}

// UserHandler returns the user HTTP handler.
func (c *Container) UserHandler() (*identityHTTP.UserHandler, error) {
	var err error
	c.userHandlerInit.Do(func() {
		var userUseCase identityUsecase.UserUseCase
		userUseCase, err = c.UserUseCase()
		if err != nil {
			c.initErrors["userHandler"] = err
			return
		}
		c.userHandler = identityHTTP.NewUserHandler(userUseCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userHandler"]; exists {
		return nil, storedErr
	}
	return c.userHandler, nil
}

// initUserRepository creates the user repository instance.
func (c *Container) initUserRepository() (identityUsecase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return identityRepository.NewMySQLUserRepository(db), nil
	case "postgres":
		return identityRepository.NewPostgreSQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initUserUseCase creates the user use case with all its dependencies.
func (c *Container) initUserUseCase() (identityUsecase.UserUseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}

	return identityUsecase.NewUserUseCase(
		c.config,
		userRepo,
		c.PasswordService(),
		c.ResetCodeService(),
		c.EmailSender(),
	), nil
}
