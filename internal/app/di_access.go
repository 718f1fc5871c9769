package app

import (
	"fmt"

	accessHTTP "github.com/allisson/projecthub/internal/access/http"
	accessRepository "github.com/allisson/projecthub/internal/access/repository"
	accessUsecase "github.com/allisson/projecthub/internal/access/usecase"
)

// GrantRepository returns the access grant repository based on database driver.
func (c *Container) GrantRepository() (accessUsecase.GrantRepository, error) {
	var err error
	c.grantRepoInit.Do(func() {
		c.grantRepo, err = c.initGrantRepository()
		if err != nil {
			c.initErrors["grantRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["grantRepo"]; exists {
		return nil, storedErr
	}
	return c.grantRepo, nil
}

// GrantUseCase returns the access grant use case.
func (c *Container) GrantUseCase() (accessUsecase.GrantUseCase, error) {
	var err error
	c.grantUseCaseInit.Do(func() {
		var grantRepo accessUsecase.GrantRepository
		grantRepo, err = c.GrantRepository()
		if err != nil {
			c.initErrors["grantUseCase"] = err
			return
		}
		c.grantUseCase = accessUsecase.NewGrantUseCase(grantRepo)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["grantUseCase"]; exists {
		return nil, storedErr
	}
	return c.grantUseCase, nil
}

// GrantHandler returns the access grant HTTP handler.
func (c *Container) GrantHandler() (*accessHTTP.GrantHandler, error) {
	var err error
	c.grantHandlerInit.Do(func() {
		var useCase accessUsecase.GrantUseCase
		useCase, err = c.GrantUseCase()
		if err != nil {
			c.initErrors["grantHandler"] = err
			return
		}
		c.grantHandler = accessHTTP.NewGrantHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["grantHandler"]; exists {
		return nil, storedErr
	}
	return c.grantHandler, nil
}

// initGrantRepository creates the access grant repository instance.
func (c *Container) initGrantRepository() (accessUsecase.GrantRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for grant repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return accessRepository.NewMySQLGrantRepository(db), nil
	case "postgres":
		return accessRepository.NewPostgreSQLGrantRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}
