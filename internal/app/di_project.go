package app

import (
	"fmt"

	projectHTTP "github.com/allisson/projecthub/internal/project/http"
	projectRepository "github.com/allisson/projecthub/internal/project/repository"
	projectUsecase "github.com/allisson/projecthub/internal/project/usecase"
)

// ProjectRepository returns the project repository based on database driver.
func (c *Container) ProjectRepository() (projectUsecase.ProjectRepository, error) {
	var err error
	c.projectRepoInit.Do(func() {
		c.projectRepo, err = c.initProjectRepository()
		if err != nil {
			c.initErrors["projectRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["projectRepo"]; exists {
		return nil, storedErr
	}
	return c.projectRepo, nil
}

// ProjectUseCase returns the project use case.
func (c *Container) ProjectUseCase() (projectUsecase.ProjectUseCase, error) {
	var err error
	c.projectUseCaseInit.Do(func() {
		c.projectUseCase, err = c.initProjectUseCase()
		if err != nil {
			c.initErrors["projectUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["projectUseCase"]; exists {
		return nil, storedErr
	}
	return c.projectUseCase, nil
}

// ProjectHandler returns the project HTTP handler.
func (c *Container) ProjectHandler() (*projectHTTP.ProjectHandler, error) {
	var err error
	c.projectHandlerInit.Do(func() {
		var useCase projectUsecase.ProjectUseCase
		useCase, err = c.ProjectUseCase()
		if err != nil {
			c.initErrors["projectHandler"] = err
			return
		}
		c.projectHandler = projectHTTP.NewProjectHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["projectHandler"]; exists {
		return nil, storedErr
	}
	return c.projectHandler, nil
}

// initProjectRepository creates the project repository instance.
func (c *Container) initProjectRepository() (projectUsecase.ProjectRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for project repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return projectRepository.NewMySQLProjectRepository(db), nil
	case "postgres":
		return projectRepository.NewPostgreSQLProjectRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initProjectUseCase creates the project use case with all its dependencies.
func (c *Container) initProjectUseCase() (projectUsecase.ProjectUseCase, error) {
	projectRepo, err := c.ProjectRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get project repository for project use case: %w", err)
	}

	grantRepo, err := c.GrantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get grant repository for project use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for project use case: %w", err)
	}

	return projectUsecase.NewProjectUseCase(projectRepo, grantRepo, txManager), nil
}
