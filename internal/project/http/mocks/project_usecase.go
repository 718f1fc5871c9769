// Package mocks provides mock implementations for testing project handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
	projectDomain "github.com/allisson/projecthub/internal/project/domain"
)

// MockProjectUseCase is a mock implementation of the project use case.
type MockProjectUseCase struct {
	mock.Mock
}

func (m *MockProjectUseCase) Create(
	ctx context.Context,
	actor *identityDomain.User,
	input *projectDomain.CreateProjectInput,
) (*projectDomain.Project, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*projectDomain.Project), args.Error(1)
}

func (m *MockProjectUseCase) Get(
	ctx context.Context,
	actor *identityDomain.User,
	projectID uuid.UUID,
) (*projectDomain.Project, error) {
	args := m.Called(ctx, actor, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*projectDomain.Project), args.Error(1)
}

func (m *MockProjectUseCase) List(
	ctx context.Context,
	actor *identityDomain.User,
	offset, limit int,
) ([]*projectDomain.Project, error) {
	args := m.Called(ctx, actor, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*projectDomain.Project), args.Error(1)
}

func (m *MockProjectUseCase) Update(
	ctx context.Context,
	actor *identityDomain.User,
	projectID uuid.UUID,
	input *projectDomain.UpdateProjectInput,
) (*projectDomain.Project, error) {
	args := m.Called(ctx, actor, projectID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*projectDomain.Project), args.Error(1)
}

func (m *MockProjectUseCase) Delete(
	ctx context.Context,
	actor *identityDomain.User,
	projectID uuid.UUID,
) error {
	args := m.Called(ctx, actor, projectID)
	return args.Error(0)
}
