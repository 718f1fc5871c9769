// Package mocks provides mock implementations for testing project use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	projectDomain "github.com/allisson/projecthub/internal/project/domain"
)

// MockProjectRepository is a mock implementation of ProjectRepository for testing.
type MockProjectRepository struct {
	mock.Mock
}

// Create mocks the Create method of ProjectRepository.
func (m *MockProjectRepository) Create(ctx context.Context, project *projectDomain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

// GetByID mocks the GetByID method of ProjectRepository.
func (m *MockProjectRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*projectDomain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*projectDomain.Project), args.Error(1)
}

// Update mocks the Update method of ProjectRepository.
func (m *MockProjectRepository) Update(ctx context.Context, project *projectDomain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

// Delete mocks the Delete method of ProjectRepository.
func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ListByUser mocks the ListByUser method of ProjectRepository.
func (m *MockProjectRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	offset, limit int,
) ([]*projectDomain.Project, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*projectDomain.Project), args.Error(1)
}
