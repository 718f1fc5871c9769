// Package mocks provides mock implementations for testing access use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	accessDomain "github.com/allisson/projecthub/internal/access/domain"
)

// MockGrantRepository is a mock implementation of GrantRepository for testing.
type MockGrantRepository struct {
	mock.Mock
}

// Upsert mocks the Upsert method of GrantRepository.
func (m *MockGrantRepository) Upsert(ctx context.Context, grant *accessDomain.Grant) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

// Get mocks the Get method of GrantRepository.
func (m *MockGrantRepository) Get(
	ctx context.Context,
	userID, projectID uuid.UUID,
) (*accessDomain.Grant, error) {
	args := m.Called(ctx, userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accessDomain.Grant), args.Error(1)
}

// Delete mocks the Delete method of GrantRepository.
func (m *MockGrantRepository) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	args := m.Called(ctx, userID, projectID)
	return args.Error(0)
}

// ListByProject mocks the ListByProject method of GrantRepository.
func (m *MockGrantRepository) ListByProject(
	ctx context.Context,
	projectID uuid.UUID,
	offset, limit int,
) ([]*accessDomain.Grant, error) {
	args := m.Called(ctx, projectID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*accessDomain.Grant), args.Error(1)
}

// DeleteByProject mocks the DeleteByProject method of GrantRepository.
func (m *MockGrantRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}
