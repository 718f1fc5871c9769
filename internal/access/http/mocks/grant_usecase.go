// Package mocks provides mock implementations for testing access grant handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	accessDomain "github.com/allisson/projecthub/internal/access/domain"
	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
)

// MockGrantUseCase is a mock implementation of the grant use case.
type MockGrantUseCase struct {
	mock.Mock
}

func (m *MockGrantUseCase) SetGrant(
	ctx context.Context,
	actor *identityDomain.User,
	input *accessDomain.SetGrantInput,
) (*accessDomain.Grant, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accessDomain.Grant), args.Error(1)
}

func (m *MockGrantUseCase) GetGrant(
	ctx context.Context,
	actor *identityDomain.User,
	userID, projectID uuid.UUID,
) (*accessDomain.Grant, error) {
	args := m.Called(ctx, actor, userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accessDomain.Grant), args.Error(1)
}

func (m *MockGrantUseCase) ListProjectGrants(
	ctx context.Context,
	actor *identityDomain.User,
	projectID uuid.UUID,
	offset, limit int,
) ([]*accessDomain.Grant, error) {
	args := m.Called(ctx, actor, projectID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*accessDomain.Grant), args.Error(1)
}

func (m *MockGrantUseCase) RevokeGrant(
	ctx context.Context,
	actor *identityDomain.User,
	userID, projectID uuid.UUID,
) error {
	args := m.Called(ctx, actor, userID, projectID)
	return args.Error(0)
}
