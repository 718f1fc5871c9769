// Package mocks provides mock implementations for testing identity use cases.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	identityDomain "github.com/allisson/projecthub/internal/identity/domain"
)

// MockUserRepository is a mock implementation of UserRepository for testing.
type MockUserRepository struct {
	mock.Mock
}

// Create mocks the Create method of UserRepository.
func (m *MockUserRepository) Create(ctx context.Context, user *identityDomain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// GetByID mocks the GetByID method of UserRepository.
func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*identityDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.User), args.Error(1)
}

// GetByEmail mocks the GetByEmail method of UserRepository.
func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*identityDomain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.User), args.Error(1)
}

// List mocks the List method of UserRepository.
func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identityDomain.User), args.Error(1)
}

// Delete mocks the Delete method of UserRepository.
func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// UpdateLastLogin mocks the UpdateLastLogin method of UserRepository.
func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// UpdatePassword mocks the UpdatePassword method of UserRepository.
func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

// SetRotationNonce mocks the SetRotationNonce method of UserRepository.
func (m *MockUserRepository) SetRotationNonce(ctx context.Context, id uuid.UUID, nonce string) error {
	args := m.Called(ctx, id, nonce)
	return args.Error(0)
}

// CompareAndSwapRotationNonce mocks the CompareAndSwapRotationNonce method of UserRepository.
func (m *MockUserRepository) CompareAndSwapRotationNonce(
	ctx context.Context,
	id uuid.UUID,
	current, next string,
) error {
	args := m.Called(ctx, id, current, next)
	return args.Error(0)
}

// SetResetChallenge mocks the SetResetChallenge method of UserRepository.
func (m *MockUserRepository) SetResetChallenge(
	ctx context.Context,
	id uuid.UUID,
	codeHash string,
	expiresAt time.Time,
) error {
	args := m.Called(ctx, id, codeHash, expiresAt)
	return args.Error(0)
}

// ClearResetChallenge mocks the ClearResetChallenge method of UserRepository.
func (m *MockUserRepository) ClearResetChallenge(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
