// Package mocks provides mock implementations for testing identity services.
package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockPasswordService is a mock implementation of PasswordService for testing.
type MockPasswordService struct {
	mock.Mock
}

// HashPassword mocks the HashPassword method of PasswordService.
func (m *MockPasswordService) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

// ComparePassword mocks the ComparePassword method of PasswordService.
func (m *MockPasswordService) ComparePassword(password, passwordHash string) bool {
	args := m.Called(password, passwordHash)
	return args.Bool(0)
}

// MockResetCodeService is a mock implementation of ResetCodeService for testing.
type MockResetCodeService struct {
	mock.Mock
}

// GenerateCode mocks the GenerateCode method of ResetCodeService.
func (m *MockResetCodeService) GenerateCode() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

// CompareCode mocks the CompareCode method of ResetCodeService.
func (m *MockResetCodeService) CompareCode(code, codeHash string) bool {
	args := m.Called(code, codeHash)
	return args.Bool(0)
}
