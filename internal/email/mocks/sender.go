// Package mocks provides mock implementations for testing email delivery.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSender is a mock implementation of Sender for testing.
type MockSender struct {
	mock.Mock
}

// Send mocks the Send method of Sender.
func (m *MockSender) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}
