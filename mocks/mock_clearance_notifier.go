package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dgiconsole/internal/domain"
)

// MockClearanceNotifier is a mock implementation of port.ClearanceNotifier.
type MockClearanceNotifier struct {
	mock.Mock
}

func (m *MockClearanceNotifier) NotifyClearance(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}
