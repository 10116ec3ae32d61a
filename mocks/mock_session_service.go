package mocks

import (
	"github.com/stretchr/testify/mock"

	"dgiconsole/internal/domain"
)

// MockSessionService is a mock implementation of service.SessionService.
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Authenticate(token string) (*domain.Session, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) Invalidate(sess *domain.Session) {
	m.Called(sess)
}
