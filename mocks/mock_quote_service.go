package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dgiconsole/internal/bulk"
	"dgiconsole/internal/domain"
	"dgiconsole/internal/service"
)

// MockQuoteService is a mock implementation of service.QuoteService.
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) List(ctx context.Context, sess *domain.Session) ([]service.QuoteView, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.QuoteView), args.Error(1)
}

func (m *MockQuoteService) Get(ctx context.Context, sess *domain.Session, id int64) (*service.QuoteView, error) {
	args := m.Called(ctx, sess, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QuoteView), args.Error(1)
}

func (m *MockQuoteService) ChangeStatus(ctx context.Context, sess *domain.Session, id int64, to domain.QuoteStatus) (*service.QuoteView, error) {
	args := m.Called(ctx, sess, id, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QuoteView), args.Error(1)
}

func (m *MockQuoteService) Delete(ctx context.Context, sess *domain.Session, id int64) error {
	args := m.Called(ctx, sess, id)
	return args.Error(0)
}

func (m *MockQuoteService) Convert(ctx context.Context, sess *domain.Session, id int64) (*service.ConversionResult, error) {
	args := m.Called(ctx, sess, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ConversionResult), args.Error(1)
}

func (m *MockQuoteService) SelectAll(ctx context.Context, sess *domain.Session, op bulk.Operation) ([]int64, error) {
	args := m.Called(ctx, sess, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockQuoteService) PreviewBulk(ctx context.Context, sess *domain.Session, op bulk.Operation, ids []int64) (*bulk.Plan, error) {
	args := m.Called(ctx, sess, op, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bulk.Plan), args.Error(1)
}

func (m *MockQuoteService) ExecuteBulk(ctx context.Context, sess *domain.Session, op bulk.Operation, ids []int64, confirmed bool) (*bulk.Result, error) {
	args := m.Called(ctx, sess, op, ids, confirmed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bulk.Result), args.Error(1)
}

func (m *MockQuoteService) History(ctx context.Context, sess *domain.Session, id int64, offset, limit int) ([]domain.AuditEntry, int, error) {
	args := m.Called(ctx, sess, id, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.AuditEntry), args.Int(1), args.Error(2)
}
