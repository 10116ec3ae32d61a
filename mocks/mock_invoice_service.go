package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dgiconsole/internal/bulk"
	"dgiconsole/internal/domain"
	"dgiconsole/internal/service"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) List(ctx context.Context, sess *domain.Session) ([]service.InvoiceView, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.InvoiceView), args.Error(1)
}

func (m *MockInvoiceService) Get(ctx context.Context, sess *domain.Session, id int64) (*service.InvoiceView, error) {
	args := m.Called(ctx, sess, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InvoiceView), args.Error(1)
}

func (m *MockInvoiceService) ChangeStatus(ctx context.Context, sess *domain.Session, id int64, to domain.InvoiceStatus) (*service.InvoiceView, error) {
	args := m.Called(ctx, sess, id, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InvoiceView), args.Error(1)
}

func (m *MockInvoiceService) Delete(ctx context.Context, sess *domain.Session, id int64) error {
	args := m.Called(ctx, sess, id)
	return args.Error(0)
}

func (m *MockInvoiceService) Submit(ctx context.Context, sess *domain.Session, id int64) ([]service.InvoiceView, error) {
	args := m.Called(ctx, sess, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.InvoiceView), args.Error(1)
}

func (m *MockInvoiceService) CheckClearance(ctx context.Context, sess *domain.Session, id int64) (*service.ClearanceOutcome, error) {
	args := m.Called(ctx, sess, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ClearanceOutcome), args.Error(1)
}

func (m *MockInvoiceService) SelectAll(ctx context.Context, sess *domain.Session, op bulk.Operation) ([]int64, error) {
	args := m.Called(ctx, sess, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockInvoiceService) PreviewBulk(ctx context.Context, sess *domain.Session, op bulk.Operation, ids []int64) (*bulk.Plan, error) {
	args := m.Called(ctx, sess, op, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bulk.Plan), args.Error(1)
}

func (m *MockInvoiceService) ExecuteBulk(ctx context.Context, sess *domain.Session, op bulk.Operation, ids []int64, confirmed bool) (*bulk.Result, error) {
	args := m.Called(ctx, sess, op, ids, confirmed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bulk.Result), args.Error(1)
}

func (m *MockInvoiceService) History(ctx context.Context, sess *domain.Session, id int64, offset, limit int) ([]domain.AuditEntry, int, error) {
	args := m.Called(ctx, sess, id, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.AuditEntry), args.Int(1), args.Error(2)
}
