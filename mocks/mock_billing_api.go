package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dgiconsole/internal/domain"
)

// MockBillingAPI is a mock implementation of port.BillingAPI.
type MockBillingAPI struct {
	mock.Mock
}

func (m *MockBillingAPI) ListInvoices(ctx context.Context, token string) ([]domain.Invoice, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockBillingAPI) GetInvoice(ctx context.Context, token string, id int64) (*domain.Invoice, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockBillingAPI) UpdateInvoiceStatus(ctx context.Context, token string, id int64, status domain.InvoiceStatus) error {
	args := m.Called(ctx, token, id, status)
	return args.Error(0)
}

func (m *MockBillingAPI) DeleteInvoice(ctx context.Context, token string, id int64) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func (m *MockBillingAPI) SubmitInvoice(ctx context.Context, token string, id int64) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func (m *MockBillingAPI) GetClearanceStatus(ctx context.Context, token string, invoiceID int64) (*domain.ClearanceReport, error) {
	args := m.Called(ctx, token, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClearanceReport), args.Error(1)
}

func (m *MockBillingAPI) ListQuotes(ctx context.Context, token string) ([]domain.Quote, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quote), args.Error(1)
}

func (m *MockBillingAPI) GetQuote(ctx context.Context, token string, id int64) (*domain.Quote, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockBillingAPI) UpdateQuoteStatus(ctx context.Context, token string, id int64, status domain.QuoteStatus) error {
	args := m.Called(ctx, token, id, status)
	return args.Error(0)
}

func (m *MockBillingAPI) DeleteQuote(ctx context.Context, token string, id int64) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func (m *MockBillingAPI) ConvertQuote(ctx context.Context, token string, id int64) (int64, error) {
	args := m.Called(ctx, token, id)
	return args.Get(0).(int64), args.Error(1)
}
