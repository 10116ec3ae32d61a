package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dgiconsole/internal/bulk"
	"dgiconsole/internal/cache"
	"dgiconsole/internal/domain"
	"dgiconsole/internal/service"
	"dgiconsole/mocks"
)

func setupQuoteService() (service.QuoteService, *mocks.MockBillingAPI, *mocks.MockAuditRepo, *cache.DocumentCache[domain.Quote]) {
	api := new(mocks.MockBillingAPI)
	auditRepo := new(mocks.MockAuditRepo)
	quotes := cache.NewDocumentCache(func(q domain.Quote) int64 { return q.ID })
	auditRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditEntry")).Return(nil).Maybe()
	svc := service.NewQuoteService(api, quotes, bulk.NewExecutor(bulk.Config{Concurrency: 2}, nil), nil, auditRepo, nil)
	return svc, api, auditRepo, quotes
}

func quote(id int64, status domain.QuoteStatus) *domain.Quote {
	return &domain.Quote{ID: id, Number: "Q", Status: status}
}

func TestQuoteService_List(t *testing.T) {
	svc, api, _, _ := setupQuoteService()
	api.On("ListQuotes", mock.Anything, "tok").Return([]domain.Quote{
		*quote(1, domain.QuoteStatusAccepted),
		*quote(2, domain.QuoteStatusSent),
	}, nil)

	views, err := svc.List(context.Background(), session(domain.RoleManager))

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.True(t, views[0].Permissions.CanConvertToInvoice)
	assert.False(t, views[0].Permissions.CanChangeStatus)
	assert.Equal(t, []domain.QuoteStatus{domain.QuoteStatusDraft, domain.QuoteStatusSent}, views[1].Permissions.ValidTransitions)
}

func TestQuoteService_ChangeStatus_DraftToSent(t *testing.T) {
	svc, api, _, _ := setupQuoteService()
	api.On("GetQuote", mock.Anything, "tok", int64(3)).Return(quote(3, domain.QuoteStatusDraft), nil).Once()
	api.On("UpdateQuoteStatus", mock.Anything, "tok", int64(3), domain.QuoteStatusSent).Return(nil)
	api.On("GetQuote", mock.Anything, "tok", int64(3)).Return(quote(3, domain.QuoteStatusSent), nil).Once()

	view, err := svc.ChangeStatus(context.Background(), session(domain.RoleAdmin), 3, domain.QuoteStatusSent)

	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusSent, view.Status)
}

func TestQuoteService_ChangeStatus_RefreshFailureReturnsCachedRow(t *testing.T) {
	svc, api, _, quotes := setupQuoteService()
	api.On("GetQuote", mock.Anything, "tok", int64(3)).Return(quote(3, domain.QuoteStatusDraft), nil).Once()
	api.On("UpdateQuoteStatus", mock.Anything, "tok", int64(3), domain.QuoteStatusSent).Return(nil)
	api.On("GetQuote", mock.Anything, "tok", int64(3)).Return(nil, domain.ErrRemoteUnavailable).Once()

	view, err := svc.ChangeStatus(context.Background(), session(domain.RoleAdmin), 3, domain.QuoteStatusSent)

	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusSent, view.Status)
	assert.True(t, quotes.Dirty(3))
	api.AssertExpectations(t)
}

func TestQuoteService_ChangeStatus_CannotForceAccepted(t *testing.T) {
	svc, api, _, _ := setupQuoteService()
	api.On("GetQuote", mock.Anything, "tok", int64(3)).Return(quote(3, domain.QuoteStatusSent), nil)

	_, err := svc.ChangeStatus(context.Background(), session(domain.RoleAdmin), 3, domain.QuoteStatusAccepted)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	api.AssertNotCalled(t, "UpdateQuoteStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestQuoteService_Convert(t *testing.T) {
	svc, api, auditRepo, quotes := setupQuoteService()
	api.On("GetQuote", mock.Anything, "tok", int64(9)).Return(quote(9, domain.QuoteStatusAccepted), nil)
	api.On("ConvertQuote", mock.Anything, "tok", int64(9)).Return(int64(1001), nil)

	res, err := svc.Convert(context.Background(), session(domain.RoleManager), 9)

	require.NoError(t, err)
	assert.Equal(t, int64(1001), res.InvoiceID)
	assert.Equal(t, domain.QuoteStatusConverted, res.Quote.Status)
	assert.False(t, res.Quote.Permissions.CanConvertToInvoice)
	assert.True(t, quotes.Dirty(9))
	auditRepo.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(e *domain.AuditEntry) bool {
		return e.Action == domain.AuditConverted && e.DocumentType == domain.DocumentTypeQuote
	}))
}

func TestQuoteService_Convert_RequiresAccepted(t *testing.T) {
	svc, api, _, _ := setupQuoteService()
	api.On("GetQuote", mock.Anything, "tok", int64(9)).Return(quote(9, domain.QuoteStatusSent), nil)

	_, err := svc.Convert(context.Background(), session(domain.RoleAdmin), 9)

	assert.ErrorIs(t, err, domain.ErrActionNotPermitted)
	api.AssertNotCalled(t, "ConvertQuote", mock.Anything, mock.Anything, mock.Anything)
}

func TestQuoteService_Convert_ClerkDenied(t *testing.T) {
	svc, api, _, _ := setupQuoteService()
	api.On("GetQuote", mock.Anything, "tok", int64(9)).Return(quote(9, domain.QuoteStatusAccepted), nil)

	_, err := svc.Convert(context.Background(), session(domain.RoleClerk), 9)

	assert.ErrorIs(t, err, domain.ErrActionNotPermitted)
}

func TestQuoteService_Delete(t *testing.T) {
	svc, api, _, _ := setupQuoteService()
	api.On("GetQuote", mock.Anything, "tok", int64(4)).Return(quote(4, domain.QuoteStatusConverted), nil)

	err := svc.Delete(context.Background(), session(domain.RoleAdmin), 4)

	assert.ErrorIs(t, err, domain.ErrActionNotPermitted)
	api.AssertNotCalled(t, "DeleteQuote", mock.Anything, mock.Anything, mock.Anything)
}

func TestQuoteService_ExecuteBulk_SubmitRejected(t *testing.T) {
	svc, api, _, _ := setupQuoteService()

	_, err := svc.ExecuteBulk(context.Background(), session(domain.RoleAdmin), bulk.OperationSubmit, []int64{1}, true)

	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	api.AssertNotCalled(t, "ListQuotes", mock.Anything, mock.Anything)
}

func TestQuoteService_ExecuteBulk_Delete(t *testing.T) {
	svc, api, _, quotes := setupQuoteService()
	api.On("ListQuotes", mock.Anything, "tok").Return([]domain.Quote{
		*quote(1, domain.QuoteStatusDraft),
		*quote(2, domain.QuoteStatusAccepted),
		*quote(3, domain.QuoteStatusRejected),
	}, nil)
	api.On("DeleteQuote", mock.Anything, "tok", int64(1)).Return(nil)
	api.On("DeleteQuote", mock.Anything, "tok", int64(3)).Return(nil)

	res, err := svc.ExecuteBulk(context.Background(), session(domain.RoleManager), bulk.OperationDelete, []int64{1, 2, 3}, true)

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, res.Succeeded)
	assert.Len(t, quotes.List(), 1)
}
