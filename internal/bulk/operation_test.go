package bulk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dgiconsole/internal/bulk"
	"dgiconsole/internal/domain"
)

func TestParseOperation(t *testing.T) {
	op, err := bulk.ParseOperation(" Submit ")
	require.NoError(t, err)
	assert.Equal(t, bulk.OperationSubmit, op)

	op, err = bulk.ParseOperation("delete")
	require.NoError(t, err)
	assert.Equal(t, bulk.OperationDelete, op)

	_, err = bulk.ParseOperation("archive")
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestFilterInvoices_ManagerBulkSubmit(t *testing.T) {
	invoices := []domain.Invoice{
		{ID: 1, Status: domain.InvoiceStatusReady},
		{ID: 2, Status: domain.InvoiceStatusDraft},
		{ID: 3, Status: domain.InvoiceStatusReady},
		{ID: 4, Status: domain.InvoiceStatusDraft},
		{ID: 5, Status: domain.InvoiceStatusDraft},
	}

	ids := bulk.FilterInvoices(domain.RoleManager, invoices, bulk.OperationSubmit)
	assert.Equal(t, []int64{1, 3}, ids)

	plan := bulk.NewPlan(bulk.OperationSubmit, []int64{1, 2, 3, 4, 5}, ids)
	assert.Equal(t, 2, plan.Count())
	assert.Equal(t, []int64{2, 4, 5}, plan.Excluded)
}

func TestFilterInvoices_ClerkCannotSubmit(t *testing.T) {
	invoices := []domain.Invoice{
		{ID: 1, Status: domain.InvoiceStatusReady},
		{ID: 2, Status: domain.InvoiceStatusReady},
	}
	assert.Empty(t, bulk.FilterInvoices(domain.RoleClerk, invoices, bulk.OperationSubmit))
}

func TestFilterInvoices_DeleteByRole(t *testing.T) {
	invoices := []domain.Invoice{
		{ID: 10, Status: domain.InvoiceStatusDraft},
		{ID: 11, Status: domain.InvoiceStatusReady},
		{ID: 12, Status: domain.InvoiceStatusAwaitingClearance},
		{ID: 13, Status: domain.InvoiceStatusValidated},
		{ID: 14, Status: domain.InvoiceStatusRejected},
	}

	assert.Equal(t, []int64{10}, bulk.FilterInvoices(domain.RoleClerk, invoices, bulk.OperationDelete))
	assert.Equal(t, []int64{10, 11, 14}, bulk.FilterInvoices(domain.RoleAdmin, invoices, bulk.OperationDelete))
	assert.Empty(t, bulk.FilterInvoices(domain.Role("auditor"), invoices, bulk.OperationDelete))
}

func TestFilterInvoices_DedupesAndKeepsOrder(t *testing.T) {
	invoices := []domain.Invoice{
		{ID: 7, Status: domain.InvoiceStatusReady},
		{ID: 3, Status: domain.InvoiceStatusReady},
		{ID: 7, Status: domain.InvoiceStatusReady},
	}
	assert.Equal(t, []int64{7, 3}, bulk.FilterInvoices(domain.RoleManager, invoices, bulk.OperationSubmit))
}

func TestFilterQuotes(t *testing.T) {
	quotes := []domain.Quote{
		{ID: 1, Status: domain.QuoteStatusDraft},
		{ID: 2, Status: domain.QuoteStatusSent},
		{ID: 3, Status: domain.QuoteStatusAccepted},
		{ID: 4, Status: domain.QuoteStatusRejected},
	}

	assert.Equal(t, []int64{1, 2, 4}, bulk.FilterQuotes(domain.RoleManager, quotes, bulk.OperationDelete))
	assert.Equal(t, []int64{1}, bulk.FilterQuotes(domain.RoleClerk, quotes, bulk.OperationDelete))
	assert.Empty(t, bulk.FilterQuotes(domain.RoleAdmin, quotes, bulk.OperationSubmit))
}

func TestSelectAllInvoices_NeverIneligible(t *testing.T) {
	visible := []domain.Invoice{
		{ID: 1, Status: domain.InvoiceStatusValidated},
		{ID: 2, Status: domain.InvoiceStatusAwaitingClearance},
	}
	assert.Empty(t, bulk.SelectAllInvoices(domain.RoleAdmin, visible, bulk.OperationDelete))
}

func TestNewPlan_EmptyEligible(t *testing.T) {
	plan := bulk.NewPlan(bulk.OperationDelete, []int64{1, 1, 2}, nil)
	assert.Equal(t, 0, plan.Count())
	assert.NotNil(t, plan.Eligible)
	assert.Equal(t, []int64{1, 2}, plan.Excluded)
}
