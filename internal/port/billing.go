package port

import (
	"context"

	"dgiconsole/internal/domain"
)

// InvoiceAPI is the remote billing API's invoice surface. Every call is made on
// behalf of the session token passed in.
type InvoiceAPI interface {
	ListInvoices(ctx context.Context, token string) ([]domain.Invoice, error)
	GetInvoice(ctx context.Context, token string, id int64) (*domain.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, token string, id int64, status domain.InvoiceStatus) error
	DeleteInvoice(ctx context.Context, token string, id int64) error
	SubmitInvoice(ctx context.Context, token string, id int64) error
}

// ClearanceAuthority answers clearance status queries for submitted invoices.
type ClearanceAuthority interface {
	GetClearanceStatus(ctx context.Context, token string, invoiceID int64) (*domain.ClearanceReport, error)
}

// QuoteAPI is the remote billing API's quote surface.
type QuoteAPI interface {
	ListQuotes(ctx context.Context, token string) ([]domain.Quote, error)
	GetQuote(ctx context.Context, token string, id int64) (*domain.Quote, error)
	UpdateQuoteStatus(ctx context.Context, token string, id int64, status domain.QuoteStatus) error
	DeleteQuote(ctx context.Context, token string, id int64) error
	ConvertQuote(ctx context.Context, token string, id int64) (invoiceID int64, err error)
}

// BillingAPI is the full remote surface used by the gateway.
type BillingAPI interface {
	InvoiceAPI
	ClearanceAuthority
	QuoteAPI
}
