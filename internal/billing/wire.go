package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"dgiconsole/internal/domain"
)

// invoiceDTO models an invoice as served by the remote API. Status is the
// numeric lifecycle code.
type invoiceDTO struct {
	ID                 int64           `json:"id"`
	InvoiceNumber      string          `json:"invoiceNumber"`
	CustomerName       string          `json:"customerName"`
	Status             int             `json:"status"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	Currency           string          `json:"currency"`
	DGISubmissionID    string          `json:"dgiSubmissionId"`
	DGIRejectionReason string          `json:"dgiRejectionReason"`
	IssueDate          *time.Time      `json:"issueDate"`
	UpdatedAt          *time.Time      `json:"updatedAt"`
}

func (d *invoiceDTO) toDomain() (domain.Invoice, error) {
	status, err := domain.InvoiceStatusFromCode(d.Status)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("invoice %d: %w: code %d", d.ID, domain.ErrUnknownRemoteStatus, d.Status)
	}
	return domain.Invoice{
		ID:                 d.ID,
		Number:             d.InvoiceNumber,
		CustomerName:       d.CustomerName,
		Status:             status,
		Total:              d.TotalAmount,
		Currency:           d.Currency,
		DGISubmissionID:    d.DGISubmissionID,
		DGIRejectionReason: d.DGIRejectionReason,
		IssuedAt:           d.IssueDate,
		UpdatedAt:          d.UpdatedAt,
	}, nil
}

// quoteDTO models a quote as served by the remote API. Status is the name.
type quoteDTO struct {
	ID                 int64           `json:"id"`
	QuoteNumber        string          `json:"quoteNumber"`
	CustomerName       string          `json:"customerName"`
	Status             string          `json:"status"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	Currency           string          `json:"currency"`
	ConvertedInvoiceID *int64          `json:"convertedInvoiceId"`
	UpdatedAt          *time.Time      `json:"updatedAt"`
}

func (d *quoteDTO) toDomain() (domain.Quote, error) {
	status, err := domain.ParseQuoteStatus(d.Status)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("quote %d: %w: %q", d.ID, domain.ErrUnknownRemoteStatus, d.Status)
	}
	return domain.Quote{
		ID:                 d.ID,
		Number:             d.QuoteNumber,
		CustomerName:       d.CustomerName,
		Status:             status,
		Total:              d.TotalAmount,
		Currency:           d.Currency,
		ConvertedInvoiceID: d.ConvertedInvoiceID,
		UpdatedAt:          d.UpdatedAt,
	}, nil
}

type clearanceDTO struct {
	Status string `json:"status"`
	Errors []struct {
		ErrorMessage string `json:"errorMessage"`
	} `json:"errors"`
}

func (d *clearanceDTO) toDomain() *domain.ClearanceReport {
	report := &domain.ClearanceReport{
		Status:    domain.ParseClearanceStatus(d.Status),
		RawStatus: d.Status,
		Errors:    make([]domain.ClearanceError, 0, len(d.Errors)),
	}
	for _, e := range d.Errors {
		report.Errors = append(report.Errors, domain.ClearanceError{Message: e.ErrorMessage})
	}
	return report
}
