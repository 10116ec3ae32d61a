package domain

import (
	"fmt"
	"strings"
)

// InvoiceStatus is the lifecycle status of an invoice. The numeric value is the
// code used by the remote billing API.
type InvoiceStatus int

const (
	InvoiceStatusDraft             InvoiceStatus = 0
	InvoiceStatusReady             InvoiceStatus = 1
	InvoiceStatusAwaitingClearance InvoiceStatus = 2
	InvoiceStatusValidated         InvoiceStatus = 3
	InvoiceStatusRejected          InvoiceStatus = 4
)

var invoiceStatusNames = map[InvoiceStatus]string{
	InvoiceStatusDraft:             "Draft",
	InvoiceStatusReady:             "Ready",
	InvoiceStatusAwaitingClearance: "AwaitingClearance",
	InvoiceStatusValidated:         "Validated",
	InvoiceStatusRejected:          "Rejected",
}

// AllInvoiceStatuses returns every invoice status in enumeration order.
func AllInvoiceStatuses() []InvoiceStatus {
	return []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusReady,
		InvoiceStatusAwaitingClearance,
		InvoiceStatusValidated,
		InvoiceStatusRejected,
	}
}

// IsValid reports whether s is a known invoice status.
func (s InvoiceStatus) IsValid() bool {
	_, ok := invoiceStatusNames[s]
	return ok
}

func (s InvoiceStatus) String() string {
	if name, ok := invoiceStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("InvoiceStatus(%d)", int(s))
}

// Code returns the remote wire code of the status.
func (s InvoiceStatus) Code() int {
	return int(s)
}

// InvoiceStatusFromCode converts a remote wire code into an InvoiceStatus.
func InvoiceStatusFromCode(code int) (InvoiceStatus, error) {
	s := InvoiceStatus(code)
	if !s.IsValid() {
		return 0, fmt.Errorf("%w: invoice status code %d", ErrInvalidStatus, code)
	}
	return s, nil
}

// ParseInvoiceStatus converts a status name (case-insensitive) into an InvoiceStatus.
func ParseInvoiceStatus(name string) (InvoiceStatus, error) {
	for s, n := range invoiceStatusNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: invoice status %q", ErrInvalidStatus, name)
}

func (s InvoiceStatus) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: invoice status code %d", ErrInvalidStatus, int(s))
	}
	return []byte(s.String()), nil
}

func (s *InvoiceStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseInvoiceStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// QuoteStatus is the lifecycle status of a quote.
type QuoteStatus int

const (
	QuoteStatusDraft QuoteStatus = iota
	QuoteStatusSent
	QuoteStatusAccepted
	QuoteStatusRejected
	QuoteStatusConverted
)

var quoteStatusNames = map[QuoteStatus]string{
	QuoteStatusDraft:     "Draft",
	QuoteStatusSent:      "Sent",
	QuoteStatusAccepted:  "Accepted",
	QuoteStatusRejected:  "Rejected",
	QuoteStatusConverted: "Converted",
}

// AllQuoteStatuses returns every quote status in enumeration order.
func AllQuoteStatuses() []QuoteStatus {
	return []QuoteStatus{
		QuoteStatusDraft,
		QuoteStatusSent,
		QuoteStatusAccepted,
		QuoteStatusRejected,
		QuoteStatusConverted,
	}
}

// IsValid reports whether s is a known quote status.
func (s QuoteStatus) IsValid() bool {
	_, ok := quoteStatusNames[s]
	return ok
}

func (s QuoteStatus) String() string {
	if name, ok := quoteStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("QuoteStatus(%d)", int(s))
}

// ParseQuoteStatus converts a status name (case-insensitive) into a QuoteStatus.
// The remote billing API uses these names on the wire.
func ParseQuoteStatus(name string) (QuoteStatus, error) {
	for s, n := range quoteStatusNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: quote status %q", ErrInvalidStatus, name)
}

func (s QuoteStatus) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: quote status %d", ErrInvalidStatus, int(s))
	}
	return []byte(s.String()), nil
}

func (s *QuoteStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseQuoteStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ClearanceStatus is the tax authority's view of a submitted invoice.
type ClearanceStatus int

const (
	ClearanceStatusUnknown ClearanceStatus = iota
	ClearanceStatusPending
	ClearanceStatusValidated
	ClearanceStatusRejected
)

// ParseClearanceStatus maps the authority's status string. Unrecognized values
// map to ClearanceStatusUnknown so callers can surface them instead of guessing.
func ParseClearanceStatus(s string) ClearanceStatus {
	switch s {
	case "PendingValidation":
		return ClearanceStatusPending
	case "Validated":
		return ClearanceStatusValidated
	case "Rejected":
		return ClearanceStatusRejected
	default:
		return ClearanceStatusUnknown
	}
}

func (s ClearanceStatus) String() string {
	switch s {
	case ClearanceStatusPending:
		return "PendingValidation"
	case ClearanceStatusValidated:
		return "Validated"
	case ClearanceStatusRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}
