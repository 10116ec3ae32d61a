// Package lifecycle decides what a role may do to an invoice or quote in a given
// status. Every function is pure: callers must pass the most recently fetched
// status and must not keep a decision across a status change.
package lifecycle

import "dgiconsole/internal/domain"

// canManage reports whether the role may move documents between open statuses.
func canManage(role domain.Role) bool {
	return role.AtLeast(domain.RoleManager)
}

// invoiceOpen reports whether an invoice status can still be changed by users.
func invoiceOpen(s domain.InvoiceStatus) bool {
	switch s {
	case domain.InvoiceStatusDraft, domain.InvoiceStatusReady, domain.InvoiceStatusRejected:
		return true
	}
	return false
}

// quoteOpen reports whether a quote status can still be changed by users.
func quoteOpen(s domain.QuoteStatus) bool {
	switch s {
	case domain.QuoteStatusDraft, domain.QuoteStatusSent, domain.QuoteStatusRejected:
		return true
	}
	return false
}

// InvoiceTransitions returns the statuses a role may set on an invoice currently
// in status. The current status is always included. AwaitingClearance and
// Validated are never offered as targets: they are reached only by submission
// and by the authority's answer.
func InvoiceTransitions(role domain.Role, status domain.InvoiceStatus) []domain.InvoiceStatus {
	if !canManage(role) {
		return []domain.InvoiceStatus{status}
	}
	switch status {
	case domain.InvoiceStatusDraft, domain.InvoiceStatusReady:
		return []domain.InvoiceStatus{domain.InvoiceStatusDraft, domain.InvoiceStatusReady}
	case domain.InvoiceStatusRejected:
		return []domain.InvoiceStatus{domain.InvoiceStatusDraft, domain.InvoiceStatusRejected}
	default:
		return []domain.InvoiceStatus{status}
	}
}

// QuoteTransitions is the quote counterpart of InvoiceTransitions, with Sent in
// place of Ready. Accepted and Converted are immutable by user action.
func QuoteTransitions(role domain.Role, status domain.QuoteStatus) []domain.QuoteStatus {
	if !canManage(role) {
		return []domain.QuoteStatus{status}
	}
	switch status {
	case domain.QuoteStatusDraft, domain.QuoteStatusSent:
		return []domain.QuoteStatus{domain.QuoteStatusDraft, domain.QuoteStatusSent}
	case domain.QuoteStatusRejected:
		return []domain.QuoteStatus{domain.QuoteStatusDraft, domain.QuoteStatusRejected}
	default:
		return []domain.QuoteStatus{status}
	}
}

// CanTransitionInvoice reports whether to is offered for an invoice in from.
func CanTransitionInvoice(role domain.Role, from, to domain.InvoiceStatus) bool {
	for _, s := range InvoiceTransitions(role, from) {
		if s == to {
			return true
		}
	}
	return false
}

// CanTransitionQuote reports whether to is offered for a quote in from.
func CanTransitionQuote(role domain.Role, from, to domain.QuoteStatus) bool {
	for _, s := range QuoteTransitions(role, from) {
		if s == to {
			return true
		}
	}
	return false
}
