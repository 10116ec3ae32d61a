// Package bulk decides which selected documents a bulk action may touch and
// runs the confirmed action over them.
package bulk

import (
	"fmt"
	"strings"

	"dgiconsole/internal/domain"
	"dgiconsole/internal/lifecycle"
)

// Operation is a bulk action offered on document lists.
type Operation string

const (
	OperationDelete Operation = "delete"
	OperationSubmit Operation = "submit"
)

// ParseOperation converts a request value into an Operation.
func ParseOperation(s string) (Operation, error) {
	switch Operation(strings.ToLower(strings.TrimSpace(s))) {
	case OperationDelete:
		return OperationDelete, nil
	case OperationSubmit:
		return OperationSubmit, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidOperation, s)
	}
}

// FilterInvoices returns, in input order and without duplicates, the ids of
// the invoices the role may apply op to.
func FilterInvoices(role domain.Role, invoices []domain.Invoice, op Operation) []int64 {
	seen := make(map[int64]struct{}, len(invoices))
	ids := make([]int64, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		if _, dup := seen[inv.ID]; dup {
			continue
		}
		var ok bool
		switch op {
		case OperationDelete:
			ok = lifecycle.CanDeleteInvoice(role, inv.Status)
		case OperationSubmit:
			ok = lifecycle.CanSubmitInvoice(role, inv.Status)
		}
		if ok {
			seen[inv.ID] = struct{}{}
			ids = append(ids, inv.ID)
		}
	}
	return ids
}

// FilterQuotes is FilterInvoices for quotes. Quotes are never submitted to
// the authority, so OperationSubmit always yields nothing.
func FilterQuotes(role domain.Role, quotes []domain.Quote, op Operation) []int64 {
	ids := make([]int64, 0, len(quotes))
	if op != OperationDelete {
		return ids
	}
	seen := make(map[int64]struct{}, len(quotes))
	for i := range quotes {
		q := &quotes[i]
		if _, dup := seen[q.ID]; dup {
			continue
		}
		if lifecycle.CanDeleteQuote(role, q.Status) {
			seen[q.ID] = struct{}{}
			ids = append(ids, q.ID)
		}
	}
	return ids
}

// SelectAllInvoices is the select-all control: every eligible id of the
// visible list, never an ineligible one.
func SelectAllInvoices(role domain.Role, visible []domain.Invoice, op Operation) []int64 {
	return FilterInvoices(role, visible, op)
}

// SelectAllQuotes is SelectAllInvoices for quotes.
func SelectAllQuotes(role domain.Role, visible []domain.Quote, op Operation) []int64 {
	return FilterQuotes(role, visible, op)
}

// Plan is what the confirmation dialog shows before a bulk run.
type Plan struct {
	Operation Operation `json:"operation"`
	Requested []int64   `json:"requested"`
	Eligible  []int64   `json:"eligible"`
	Excluded  []int64   `json:"excluded"`
}

// NewPlan records the ids the user asked for, the eligible subset, and the rest.
func NewPlan(op Operation, requested, eligible []int64) Plan {
	ok := make(map[int64]struct{}, len(eligible))
	for _, id := range eligible {
		ok[id] = struct{}{}
	}
	excluded := []int64{}
	seen := make(map[int64]struct{}, len(requested))
	for _, id := range requested {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, eligible := ok[id]; !eligible {
			excluded = append(excluded, id)
		}
	}
	if eligible == nil {
		eligible = []int64{}
	}
	return Plan{Operation: op, Requested: requested, Eligible: eligible, Excluded: excluded}
}

// Count is the number of documents the run will touch.
func (p Plan) Count() int {
	return len(p.Eligible)
}
