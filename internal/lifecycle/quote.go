package lifecycle

import "dgiconsole/internal/domain"

// QuotePermissions bundles every per-row decision for one quote.
type QuotePermissions struct {
	CanEdit             bool                 `json:"can_edit"`
	CanDelete           bool                 `json:"can_delete"`
	CanConvertToInvoice bool                 `json:"can_convert_to_invoice"`
	CanChangeStatus     bool                 `json:"can_change_status"`
	ValidTransitions    []domain.QuoteStatus `json:"valid_transitions"`
}

func CanModifyQuote(role domain.Role, status domain.QuoteStatus) bool {
	if canManage(role) {
		return quoteOpen(status)
	}
	if role == domain.RoleClerk {
		return status == domain.QuoteStatusDraft
	}
	return false
}

func CanDeleteQuote(role domain.Role, status domain.QuoteStatus) bool {
	return CanModifyQuote(role, status)
}

func CanChangeQuoteStatus(role domain.Role, status domain.QuoteStatus) bool {
	return canManage(role) && quoteOpen(status)
}

// CanConvertToInvoice gates the one-way Accepted -> Converted action.
func CanConvertToInvoice(role domain.Role, status domain.QuoteStatus) bool {
	return canManage(role) && status == domain.QuoteStatusAccepted
}

// QuoteActions computes the full permission record for (role, status).
func QuoteActions(role domain.Role, status domain.QuoteStatus) QuotePermissions {
	return QuotePermissions{
		CanEdit:             CanModifyQuote(role, status),
		CanDelete:           CanDeleteQuote(role, status),
		CanConvertToInvoice: CanConvertToInvoice(role, status),
		CanChangeStatus:     CanChangeQuoteStatus(role, status),
		ValidTransitions:    QuoteTransitions(role, status),
	}
}
