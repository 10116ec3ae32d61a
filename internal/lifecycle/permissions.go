package lifecycle

import "dgiconsole/internal/domain"

// InvoicePermissions bundles every per-row decision for one invoice so that
// callers never derive them separately.
type InvoicePermissions struct {
	CanEdit                 bool                   `json:"can_edit"`
	CanDelete               bool                   `json:"can_delete"`
	CanSubmit               bool                   `json:"can_submit"`
	CanChangeStatus         bool                   `json:"can_change_status"`
	CanCheckClearanceStatus bool                   `json:"can_check_clearance_status"`
	CanViewRejectionReason  bool                   `json:"can_view_rejection_reason"`
	ValidTransitions        []domain.InvoiceStatus `json:"valid_transitions"`
}

// CanModifyInvoice: clerks edit drafts only; managers and admins edit any open invoice.
func CanModifyInvoice(role domain.Role, status domain.InvoiceStatus) bool {
	if canManage(role) {
		return invoiceOpen(status)
	}
	if role == domain.RoleClerk {
		return status == domain.InvoiceStatusDraft
	}
	return false
}

// CanDeleteInvoice shares eligibility with CanModifyInvoice.
func CanDeleteInvoice(role domain.Role, status domain.InvoiceStatus) bool {
	return CanModifyInvoice(role, status)
}

// CanChangeInvoiceStatus is never true for clerks.
func CanChangeInvoiceStatus(role domain.Role, status domain.InvoiceStatus) bool {
	return canManage(role) && invoiceOpen(status)
}

// CanSubmitInvoice gates the irreversible handoff to the tax authority.
func CanSubmitInvoice(role domain.Role, status domain.InvoiceStatus) bool {
	return canManage(role) && status == domain.InvoiceStatusReady
}

// CanCheckClearanceStatus gates an on-demand query to the tax authority.
func CanCheckClearanceStatus(role domain.Role, status domain.InvoiceStatus) bool {
	return canManage(role) && status == domain.InvoiceStatusAwaitingClearance
}

// CanViewRejectionReason is open to every role once an invoice is Rejected.
func CanViewRejectionReason(_ domain.Role, status domain.InvoiceStatus) bool {
	return status == domain.InvoiceStatusRejected
}

// InvoiceActions computes the full permission record for (role, status).
func InvoiceActions(role domain.Role, status domain.InvoiceStatus) InvoicePermissions {
	return InvoicePermissions{
		CanEdit:                 CanModifyInvoice(role, status),
		CanDelete:               CanDeleteInvoice(role, status),
		CanSubmit:               CanSubmitInvoice(role, status),
		CanChangeStatus:         CanChangeInvoiceStatus(role, status),
		CanCheckClearanceStatus: CanCheckClearanceStatus(role, status),
		CanViewRejectionReason:  CanViewRejectionReason(role, status),
		ValidTransitions:        InvoiceTransitions(role, status),
	}
}
