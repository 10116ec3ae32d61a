package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is the gateway's copy of a remote invoice.
type Invoice struct {
	ID           int64           `json:"id"`
	Number       string          `json:"number"`
	CustomerName string          `json:"customer_name"`
	Status       InvoiceStatus   `json:"status"`
	Total        decimal.Decimal `json:"total"`
	Currency     string          `json:"currency"`
	// DGISubmissionID is assigned by the authority once the invoice has been submitted.
	DGISubmissionID string `json:"dgi_submission_id,omitempty"`
	// DGIRejectionReason is only meaningful while Status is Rejected.
	DGIRejectionReason string     `json:"dgi_rejection_reason,omitempty"`
	IssuedAt           *time.Time `json:"issued_at,omitempty"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

// Submitted reports whether the authority has assigned a submission id.
func (inv *Invoice) Submitted() bool {
	return inv.DGISubmissionID != ""
}

// RejectionReason returns the authority's rejection reason while the invoice is Rejected.
func (inv *Invoice) RejectionReason() (string, bool) {
	if inv.Status != InvoiceStatusRejected {
		return "", false
	}
	return inv.DGIRejectionReason, true
}

// MarkValidated records a validated clearance outcome.
func (inv *Invoice) MarkValidated() {
	inv.Status = InvoiceStatusValidated
	inv.DGIRejectionReason = ""
}

// MarkRejected records a rejected clearance outcome with its reason.
func (inv *Invoice) MarkRejected(reason string) {
	inv.Status = InvoiceStatusRejected
	inv.DGIRejectionReason = reason
}

// Quote is the gateway's copy of a remote quote.
type Quote struct {
	ID                 int64           `json:"id"`
	Number             string          `json:"number"`
	CustomerName       string          `json:"customer_name"`
	Status             QuoteStatus     `json:"status"`
	Total              decimal.Decimal `json:"total"`
	Currency           string          `json:"currency"`
	ConvertedInvoiceID *int64          `json:"converted_invoice_id,omitempty"`
	UpdatedAt          *time.Time      `json:"updated_at,omitempty"`
}

// Session carries the authenticated caller from the HTTP boundary down to the
// services. Role and token are never read from anywhere else.
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ClearanceError is one structured error entry reported by the authority.
type ClearanceError struct {
	Message string `json:"error_message"`
}

// ClearanceReport is the authority's answer to a clearance status query.
type ClearanceReport struct {
	Status    ClearanceStatus  `json:"-"`
	RawStatus string           `json:"status"`
	Errors    []ClearanceError `json:"errors"`
}

// AuditEntry records a lifecycle action performed through the console.
type AuditEntry struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	DocumentType DocumentType    `db:"document_type" json:"document_type"`
	DocumentID   int64           `db:"document_id" json:"document_id"`
	Action       AuditAction     `db:"action" json:"action"`
	ActorID      string          `db:"actor_id" json:"actor_id"`
	ActorRole    Role            `db:"actor_role" json:"actor_role"`
	Outcome      AuditOutcome    `db:"outcome" json:"outcome"`
	Details      json.RawMessage `db:"details" json:"details"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}
