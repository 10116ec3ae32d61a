package domain

// DocumentType identifies the kind of document an action targets.
type DocumentType string

const (
	DocumentTypeInvoice DocumentType = "invoice"
	DocumentTypeQuote   DocumentType = "quote"
)

// AuditAction names a lifecycle action recorded in the audit log.
type AuditAction string

const (
	AuditStatusChanged    AuditAction = "status.changed"
	AuditDeleted          AuditAction = "document.deleted"
	AuditSubmitted        AuditAction = "invoice.submitted"
	AuditClearanceChecked AuditAction = "invoice.clearance_checked"
	AuditConverted        AuditAction = "quote.converted"
	AuditBulkDelete       AuditAction = "bulk.delete"
	AuditBulkSubmit       AuditAction = "bulk.submit"
)

// AuditOutcome is the result of an audited action.
type AuditOutcome string

const (
	AuditOutcomeSucceeded AuditOutcome = "succeeded"
	AuditOutcomeFailed    AuditOutcome = "failed"
	AuditOutcomePending   AuditOutcome = "pending"
	AuditOutcomeValidated AuditOutcome = "validated"
	AuditOutcomeRejected  AuditOutcome = "rejected"
)
