package port

import (
	"context"

	"dgiconsole/internal/domain"
)

// AuditRepository defines the contract for lifecycle audit log persistence.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
	ListByDocument(ctx context.Context, docType domain.DocumentType, documentID int64, offset, limit int) ([]domain.AuditEntry, int, error)
}
