package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"dgiconsole/internal/domain"
	"dgiconsole/internal/port"
)

type auditRepo struct {
	db *sqlx.DB
}

// NewAuditRepo creates a new PostgreSQL-backed AuditRepository.
func NewAuditRepo(db *sqlx.DB) port.AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) Create(ctx context.Context, entry *domain.AuditEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO lifecycle_audit_log
		   (id, document_type, document_id, action, actor_id, actor_role, outcome, details)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.DocumentType, entry.DocumentID, entry.Action,
		entry.ActorID, entry.ActorRole, entry.Outcome, entry.Details)
	if err != nil {
		return fmt.Errorf("auditRepo.Create: %w", err)
	}
	return nil
}

func (r *auditRepo) ListByDocument(ctx context.Context, docType domain.DocumentType, documentID int64, offset, limit int) ([]domain.AuditEntry, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM lifecycle_audit_log WHERE document_type = $1 AND document_id = $2`,
		docType, documentID)
	if err != nil {
		return nil, 0, fmt.Errorf("auditRepo.ListByDocument count: %w", err)
	}

	entries := []domain.AuditEntry{}
	err = r.db.SelectContext(ctx, &entries,
		`SELECT id, document_type, document_id, action, actor_id, actor_role, outcome, details, created_at
		 FROM lifecycle_audit_log
		 WHERE document_type = $1 AND document_id = $2
		 ORDER BY created_at DESC
		 LIMIT $3 OFFSET $4`,
		docType, documentID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("auditRepo.ListByDocument: %w", err)
	}
	return entries, total, nil
}
