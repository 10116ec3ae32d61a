package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dgiconsole/internal/domain"
	"dgiconsole/internal/logger"
	"dgiconsole/internal/port"
)

// auditor writes lifecycle audit entries. Failures are logged and never
// block the audited action.
type auditor struct {
	repo port.AuditRepository
	log  *zap.Logger
}

func (a auditor) record(ctx context.Context, sess *domain.Session, docType domain.DocumentType, docID int64,
	action domain.AuditAction, outcome domain.AuditOutcome, details map[string]interface{}) {
	if a.repo == nil {
		return
	}
	raw := json.RawMessage("{}")
	if len(details) > 0 {
		if b, err := json.Marshal(details); err == nil {
			raw = b
		}
	}
	entry := &domain.AuditEntry{
		ID:           uuid.New(),
		DocumentType: docType,
		DocumentID:   docID,
		Action:       action,
		ActorID:      sess.UserID,
		ActorRole:    sess.Role,
		Outcome:      outcome,
		Details:      raw,
	}
	if err := a.repo.Create(ctx, entry); err != nil {
		logger.FromContext(ctx, a.log).Warn("auditor.record: failed to write audit entry",
			zap.String("action", string(action)),
			zap.String("document_type", string(docType)),
			zap.Int64("document_id", docID),
			zap.Error(err))
	}
}

func (a auditor) history(ctx context.Context, docType domain.DocumentType, docID int64, offset, limit int) ([]domain.AuditEntry, int, error) {
	if a.repo == nil {
		return []domain.AuditEntry{}, 0, nil
	}
	return a.repo.ListByDocument(ctx, docType, docID, offset, limit)
}

func outcomeOf(err error) domain.AuditOutcome {
	if err != nil {
		return domain.AuditOutcomeFailed
	}
	return domain.AuditOutcomeSucceeded
}

// expireOnUnauthorized revokes the session when the remote API rejected its token.
func expireOnUnauthorized(sessions SessionService, sess *domain.Session, err error) error {
	if err != nil && sessions != nil && errors.Is(err, domain.ErrSessionExpired) {
		sessions.Invalidate(sess)
	}
	return err
}
