package postgres_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dgiconsole/internal/domain"
	"dgiconsole/internal/port"
	"dgiconsole/internal/repository/postgres"
)

func newMockAuditRepo(t *testing.T) (port.AuditRepository, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return postgres.NewAuditRepo(sqlx.NewDb(mockDB, "pgx")), mock
}

func TestAuditRepo_Create(t *testing.T) {
	repo, mock := newMockAuditRepo(t)

	entry := &domain.AuditEntry{
		ID:           uuid.New(),
		DocumentType: domain.DocumentTypeInvoice,
		DocumentID:   42,
		Action:       domain.AuditSubmitted,
		ActorID:      "user-1",
		ActorRole:    domain.RoleManager,
		Outcome:      domain.AuditOutcomeSucceeded,
		Details:      json.RawMessage(`{}`),
	}

	mock.ExpectExec(`INSERT INTO lifecycle_audit_log`).
		WithArgs(sqlmock.AnyArg(), "invoice", int64(42), string(domain.AuditSubmitted),
			"user-1", "manager", string(domain.AuditOutcomeSucceeded), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepo_Create_Error(t *testing.T) {
	repo, mock := newMockAuditRepo(t)

	mock.ExpectExec(`INSERT INTO lifecycle_audit_log`).WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), &domain.AuditEntry{ID: uuid.New(), DocumentType: domain.DocumentTypeQuote})
	assert.ErrorContains(t, err, "auditRepo.Create")
}

func TestAuditRepo_ListByDocument(t *testing.T) {
	repo, mock := newMockAuditRepo(t)

	id := uuid.New()
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM lifecycle_audit_log`).
		WithArgs("invoice", int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`FROM lifecycle_audit_log`).
		WithArgs("invoice", int64(42), 1, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "document_type", "document_id", "action", "actor_id", "actor_role", "outcome", "details", "created_at",
		}).AddRow(id.String(), "invoice", int64(42), "invoice.clearance_checked", "user-1", "manager", "rejected",
			[]byte(`{"reason":"Invalid tax ID"}`), createdAt))

	entries, total, err := repo.ListByDocument(context.Background(), domain.DocumentTypeInvoice, 42, 0, 1)

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ID)
	assert.Equal(t, domain.AuditOutcomeRejected, entries[0].Outcome)
	assert.JSONEq(t, `{"reason":"Invalid tax ID"}`, string(entries[0].Details))
	assert.NoError(t, mock.ExpectationsWereMet())
}
