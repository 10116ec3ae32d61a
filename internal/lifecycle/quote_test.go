package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dgiconsole/internal/domain"
	"dgiconsole/internal/lifecycle"
)

func TestQuoteTransitions_Table(t *testing.T) {
	tests := []struct {
		name    string
		role    domain.Role
		current domain.QuoteStatus
		want    []domain.QuoteStatus
	}{
		{"clerk draft", domain.RoleClerk, domain.QuoteStatusDraft, []domain.QuoteStatus{domain.QuoteStatusDraft}},
		{"clerk sent", domain.RoleClerk, domain.QuoteStatusSent, []domain.QuoteStatus{domain.QuoteStatusSent}},
		{"manager draft", domain.RoleManager, domain.QuoteStatusDraft, []domain.QuoteStatus{domain.QuoteStatusDraft, domain.QuoteStatusSent}},
		{"manager sent", domain.RoleManager, domain.QuoteStatusSent, []domain.QuoteStatus{domain.QuoteStatusDraft, domain.QuoteStatusSent}},
		{"manager accepted", domain.RoleManager, domain.QuoteStatusAccepted, []domain.QuoteStatus{domain.QuoteStatusAccepted}},
		{"admin converted", domain.RoleAdmin, domain.QuoteStatusConverted, []domain.QuoteStatus{domain.QuoteStatusConverted}},
		{"admin rejected", domain.RoleAdmin, domain.QuoteStatusRejected, []domain.QuoteStatus{domain.QuoteStatusDraft, domain.QuoteStatusRejected}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lifecycle.QuoteTransitions(tt.role, tt.current))
		})
	}
}

func TestCanConvertToInvoice(t *testing.T) {
	for _, s := range domain.AllQuoteStatuses() {
		assert.False(t, lifecycle.CanConvertToInvoice(domain.RoleClerk, s), "clerk/%s", s)
		assert.Equal(t, s == domain.QuoteStatusAccepted, lifecycle.CanConvertToInvoice(domain.RoleManager, s), "manager/%s", s)
		assert.Equal(t, s == domain.QuoteStatusAccepted, lifecycle.CanConvertToInvoice(domain.RoleAdmin, s), "admin/%s", s)
	}
}

func TestQuoteActions_ClerkDraft(t *testing.T) {
	perms := lifecycle.QuoteActions(domain.RoleClerk, domain.QuoteStatusDraft)

	assert.True(t, perms.CanEdit)
	assert.True(t, perms.CanDelete)
	assert.False(t, perms.CanConvertToInvoice)
	assert.False(t, perms.CanChangeStatus)
	assert.Equal(t, []domain.QuoteStatus{domain.QuoteStatusDraft}, perms.ValidTransitions)
}

func TestQuoteActions_ConvertedIsTerminal(t *testing.T) {
	for _, role := range allRoles {
		perms := lifecycle.QuoteActions(role, domain.QuoteStatusConverted)
		assert.False(t, perms.CanEdit)
		assert.False(t, perms.CanDelete)
		assert.False(t, perms.CanChangeStatus)
		assert.False(t, perms.CanConvertToInvoice)
		assert.Equal(t, []domain.QuoteStatus{domain.QuoteStatusConverted}, perms.ValidTransitions)
	}
}

func TestCanTransitionQuote_AcceptedNeverUserTarget(t *testing.T) {
	for _, role := range allRoles {
		for _, from := range domain.AllQuoteStatuses() {
			if from == domain.QuoteStatusAccepted {
				continue
			}
			assert.False(t, lifecycle.CanTransitionQuote(role, from, domain.QuoteStatusAccepted), "%s/%s", role, from)
			if from != domain.QuoteStatusConverted {
				assert.False(t, lifecycle.CanTransitionQuote(role, from, domain.QuoteStatusConverted), "%s/%s", role, from)
			}
		}
	}
}
