package port

import (
	"context"

	"dgiconsole/internal/domain"
)

// ClearanceNotifier tells the finance team about a resolved clearance check.
type ClearanceNotifier interface {
	NotifyClearance(ctx context.Context, invoice domain.Invoice) error
}
