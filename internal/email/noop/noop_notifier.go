package noop

import (
	"context"

	"go.uber.org/zap"

	"dgiconsole/internal/domain"
	"dgiconsole/internal/port"
)

type noopNotifier struct {
	log *zap.Logger
}

// NewNoopNotifier creates a ClearanceNotifier that only logs the outcome.
func NewNoopNotifier(log *zap.Logger) port.ClearanceNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &noopNotifier{log: log}
}

func (n *noopNotifier) NotifyClearance(_ context.Context, invoice domain.Invoice) error {
	fields := []zap.Field{
		zap.Int64("invoice_id", invoice.ID),
		zap.String("number", invoice.Number),
		zap.String("status", invoice.Status.String()),
	}
	if reason, ok := invoice.RejectionReason(); ok {
		fields = append(fields, zap.String("reason", reason))
	}
	n.log.Info("[NOOP EMAIL] clearance resolved", fields...)
	return nil
}
