// Package clearance queries the tax authority for the clearance outcome of
// submitted invoices.
package clearance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"dgiconsole/internal/domain"
	"dgiconsole/internal/lifecycle"
	"dgiconsole/internal/logger"
	"dgiconsole/internal/port"
)

// NoReasonPlaceholder is recorded when the authority rejects an invoice
// without any usable error message.
const NoReasonPlaceholder = "No specific reason provided"

// State is the check state of one invoice.
type State int

const (
	StateIdle State = iota
	StateChecking
	StateResolved
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// InvoiceStore receives optimistic updates once the authority has decided.
type InvoiceStore interface {
	Update(id int64, mutate func(*domain.Invoice)) (domain.Invoice, bool)
}

// Result is the outcome of one check.
type Result struct {
	InvoiceID int64
	State     State
	Outcome   domain.ClearanceStatus
	Invoice   domain.Invoice
}

// Poller runs on-demand clearance checks, at most one per invoice at a time.
type Poller struct {
	authority port.ClearanceAuthority
	store     InvoiceStore
	timeout   time.Duration
	log       *zap.Logger

	mu       sync.Mutex
	inFlight map[int64]struct{}
}

// NewPoller creates a Poller. A zero timeout leaves the request deadline to ctx.
func NewPoller(authority port.ClearanceAuthority, store InvoiceStore, timeout time.Duration, log *zap.Logger) *Poller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{
		authority: authority,
		store:     store,
		timeout:   timeout,
		log:       log,
		inFlight:  make(map[int64]struct{}),
	}
}

// State reports whether a check for invoiceID is running.
func (p *Poller) State(invoiceID int64) State {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.inFlight[invoiceID]; ok {
		return StateChecking
	}
	return StateIdle
}

func (p *Poller) acquire(id int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, busy := p.inFlight[id]; busy {
		return false
	}
	p.inFlight[id] = struct{}{}
	return true
}

func (p *Poller) release(id int64) {
	p.mu.Lock()
	delete(p.inFlight, id)
	p.mu.Unlock()
}

// Check asks the authority for the clearance status of inv and applies the
// outcome locally. A non-nil error means the check failed or was refused; the
// local invoice is then untouched.
func (p *Poller) Check(ctx context.Context, sess *domain.Session, inv domain.Invoice) (*Result, error) {
	if inv.Status != domain.InvoiceStatusAwaitingClearance || !lifecycle.CanCheckClearanceStatus(sess.Role, inv.Status) {
		return nil, domain.ErrActionNotPermitted
	}
	if !p.acquire(inv.ID) {
		return nil, domain.ErrCheckInProgress
	}
	defer p.release(inv.ID)

	callCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	log := logger.FromContext(ctx, p.log)
	report, err := p.authority.GetClearanceStatus(callCtx, sess.Token, inv.ID)
	if ctx.Err() != nil {
		log.Debug("poller.Check: caller gone, discarding response", zap.Int64("invoice_id", inv.ID))
		return nil, fmt.Errorf("clearance check for invoice %d discarded: %w", inv.ID, ctx.Err())
	}

	failed := &Result{InvoiceID: inv.ID, State: StateFailed, Invoice: inv}
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return failed, domain.ErrSessionExpired
		}
		log.Warn("poller.Check: authority query failed", zap.Int64("invoice_id", inv.ID), zap.Error(err))
		return failed, fmt.Errorf("%w: %w", domain.ErrClearanceCheckFailed, err)
	}

	switch report.Status {
	case domain.ClearanceStatusPending:
		return &Result{InvoiceID: inv.ID, State: StateResolved, Outcome: report.Status, Invoice: inv}, nil

	case domain.ClearanceStatusValidated:
		updated := p.apply(inv, func(i *domain.Invoice) { i.MarkValidated() })
		log.Info("poller.Check: invoice validated", zap.Int64("invoice_id", inv.ID))
		return &Result{InvoiceID: inv.ID, State: StateResolved, Outcome: report.Status, Invoice: updated}, nil

	case domain.ClearanceStatusRejected:
		reason := RejectionReason(report.Errors)
		updated := p.apply(inv, func(i *domain.Invoice) { i.MarkRejected(reason) })
		log.Info("poller.Check: invoice rejected", zap.Int64("invoice_id", inv.ID), zap.String("reason", reason))
		return &Result{InvoiceID: inv.ID, State: StateResolved, Outcome: report.Status, Invoice: updated}, nil

	default:
		log.Warn("poller.Check: unrecognized clearance status",
			zap.Int64("invoice_id", inv.ID), zap.String("status", report.RawStatus))
		return failed, fmt.Errorf("%w: %q", domain.ErrUnknownClearanceStatus, report.RawStatus)
	}
}

// apply updates the cached invoice, falling back to the caller's copy when the
// invoice is not cached.
func (p *Poller) apply(inv domain.Invoice, mutate func(*domain.Invoice)) domain.Invoice {
	if p.store != nil {
		if updated, ok := p.store.Update(inv.ID, mutate); ok {
			return updated
		}
	}
	mutate(&inv)
	return inv
}

// RejectionReason joins the non-blank authority messages with "; ".
func RejectionReason(errs []domain.ClearanceError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		if m := strings.TrimSpace(e.Message); m != "" {
			msgs = append(msgs, m)
		}
	}
	if len(msgs) == 0 {
		return NoReasonPlaceholder
	}
	return strings.Join(msgs, "; ")
}
