package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"dgiconsole/internal/bulk"
	"dgiconsole/internal/cache"
	"dgiconsole/internal/clearance"
	"dgiconsole/internal/domain"
	"dgiconsole/internal/lifecycle"
	"dgiconsole/internal/logger"
	"dgiconsole/internal/port"
)

// InvoiceView is an invoice as the console renders it: the document, the
// actions the caller may take on it, and whether it carries an unconfirmed
// local change.
type InvoiceView struct {
	domain.Invoice
	Permissions lifecycle.InvoicePermissions `json:"permissions"`
	Optimistic  bool                         `json:"optimistic"`
}

func newInvoiceView(role domain.Role, inv domain.Invoice, optimistic bool) InvoiceView {
	perms := lifecycle.InvoiceActions(role, inv.Status)
	if !perms.CanViewRejectionReason {
		inv.DGIRejectionReason = ""
	}
	return InvoiceView{Invoice: inv, Permissions: perms, Optimistic: optimistic}
}

// ClearanceOutcome is the answer to an on-demand clearance check.
type ClearanceOutcome struct {
	Invoice         InvoiceView `json:"invoice"`
	ClearanceStatus string      `json:"clearance_status"`
	RejectionReason string      `json:"rejection_reason,omitempty"`
}

// InvoiceService defines the gated invoice lifecycle contract.
type InvoiceService interface {
	List(ctx context.Context, sess *domain.Session) ([]InvoiceView, error)
	Get(ctx context.Context, sess *domain.Session, id int64) (*InvoiceView, error)
	ChangeStatus(ctx context.Context, sess *domain.Session, id int64, to domain.InvoiceStatus) (*InvoiceView, error)
	Delete(ctx context.Context, sess *domain.Session, id int64) error
	Submit(ctx context.Context, sess *domain.Session, id int64) ([]InvoiceView, error)
	CheckClearance(ctx context.Context, sess *domain.Session, id int64) (*ClearanceOutcome, error)
	SelectAll(ctx context.Context, sess *domain.Session, op bulk.Operation) ([]int64, error)
	PreviewBulk(ctx context.Context, sess *domain.Session, op bulk.Operation, ids []int64) (*bulk.Plan, error)
	ExecuteBulk(ctx context.Context, sess *domain.Session, op bulk.Operation, ids []int64, confirmed bool) (*bulk.Result, error)
	History(ctx context.Context, sess *domain.Session, id int64, offset, limit int) ([]domain.AuditEntry, int, error)
}

type invoiceService struct {
	api      port.InvoiceAPI
	invoices *cache.DocumentCache[domain.Invoice]
	poller   *clearance.Poller
	executor *bulk.Executor
	sessions SessionService
	notifier port.ClearanceNotifier
	audit    auditor
	log      *zap.Logger
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	api port.InvoiceAPI,
	invoices *cache.DocumentCache[domain.Invoice],
	poller *clearance.Poller,
	executor *bulk.Executor,
	sessions SessionService,
	auditRepo port.AuditRepository,
	notifier port.ClearanceNotifier,
	log *zap.Logger,
) InvoiceService {
	if log == nil {
		log = zap.NewNop()
	}
	return &invoiceService{
		api:      api,
		invoices: invoices,
		poller:   poller,
		executor: executor,
		sessions: sessions,
		notifier: notifier,
		audit:    auditor{repo: auditRepo, log: log},
		log:      log,
	}
}

func (s *invoiceService) List(ctx context.Context, sess *domain.Session) ([]InvoiceView, error) {
	invoices, err := s.refresh(ctx, sess)
	if err != nil {
		return nil, err
	}
	views := make([]InvoiceView, 0, len(invoices))
	for i := range invoices {
		views = append(views, newInvoiceView(sess.Role, invoices[i], false))
	}
	return views, nil
}

func (s *invoiceService) Get(ctx context.Context, sess *domain.Session, id int64) (*InvoiceView, error) {
	inv, err := s.fetch(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	view := newInvoiceView(sess.Role, *inv, false)
	return &view, nil
}

func (s *invoiceService) ChangeStatus(ctx context.Context, sess *domain.Session, id int64, to domain.InvoiceStatus) (*InvoiceView, error) {
	if !to.IsValid() {
		return nil, fmt.Errorf("%w: invoice status code %d", domain.ErrInvalidStatus, int(to))
	}
	inv, err := s.fetch(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	from := inv.Status
	if to == from {
		view := newInvoiceView(sess.Role, *inv, false)
		return &view, nil
	}
	if !lifecycle.CanChangeInvoiceStatus(sess.Role, from) {
		return nil, domain.ErrActionNotPermitted
	}
	if !lifecycle.CanTransitionInvoice(sess.Role, from, to) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, from, to)
	}

	err = s.api.UpdateInvoiceStatus(ctx, sess.Token, id, to)
	s.audit.record(ctx, sess, domain.DocumentTypeInvoice, id, domain.AuditStatusChanged, outcomeOf(err),
		map[string]interface{}{"from": from.String(), "to": to.String()})
	if err != nil {
		return nil, expireOnUnauthorized(s.sessions, sess, err)
	}

	log := logger.FromContext(ctx, s.log)
	log.Info("invoiceService.ChangeStatus: status changed",
		zap.Int64("invoice_id", id), zap.Stringer("from", from), zap.Stringer("to", to))

	view, err := s.Get(ctx, sess, id)
	if err == nil {
		return view, nil
	}
	// The remote already applied the change; serve the cached row marked
	// optimistic until the next successful fetch.
	log.Warn("invoiceService.ChangeStatus: refresh after status change failed",
		zap.Int64("invoice_id", id), zap.Error(err))
	updated, ok := s.invoices.Update(id, func(cached *domain.Invoice) { cached.Status = to })
	if !ok {
		updated = *inv
		updated.Status = to
	}
	optimistic := newInvoiceView(sess.Role, updated, true)
	return &optimistic, nil
}

func (s *invoiceService) Delete(ctx context.Context, sess *domain.Session, id int64) error {
	inv, err := s.fetch(ctx, sess, id)
	if err != nil {
		return err
	}
	if !lifecycle.CanDeleteInvoice(sess.Role, inv.Status) {
		return domain.ErrActionNotPermitted
	}

	err = s.api.DeleteInvoice(ctx, sess.Token, id)
	s.audit.record(ctx, sess, domain.DocumentTypeInvoice, id, domain.AuditDeleted, outcomeOf(err),
		map[string]interface{}{"status": inv.Status.String(), "number": inv.Number})
	if err != nil {
		return expireOnUnauthorized(s.sessions, sess, err)
	}
	s.invoices.Remove(id)
	return nil
}

func (s *invoiceService) Submit(ctx context.Context, sess *domain.Session, id int64) ([]InvoiceView, error) {
	inv, err := s.fetch(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if !lifecycle.CanSubmitInvoice(sess.Role, inv.Status) {
		return nil, domain.ErrActionNotPermitted
	}

	err = s.api.SubmitInvoice(ctx, sess.Token, id)
	s.audit.record(ctx, sess, domain.DocumentTypeInvoice, id, domain.AuditSubmitted, outcomeOf(err), nil)
	if err != nil {
		return nil, expireOnUnauthorized(s.sessions, sess, err)
	}

	log := logger.FromContext(ctx, s.log)
	log.Info("invoiceService.Submit: invoice submitted for clearance", zap.Int64("invoice_id", id))

	views, err := s.List(ctx, sess)
	if err == nil {
		return views, nil
	}
	log.Warn("invoiceService.Submit: list refresh failed, serving cached list",
		zap.Int64("invoice_id", id), zap.Error(err))
	markSubmitted := func(cached *domain.Invoice) { cached.Status = domain.InvoiceStatusAwaitingClearance }
	if _, ok := s.invoices.Update(id, markSubmitted); !ok {
		s.invoices.Put(*inv)
		s.invoices.Update(id, markSubmitted)
	}
	return s.cachedViews(sess), nil
}

// cachedViews renders the cached list, flagging rows with unconfirmed changes.
func (s *invoiceService) cachedViews(sess *domain.Session) []InvoiceView {
	invoices := s.invoices.List()
	views := make([]InvoiceView, 0, len(invoices))
	for i := range invoices {
		views = append(views, newInvoiceView(sess.Role, invoices[i], s.invoices.Dirty(invoices[i].ID)))
	}
	return views
}

func (s *invoiceService) CheckClearance(ctx context.Context, sess *domain.Session, id int64) (*ClearanceOutcome, error) {
	inv, err := s.fetch(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	res, err := s.poller.Check(ctx, sess, *inv)
	if err != nil {
		if errors.Is(err, domain.ErrClearanceCheckFailed) || errors.Is(err, domain.ErrUnknownClearanceStatus) {
			s.audit.record(ctx, sess, domain.DocumentTypeInvoice, id, domain.AuditClearanceChecked,
				domain.AuditOutcomeFailed, map[string]interface{}{"error": err.Error()})
		}
		return nil, expireOnUnauthorized(s.sessions, sess, err)
	}

	outcome := &ClearanceOutcome{
		Invoice:         newInvoiceView(sess.Role, res.Invoice, s.invoices.Dirty(id)),
		ClearanceStatus: res.Outcome.String(),
	}
	details := map[string]interface{}{"clearance_status": res.Outcome.String()}

	var auditOutcome domain.AuditOutcome
	switch res.Outcome {
	case domain.ClearanceStatusValidated:
		auditOutcome = domain.AuditOutcomeValidated
	case domain.ClearanceStatusRejected:
		auditOutcome = domain.AuditOutcomeRejected
		outcome.RejectionReason = res.Invoice.DGIRejectionReason
		details["reason"] = res.Invoice.DGIRejectionReason
	default:
		auditOutcome = domain.AuditOutcomePending
	}
	s.audit.record(ctx, sess, domain.DocumentTypeInvoice, id, domain.AuditClearanceChecked, auditOutcome, details)

	if auditOutcome != domain.AuditOutcomePending && s.notifier != nil {
		if nerr := s.notifier.NotifyClearance(ctx, res.Invoice); nerr != nil {
			logger.FromContext(ctx, s.log).Warn("invoiceService.CheckClearance: notification failed",
				zap.Int64("invoice_id", id), zap.Error(nerr))
		}
	}
	return outcome, nil
}

func (s *invoiceService) SelectAll(ctx context.Context, sess *domain.Session, op bulk.Operation) ([]int64, error) {
	invoices, err := s.refresh(ctx, sess)
	if err != nil {
		return nil, err
	}
	return bulk.SelectAllInvoices(sess.Role, invoices, op), nil
}

func (s *invoiceService) PreviewBulk(ctx context.Context, sess *domain.Session, op bulk.Operation, ids []int64) (*bulk.Plan, error) {
	plan, err := s.plan(ctx, sess, op, ids)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *invoiceService) ExecuteBulk(ctx context.Context, sess *domain.Session, op bulk.Operation, ids []int64, confirmed bool) (*bulk.Result, error) {
	plan, err := s.plan(ctx, sess, op, ids)
	if err != nil {
		return nil, err
	}

	var action bulk.Action
	var auditAction domain.AuditAction
	switch op {
	case bulk.OperationDelete:
		auditAction = domain.AuditBulkDelete
		action = func(ctx context.Context, id int64) error {
			if err := s.api.DeleteInvoice(ctx, sess.Token, id); err != nil {
				return err
			}
			s.invoices.Remove(id)
			return nil
		}
	case bulk.OperationSubmit:
		auditAction = domain.AuditBulkSubmit
		action = func(ctx context.Context, id int64) error {
			return s.api.SubmitInvoice(ctx, sess.Token, id)
		}
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidOperation, op)
	}

	res, runErr := s.executor.Run(ctx, plan, confirmed, action)
	if res == nil {
		return nil, runErr
	}
	for _, id := range res.Succeeded {
		s.audit.record(ctx, sess, domain.DocumentTypeInvoice, id, auditAction, domain.AuditOutcomeSucceeded, nil)
	}
	for _, f := range res.Failed {
		s.audit.record(ctx, sess, domain.DocumentTypeInvoice, f.ID, auditAction, domain.AuditOutcomeFailed,
			map[string]interface{}{"error": f.Err.Error()})
	}
	if runErr != nil {
		runErr = expireOnUnauthorized(s.sessions, sess, runErr)
	}

	log := logger.FromContext(ctx, s.log)
	log.Info("invoiceService.ExecuteBulk: bulk run finished",
		zap.String("operation", string(op)),
		zap.Int("eligible", plan.Count()),
		zap.Int("succeeded", len(res.Succeeded)),
		zap.Int("failed", len(res.Failed)))

	if op == bulk.OperationSubmit && len(res.Succeeded) > 0 && !errors.Is(runErr, domain.ErrSessionExpired) {
		if _, err := s.refresh(ctx, sess); err != nil {
			log.Warn("invoiceService.ExecuteBulk: list refresh failed", zap.Error(err))
		}
	}
	return res, runErr
}

func (s *invoiceService) History(ctx context.Context, sess *domain.Session, id int64, offset, limit int) ([]domain.AuditEntry, int, error) {
	if _, err := s.fetch(ctx, sess, id); err != nil {
		return nil, 0, err
	}
	return s.audit.history(ctx, domain.DocumentTypeInvoice, id, offset, limit)
}

// plan builds a bulk plan against the freshly fetched list. Requested ids that
// no longer exist are reported as excluded.
func (s *invoiceService) plan(ctx context.Context, sess *domain.Session, op bulk.Operation, ids []int64) (bulk.Plan, error) {
	invoices, err := s.refresh(ctx, sess)
	if err != nil {
		return bulk.Plan{}, err
	}
	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	selected := make([]domain.Invoice, 0, len(ids))
	for i := range invoices {
		if _, ok := wanted[invoices[i].ID]; ok {
			selected = append(selected, invoices[i])
		}
	}
	return bulk.NewPlan(op, ids, bulk.FilterInvoices(sess.Role, selected, op)), nil
}

// refresh fetches the full list and replaces the cache with it.
func (s *invoiceService) refresh(ctx context.Context, sess *domain.Session) ([]domain.Invoice, error) {
	invoices, err := s.api.ListInvoices(ctx, sess.Token)
	if err != nil {
		return nil, expireOnUnauthorized(s.sessions, sess, err)
	}
	s.invoices.Replace(invoices)
	return invoices, nil
}

// fetch loads the current state of one invoice so that every gate is
// evaluated against the most recently fetched status.
func (s *invoiceService) fetch(ctx context.Context, sess *domain.Session, id int64) (*domain.Invoice, error) {
	inv, err := s.api.GetInvoice(ctx, sess.Token, id)
	if err != nil {
		return nil, expireOnUnauthorized(s.sessions, sess, err)
	}
	s.invoices.Put(*inv)
	return inv, nil
}
