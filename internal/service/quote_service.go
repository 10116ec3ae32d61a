package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"dgiconsole/internal/bulk"
	"dgiconsole/internal/cache"
	"dgiconsole/internal/domain"
	"dgiconsole/internal/lifecycle"
	"dgiconsole/internal/logger"
	"dgiconsole/internal/port"
)

// QuoteView is a quote with the actions the caller may take on it.
type QuoteView struct {
	domain.Quote
	Permissions lifecycle.QuotePermissions `json:"permissions"`
}

// ConversionResult reports a quote converted into an invoice.
type ConversionResult struct {
	Quote     QuoteView `json:"quote"`
	InvoiceID int64     `json:"invoice_id"`
}

// QuoteService defines the gated quote lifecycle contract.
type QuoteService interface {
	List(ctx context.Context, sess *domain.Session) ([]QuoteView, error)
	Get(ctx context.Context, sess *domain.Session, id int64) (*QuoteView, error)
	ChangeStatus(ctx context.Context, sess *domain.Session, id int64, to domain.QuoteStatus) (*QuoteView, error)
	Delete(ctx context.Context, sess *domain.Session, id int64) error
	Convert(ctx context.Context, sess *domain.Session, id int64) (*ConversionResult, error)
	SelectAll(ctx context.Context, sess *domain.Session, op bulk.Operation) ([]int64, error)
	PreviewBulk(ctx context.Context, sess *domain.Session, op bulk.Operation, ids []int64) (*bulk.Plan, error)
	ExecuteBulk(ctx context.Context, sess *domain.Session, op bulk.Operation, ids []int64, confirmed bool) (*bulk.Result, error)
	History(ctx context.Context, sess *domain.Session, id int64, offset, limit int) ([]domain.AuditEntry, int, error)
}

type quoteService struct {
	api      port.QuoteAPI
	quotes   *cache.DocumentCache[domain.Quote]
	executor *bulk.Executor
	sessions SessionService
	audit    auditor
	log      *zap.Logger
}

// NewQuoteService creates a new QuoteService implementation.
func NewQuoteService(
	api port.QuoteAPI,
	quotes *cache.DocumentCache[domain.Quote],
	executor *bulk.Executor,
	sessions SessionService,
	auditRepo port.AuditRepository,
	log *zap.Logger,
) QuoteService {
	if log == nil {
		log = zap.NewNop()
	}
	return &quoteService{
		api:      api,
		quotes:   quotes,
		executor: executor,
		sessions: sessions,
		audit:    auditor{repo: auditRepo, log: log},
		log:      log,
	}
}

func newQuoteView(role domain.Role, q domain.Quote) QuoteView {
	return QuoteView{Quote: q, Permissions: lifecycle.QuoteActions(role, q.Status)}
}

func (s *quoteService) List(ctx context.Context, sess *domain.Session) ([]QuoteView, error) {
	quotes, err := s.refresh(ctx, sess)
	if err != nil {
		return nil, err
	}
	views := make([]QuoteView, 0, len(quotes))
	for i := range quotes {
		views = append(views, newQuoteView(sess.Role, quotes[i]))
	}
	return views, nil
}

func (s *quoteService) Get(ctx context.Context, sess *domain.Session, id int64) (*QuoteView, error) {
	q, err := s.fetch(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	view := newQuoteView(sess.Role, *q)
	return &view, nil
}

func (s *quoteService) ChangeStatus(ctx context.Context, sess *domain.Session, id int64, to domain.QuoteStatus) (*QuoteView, error) {
	if !to.IsValid() {
		return nil, fmt.Errorf("%w: quote status %d", domain.ErrInvalidStatus, int(to))
	}
	q, err := s.fetch(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	from := q.Status
	if to == from {
		view := newQuoteView(sess.Role, *q)
		return &view, nil
	}
	if !lifecycle.CanChangeQuoteStatus(sess.Role, from) {
		return nil, domain.ErrActionNotPermitted
	}
	if !lifecycle.CanTransitionQuote(sess.Role, from, to) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, from, to)
	}

	err = s.api.UpdateQuoteStatus(ctx, sess.Token, id, to)
	s.audit.record(ctx, sess, domain.DocumentTypeQuote, id, domain.AuditStatusChanged, outcomeOf(err),
		map[string]interface{}{"from": from.String(), "to": to.String()})
	if err != nil {
		return nil, expireOnUnauthorized(s.sessions, sess, err)
	}

	view, err := s.Get(ctx, sess, id)
	if err == nil {
		return view, nil
	}
	logger.FromContext(ctx, s.log).Warn("quoteService.ChangeStatus: refresh after status change failed",
		zap.Int64("quote_id", id), zap.Stringer("to", to), zap.Error(err))
	updated, ok := s.quotes.Update(id, func(cached *domain.Quote) { cached.Status = to })
	if !ok {
		updated = *q
		updated.Status = to
	}
	cached := newQuoteView(sess.Role, updated)
	return &cached, nil
}

func (s *quoteService) Delete(ctx context.Context, sess *domain.Session, id int64) error {
	q, err := s.fetch(ctx, sess, id)
	if err != nil {
		return err
	}
	if !lifecycle.CanDeleteQuote(sess.Role, q.Status) {
		return domain.ErrActionNotPermitted
	}

	err = s.api.DeleteQuote(ctx, sess.Token, id)
	s.audit.record(ctx, sess, domain.DocumentTypeQuote, id, domain.AuditDeleted, outcomeOf(err),
		map[string]interface{}{"status": q.Status.String(), "number": q.Number})
	if err != nil {
		return expireOnUnauthorized(s.sessions, sess, err)
	}
	s.quotes.Remove(id)
	return nil
}

func (s *quoteService) Convert(ctx context.Context, sess *domain.Session, id int64) (*ConversionResult, error) {
	q, err := s.fetch(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if !lifecycle.CanConvertToInvoice(sess.Role, q.Status) {
		return nil, domain.ErrActionNotPermitted
	}

	invoiceID, err := s.api.ConvertQuote(ctx, sess.Token, id)
	details := map[string]interface{}{}
	if err == nil {
		details["invoice_id"] = invoiceID
	}
	s.audit.record(ctx, sess, domain.DocumentTypeQuote, id, domain.AuditConverted, outcomeOf(err), details)
	if err != nil {
		return nil, expireOnUnauthorized(s.sessions, sess, err)
	}

	logger.FromContext(ctx, s.log).Info("quoteService.Convert: quote converted",
		zap.Int64("quote_id", id), zap.Int64("invoice_id", invoiceID))

	converted, ok := s.quotes.Update(id, func(q *domain.Quote) {
		q.Status = domain.QuoteStatusConverted
		q.ConvertedInvoiceID = &invoiceID
	})
	if !ok {
		converted = *q
		converted.Status = domain.QuoteStatusConverted
		converted.ConvertedInvoiceID = &invoiceID
	}
	return &ConversionResult{Quote: newQuoteView(sess.Role, converted), InvoiceID: invoiceID}, nil
}

func (s *quoteService) SelectAll(ctx context.Context, sess *domain.Session, op bulk.Operation) ([]int64, error) {
	quotes, err := s.refresh(ctx, sess)
	if err != nil {
		return nil, err
	}
	return bulk.SelectAllQuotes(sess.Role, quotes, op), nil
}

func (s *quoteService) PreviewBulk(ctx context.Context, sess *domain.Session, op bulk.Operation, ids []int64) (*bulk.Plan, error) {
	plan, err := s.plan(ctx, sess, op, ids)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *quoteService) ExecuteBulk(ctx context.Context, sess *domain.Session, op bulk.Operation, ids []int64, confirmed bool) (*bulk.Result, error) {
	if op != bulk.OperationDelete {
		return nil, fmt.Errorf("%w: quotes support bulk delete only", domain.ErrInvalidOperation)
	}
	plan, err := s.plan(ctx, sess, op, ids)
	if err != nil {
		return nil, err
	}

	res, runErr := s.executor.Run(ctx, plan, confirmed, func(ctx context.Context, id int64) error {
		if err := s.api.DeleteQuote(ctx, sess.Token, id); err != nil {
			return err
		}
		s.quotes.Remove(id)
		return nil
	})
	if res == nil {
		return nil, runErr
	}
	for _, id := range res.Succeeded {
		s.audit.record(ctx, sess, domain.DocumentTypeQuote, id, domain.AuditBulkDelete, domain.AuditOutcomeSucceeded, nil)
	}
	for _, f := range res.Failed {
		s.audit.record(ctx, sess, domain.DocumentTypeQuote, f.ID, domain.AuditBulkDelete, domain.AuditOutcomeFailed,
			map[string]interface{}{"error": f.Err.Error()})
	}
	if runErr != nil {
		return res, expireOnUnauthorized(s.sessions, sess, runErr)
	}
	return res, nil
}

func (s *quoteService) History(ctx context.Context, sess *domain.Session, id int64, offset, limit int) ([]domain.AuditEntry, int, error) {
	if _, err := s.fetch(ctx, sess, id); err != nil {
		return nil, 0, err
	}
	return s.audit.history(ctx, domain.DocumentTypeQuote, id, offset, limit)
}

func (s *quoteService) plan(ctx context.Context, sess *domain.Session, op bulk.Operation, ids []int64) (bulk.Plan, error) {
	quotes, err := s.refresh(ctx, sess)
	if err != nil {
		return bulk.Plan{}, err
	}
	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	selected := make([]domain.Quote, 0, len(ids))
	for i := range quotes {
		if _, ok := wanted[quotes[i].ID]; ok {
			selected = append(selected, quotes[i])
		}
	}
	return bulk.NewPlan(op, ids, bulk.FilterQuotes(sess.Role, selected, op)), nil
}

func (s *quoteService) refresh(ctx context.Context, sess *domain.Session) ([]domain.Quote, error) {
	quotes, err := s.api.ListQuotes(ctx, sess.Token)
	if err != nil {
		return nil, expireOnUnauthorized(s.sessions, sess, err)
	}
	s.quotes.Replace(quotes)
	return quotes, nil
}

func (s *quoteService) fetch(ctx context.Context, sess *domain.Session, id int64) (*domain.Quote, error) {
	q, err := s.api.GetQuote(ctx, sess.Token, id)
	if err != nil {
		return nil, expireOnUnauthorized(s.sessions, sess, err)
	}
	s.quotes.Put(*q)
	return q, nil
}
