package bulk

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"dgiconsole/internal/domain"
	"dgiconsole/internal/logger"
)

// Action performs the operation on one document.
type Action func(ctx context.Context, id int64) error

// Failure is one document the run could not process.
type Failure struct {
	ID  int64
	Err error
}

// Result aggregates a bulk run. Both slices follow the plan's order.
type Result struct {
	Operation Operation
	Total     int
	Succeeded []int64
	Failed    []Failure
}

// Error reports a bulk run in which at least one item failed. Err is the
// first failure in selection order.
type Error struct {
	Operation Operation
	Failed    int
	Total     int
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("bulk %s: %d of %d failed: %v", e.Operation, e.Failed, e.Total, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Config bounds the fan-out towards the remote API. MaxRetryWait caps the
// wait honored for a Retry-After hint; zero disables the retry.
type Config struct {
	Concurrency   int
	RatePerSecond float64
	Burst         int
	MaxRetryWait  time.Duration
}

// retryDelayer is implemented by failures that carry a remote Retry-After hint.
type retryDelayer interface {
	RetryDelay() time.Duration
}

// Executor runs confirmed bulk plans.
type Executor struct {
	limiter      *rate.Limiter
	concurrency  int
	maxRetryWait time.Duration
	log          *zap.Logger
}

// NewExecutor creates an Executor. A non-positive rate disables rate limiting.
func NewExecutor(cfg Config, log *zap.Logger) *Executor {
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{
		limiter:      rate.NewLimiter(limit, burst),
		concurrency:  concurrency,
		maxRetryWait: cfg.MaxRetryWait,
		log:          log,
	}
}

// Run applies action to every eligible id of plan. Nothing happens when the
// plan is empty or the user has not confirmed it. One failing item never stops
// the others, except an expired session, which aborts whatever has not started.
func (e *Executor) Run(ctx context.Context, plan Plan, confirmed bool, action Action) (*Result, error) {
	res := &Result{Operation: plan.Operation, Total: plan.Count(), Succeeded: []int64{}, Failed: []Failure{}}
	if plan.Count() == 0 {
		return res, nil
	}
	if !confirmed {
		return nil, domain.ErrConfirmationRequired
	}

	log := logger.FromContext(ctx, e.log)
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		expired  atomic.Bool
		mu       sync.Mutex
		outcomes = make([]error, len(plan.Eligible))
	)
	record := func(i int, err error) {
		mu.Lock()
		outcomes[i] = err
		mu.Unlock()
	}

	g := new(errgroup.Group)
	g.SetLimit(e.concurrency)
	for i, id := range plan.Eligible {
		g.Go(func() error {
			if expired.Load() {
				record(i, domain.ErrSessionExpired)
				return nil
			}
			if err := e.limiter.Wait(runCtx); err != nil {
				if expired.Load() {
					err = domain.ErrSessionExpired
				}
				record(i, err)
				return nil
			}
			err := e.attempt(runCtx, log, id, action)
			if errors.Is(err, domain.ErrSessionExpired) {
				if expired.CompareAndSwap(false, true) {
					log.Warn("bulk.Run: session expired, aborting remaining items",
						zap.String("operation", string(plan.Operation)),
						zap.Int64("id", id))
				}
				cancel()
			} else if err != nil && expired.Load() && errors.Is(err, context.Canceled) {
				err = domain.ErrSessionExpired
			}
			record(i, err)
			return nil
		})
	}
	_ = g.Wait()

	var first error
	for i, id := range plan.Eligible {
		if err := outcomes[i]; err != nil {
			res.Failed = append(res.Failed, Failure{ID: id, Err: err})
			if first == nil {
				first = err
			}
			continue
		}
		res.Succeeded = append(res.Succeeded, id)
	}
	if len(res.Failed) == 0 {
		return res, nil
	}
	if expired.Load() {
		first = domain.ErrSessionExpired
	}

	log.Warn("bulk.Run: completed with failures",
		zap.String("operation", string(plan.Operation)),
		zap.Int("failed", len(res.Failed)),
		zap.Int("total", res.Total),
		zap.Error(first))
	return res, &Error{Operation: plan.Operation, Failed: len(res.Failed), Total: res.Total, Err: first}
}

// attempt runs action once, and once more after the remote's Retry-After hint
// when the first call was throttled and the hint fits under maxRetryWait.
func (e *Executor) attempt(ctx context.Context, log *zap.Logger, id int64, action Action) error {
	err := action(ctx, id)
	if err == nil || e.maxRetryWait <= 0 {
		return err
	}
	var rd retryDelayer
	if !errors.As(err, &rd) {
		return err
	}
	delay := rd.RetryDelay()
	if delay <= 0 || delay > e.maxRetryWait {
		return err
	}

	log.Debug("bulk.Run: remote asked to retry later", zap.Int64("id", id), zap.Duration("delay", delay))
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return err
	case <-timer.C:
	}
	return action(ctx, id)
}
