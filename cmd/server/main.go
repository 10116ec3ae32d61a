package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"dgiconsole/internal/billing"
	"dgiconsole/internal/bulk"
	"dgiconsole/internal/cache"
	"dgiconsole/internal/clearance"
	"dgiconsole/internal/config"
	"dgiconsole/internal/domain"
	"dgiconsole/internal/email/noop"
	sesemail "dgiconsole/internal/email/ses"
	"dgiconsole/internal/handler"
	"dgiconsole/internal/logger"
	"dgiconsole/internal/port"
	"dgiconsole/internal/repository/postgres"
	"dgiconsole/internal/router"
	"dgiconsole/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zlog := logger.New(cfg.Log)
	defer func() { _ = zlog.Sync() }()

	db, err := postgres.NewDB(context.Background(), &cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	auditRepo := postgres.NewAuditRepo(db)

	// Initialize notifier
	var notifier port.ClearanceNotifier
	switch cfg.Email.Provider {
	case "ses":
		notifier, err = sesemail.NewSESNotifier(context.Background(), &cfg.Email)
		if err != nil {
			return fmt.Errorf("failed to initialize SES notifier: %w", err)
		}
	default:
		notifier = noop.NewNoopNotifier(zlog)
	}

	// Remote billing API and local document state
	billingClient := billing.NewClient(&cfg.Remote).WithLogger(zlog)
	invoiceCache := cache.NewDocumentCache(func(inv domain.Invoice) int64 { return inv.ID })
	quoteCache := cache.NewDocumentCache(func(q domain.Quote) int64 { return q.ID })

	poller := clearance.NewPoller(billingClient, invoiceCache, cfg.Clearance.CheckTimeout(), zlog)
	executor := bulk.NewExecutor(bulk.Config{
		Concurrency:   cfg.Bulk.Concurrency,
		RatePerSecond: cfg.Bulk.RatePerSecond,
		Burst:         cfg.Bulk.Burst,
		MaxRetryWait:  cfg.Bulk.MaxRetryWait(),
	}, zlog)

	// Initialize services
	sessionSvc := service.NewSessionService(cfg.Auth, zlog)
	invoiceSvc := service.NewInvoiceService(billingClient, invoiceCache, poller, executor, sessionSvc, auditRepo, notifier, zlog)
	quoteSvc := service.NewQuoteService(billingClient, quoteCache, executor, sessionSvc, auditRepo, zlog)

	// Initialize handlers
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	quoteH := handler.NewQuoteHandler(quoteSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(zlog, cfg.CORS.AllowedOrigins, sessionSvc, invoiceH, quoteH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("remote", cfg.Remote.BaseURL),
			zap.String("environment", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		zlog.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
