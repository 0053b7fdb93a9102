package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xavierca1/lead-intake/internal/config"
	"github.com/xavierca1/lead-intake/internal/infra/http/handlers"
	metrics "github.com/xavierca1/lead-intake/internal/infra/http/middleware"
	"github.com/xavierca1/lead-intake/internal/infra/integration/kommo"
	"github.com/xavierca1/lead-intake/internal/infra/mail"
	"github.com/xavierca1/lead-intake/internal/infra/memory"
	"github.com/xavierca1/lead-intake/internal/infra/queue"
	"github.com/xavierca1/lead-intake/internal/infra/worker"
	"github.com/xavierca1/lead-intake/internal/logging"
	"github.com/xavierca1/lead-intake/internal/usecase"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	// 1. Store
	store := memory.NewLeadRepository()
	if cfg.SeedDemoLeads {
		n := store.Seed(memory.DemoLeads(time.Now()))
		logger.Info(ctx, "demo leads seeded", "count", n)
	}

	// 2. Broker, optional
	var (
		publisher usecase.LeadEventPublisher
		broker    *queue.RabbitMQ
	)
	if cfg.RabbitMQURL != "" {
		rmq, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		defer rmq.Close()
		broker = rmq
		publisher = queue.NewProducer(rmq.Ch)

		w := queue.NewWorker(rmq.Ch, notifier(cfg, logger), forwarder(cfg, logger), logger)
		w.OnIntegrationError = metrics.RecordIntegrationError
		go func() {
			if err := w.Start(ctx, queue.QueueName); err != nil {
				logger.Error(ctx, "lead events worker", "error", err)
			}
		}()
	} else {
		logger.Warn(ctx, "RABBITMQ_URL not set, lead events are not published")
	}

	// 3. Use cases
	observe := func(e queue.LeadEvent, err error) {
		metrics.RecordLeadEventPublished(string(e.Type), err)
	}
	submitUC := usecase.NewSubmitLeadUseCase(store, publisher, observe, logger)
	listUC := usecase.NewListLeadsUseCase(store)
	reachedOutUC := usecase.NewMarkReachedOutUseCase(store, publisher, observe, logger)

	// 4. Background workers
	limiter := handlers.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow)
	go limiter.Run(ctx)

	stats := worker.NewLeadStatsWorker(store, metrics.SetLeadsByStatus, cfg.StatsInterval, logger)
	go stats.Start(ctx)

	// 5. Handlers
	health := handlers.NewHealthHandler(store, nil, version)
	if broker != nil {
		health.RabbitMQ = broker.Conn
	}

	router := newRouter(routeHandlers{
		Leads:  handlers.NewLeadHandler(submitUC, listUC, reachedOutUC, limiter, logger),
		Auth:   handlers.NewAuthHandler(cfg.AdminEmail, cfg.AdminPassword, logger),
		Health: health,
	}, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "lead service listening", "addr", srv.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func notifier(cfg *config.Config, logger logging.Logger) queue.LeadNotifier {
	if !cfg.MailEnabled() {
		logger.Info(context.Background(), "mail not configured, new lead notifications disabled")
		return nil
	}
	sender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPassword, cfg.MailFrom, cfg.NotifyTo)
	sender.DashboardURL = cfg.DashboardURL
	return sender
}

func forwarder(cfg *config.Config, logger logging.Logger) queue.LeadForwarder {
	if !cfg.CRMEnabled() {
		logger.Info(context.Background(), "crm not configured, leads are not forwarded")
		return nil
	}
	return kommo.NewClient(cfg.CRMToken, cfg.CRMBaseURL)
}
