package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"partybridge/internal/audit"
	"partybridge/internal/bridge"
	partymetrics "partybridge/internal/party/metrics"
	"partybridge/internal/party/service"
	"partybridge/internal/platform/config"
	"partybridge/internal/platform/httpserver"
	"partybridge/internal/platform/logger"
	"partybridge/internal/platform/metrics"
	"partybridge/internal/workflow"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "partybridge: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv(config.EnvConfigFile))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newAuditStore(ctx, cfg.Audit, log)
	if err != nil {
		return err
	}
	defer closeStore()
	publisher := audit.NewPublisher(cfg.Audit.QueueSize, log)
	worker := audit.NewWorker(store, publisher.Inbox(), log)

	client, err := bridge.New(cfg.Bridge.BaseURL,
		bridge.WithTimeout(cfg.Bridge.Timeout),
		bridge.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("create bridge client: %w", err)
	}

	svc := service.New(client,
		service.WithLogger(log),
		service.WithMetrics(partymetrics.New()),
		service.WithAuditPublisher(publisher),
	)
	registry := workflow.NewRegistry(log)
	if err := workflow.RegisterPartyOperations(registry, svc); err != nil {
		return fmt.Errorf("register operations: %w", err)
	}

	srv := httpserver.New(cfg.Server.Addr, newRouter(log, metrics.New(), registry))

	g, gctx := errgroup.WithContext(ctx)
	// The worker stops once the publisher is closed, after in-flight requests finish.
	g.Go(func() error {
		return worker.Run(context.WithoutCancel(gctx))
	})
	g.Go(func() error {
		defer publisher.Close()
		log.InfoContext(gctx, "starting partybridge",
			"addr", cfg.Server.Addr,
			"bridge_url", cfg.Bridge.BaseURL,
			"audit_sink", cfg.Audit.Sink,
		)
		return httpserver.Run(gctx, srv, cfg.Server.ShutdownTimeout)
	})

	err = g.Wait()
	log.Info("partybridge stopped", "error", err)
	return err
}

func newAuditStore(ctx context.Context, cfg config.Audit, log *slog.Logger) (audit.Store, func(), error) {
	if cfg.Sink != config.AuditSinkKafka {
		return audit.NewLogStore(log), func() {}, nil
	}
	store, err := audit.NewKafkaStore(cfg.Brokers, cfg.Topic)
	if err != nil {
		return nil, nil, fmt.Errorf("create kafka audit store: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		// Audit is best effort; the producer keeps retrying in the background.
		log.WarnContext(ctx, "kafka audit brokers unreachable at startup", "error", err)
	}
	return store, store.Close, nil
}
