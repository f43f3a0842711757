package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hurricanecontrol/bulletin-notifier/internal/adapter/gateway"
	"github.com/hurricanecontrol/bulletin-notifier/internal/adapter/httpapi"
	kafkaadapter "github.com/hurricanecontrol/bulletin-notifier/internal/adapter/kafka"
	"github.com/hurricanecontrol/bulletin-notifier/internal/adapter/nhc"
	"github.com/hurricanecontrol/bulletin-notifier/internal/adapter/postgres"
	redisadapter "github.com/hurricanecontrol/bulletin-notifier/internal/adapter/redis"
	"github.com/hurricanecontrol/bulletin-notifier/internal/analyzer"
	"github.com/hurricanecontrol/bulletin-notifier/internal/config"
	"github.com/hurricanecontrol/bulletin-notifier/internal/observability"
	"github.com/hurricanecontrol/bulletin-notifier/internal/registry"
	"github.com/hurricanecontrol/bulletin-notifier/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	if err := postgres.RunMigrations(ctx, db); err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	snapshots, err := redisadapter.NewSnapshotStore(ctx, cfg.RedisAddr, cfg.SummaryKey, cfg.OutlookImageKey)
	if err != nil {
		logger.Error("redis connection failed", "error", err)
		os.Exit(1)
	}

	nhcClient := nhc.NewClient(cfg.BulletinURL, cfg.OutlookURL, cfg.FetchTimeout, logger)
	publisher := kafkaadapter.NewPublisher(cfg.KafkaBrokers, logger)
	arrivals := postgres.NewArrivalRepository(db)

	runner := analyzer.NewRunner(nhcClient, nhcClient, publisher, arrivals, snapshots, logger, metrics)

	gatewayClient := gateway.NewClient(cfg.GatewayURL, cfg.GatewayTimeout, logger)
	subscribers := postgres.NewSubscriberRepository(db)
	reg := registry.NewService(subscribers, gatewayClient, logger)

	sched, err := scheduler.New(cfg.AnalyzeCron, runner, logger)
	if err != nil {
		logger.Error("scheduler setup failed", "error", err)
		os.Exit(1)
	}

	srv := httpapi.NewServer(cfg.HTTPAddr, reg, runner, snapshots, logger, metrics)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	sched.Start()

	// First run on startup so the snapshot and readiness do not wait for
	// the first cron tick.
	go func() {
		if _, err := runner.Run(ctx); err != nil {
			logger.Error("startup analysis run failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	sched.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("kafka publisher close error", "error", err)
	}
	if err := snapshots.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}
	if err := db.Close(); err != nil {
		logger.Error("postgres close error", "error", err)
	}

	logger.Info("shutdown complete")
}
