package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/citizen-engagement/internal/config"
	"github.com/spec-kit/citizen-engagement/internal/observability"
	"github.com/spec-kit/citizen-engagement/internal/persistence"
	"github.com/spec-kit/citizen-engagement/internal/queue"
	"github.com/spec-kit/citizen-engagement/internal/sms"
	"github.com/spec-kit/citizen-engagement/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	if cfg.SMS.APIToken == "" {
		logger.Warn("SMS_API_TOKEN not set, SEND_SMS jobs will fail")
	}
	handler := worker.NewNotificationWorker(sms.NewClient(cfg.SMS), logger)
	notifications := queue.New(redis.Client, cfg.Queue, logger)

	logger.Info("notification worker started",
		zap.String("queue", cfg.Queue.Name),
		zap.Int("concurrency", cfg.Queue.Concurrency),
		zap.Int("max_attempts", cfg.Queue.MaxAttempts))

	done := make(chan error, 1)
	go func() { done <- notifications.Consume(ctx, handler.Handle) }()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Fatal("worker stopped", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down worker")
		select {
		case <-done:
		case <-time.After(cfg.App.ShutdownTimeout):
			logger.Error("worker shutdown timed out, forcing exit")
			_ = logger.Sync()
			os.Exit(1)
		}
	}
	logger.Info("worker stopped")
}
