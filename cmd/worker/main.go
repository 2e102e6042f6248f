package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/salonhq/scheduler-api/internal/config"
	"github.com/salonhq/scheduler-api/pkg/logger"
	redisbroker "github.com/salonhq/scheduler-api/pkg/messaging/redis"
	"github.com/salonhq/scheduler-api/pkg/metrics"
	"github.com/salonhq/scheduler-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)
	appMetrics := metrics.NewMetrics("salon", "scheduler_worker")

	zl := log.Logger
	broker, err := redisbroker.NewRedisBroker(redisbroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &zl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to message broker")
	}
	defer broker.Close()

	processor := worker.NewHandoffProcessor(broker, worker.HandoffProcessorConfig{
		PollTimeout: 5 * time.Second,
		WebhookURL:  os.Getenv("SCHEDULER_CHECKOUT_WEBHOOK"),
	}, appLogger, appMetrics)

	ctx, cancel := context.WithCancel(context.Background())
	go processor.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	cancel()
}
