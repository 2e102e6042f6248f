package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/salonhq/scheduler-api/internal/booking"
	"github.com/salonhq/scheduler-api/internal/config"
	"github.com/salonhq/scheduler-api/internal/email"
	"github.com/salonhq/scheduler-api/internal/handoff"
	actionHandler "github.com/salonhq/scheduler-api/internal/handler/action"
	appointmentHandler "github.com/salonhq/scheduler-api/internal/handler/appointment"
	authHandler "github.com/salonhq/scheduler-api/internal/handler/auth"
	gridHandler "github.com/salonhq/scheduler-api/internal/handler/grid"
	presenceHandler "github.com/salonhq/scheduler-api/internal/handler/presence"
	staffHandler "github.com/salonhq/scheduler-api/internal/handler/staff"
	"github.com/salonhq/scheduler-api/internal/middleware"
	"github.com/salonhq/scheduler-api/internal/notification"
	"github.com/salonhq/scheduler-api/internal/persistence"
	"github.com/salonhq/scheduler-api/internal/presence"
	"github.com/salonhq/scheduler-api/internal/repository/postgres"
	"github.com/salonhq/scheduler-api/internal/router"
	"github.com/salonhq/scheduler-api/internal/schedule"
	"github.com/salonhq/scheduler-api/internal/session"
	"github.com/salonhq/scheduler-api/pkg/auth"
	"github.com/salonhq/scheduler-api/pkg/logger"
	redisbroker "github.com/salonhq/scheduler-api/pkg/messaging/redis"
	"github.com/salonhq/scheduler-api/pkg/metrics"
	"github.com/salonhq/scheduler-api/pkg/security"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)
	appMetrics := metrics.NewMetrics("salon", "scheduler")

	// Initialize database (staff roster + service catalog collaborators)
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	base := postgres.NewBaseRepository(db)
	staffRepo := postgres.NewStaffRepository(base)
	catalogRepo := postgres.NewCatalogRepository(base)

	// Initialize broker (handoff queue + presence fan-out)
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

	// Initialize persistence collaborator
	snaps, err := persistence.NewRedisSnapshotter(persistence.Config{
		URL:          cfg.Redis.URL,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to persistence store")
	}
	defer snaps.Close()

	// Scheduling core
	notifier := notification.NewService(appLogger)
	store := schedule.NewStore(context.Background(), snaps, appLogger, appMetrics)
	resolver := schedule.NewConflictResolver(store)
	handoffQueue := handoff.NewQueue(broker)
	machine := schedule.NewMachine(store, handoffQueue, catalogRepo, notifier, appLogger, appMetrics)
	reassigner := schedule.NewReassigner(store, resolver, appMetrics)
	colors := schedule.NewColorRegistry()
	menu := schedule.NewMenu(store, machine)
	marker := schedule.NewTimeMarker()
	marker.Start(schedule.MarkerRefreshInterval)
	gridBuilder := schedule.NewGridBuilder(store, menu, colors, marker)

	// Sessions and auth
	tokens := auth.NewTokenService(auth.Config{
		Secret:      cfg.JWT.Secret,
		ExpiryHours: cfg.JWT.ExpiryHours,
	})
	sessions := session.NewManager(session.Config{
		IdleTimeout:   cfg.Session.IdleTimeout,
		WarningOffset: cfg.Session.WarningOffset,
	}, tokens, notifier, appLogger, appMetrics)
	hasher := security.NewBcryptHasher(0)

	// Presence
	tracker := presence.NewTracker(broker, appLogger)
	if err := tracker.Start(context.Background()); err != nil {
		appLogger.Error(err, "presence subscription unavailable")
	}

	// Booking intake
	validator := booking.NewValidator(catalogRepo)

	var mailer email.Service
	if cfg.Email.Enabled {
		mailer = email.NewService(email.Config{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
		}, appLogger)
	} else {
		mailer = email.NewNoopService(appLogger)
	}

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(tokens, sessions)
	authH := authHandler.NewHandler(staffRepo, hasher, tokens, sessions, tracker)

	r := router.NewRouter(
		authMiddleware,
		sessions,
		authH,
		router.Config{
			RateLimit:     rate.Limit(cfg.RateLimit.Rate),
			RateBurst:     cfg.RateLimit.Burst,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "salon_scheduler",
		},
		gridHandler.NewHandler(gridBuilder, staffRepo, notifier),
		appointmentHandler.NewHandler(store, validator, catalogRepo, machine, reassigner, mailer, appLogger),
		actionHandler.NewHandler(menu, store),
		staffHandler.NewHandler(staffRepo, catalogRepo, colors),
		presenceHandler.NewHandler(tracker),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Info("starting scheduler API", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down")
	sessions.Shutdown()
	marker.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error(err, "forced shutdown")
	}
}
