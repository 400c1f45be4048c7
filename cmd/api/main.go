package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"framtt_backend/internal/adapters"
	"framtt_backend/internal/adapters/storage"
	"framtt_backend/internal/analytics"
	"framtt_backend/internal/auth"
	"framtt_backend/internal/demo"
	"framtt_backend/internal/email"
	"framtt_backend/internal/events"
	"framtt_backend/internal/health"
	apphttp "framtt_backend/internal/http"
	"framtt_backend/internal/http/router"
	"framtt_backend/internal/leads"
	"framtt_backend/internal/notification"
	"framtt_backend/internal/questionnaire"
	"framtt_backend/internal/scheduler"
	"framtt_backend/migrations"
	"framtt_backend/platform/config"
	"framtt_backend/platform/db"
	"framtt_backend/platform/logger"
	"framtt_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "version", cfg.Version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	if cfg.GetMigrationsEnabled() {
		if err := runMigrations(ctx, pool, log); err != nil {
			log.Error("failed to run database migrations", "error", err)
			panic("failed to run database migrations: " + err.Error())
		}
		log.Info("database migrations complete")
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)
	defer eventBus.Wait()

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	// Shared validator instance for dependency injection
	val := validator.New(cfg.GetDefaultPhoneRegion())

	store := initStorage(ctx, cfg, log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(sender, cfg, log)
	notificationQueue, closeQueue := initNotificationQueue(cfg, log)
	if closeQueue != nil {
		defer closeQueue()
		notificationModule.SetQueue(notificationQueue)
	}
	notificationModule.RegisterHandlers(eventBus)

	authModule, err := auth.NewModule(pool, cfg, val, log)
	if err != nil {
		log.Error("failed to initialize auth module", "error", err)
		panic("failed to initialize auth module: " + err.Error())
	}

	leadsModule := leads.NewModule(pool, eventBus, store, val, cfg, log)

	// Anti-Corruption Layer: demo requests reach leads only through this adapter
	demoLeads := adapters.NewDemoLeadUpserter(leadsModule.Service())
	demoModule := demo.NewModule(pool, demoLeads, eventBus, val, cfg, log)

	questionnaireModule := questionnaire.NewModule(pool, eventBus, val, log)
	analyticsModule := analytics.NewModule(pool)

	healthDeps := health.Deps{
		Version:        cfg.Version,
		Database:       db.NewPoolAdapter(pool),
		EmailAvailable: cfg.GetNotificationsEnabled() && email.Available(sender),
		MissingEnv:     config.MissingRequiredEnv,
	}
	if cfg.GetRedisURL() != "" {
		opt, err := scheduler.RedisOptions(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
		if err != nil {
			log.Warn("invalid REDIS_URL; redis health check disabled", "error", err)
		} else {
			redisPinger := health.NewRedisPinger(opt)
			defer func() { _ = redisPinger.Close() }()
			healthDeps.Redis = redisPinger
		}
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			health.NewModule(healthDeps),
			authModule,
			questionnaireModule,
			demoModule,
			leadsModule,
			analyticsModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	migrator, err := db.NewMigrator(pool, migrations.FS, log)
	if err != nil {
		return err
	}
	defer func() { _ = migrator.Close() }()

	return withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return migrator.Up(ctx)
	})
}

// initStorage returns nil when MinIO is not configured, which disables stored exports.
func initStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) storage.ObjectStore {
	if !cfg.IsMinIOEnabled() {
		log.Warn("MINIO_ENDPOINT not configured; stored lead exports disabled")
		return nil
	}

	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}

	bucket := cfg.GetMinIOBucketExports()
	if err := withRetry(ctx, log, "ensure exports bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
	log.Info("storage service initialized", "exportsBucket", bucket)
	return storageSvc
}

func initNotificationQueue(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.NotificationEnqueuer, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; notification emails are sent in-process")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize notification queue client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
