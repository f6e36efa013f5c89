// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Tributestream gateway.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Build the upstream client (with metrics).
//  4. Connect to Redis when configured (shared auth throttling).
//  5. Connect to PostgreSQL and run migrations when configured (audit trail).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/tributestream/internal/api"
	"github.com/taibuivan/tributestream/internal/audit"
	"github.com/taibuivan/tributestream/internal/auth"
	"github.com/taibuivan/tributestream/internal/cms/funeralhome"
	"github.com/taibuivan/tributestream/internal/cms/tribute"
	"github.com/taibuivan/tributestream/internal/media"
	"github.com/taibuivan/tributestream/internal/platform/config"
	"github.com/taibuivan/tributestream/internal/platform/constants"
	"github.com/taibuivan/tributestream/internal/platform/metrics"
	"github.com/taibuivan/tributestream/internal/platform/migration"
	pgstore "github.com/taibuivan/tributestream/internal/platform/postgres"
	redisstore "github.com/taibuivan/tributestream/internal/platform/redis"
	"github.com/taibuivan/tributestream/internal/platform/sec"
	"github.com/taibuivan/tributestream/internal/platform/session"
	"github.com/taibuivan/tributestream/internal/platform/upstream"
)

// auditBuffer is how many events may wait for the recorder before new ones are dropped.
const auditBuffer = 256

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Tributestream] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("upstream", cfg.UpstreamBaseURL),
	)

	// Root context for background workers; cancelled on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup deadline so misconfiguration is caught quickly rather than
	// hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. Upstream ───────────────────────────────────────────────────────
	registry := metrics.New()
	httpClient := &http.Client{Timeout: cfg.UpstreamTimeout}
	upstreamClient := upstream.NewClient(cfg.UpstreamBaseURL, httpClient, upstream.WithObserver(registry))

	health := api.HealthDependencies{
		CheckUpstream: api.UpstreamProbe(httpClient, cfg.UpstreamHealthURL()),
	}

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var limiter auth.AttemptLimiter
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		limiter = auth.NewRedisAttemptLimiter(rdb, cfg.AuthAttemptLimit, cfg.AuthAttemptWindow)
		health.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	} else {
		memoryLimiter := auth.NewMemoryAttemptLimiter(cfg.AuthAttemptLimit, cfg.AuthAttemptWindow)
		go memoryLimiter.RunPruner(rootCtx, constants.RateLimitCleanupInterval)
		limiter = memoryLimiter
		log.Info("auth_throttle_in_memory")
	}

	// ── 5. PostgreSQL + Migrations (optional) ─────────────────────────────
	var sink audit.Recorder = audit.NewLogRecorder(log)
	if cfg.DatabaseURL != "" {
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing postgres pool")
			pool.Close()
		}()

		var migrations fs.FS = audit.Migrations
		dir := audit.MigrationsDir
		if cfg.MigrationPath != "" {
			migrations, dir = os.DirFS(cfg.MigrationPath), "."
		}
		must(log, migration.RunUp(cfg.DatabaseURL, migrations, dir, log), "run migrations")

		sink = audit.NewPostgresRecorder(pool)
		health.CheckDatabase = func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }
	}

	auditQueue := audit.NewQueue(sink, auditBuffer, log)

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	sessions := session.NewCookieStore(session.CookieOptions{
		Name:   cfg.SessionCookieName,
		Secure: cfg.IsProduction(),
		Path:   "/",
	})

	authService := auth.NewService(auth.NewUpstreamGateway(upstreamClient), limiter)
	authHandler := auth.NewHandler(authService, sessions, auth.CookieLifetimes{
		Standard: cfg.SessionCookieTTL,
		Remember: cfg.SessionRememberTTL,
		Short:    cfg.SessionShortTTL,
	}, auditQueue)

	funeralHomeHandler := funeralhome.NewHandler(
		funeralhome.NewService(funeralhome.NewUpstreamRepository(upstreamClient)), auditQueue)
	tributeHandler := tribute.NewHandler(
		tribute.NewService(tribute.NewUpstreamRepository(upstreamClient)), auditQueue)
	mediaHandler := media.NewHandler(
		media.NewService(media.NewUpstreamRepository(upstreamClient)), auditQueue)

	liveness, readiness := api.NewHealthHandlers(health, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Auth:         authHandler,
		FuneralHomes: funeralHomeHandler,
		Tributes:     tributeHandler,
		Media:        mediaHandler,
	}

	server := api.NewServer(rootCtx, cfg, log, api.Dependencies{
		Sessions:  sessions,
		Inspector: sec.NewTokenInspector(cfg.UpstreamJWTSecret),
		Metrics:   registry,
	}, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	shutdownErr := server.Shutdown(shutdownTimeout)

	// Flush pending audit events after the last request has finished.
	drainCtx, drainCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := auditQueue.Close(drainCtx); err != nil {
		log.Warn("audit_queue_not_drained", slog.Any("error", err))
	}
	drainCancel()

	if shutdownErr != nil {
		log.Error("shutdown error", slog.Any("error", shutdownErr))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
