package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Momin9/hotel-management-sub000/internal/app"
	"github.com/Momin9/hotel-management-sub000/internal/auth"
	"github.com/Momin9/hotel-management-sub000/internal/authz"
	"github.com/Momin9/hotel-management-sub000/internal/hotels"
	"github.com/Momin9/hotel-management-sub000/internal/observability"
	"github.com/Momin9/hotel-management-sub000/internal/platform/cache"
	"github.com/Momin9/hotel-management-sub000/internal/platform/db"
	"github.com/Momin9/hotel-management-sub000/internal/shared"
	"github.com/Momin9/hotel-management-sub000/internal/subscriptions"
	"github.com/Momin9/hotel-management-sub000/internal/users"
	"github.com/Momin9/hotel-management-sub000/internal/view"
	"github.com/Momin9/hotel-management-sub000/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "hms_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	auditLogger := shared.NewAuditLogger(dbpool)

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, templates, sessionManager, csrfManager)

	usersRepo := users.NewRepository(dbpool)
	directory := users.NewDirectory(usersRepo)

	groupStore := authz.NewGroupStore(dbpool)
	resolver := authz.NewResolver(groupStore, logger, metrics)
	syncManager := authz.NewSyncManager(dbpool, logger, auditLogger)
	guards := authz.Middleware{Resolver: resolver, Directory: directory, Logger: logger}

	// Groups and permissions are re-synced on every boot; the provisioning
	// is idempotent so concurrent instances are safe.
	if err := syncManager.ProvisionAllRoles(ctx); err != nil {
		logger.Error("provision role groups", slog.Any("error", err))
	}

	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("asynq client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("asynq client close", slog.Any("error", err))
		}
	}()

	usersService := users.NewService(usersRepo, syncManager, auditLogger, logger)
	usersHandler := users.NewHandler(logger, usersService, templates, csrfManager, sessionManager, guards, jobsClient)

	hotelsRepo := hotels.NewRepository(dbpool)
	hotelsHandler := hotels.NewHandler(logger, hotelsRepo, templates, csrfManager, guards, resolver)

	subscriptionRepo := subscriptions.NewRepository(dbpool)
	subscriptionService := subscriptions.NewService(subscriptionRepo)
	gate := &subscriptions.Gate{
		Entitlements: subscriptionService,
		Directory:    directory,
		Sessions:     sessionManager,
		Logger:       logger,
		Metrics:      metrics,
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Templates:        templates,
		SessionManager:   sessionManager,
		CSRFManager:      csrfManager,
		AuthHandler:      authHandler,
		UsersHandler:     usersHandler,
		HotelsHandler:    hotelsHandler,
		JobHandler:       jobHandler,
		SubscriptionGate: gate,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
