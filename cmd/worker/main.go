package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/Momin9/hotel-management-sub000/internal/app"
	"github.com/Momin9/hotel-management-sub000/internal/authz"
	jobmetrics "github.com/Momin9/hotel-management-sub000/internal/jobs"
	"github.com/Momin9/hotel-management-sub000/internal/platform/db"
	"github.com/Momin9/hotel-management-sub000/internal/shared"
	"github.com/Momin9/hotel-management-sub000/internal/subscriptions"
	"github.com/Momin9/hotel-management-sub000/internal/users"
	"github.com/Momin9/hotel-management-sub000/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	auditLogger := shared.NewAuditLogger(pool)
	syncManager := authz.NewSyncManager(pool, logger, auditLogger)

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo, syncManager, auditLogger, logger)

	subscriptionRepo := subscriptions.NewRepository(pool)
	subscriptionService := subscriptions.NewService(subscriptionRepo)

	mailClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("asynq client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := mailClient.Close(); err != nil {
			logger.Warn("asynq client close", slog.Any("error", err))
		}
	}()

	mailer := jobs.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Metrics:   jobmetrics.NewMetrics(nil),
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeSendEmail, Handler: jobs.NewSendEmailHandler(mailer, logger)},
			{Type: jobs.TaskTypeRoleReapply, Handler: jobs.NewRoleReapplyHandler(usersService, logger)},
			{Type: jobs.TaskTypeRoleProvision, Handler: jobs.NewRoleProvisionHandler(syncManager, logger)},
			{Type: jobs.TaskTypeSubscriptionExpiry, Handler: jobs.NewSubscriptionExpiryHandler(jobs.SubscriptionExpiryConfig{
				Sweeper:    subscriptionService,
				Mail:       mailClient,
				NotifyTo:   cfg.AdminEmail,
				NoticeDays: cfg.SubscriptionNoticeDays,
				Logger:     logger,
			})},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 2 * * *", Task: jobs.NewSubscriptionExpiryTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
