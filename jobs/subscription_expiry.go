package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Momin9/hotel-management-sub000/internal/subscriptions"
)

// TaskTypeSubscriptionExpiry sweeps overdue subscriptions into the expired
// state and reports windows that are about to lapse.
const TaskTypeSubscriptionExpiry = "subscriptions:expire"

// NewSubscriptionExpiryTask builds the nightly sweep task.
func NewSubscriptionExpiryTask() *asynq.Task {
	return asynq.NewTask(TaskTypeSubscriptionExpiry, nil, asynq.Queue(QueueDefault))
}

// SubscriptionSweeper exposes the sweep operations of the subscription
// service.
type SubscriptionSweeper interface {
	ExpireOverdue(ctx context.Context, on time.Time) (int64, error)
	ExpiringWithin(ctx context.Context, on time.Time, days int) ([]subscriptions.Subscription, error)
}

// MailEnqueuer submits outbound mail to the queue.
type MailEnqueuer interface {
	EnqueueSendEmail(ctx context.Context, payload SendEmailPayload) (*asynq.TaskInfo, error)
}

// SubscriptionExpiryConfig collects handler dependencies.
type SubscriptionExpiryConfig struct {
	Sweeper    SubscriptionSweeper
	Mail       MailEnqueuer
	NotifyTo   string
	NoticeDays int
	Logger     *slog.Logger
}

// NewSubscriptionExpiryHandler processes TaskTypeSubscriptionExpiry tasks.
func NewSubscriptionExpiryHandler(cfg SubscriptionExpiryConfig) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		now := time.Now().UTC()
		expired, err := cfg.Sweeper.ExpireOverdue(ctx, now)
		if err != nil {
			return err
		}
		if cfg.Logger != nil {
			cfg.Logger.Info("subscription sweep", slog.Int64("expired", expired))
		}

		days := cfg.NoticeDays
		if days <= 0 {
			days = 7
		}
		expiring, err := cfg.Sweeper.ExpiringWithin(ctx, now, days)
		if err != nil {
			return err
		}
		if len(expiring) == 0 || cfg.Mail == nil || cfg.NotifyTo == "" {
			return nil
		}

		body := fmt.Sprintf("Langganan yang akan berakhir dalam %d hari:\n", days)
		for _, sub := range expiring {
			body += fmt.Sprintf("- hotel %d berakhir %s\n", sub.HotelID, sub.EndDate.Format("2006-01-02"))
		}
		payload := SendEmailPayload{
			To:      cfg.NotifyTo,
			Subject: fmt.Sprintf("Pemberitahuan langganan: %d akan berakhir", len(expiring)),
			Body:    body,
		}
		if _, err := cfg.Mail.EnqueueSendEmail(ctx, payload); err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("enqueue subscription notice", slog.Any("error", err))
			}
		}
		return nil
	}
}
