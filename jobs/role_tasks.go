package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/Momin9/hotel-management-sub000/internal/authz"
)

const (
	// TaskTypeRoleReapply resets capability flags from the role template for
	// every account carrying the role.
	TaskTypeRoleReapply = "roles:reapply"
	// TaskTypeRoleProvision synchronises the permission group for a role.
	// An empty role payload provisions every known role.
	TaskTypeRoleProvision = "roles:provision"
)

// RolePayload carries the role name for role maintenance tasks.
type RolePayload struct {
	Role string `json:"role"`
}

// NewRoleReapplyTask builds a bulk template-reapply task.
func NewRoleReapplyTask(role string) (*asynq.Task, error) {
	data, err := json.Marshal(RolePayload{Role: role})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeRoleReapply, data, asynq.Queue(QueueDefault)), nil
}

// NewRoleProvisionTask builds a group-provisioning task.
func NewRoleProvisionTask(role string) (*asynq.Task, error) {
	data, err := json.Marshal(RolePayload{Role: role})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeRoleProvision, data, asynq.Queue(QueueDefault)), nil
}

// TemplateReapplier applies role templates to whole cohorts of accounts.
type TemplateReapplier interface {
	ReapplyRoleTemplates(ctx context.Context, role authz.Role) (int, error)
}

// RoleProvisioner synchronises role groups and their permissions.
type RoleProvisioner interface {
	ProvisionRole(ctx context.Context, role authz.Role) error
	ProvisionAllRoles(ctx context.Context) error
}

// NewRoleReapplyHandler processes TaskTypeRoleReapply tasks.
func NewRoleReapplyHandler(svc TemplateReapplier, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload RolePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		role, ok := authz.ParseRole(payload.Role)
		if !ok {
			if logger != nil {
				logger.Warn("role reapply skipped", slog.String("role", payload.Role))
			}
			return asynq.SkipRetry
		}
		updated, err := svc.ReapplyRoleTemplates(ctx, role)
		if err != nil {
			return err
		}
		if logger != nil {
			logger.Info("role templates reapplied", slog.String("role", role.String()), slog.Int("updated", updated))
		}
		return nil
	}
}

// NewRoleProvisionHandler processes TaskTypeRoleProvision tasks.
func NewRoleProvisionHandler(sync RoleProvisioner, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload RolePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if payload.Role == "" {
			if err := sync.ProvisionAllRoles(ctx); err != nil {
				return err
			}
			if logger != nil {
				logger.Info("all role groups provisioned")
			}
			return nil
		}
		role, ok := authz.ParseRole(payload.Role)
		if !ok {
			return asynq.SkipRetry
		}
		if err := sync.ProvisionRole(ctx, role); err != nil {
			return err
		}
		if logger != nil {
			logger.Info("role group provisioned", slog.String("role", role.String()))
		}
		return nil
	}
}
