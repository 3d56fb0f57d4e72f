package users

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/Momin9/hotel-management-sub000/internal/authz"
	"github.com/Momin9/hotel-management-sub000/internal/shared"
)

// reapplyConcurrency bounds parallel flag updates during a bulk reapply.
const reapplyConcurrency = 8

// Service handles user account business logic: listings, role assignment,
// and role-template application.
type Service struct {
	repo   RepositoryPort
	sync   *authz.SyncManager
	audit  *shared.AuditLogger
	logger *slog.Logger
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, sync *authz.SyncManager, audit *shared.AuditLogger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, sync: sync, audit: audit, logger: logger}
}

// ListUsers returns all active users.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListActive(ctx)
}

// GetUser returns a single active user by id.
func (s *Service) GetUser(ctx context.Context, userID int64) (*User, error) {
	return s.repo.FindActive(ctx, userID)
}

// ListUsersByRole returns all active users carrying the role.
func (s *Service) ListUsersByRole(ctx context.Context, role authz.Role) ([]User, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("users: unknown role %q", role)
	}
	return s.repo.ListActiveByRole(ctx, role)
}

// ApplyRoleTemplate overwrites every capability flag on the account with
// the role template's values. Unknown roles leave the account unchanged and
// report the failure.
func (s *Service) ApplyRoleTemplate(ctx context.Context, userID int64, role authz.Role) error {
	tpl, ok := authz.TemplateFor(role)
	if !ok {
		return fmt.Errorf("users: apply template: unknown role %q", role)
	}
	if err := s.repo.UpdateCapabilities(ctx, userID, tpl); err != nil {
		return fmt.Errorf("users: apply template: %w", err)
	}
	s.recordAudit(ctx, userID, "users.apply_template", map[string]any{"role": role.String()})
	return nil
}

// ReapplyRoleTemplates reapplies the role template to every active account
// carrying the role, and returns how many were updated. Each account gets a
// full flag overwrite; manual edits are intentionally lost.
func (s *Service) ReapplyRoleTemplates(ctx context.Context, role authz.Role) (int, error) {
	tpl, ok := authz.TemplateFor(role)
	if !ok {
		return 0, fmt.Errorf("users: reapply templates: unknown role %q", role)
	}
	accounts, err := s.repo.ListActiveByRole(ctx, role)
	if err != nil {
		return 0, fmt.Errorf("users: reapply templates: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(reapplyConcurrency)
	for _, account := range accounts {
		account := account
		g.Go(func() error {
			return s.repo.UpdateCapabilities(ctx, account.ID, tpl)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("users: reapply templates: %w", err)
	}

	s.recordAudit(ctx, 0, "users.reapply_templates", map[string]any{
		"role": role.String(), "accounts": len(accounts),
	})
	return len(accounts), nil
}

// AssignRole sets the account's role, seeds its capability flags from the
// role template, and syncs group membership (elevating superuser/staff for
// the administrative role).
func (s *Service) AssignRole(ctx context.Context, userID int64, role authz.Role) error {
	if !role.IsValid() {
		return fmt.Errorf("users: assign role: unknown role %q", role)
	}
	if err := s.repo.UpdateRole(ctx, userID, role); err != nil {
		return fmt.Errorf("users: assign role: %w", err)
	}
	if err := s.ApplyRoleTemplate(ctx, userID, role); err != nil {
		return err
	}
	if s.sync != nil {
		if err := s.sync.AssignRole(ctx, userID, role); err != nil {
			return err
		}
	}
	return nil
}

// Deactivate soft-deletes the account; it disappears from active lookups
// and every subsequent permission check denies.
func (s *Service) Deactivate(ctx context.Context, userID int64) error {
	if err := s.repo.SoftDelete(ctx, userID); err != nil {
		return fmt.Errorf("users: deactivate: %w", err)
	}
	s.recordAudit(ctx, userID, "users.deactivate", nil)
	return nil
}

func (s *Service) recordAudit(ctx context.Context, userID int64, action string, meta map[string]any) {
	if s.audit == nil {
		return
	}
	entityID := strconv.FormatInt(userID, 10)
	if userID == 0 {
		entityID = "bulk"
	}
	if err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  userID,
		Action:   action,
		Entity:   "user",
		EntityID: entityID,
		Meta:     meta,
	}); err != nil {
		s.logger.Warn("audit user action", slog.String("action", action), slog.Any("error", err))
	}
}
