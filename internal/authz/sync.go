package authz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Momin9/hotel-management-sub000/internal/platform/db"
	"github.com/Momin9/hotel-management-sub000/internal/shared"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const pgUniqueViolation = "23505"

// SyncManager provisions the group/permission registry from the role
// catalog and assigns identities to role groups. Every operation is
// idempotent and safe under concurrent provisioning: uniqueness is enforced
// by storage constraints, not in-process locks.
type SyncManager struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
	audit  *shared.AuditLogger
}

// NewSyncManager constructs a SyncManager.
func NewSyncManager(pool *pgxpool.Pool, logger *slog.Logger, audit *shared.AuditLogger) *SyncManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncManager{pool: pool, logger: logger, audit: audit}
}

// ProvisionRole get-or-creates a permission record for every codename in the
// role's group catalog, attaches them to the role-named group, and collapses
// any duplicate permission rows left behind by concurrent provisioning.
// Safe to re-run.
func (m *SyncManager) ProvisionRole(ctx context.Context, role Role) error {
	codenames, ok := GroupCodenames(role)
	if !ok {
		return fmt.Errorf("authz: provision: unknown role %q", role)
	}

	groupID, err := m.getOrCreateGroup(ctx, role.GroupName())
	if err != nil {
		return fmt.Errorf("authz: provision group %q: %w", role.GroupName(), err)
	}

	for _, codename := range codenames {
		permID, err := m.getOrCreatePermission(ctx, codename)
		if err != nil {
			return fmt.Errorf("authz: provision permission %q: %w", codename, err)
		}
		if err := m.attachPermission(ctx, groupID, permID); err != nil {
			return fmt.Errorf("authz: attach %q to group %q: %w", codename, role.GroupName(), err)
		}
	}

	collapsed, err := m.collapseDuplicatePermissions(ctx)
	if err != nil {
		return fmt.Errorf("authz: collapse duplicates: %w", err)
	}
	if collapsed > 0 {
		m.logger.Warn("collapsed duplicate permission records",
			slog.String("role", role.String()), slog.Int64("collapsed", collapsed))
	}

	if m.audit != nil {
		if err := m.audit.Record(ctx, shared.AuditLog{
			Action:   "authz.provision_role",
			Entity:   "role",
			EntityID: role.String(),
			Meta:     map[string]any{"codenames": len(codenames)},
		}); err != nil {
			m.logger.Warn("audit provision role", slog.Any("error", err))
		}
	}
	return nil
}

// ProvisionAllRoles runs ProvisionRole for every known role.
func (m *SyncManager) ProvisionAllRoles(ctx context.Context) error {
	for _, role := range AllRoles {
		if err := m.ProvisionRole(ctx, role); err != nil {
			return err
		}
	}
	return nil
}

// AssignRole adds the identity to the role's group. For the administrative
// role it also flips is_superuser and is_staff on the identity record.
// Idempotent.
func (m *SyncManager) AssignRole(ctx context.Context, identityID int64, role Role) error {
	if !role.IsValid() {
		return fmt.Errorf("authz: assign: unknown role %q", role)
	}
	groupID, err := m.getOrCreateGroup(ctx, role.GroupName())
	if err != nil {
		return fmt.Errorf("authz: assign group %q: %w", role.GroupName(), err)
	}
	// Keanggotaan grup dan flag superuser harus berubah dalam satu transaksi.
	err = db.WithTx(ctx, m.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO auth_user_groups (user_id, group_id)
			VALUES ($1, $2)
			ON CONFLICT (user_id, group_id) DO NOTHING`, identityID, groupID); err != nil {
			return fmt.Errorf("authz: assign membership: %w", err)
		}
		if role == RoleAdmin {
			if _, err := tx.Exec(ctx, `
				UPDATE users SET is_superuser = TRUE, is_staff = TRUE, updated_at = NOW()
				WHERE id = $1`, identityID); err != nil {
				return fmt.Errorf("authz: elevate admin flags: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if m.audit != nil {
		if err := m.audit.Record(ctx, shared.AuditLog{
			ActorID:  identityID,
			Action:   "authz.assign_role",
			Entity:   "user",
			EntityID: strconv.FormatInt(identityID, 10),
			Meta:     map[string]any{"role": role.String()},
		}); err != nil {
			m.logger.Warn("audit assign role", slog.Any("error", err))
		}
	}
	return nil
}

func (m *SyncManager) getOrCreateGroup(ctx context.Context, name string) (int64, error) {
	var id int64
	err := m.pool.QueryRow(ctx, `
		INSERT INTO auth_groups (name) VALUES ($1)
		ON CONFLICT (name) DO NOTHING
		RETURNING id`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}
	// Conflict path: another provisioner created it first.
	if err := m.pool.QueryRow(ctx, `SELECT id FROM auth_groups WHERE name = $1`, name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (m *SyncManager) getOrCreatePermission(ctx context.Context, codename string) (int64, error) {
	var id int64
	err := m.pool.QueryRow(ctx, `
		INSERT INTO auth_permissions (codename) VALUES ($1)
		ON CONFLICT (codename) DO NOTHING
		RETURNING id`, codename).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}
	if err := m.pool.QueryRow(ctx, `
		SELECT MIN(id) FROM auth_permissions WHERE codename = $1`, codename).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// attachPermission relies on the (group_id, permission_id) unique constraint
// and treats a violation as already-attached.
func (m *SyncManager) attachPermission(ctx context.Context, groupID, permID int64) error {
	_, err := m.pool.Exec(ctx, `
		INSERT INTO auth_group_permissions (group_id, permission_id)
		VALUES ($1, $2)`, groupID, permID)
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return nil
	}
	return err
}

// collapseDuplicatePermissions keeps the lowest-id permission row per
// codename, repoints group links at it, and deletes the rest. A no-op while
// the codename unique constraint holds; self-heals registries that predate
// it. Returns the number of rows removed.
func (m *SyncManager) collapseDuplicatePermissions(ctx context.Context) (int64, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO auth_group_permissions (group_id, permission_id)
		SELECT gp.group_id, canon.id
		FROM auth_group_permissions gp
		JOIN auth_permissions p ON p.id = gp.permission_id
		JOIN (
			SELECT codename, MIN(id) AS id FROM auth_permissions GROUP BY codename
		) canon ON canon.codename = p.codename
		WHERE p.id <> canon.id
		ON CONFLICT (group_id, permission_id) DO NOTHING`); err != nil {
		return 0, err
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM auth_group_permissions gp
		USING auth_permissions p, (
			SELECT codename, MIN(id) AS id FROM auth_permissions GROUP BY codename
		) canon
		WHERE gp.permission_id = p.id
		  AND canon.codename = p.codename
		  AND p.id <> canon.id`); err != nil {
		return 0, err
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM auth_permissions p
		USING (
			SELECT codename, MIN(id) AS id FROM auth_permissions GROUP BY codename
		) canon
		WHERE canon.codename = p.codename
		  AND p.id <> canon.id`)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
