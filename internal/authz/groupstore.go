package authz

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGGroupStore reads the fallback group/permission registry from PostgreSQL.
type PGGroupStore struct {
	pool *pgxpool.Pool
}

// NewGroupStore constructs a PGGroupStore.
func NewGroupStore(pool *pgxpool.Pool) *PGGroupStore {
	return &PGGroupStore{pool: pool}
}

// GrantedCodenames returns the set of codenames granted to the identity
// through group membership. DISTINCT guards against duplicate permission
// rows left behind by degenerate provisioning states.
func (s *PGGroupStore) GrantedCodenames(ctx context.Context, identityID int64) (map[string]struct{}, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT p.codename
		FROM auth_permissions p
		JOIN auth_group_permissions gp ON gp.permission_id = p.id
		JOIN auth_user_groups ug ON ug.group_id = gp.group_id
		WHERE ug.user_id = $1`, identityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	granted := make(map[string]struct{})
	for rows.Next() {
		var codename string
		if err := rows.Scan(&codename); err != nil {
			return nil, err
		}
		granted[codename] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return granted, nil
}

var _ GroupStore = (*PGGroupStore)(nil)
