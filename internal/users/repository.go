package users

import (
	"context"

	"github.com/Momin9/hotel-management-sub000/internal/authz"
)

// RepositoryPort defines data access methods for user accounts. All lookups
// exclude soft-deleted rows.
type RepositoryPort interface {
	ListActive(ctx context.Context) ([]User, error)
	ListActiveByRole(ctx context.Context, role authz.Role) ([]User, error)
	FindActive(ctx context.Context, id int64) (*User, error)
	// UpdateCapabilities overwrites every capability flag on the account.
	UpdateCapabilities(ctx context.Context, id int64, caps authz.Capabilities) error
	// UpdateRole sets the account's role column.
	UpdateRole(ctx context.Context, id int64, role authz.Role) error
	// SoftDelete stamps deleted_at; the account disappears from active
	// lookups but the row stays.
	SoftDelete(ctx context.Context, id int64) error
}
