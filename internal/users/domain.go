package users

import (
	"time"

	"github.com/Momin9/hotel-management-sub000/internal/authz"
)

// User represents a platform account. Capability flags are seeded from the
// role's template at provisioning and may be edited per user afterwards.
// Accounts are never hard-deleted; DeletedAt marks soft deletion and
// excludes the account from active lookups.
type User struct {
	ID              int64
	Email           string
	Name            string
	Role            authz.Role
	IsSuperuser     bool
	IsStaff         bool
	AssignedHotelID *int64
	Caps            authz.Capabilities
	IsActive        bool
	DeletedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Identity projects the account onto the authorization view: the only
// fields access decisions may read.
func (u *User) Identity() *authz.Identity {
	if u == nil {
		return nil
	}
	return &authz.Identity{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Role:            u.Role,
		IsSuperuser:     u.IsSuperuser,
		IsStaff:         u.IsStaff,
		AssignedHotelID: u.AssignedHotelID,
		Caps:            u.Caps,
	}
}
