package authz

// Role identifies the job function assigned to an identity. Every identity
// carries exactly one role; the role seeds capability flags but does not
// constrain later per-identity edits.
type Role string

const (
	// RoleOwner marks the hotel proprietor. Owners hold every capability
	// implicitly regardless of stored flag values.
	RoleOwner Role = "owner"
	// RoleAdmin is the designated administrative role. Assigning it also
	// elevates is_superuser and is_staff on the identity.
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleReceptionist Role = "receptionist"
	RoleStaff        Role = "staff"
	RoleHousekeeping Role = "housekeeping"
	RoleMaintenance  Role = "maintenance"
	RoleAccountant   Role = "accountant"
)

// AllRoles lists every role known to the platform, in display order.
var AllRoles = []Role{
	RoleOwner,
	RoleAdmin,
	RoleManager,
	RoleReceptionist,
	RoleStaff,
	RoleHousekeeping,
	RoleMaintenance,
	RoleAccountant,
}

func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the role is part of the known set.
func (r Role) IsValid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// GroupName returns the auth group that RoleSyncManager provisions for the
// role.
func (r Role) GroupName() string {
	return string(r)
}

// ParseRole validates a raw role string. The boolean is false for unknown
// roles; callers must treat that as a deny or a reported failure, never a
// crash.
func ParseRole(s string) (Role, bool) {
	role := Role(s)
	return role, role.IsValid()
}
