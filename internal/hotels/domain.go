package hotels

import "time"

// Hotel is one tenant property on the platform.
type Hotel struct {
	ID        int64
	Name      string
	OwnerID   int64
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
