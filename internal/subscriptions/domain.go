package subscriptions

import "time"

// Status enumerates subscription lifecycle states.
type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
	StatusSuspended Status = "suspended"
)

// Subscription is a hotel's entitlement record. A hotel has zero or one
// subscription; entitlement requires status active and today inside the
// validity window.
type Subscription struct {
	ID        int64
	HotelID   int64
	Status    Status
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Covers reports whether the subscription entitles access on the given day.
func (s Subscription) Covers(on time.Time) bool {
	if s.Status != StatusActive {
		return false
	}
	day := on.Truncate(24 * time.Hour)
	return !day.Before(s.StartDate.Truncate(24*time.Hour)) && !day.After(s.EndDate.Truncate(24*time.Hour))
}
