package subscriptions

import (
	"context"
	"time"
)

// RepositoryPort defines data access for subscription entitlement checks
// and lifecycle sweeps.
type RepositoryPort interface {
	// HotelEntitled reports whether the hotel holds an active subscription
	// covering the given day.
	HotelEntitled(ctx context.Context, hotelID int64, on time.Time) (bool, error)
	// OwnerEntitled reports whether any hotel owned by the identity holds
	// an active subscription covering the given day.
	OwnerEntitled(ctx context.Context, ownerID int64, on time.Time) (bool, error)
	// ExpireOverdue marks active subscriptions whose end date has passed as
	// expired and returns how many were updated.
	ExpireOverdue(ctx context.Context, on time.Time) (int64, error)
	// ExpiringWithin lists active subscriptions ending within the given
	// number of days.
	ExpiringWithin(ctx context.Context, on time.Time, days int) ([]Subscription, error)
}
