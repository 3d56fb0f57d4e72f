package subscriptions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Momin9/hotel-management-sub000/internal/authz"
)

type stubRepo struct {
	hotelEntitled map[int64]bool
	ownerEntitled map[int64]bool
	err           error
	expired       int64
	expiring      []Subscription
}

func (s *stubRepo) HotelEntitled(ctx context.Context, hotelID int64, on time.Time) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.hotelEntitled[hotelID], nil
}

func (s *stubRepo) OwnerEntitled(ctx context.Context, ownerID int64, on time.Time) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.ownerEntitled[ownerID], nil
}

func (s *stubRepo) ExpireOverdue(ctx context.Context, on time.Time) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.expired, nil
}

func (s *stubRepo) ExpiringWithin(ctx context.Context, on time.Time, days int) ([]Subscription, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.expiring, nil
}

func hotelRef(id int64) *int64 { return &id }

func TestIsEntitledOwnerUsesOwnedHotels(t *testing.T) {
	svc := NewService(&stubRepo{ownerEntitled: map[int64]bool{10: true}})
	now := time.Now()

	entitled, err := svc.IsEntitled(context.Background(), &authz.Identity{ID: 10, Role: authz.RoleOwner}, now)
	assert.NoError(t, err)
	assert.True(t, entitled)

	entitled, err = svc.IsEntitled(context.Background(), &authz.Identity{ID: 11, Role: authz.RoleOwner}, now)
	assert.NoError(t, err)
	assert.False(t, entitled, "owner with zero covered hotels is not entitled")
}

func TestIsEntitledAssignedHotel(t *testing.T) {
	svc := NewService(&stubRepo{hotelEntitled: map[int64]bool{7: true}})
	now := time.Now()

	entitled, err := svc.IsEntitled(context.Background(), &authz.Identity{ID: 1, Role: authz.RoleReceptionist, AssignedHotelID: hotelRef(7)}, now)
	assert.NoError(t, err)
	assert.True(t, entitled)

	entitled, err = svc.IsEntitled(context.Background(), &authz.Identity{ID: 2, Role: authz.RoleReceptionist, AssignedHotelID: hotelRef(8)}, now)
	assert.NoError(t, err)
	assert.False(t, entitled)
}

func TestIsEntitledUnassignedStaffPasses(t *testing.T) {
	svc := NewService(&stubRepo{})

	entitled, err := svc.IsEntitled(context.Background(), &authz.Identity{ID: 3, Role: authz.RoleStaff}, time.Now())
	assert.NoError(t, err)
	assert.True(t, entitled)
}

func TestIsEntitledPropagatesErrors(t *testing.T) {
	svc := NewService(&stubRepo{err: errors.New("db down")})

	_, err := svc.IsEntitled(context.Background(), &authz.Identity{ID: 4, Role: authz.RoleOwner}, time.Now())
	assert.Error(t, err)

	_, err = svc.IsEntitled(context.Background(), nil, time.Now())
	assert.Error(t, err)
}

func TestCovers(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	sub := Subscription{Status: StatusActive, StartDate: start, EndDate: end}

	assert.True(t, sub.Covers(time.Date(2025, 6, 15, 13, 30, 0, 0, time.UTC)))
	assert.True(t, sub.Covers(start))
	assert.True(t, sub.Covers(end.Add(5*time.Hour)), "end date itself still covered")
	assert.False(t, sub.Covers(end.AddDate(0, 0, 1)))
	assert.False(t, sub.Covers(start.AddDate(0, 0, -1)))

	sub.Status = StatusExpired
	assert.False(t, sub.Covers(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
}
