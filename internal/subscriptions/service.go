package subscriptions

import (
	"context"
	"fmt"
	"time"

	"github.com/Momin9/hotel-management-sub000/internal/authz"
)

// Service computes tenant entitlement from subscription records.
type Service struct {
	repo RepositoryPort
}

// NewService constructs a Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// IsEntitled reports whether the identity's tenant holds an active
// entitlement on the given day. Owners are entitled when any hotel they own
// is covered; staff with an assigned hotel require that hotel covered;
// identities with neither are entitled by default. Errors must be treated
// as not entitled by callers.
func (s *Service) IsEntitled(ctx context.Context, ident *authz.Identity, on time.Time) (bool, error) {
	if ident == nil {
		return false, fmt.Errorf("subscriptions: entitlement for nil identity")
	}
	if ident.Role == authz.RoleOwner {
		entitled, err := s.repo.OwnerEntitled(ctx, ident.ID, on)
		if err != nil {
			return false, fmt.Errorf("subscriptions: owner entitlement: %w", err)
		}
		return entitled, nil
	}
	if ident.AssignedHotelID != nil {
		entitled, err := s.repo.HotelEntitled(ctx, *ident.AssignedHotelID, on)
		if err != nil {
			return false, fmt.Errorf("subscriptions: hotel entitlement: %w", err)
		}
		return entitled, nil
	}
	// No owned or assigned hotel to gate on.
	return true, nil
}

// ExpireOverdue sweeps active subscriptions past their end date.
func (s *Service) ExpireOverdue(ctx context.Context, on time.Time) (int64, error) {
	return s.repo.ExpireOverdue(ctx, on)
}

// ExpiringWithin lists subscriptions approaching their end date.
func (s *Service) ExpiringWithin(ctx context.Context, on time.Time, days int) ([]Subscription, error) {
	return s.repo.ExpiringWithin(ctx, on, days)
}
