package subscriptions

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// HotelEntitled reports whether the hotel holds a covering active
// subscription.
func (r *Repository) HotelEntitled(ctx context.Context, hotelID int64, on time.Time) (bool, error) {
	var entitled bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM subscriptions
			WHERE hotel_id = $1
			  AND status = 'active'
			  AND start_date <= $2::date
			  AND end_date >= $2::date
		)`, hotelID, on).Scan(&entitled)
	if err != nil {
		return false, err
	}
	return entitled, nil
}

// OwnerEntitled reports whether any hotel owned by ownerID holds a covering
// active subscription.
func (r *Repository) OwnerEntitled(ctx context.Context, ownerID int64, on time.Time) (bool, error) {
	var entitled bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM subscriptions s
			JOIN hotels h ON h.id = s.hotel_id
			WHERE h.owner_id = $1
			  AND s.status = 'active'
			  AND s.start_date <= $2::date
			  AND s.end_date >= $2::date
		)`, ownerID, on).Scan(&entitled)
	if err != nil {
		return false, err
	}
	return entitled, nil
}

// ExpireOverdue transitions active subscriptions past their end date to
// expired.
func (r *Repository) ExpireOverdue(ctx context.Context, on time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE subscriptions
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'active' AND end_date < $1::date`, on)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ExpiringWithin lists active subscriptions whose end date falls inside the
// next `days` days.
func (r *Repository) ExpiringWithin(ctx context.Context, on time.Time, days int) ([]Subscription, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, hotel_id, status, start_date, end_date, created_at, updated_at
		FROM subscriptions
		WHERE status = 'active'
		  AND end_date >= $1::date
		  AND end_date <= $1::date + $2 * INTERVAL '1 day'
		ORDER BY end_date`, on, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var subs []Subscription
	for rows.Next() {
		var sub Subscription
		if err := rows.Scan(&sub.ID, &sub.HotelID, &sub.Status, &sub.StartDate, &sub.EndDate, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subs, nil
}

var _ RepositoryPort = (*Repository)(nil)
