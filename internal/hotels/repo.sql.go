package hotels

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Momin9/hotel-management-sub000/internal/shared"
)

// Repository implements RepositoryPort backed by PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds Repository instance.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const hotelColumns = `id, name, owner_id, COALESCE(address, ''), is_active, created_at, updated_at`

// ListActive returns all active hotels ordered by name.
func (r *Repository) ListActive(ctx context.Context) ([]Hotel, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+hotelColumns+`
		FROM hotels
		WHERE is_active = TRUE
		ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("hotels: list active: %w", err)
	}
	defer rows.Close()
	return collectHotels(rows)
}

// ListByOwner returns all active hotels owned by the user.
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]Hotel, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+hotelColumns+`
		FROM hotels
		WHERE owner_id = $1 AND is_active = TRUE
		ORDER BY name ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("hotels: list by owner: %w", err)
	}
	defer rows.Close()
	return collectHotels(rows)
}

// Find returns one hotel by id.
func (r *Repository) Find(ctx context.Context, id int64) (*Hotel, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+hotelColumns+`
		FROM hotels
		WHERE id = $1`, id)
	var h Hotel
	if err := row.Scan(&h.ID, &h.Name, &h.OwnerID, &h.Address, &h.IsActive, &h.CreatedAt, &h.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("hotels: find: %w", err)
	}
	return &h, nil
}

func collectHotels(rows pgx.Rows) ([]Hotel, error) {
	var out []Hotel
	for rows.Next() {
		var h Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.OwnerID, &h.Address, &h.IsActive, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("hotels: scan: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("hotels: rows: %w", err)
	}
	return out, nil
}
