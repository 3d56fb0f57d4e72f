package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Momin9/hotel-management-sub000/internal/authz"
	"github.com/Momin9/hotel-management-sub000/internal/shared"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// userColumns lists every column of a user row; scan order matches
// scanUser.
const userColumns = `id, email, name, role, is_superuser, is_staff, assigned_hotel_id,
	can_view_hotels, can_add_hotels, can_change_hotels, can_delete_hotels,
	can_view_rooms, can_add_rooms, can_change_rooms, can_delete_rooms,
	can_view_reservations, can_add_reservations, can_change_reservations, can_delete_reservations,
	can_view_checkins, can_add_checkins, can_change_checkins,
	can_view_guests, can_add_guests, can_change_guests, can_delete_guests,
	can_view_staff, can_add_staff, can_change_staff, can_delete_staff,
	can_view_housekeeping, can_add_housekeeping, can_change_housekeeping,
	can_view_maintenance, can_add_maintenance, can_change_maintenance,
	can_view_pos, can_add_pos, can_change_pos,
	can_view_inventory, can_add_inventory, can_change_inventory,
	can_view_billing, can_add_billing, can_change_billing,
	can_view_configuration, can_change_configuration,
	can_view_companies, can_add_companies, can_change_companies,
	is_active, deleted_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var u User
	var role string
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &role, &u.IsSuperuser, &u.IsStaff, &u.AssignedHotelID,
		&u.Caps.ViewHotels, &u.Caps.AddHotels, &u.Caps.ChangeHotels, &u.Caps.DeleteHotels,
		&u.Caps.ViewRooms, &u.Caps.AddRooms, &u.Caps.ChangeRooms, &u.Caps.DeleteRooms,
		&u.Caps.ViewReservations, &u.Caps.AddReservations, &u.Caps.ChangeReservations, &u.Caps.DeleteReservations,
		&u.Caps.ViewCheckins, &u.Caps.AddCheckins, &u.Caps.ChangeCheckins,
		&u.Caps.ViewGuests, &u.Caps.AddGuests, &u.Caps.ChangeGuests, &u.Caps.DeleteGuests,
		&u.Caps.ViewStaff, &u.Caps.AddStaff, &u.Caps.ChangeStaff, &u.Caps.DeleteStaff,
		&u.Caps.ViewHousekeeping, &u.Caps.AddHousekeeping, &u.Caps.ChangeHousekeeping,
		&u.Caps.ViewMaintenance, &u.Caps.AddMaintenance, &u.Caps.ChangeMaintenance,
		&u.Caps.ViewPOS, &u.Caps.AddPOS, &u.Caps.ChangePOS,
		&u.Caps.ViewInventory, &u.Caps.AddInventory, &u.Caps.ChangeInventory,
		&u.Caps.ViewBilling, &u.Caps.AddBilling, &u.Caps.ChangeBilling,
		&u.Caps.ViewConfiguration, &u.Caps.ChangeConfiguration,
		&u.Caps.ViewCompanies, &u.Caps.AddCompanies, &u.Caps.ChangeCompanies,
		&u.IsActive, &u.DeletedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return User{}, err
	}
	u.Role = authz.Role(role)
	return u, nil
}

// ListActive returns all non-deleted users.
func (r *Repository) ListActive(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// ListActiveByRole returns all non-deleted users carrying the role.
func (r *Repository) ListActiveByRole(ctx context.Context, role authz.Role) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE deleted_at IS NULL AND role = $1 ORDER BY id`, role.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

// FindActive fetches a non-deleted user by id.
func (r *Repository) FindActive(ctx context.Context, id int64) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 AND deleted_at IS NULL`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateCapabilities overwrites every capability flag on the user row.
func (r *Repository) UpdateCapabilities(ctx context.Context, id int64, caps authz.Capabilities) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET
			can_view_hotels = $2, can_add_hotels = $3, can_change_hotels = $4, can_delete_hotels = $5,
			can_view_rooms = $6, can_add_rooms = $7, can_change_rooms = $8, can_delete_rooms = $9,
			can_view_reservations = $10, can_add_reservations = $11, can_change_reservations = $12, can_delete_reservations = $13,
			can_view_checkins = $14, can_add_checkins = $15, can_change_checkins = $16,
			can_view_guests = $17, can_add_guests = $18, can_change_guests = $19, can_delete_guests = $20,
			can_view_staff = $21, can_add_staff = $22, can_change_staff = $23, can_delete_staff = $24,
			can_view_housekeeping = $25, can_add_housekeeping = $26, can_change_housekeeping = $27,
			can_view_maintenance = $28, can_add_maintenance = $29, can_change_maintenance = $30,
			can_view_pos = $31, can_add_pos = $32, can_change_pos = $33,
			can_view_inventory = $34, can_add_inventory = $35, can_change_inventory = $36,
			can_view_billing = $37, can_add_billing = $38, can_change_billing = $39,
			can_view_configuration = $40, can_change_configuration = $41,
			can_view_companies = $42, can_add_companies = $43, can_change_companies = $44,
			updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`,
		id,
		caps.ViewHotels, caps.AddHotels, caps.ChangeHotels, caps.DeleteHotels,
		caps.ViewRooms, caps.AddRooms, caps.ChangeRooms, caps.DeleteRooms,
		caps.ViewReservations, caps.AddReservations, caps.ChangeReservations, caps.DeleteReservations,
		caps.ViewCheckins, caps.AddCheckins, caps.ChangeCheckins,
		caps.ViewGuests, caps.AddGuests, caps.ChangeGuests, caps.DeleteGuests,
		caps.ViewStaff, caps.AddStaff, caps.ChangeStaff, caps.DeleteStaff,
		caps.ViewHousekeeping, caps.AddHousekeeping, caps.ChangeHousekeeping,
		caps.ViewMaintenance, caps.AddMaintenance, caps.ChangeMaintenance,
		caps.ViewPOS, caps.AddPOS, caps.ChangePOS,
		caps.ViewInventory, caps.AddInventory, caps.ChangeInventory,
		caps.ViewBilling, caps.AddBilling, caps.ChangeBilling,
		caps.ViewConfiguration, caps.ChangeConfiguration,
		caps.ViewCompanies, caps.AddCompanies, caps.ChangeCompanies,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// UpdateRole sets the role column.
func (r *Repository) UpdateRole(ctx context.Context, id int64, role authz.Role) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET role = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, id, role.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SoftDelete stamps deleted_at on the row.
func (r *Repository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET deleted_at = NOW(), is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func collectUsers(rows pgx.Rows) ([]User, error) {
	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

var _ RepositoryPort = (*Repository)(nil)
