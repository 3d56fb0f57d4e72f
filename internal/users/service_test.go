package users

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Momin9/hotel-management-sub000/internal/authz"
	_ "github.com/Momin9/hotel-management-sub000/testing"
)

type memoryRepo struct {
	mu        sync.Mutex
	users     map[int64]*User
	updateErr error
}

func newMemoryRepo(accounts ...*User) *memoryRepo {
	repo := &memoryRepo{users: make(map[int64]*User)}
	for _, account := range accounts {
		repo.users[account.ID] = account
	}
	return repo
}

func (r *memoryRepo) ListActive(ctx context.Context) ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []User
	for _, account := range r.users {
		if account.DeletedAt == nil {
			out = append(out, *account)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListActiveByRole(ctx context.Context, role authz.Role) ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []User
	for _, account := range r.users {
		if account.DeletedAt == nil && account.Role == role {
			out = append(out, *account)
		}
	}
	return out, nil
}

func (r *memoryRepo) FindActive(ctx context.Context, id int64) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.users[id]
	if !ok || account.DeletedAt != nil {
		return nil, nil
	}
	clone := *account
	return &clone, nil
}

func (r *memoryRepo) UpdateCapabilities(ctx context.Context, id int64, caps authz.Capabilities) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if account, ok := r.users[id]; ok {
		account.Caps = caps
	}
	return nil
}

func (r *memoryRepo) UpdateRole(ctx context.Context, id int64, role authz.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if account, ok := r.users[id]; ok {
		account.Role = role
	}
	return nil
}

func (r *memoryRepo) SoftDelete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if account, ok := r.users[id]; ok {
		now := account.CreatedAt
		account.DeletedAt = &now
	}
	return nil
}

func TestApplyRoleTemplateOverwritesFlags(t *testing.T) {
	repo := newMemoryRepo(&User{ID: 1, Role: authz.RoleReceptionist, Caps: authz.Capabilities{DeleteRooms: true}})
	svc := NewService(repo, nil, nil, nil)

	err := svc.ApplyRoleTemplate(context.Background(), 1, authz.RoleReceptionist)
	assert.NoError(t, err)

	account, _ := repo.FindActive(context.Background(), 1)
	assert.False(t, account.Caps.DeleteRooms, "manual grants are wiped by the template")
	assert.True(t, account.Caps.ViewReservations)
}

func TestApplyRoleTemplateUnknownRole(t *testing.T) {
	repo := newMemoryRepo(&User{ID: 1, Role: authz.RoleStaff, Caps: authz.Capabilities{ViewRooms: true}})
	svc := NewService(repo, nil, nil, nil)

	err := svc.ApplyRoleTemplate(context.Background(), 1, authz.Role("valet"))
	assert.Error(t, err)

	account, _ := repo.FindActive(context.Background(), 1)
	assert.True(t, account.Caps.ViewRooms, "flags stay untouched on unknown role")
}

func TestReapplyRoleTemplatesUpdatesWholeCohort(t *testing.T) {
	repo := newMemoryRepo(
		&User{ID: 1, Role: authz.RoleHousekeeping, Caps: authz.Capabilities{DeleteHotels: true}},
		&User{ID: 2, Role: authz.RoleHousekeeping},
		&User{ID: 3, Role: authz.RoleManager},
	)
	svc := NewService(repo, nil, nil, nil)

	updated, err := svc.ReapplyRoleTemplates(context.Background(), authz.RoleHousekeeping)
	assert.NoError(t, err)
	assert.Equal(t, 2, updated)

	first, _ := repo.FindActive(context.Background(), 1)
	assert.False(t, first.Caps.DeleteHotels)
	assert.True(t, first.Caps.ViewHousekeeping)

	manager, _ := repo.FindActive(context.Background(), 3)
	assert.False(t, manager.Caps.ViewHousekeeping, "other roles are untouched")
}

func TestReapplyRoleTemplatesPropagatesUpdateError(t *testing.T) {
	repo := newMemoryRepo(&User{ID: 1, Role: authz.RoleStaff})
	repo.updateErr = errors.New("write failed")
	svc := NewService(repo, nil, nil, nil)

	_, err := svc.ReapplyRoleTemplates(context.Background(), authz.RoleStaff)
	assert.Error(t, err)

	_, err = svc.ReapplyRoleTemplates(context.Background(), authz.Role("valet"))
	assert.Error(t, err)
}

func TestAssignRoleSetsRoleAndSeedsFlags(t *testing.T) {
	repo := newMemoryRepo(&User{ID: 1, Role: authz.RoleStaff})
	svc := NewService(repo, nil, nil, nil)

	err := svc.AssignRole(context.Background(), 1, authz.RoleAccountant)
	assert.NoError(t, err)

	account, _ := repo.FindActive(context.Background(), 1)
	assert.Equal(t, authz.RoleAccountant, account.Role)
	assert.True(t, account.Caps.ViewBilling)
	assert.False(t, account.Caps.ViewHousekeeping)

	assert.Error(t, svc.AssignRole(context.Background(), 1, authz.Role("valet")))
}

func TestDeactivateHidesAccount(t *testing.T) {
	repo := newMemoryRepo(&User{ID: 1, Role: authz.RoleStaff})
	svc := NewService(repo, nil, nil, nil)

	assert.NoError(t, svc.Deactivate(context.Background(), 1))

	account, _ := repo.FindActive(context.Background(), 1)
	assert.Nil(t, account)

	listed, _ := svc.ListUsers(context.Background())
	assert.Empty(t, listed)
}

func TestIdentityProjection(t *testing.T) {
	hotelID := int64(9)
	account := &User{
		ID:              4,
		Email:           "resepsionis@hotel.test",
		Name:            "Resepsionis",
		Role:            authz.RoleReceptionist,
		AssignedHotelID: &hotelID,
		Caps:            authz.Capabilities{ViewRooms: true},
	}

	ident := account.Identity()
	assert.Equal(t, account.ID, ident.ID)
	assert.Equal(t, authz.RoleReceptionist, ident.Role)
	assert.Equal(t, &hotelID, ident.AssignedHotelID)
	assert.True(t, ident.Caps.ViewRooms)
}
