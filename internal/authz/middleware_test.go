package authz_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/Momin9/hotel-management-sub000/internal/authz"
	"github.com/Momin9/hotel-management-sub000/internal/shared"
	_ "github.com/Momin9/hotel-management-sub000/testing"
)

type stubDirectory struct {
	ident *authz.Identity
	err   error
}

func (s *stubDirectory) FindActive(ctx context.Context, id int64) (*authz.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.ident, nil
}

type stubGroupStore struct{}

func (stubGroupStore) GrantedCodenames(ctx context.Context, identityID int64) (map[string]struct{}, error) {
	return nil, nil
}

func newGuards(t *testing.T, dir authz.Directory) authz.Middleware {
	t.Helper()
	return authz.Middleware{
		Resolver:  authz.NewResolver(stubGroupStore{}, nil, nil),
		Directory: dir,
	}
}

func requestWithSession(t *testing.T, target, userID string) *http.Request {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	manager := shared.NewSessionManager(client, "test_session", "secret", time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	sess, err := manager.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if userID != "" {
		sess.SetUser(userID)
	}
	return req.WithContext(shared.ContextWithSession(req.Context(), sess))
}

func guardedProbe(guard func(http.Handler) http.Handler) (http.Handler, *bool) {
	executed := new(bool)
	return guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*executed = true
		w.WriteHeader(http.StatusOK)
	})), executed
}

func TestRequirePermissionAllows(t *testing.T) {
	dir := &stubDirectory{ident: &authz.Identity{ID: 1, Role: authz.RoleReceptionist, Caps: authz.Capabilities{ViewRooms: true}}}
	handler, executed := guardedProbe(newGuards(t, dir).RequirePermission(authz.PermViewRoom))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithSession(t, "/rooms", "1"))

	assert.True(t, *executed)
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestRequirePermissionDeniesWithRedirect(t *testing.T) {
	dir := &stubDirectory{ident: &authz.Identity{ID: 1, Role: authz.RoleStaff}}
	handler, executed := guardedProbe(newGuards(t, dir).RequirePermission(authz.PermDeleteRoom))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithSession(t, "/rooms", "1"))

	assert.False(t, *executed, "handler must never run on deny")
	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/", res.Header().Get("Location"))
}

func TestRequirePermissionModeRaise(t *testing.T) {
	dir := &stubDirectory{ident: &authz.Identity{ID: 1, Role: authz.RoleStaff}}
	handler, executed := guardedProbe(newGuards(t, dir).RequirePermissionMode(authz.PermDeleteRoom, authz.ModeRaise))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithSession(t, "/rooms", "1"))

	assert.False(t, *executed)
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestRequirePermissionUnauthenticatedRedirectsToLogin(t *testing.T) {
	dir := &stubDirectory{ident: &authz.Identity{ID: 1, Role: authz.RoleAdmin}}
	handler, executed := guardedProbe(newGuards(t, dir).RequirePermission(authz.PermViewRoom))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithSession(t, "/rooms", ""))

	assert.False(t, *executed)
	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/auth/login", res.Header().Get("Location"))
}

func TestRequirePermissionDirectoryErrorReadsAsUnauthenticated(t *testing.T) {
	dir := &stubDirectory{err: errors.New("db down")}
	handler, executed := guardedProbe(newGuards(t, dir).RequirePermission(authz.PermViewRoom))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithSession(t, "/rooms", "1"))

	assert.False(t, *executed)
	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/auth/login", res.Header().Get("Location"))
}

func TestRequireAnyPermission(t *testing.T) {
	dir := &stubDirectory{ident: &authz.Identity{ID: 1, Role: authz.RoleHousekeeping, Caps: authz.Capabilities{ViewHousekeeping: true}}}
	guards := newGuards(t, dir)

	handler, executed := guardedProbe(guards.RequireAnyPermission(authz.PermDeleteHotel, authz.PermViewHousekeeping))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithSession(t, "/housekeeping", "1"))
	assert.True(t, *executed)

	handler, executed = guardedProbe(guards.RequireAnyPermission(authz.PermDeleteHotel, authz.PermDeleteGuest))
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithSession(t, "/housekeeping", "1"))
	assert.False(t, *executed)
	assert.Equal(t, http.StatusSeeOther, res.Code)
}

func TestRequireOwnerOrPermissionShortCircuit(t *testing.T) {
	// Owner tanpa satu pun flag tetap lolos.
	dir := &stubDirectory{ident: &authz.Identity{ID: 1, Role: authz.RoleOwner}}
	handler, executed := guardedProbe(newGuards(t, dir).RequireOwnerOrPermission(authz.PermChangeStaff))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithSession(t, "/users", "1"))
	assert.True(t, *executed)

	dir = &stubDirectory{ident: &authz.Identity{ID: 2, Role: authz.RoleStaff, IsSuperuser: true}}
	handler, executed = guardedProbe(newGuards(t, dir).RequireOwnerOrPermission(authz.PermChangeStaff))
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithSession(t, "/users", "2"))
	assert.True(t, *executed)

	dir = &stubDirectory{ident: &authz.Identity{ID: 3, Role: authz.RoleStaff}}
	handler, executed = guardedProbe(newGuards(t, dir).RequireOwnerOrPermission(authz.PermChangeStaff))
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithSession(t, "/users", "3"))
	assert.False(t, *executed)
}

func TestRequireAdminRoleChecksRoleField(t *testing.T) {
	dir := &stubDirectory{ident: &authz.Identity{ID: 1, Role: authz.RoleAdmin}}
	handler, executed := guardedProbe(newGuards(t, dir).RequireAdminRole())
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithSession(t, "/users/roles/staff/reapply", "1"))
	assert.True(t, *executed)

	// Owner memegang semua kapabilitas tetapi bukan peran admin.
	dir = &stubDirectory{ident: &authz.Identity{ID: 2, Role: authz.RoleOwner}}
	handler, executed = guardedProbe(newGuards(t, dir).RequireAdminRole())
	res = httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithSession(t, "/users/roles/staff/reapply", "2"))
	assert.False(t, *executed)
	assert.Equal(t, http.StatusSeeOther, res.Code)
}
