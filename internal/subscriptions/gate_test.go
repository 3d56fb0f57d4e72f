package subscriptions_test

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
	"github.com/Momin9/hotel-management-sub000/internal/subscriptions"
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

type stubEntitlements struct {
	entitled bool
	err      error
}

func (s *stubEntitlements) IsEntitled(ctx context.Context, ident *authz.Identity, on time.Time) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.entitled, nil
}

type gateFixture struct {
	gate    *subscriptions.Gate
	manager *shared.SessionManager
}

func newGateFixture(t *testing.T, dir authz.Directory, ent subscriptions.EntitlementSource) gateFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	manager := shared.NewSessionManager(client, "test_session", "secret", time.Hour, false)
	return gateFixture{
		gate: &subscriptions.Gate{
			Entitlements: ent,
			Directory:    dir,
			Sessions:     manager,
		},
		manager: manager,
	}
}

func (f gateFixture) request(t *testing.T, target, userID string) (*http.Request, *shared.Session) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	sess, err := f.manager.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if userID != "" {
		sess.SetUser(userID)
	}
	return req.WithContext(shared.ContextWithSession(req.Context(), sess)), sess
}

func probe() (http.HandlerFunc, *bool) {
	executed := new(bool)
	return func(w http.ResponseWriter, r *http.Request) {
		*executed = true
		w.WriteHeader(http.StatusOK)
	}, executed
}

func TestGateExemptPathPasses(t *testing.T) {
	f := newGateFixture(t, &stubDirectory{}, &stubEntitlements{})
	next, executed := probe()
	handler := f.gate.Middleware(next)

	for _, path := range []string{"/auth/login", "/welcome", "/healthz", "/metrics", "/static/css/app.css", "/auth/login?x=1"} {
		*executed = false
		res := httptest.NewRecorder()
		req, _ := f.request(t, path, "")
		handler.ServeHTTP(res, req)
		assert.True(t, *executed, "path %s must be exempt", path)
	}
}

func TestGateUnauthenticatedPasses(t *testing.T) {
	f := newGateFixture(t, &stubDirectory{}, &stubEntitlements{})
	next, executed := probe()
	handler := f.gate.Middleware(next)

	res := httptest.NewRecorder()
	req, _ := f.request(t, "/hotels", "")
	handler.ServeHTTP(res, req)
	assert.True(t, *executed)
}

func TestGateEntitledPasses(t *testing.T) {
	dir := &stubDirectory{ident: &authz.Identity{ID: 1, Role: authz.RoleOwner}}
	f := newGateFixture(t, dir, &stubEntitlements{entitled: true})
	next, executed := probe()
	handler := f.gate.Middleware(next)

	res := httptest.NewRecorder()
	req, _ := f.request(t, "/hotels", "1")
	handler.ServeHTTP(res, req)
	assert.True(t, *executed)
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestGateSuperuserBypassesEntitlement(t *testing.T) {
	dir := &stubDirectory{ident: &authz.Identity{ID: 1, IsSuperuser: true}}
	f := newGateFixture(t, dir, &stubEntitlements{err: errors.New("must not be called")})
	next, executed := probe()
	handler := f.gate.Middleware(next)

	res := httptest.NewRecorder()
	req, _ := f.request(t, "/hotels", "1")
	handler.ServeHTTP(res, req)
	assert.True(t, *executed)
}

func TestGateDeniesAndDestroysSession(t *testing.T) {
	dir := &stubDirectory{ident: &authz.Identity{ID: 1, Role: authz.RoleOwner}}
	f := newGateFixture(t, dir, &stubEntitlements{entitled: false})
	next, executed := probe()
	handler := f.gate.Middleware(next)

	res := httptest.NewRecorder()
	req, sess := f.request(t, "/hotels", "1")
	handler.ServeHTTP(res, req)

	assert.False(t, *executed, "handler must not run without entitlement")
	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/auth/login?reason=subscription", res.Header().Get("Location"))

	// Commit menulis cookie penghapus untuk sesi yang dihancurkan.
	commitRes := httptest.NewRecorder()
	if err := f.manager.Commit(context.Background(), commitRes, req, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}
	cookies := commitRes.Result().Cookies()
	if assert.NotEmpty(t, cookies) {
		assert.Equal(t, -1, cookies[0].MaxAge)
	}
}

func TestGateFailsClosedOnErrors(t *testing.T) {
	// Kegagalan direktori.
	f := newGateFixture(t, &stubDirectory{err: errors.New("db down")}, &stubEntitlements{entitled: true})
	next, executed := probe()
	handler := f.gate.Middleware(next)
	res := httptest.NewRecorder()
	req, _ := f.request(t, "/hotels", "1")
	handler.ServeHTTP(res, req)
	assert.False(t, *executed)
	assert.Equal(t, http.StatusSeeOther, res.Code)

	// Kegagalan komputasi entitlement.
	dir := &stubDirectory{ident: &authz.Identity{ID: 1, Role: authz.RoleOwner}}
	f = newGateFixture(t, dir, &stubEntitlements{err: errors.New("query timeout")})
	next, executed = probe()
	handler = f.gate.Middleware(next)
	res = httptest.NewRecorder()
	req, _ = f.request(t, "/hotels", "1")
	handler.ServeHTTP(res, req)
	assert.False(t, *executed)
	assert.Equal(t, http.StatusSeeOther, res.Code)

	// Akun hilang (soft-deleted) juga ditolak.
	f = newGateFixture(t, &stubDirectory{ident: nil}, &stubEntitlements{entitled: true})
	next, executed = probe()
	handler = f.gate.Middleware(next)
	res = httptest.NewRecorder()
	req, _ = f.request(t, "/hotels", "1")
	handler.ServeHTTP(res, req)
	assert.False(t, *executed)
	assert.Equal(t, http.StatusSeeOther, res.Code)
}
