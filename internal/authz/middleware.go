package authz

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Momin9/hotel-management-sub000/internal/platform/httpx"
	"github.com/Momin9/hotel-management-sub000/internal/shared"
)

// GuardMode selects how a permission denial is presented to an
// authenticated caller.
type GuardMode int

const (
	// ModeRedirect sends the caller back with a flash message. Default for
	// interactive flows.
	ModeRedirect GuardMode = iota
	// ModeRaise responds with an RFC7807 403 for programmatic callers.
	ModeRaise
)

const loginPath = "/auth/login"

// Middleware wires the route guard family for HTTP handlers. Each guard
// runs before the wrapped handler, never partially executes it, and leaves
// the request untouched on the allow path.
type Middleware struct {
	Resolver  *Resolver
	Directory Directory
	Logger    *slog.Logger
}

// RequirePermission guards a route behind a single codename using the
// default redirect-with-message denial.
func (m Middleware) RequirePermission(codename string) func(http.Handler) http.Handler {
	return m.require(ModeRedirect, codename)
}

// RequirePermissionMode is RequirePermission with an explicit denial mode.
func (m Middleware) RequirePermissionMode(codename string, mode GuardMode) func(http.Handler) http.Handler {
	return m.require(mode, codename)
}

// RequireAnyPermission allows the request when any codename resolves to
// allow.
func (m Middleware) RequireAnyPermission(codenames ...string) func(http.Handler) http.Handler {
	return m.require(ModeRedirect, codenames...)
}

// RequireAnyPermissionMode is RequireAnyPermission with an explicit denial
// mode.
func (m Middleware) RequireAnyPermissionMode(mode GuardMode, codenames ...string) func(http.Handler) http.Handler {
	return m.require(mode, codenames...)
}

// RequireOwnerOrPermission short-circuits to allow for owners and
// superusers, otherwise behaves like RequirePermission.
func (m Middleware) RequireOwnerOrPermission(codename string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := m.currentIdentity(r)
			if !ok {
				m.redirectToLogin(w, r)
				return
			}
			r = r.WithContext(ContextWithIdentity(r.Context(), ident))
			if ident.Role == RoleOwner || ident.IsSuperuser {
				next.ServeHTTP(w, r)
				return
			}
			if m.Resolver.Allows(r.Context(), ident, codename) {
				next.ServeHTTP(w, r)
				return
			}
			m.deny(w, r, ModeRedirect)
		})
	}
}

// RequireAdminRole admits only identities whose assigned role is the
// administrative role. The check reads the role field, not capability
// flags; everyone else is redirected with a message, never raised.
func (m Middleware) RequireAdminRole() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := m.currentIdentity(r)
			if !ok {
				m.redirectToLogin(w, r)
				return
			}
			if ident.Role == RoleAdmin {
				next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), ident)))
				return
			}
			m.deny(w, r, ModeRedirect)
		})
	}
}

func (m Middleware) require(mode GuardMode, codenames ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(codenames) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			ident, ok := m.currentIdentity(r)
			if !ok {
				m.redirectToLogin(w, r)
				return
			}
			r = r.WithContext(ContextWithIdentity(r.Context(), ident))
			if m.Resolver.AllowsAny(r.Context(), ident, codenames...) {
				next.ServeHTTP(w, r)
				return
			}
			m.deny(w, r, mode)
		})
	}
}

// currentIdentity resolves the acting identity from the request session.
// Missing sessions, unparseable IDs, soft-deleted accounts, and lookup
// failures all read as unauthenticated.
func (m Middleware) currentIdentity(r *http.Request) (*Identity, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return nil, false
	}
	raw := strings.TrimSpace(sess.User())
	if raw == "" {
		return nil, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		if m.Logger != nil {
			m.Logger.Error("guard parse user id", slog.String("value", raw))
		}
		return nil, false
	}
	ident, err := m.Directory.FindActive(r.Context(), id)
	if err != nil || ident == nil {
		if err != nil && m.Logger != nil {
			m.Logger.Error("guard load identity", slog.Int64("user_id", id), slog.Any("error", err))
		}
		return nil, false
	}
	return ident, true
}

func (m Middleware) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: "warning", Message: "Silakan masuk untuk melanjutkan"})
	}
	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}

func (m Middleware) deny(w http.ResponseWriter, r *http.Request, mode GuardMode) {
	if mode == ModeRaise {
		httpx.RespondError(w, shared.ErrPermissionDenied)
		return
	}
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: "error", Message: "Anda tidak memiliki izin untuk tindakan ini"})
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
