package subscriptions

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Momin9/hotel-management-sub000/internal/authz"
	"github.com/Momin9/hotel-management-sub000/internal/observability"
	"github.com/Momin9/hotel-management-sub000/internal/shared"
)

// GateReasonParam carries the denial reason to the login page after the
// session has been destroyed (a flash cannot survive session termination).
const GateReasonParam = "reason"

// GateReasonSubscription is the reason value set when the gate logs a user
// out over an inactive subscription.
const GateReasonSubscription = "subscription"

// DefaultExemptPrefixes lists the request paths the gate never inspects.
// Routes that must bypass the gate are added here explicitly; there is no
// per-route opt-out.
var DefaultExemptPrefixes = []string{
	"/auth/login",
	"/auth/logout",
	"/welcome",
	"/healthz",
	"/metrics",
	"/static/",
	"/admin",
}

// EntitlementSource answers whether an identity's tenant is entitled.
type EntitlementSource interface {
	IsEntitled(ctx context.Context, ident *authz.Identity, on time.Time) (bool, error)
}

// Gate is the session-wide subscription middleware. It runs before any
// route guard, passes exempt paths and unauthenticated or superuser
// requests through, and on a missing entitlement destroys the session and
// redirects to login. Every computation failure is treated as not entitled.
type Gate struct {
	Entitlements EntitlementSource
	Directory    authz.Directory
	Sessions     *shared.SessionManager
	Logger       *slog.Logger
	Metrics      *observability.Metrics
	// Exempt overrides DefaultExemptPrefixes when non-nil.
	Exempt []string
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// Middleware returns the gate as a chi-compatible middleware.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.exempt(r.URL.Path) {
			g.Metrics.GateOutcome("exempt")
			next.ServeHTTP(w, r)
			return
		}

		sess := shared.SessionFromContext(r.Context())
		if sess == nil || strings.TrimSpace(sess.User()) == "" {
			g.Metrics.GateOutcome("pass")
			next.ServeHTTP(w, r)
			return
		}

		userID, err := strconv.ParseInt(strings.TrimSpace(sess.User()), 10, 64)
		if err != nil {
			g.log().Error("gate parse user id", slog.String("value", sess.User()))
			g.deny(w, r, sess)
			return
		}

		ident, err := g.Directory.FindActive(r.Context(), userID)
		if err != nil {
			g.log().Error("gate load identity, failing closed",
				slog.Int64("user_id", userID), slog.Any("error", err))
			g.deny(w, r, sess)
			return
		}
		if ident == nil {
			g.deny(w, r, sess)
			return
		}
		if ident.IsSuperuser {
			g.Metrics.GateOutcome("pass")
			next.ServeHTTP(w, r)
			return
		}

		entitled, err := g.Entitlements.IsEntitled(r.Context(), ident, g.now())
		if err != nil {
			// Fail closed: a broken entitlement computation never grants
			// access.
			g.log().Error("gate entitlement computation, failing closed",
				slog.Int64("user_id", userID), slog.Any("error", err))
			g.deny(w, r, sess)
			return
		}
		if !entitled {
			g.log().Info("gate denied: no active subscription",
				slog.Int64("user_id", userID), slog.String("role", ident.Role.String()))
			g.deny(w, r, sess)
			return
		}

		g.Metrics.GateOutcome("pass")
		next.ServeHTTP(w, r)
	})
}

// deny terminates the session and redirects to the login page with the
// subscription reason. The login handler renders the user-visible message.
func (g *Gate) deny(w http.ResponseWriter, r *http.Request, sess *shared.Session) {
	g.Metrics.GateOutcome("deny")
	g.Sessions.Destroy(sess)
	http.Redirect(w, r, "/auth/login?"+GateReasonParam+"="+GateReasonSubscription, http.StatusSeeOther)
}

func (g *Gate) exempt(path string) bool {
	prefixes := g.Exempt
	if prefixes == nil {
		prefixes = DefaultExemptPrefixes
	}
	for _, prefix := range prefixes {
		if strings.HasSuffix(prefix, "/") {
			if strings.HasPrefix(path, prefix) {
				return true
			}
			continue
		}
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

func (g *Gate) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *Gate) log() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}
