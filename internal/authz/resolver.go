package authz

import (
	"context"
	"log/slog"

	"github.com/Momin9/hotel-management-sub000/internal/observability"
)

// Identity is the authorization view of a user account: the only fields
// other subsystems may read for access decisions.
type Identity struct {
	ID              int64
	Email           string
	Name            string
	Role            Role
	IsSuperuser     bool
	IsStaff         bool
	AssignedHotelID *int64
	Caps            Capabilities
}

// Directory loads active identities. Soft-deleted accounts must not be
// returned.
type Directory interface {
	FindActive(ctx context.Context, id int64) (*Identity, error)
}

// GroupStore exposes the fallback group/permission grants for an identity.
// Used only for codenames the capability map does not cover.
type GroupStore interface {
	GrantedCodenames(ctx context.Context, identityID int64) (map[string]struct{}, error)
}

// Resolver answers allow/deny for an identity and a permission codename.
// Resolution is deterministic and side-effect free; every failure resolves
// to deny.
type Resolver struct {
	groups  GroupStore
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewResolver constructs a Resolver.
func NewResolver(groups GroupStore, logger *slog.Logger, metrics *observability.Metrics) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{groups: groups, logger: logger, metrics: metrics}
}

// Allows reports whether the identity may perform the action named by
// codename. Precedence, first match wins:
//
//  1. superuser -> allow
//  2. Owner role -> allow (owners hold every capability implicitly; this is
//     an explicit override, independent of stored flag values)
//  3. capability-map translation -> the identity's boolean flag
//  4. group-store fallback grant
//
// Unknown roles, unknown codenames, and storage failures all resolve to
// deny.
func (r *Resolver) Allows(ctx context.Context, ident *Identity, codename string) bool {
	allowed := r.resolve(ctx, ident, codename)
	if allowed {
		r.metrics.AuthzDecision("allow")
	} else {
		r.metrics.AuthzDecision("deny")
	}
	return allowed
}

// AllowsAny reports whether any single codename resolves to allow.
func (r *Resolver) AllowsAny(ctx context.Context, ident *Identity, codenames ...string) bool {
	for _, codename := range codenames {
		if r.Allows(ctx, ident, codename) {
			return true
		}
	}
	return false
}

func (r *Resolver) resolve(ctx context.Context, ident *Identity, codename string) bool {
	if ident == nil {
		return false
	}
	if ident.IsSuperuser {
		return true
	}
	if ident.Role == RoleOwner {
		return true
	}
	if flag, mapped := TranslateCodename(codename); mapped {
		value, known := ident.Caps.Flag(flag)
		if !known {
			// Map entries always reference real flags; reaching here means
			// the two tables drifted.
			r.logger.Error("capability map references unknown flag",
				slog.String("codename", codename), slog.String("flag", flag))
			return false
		}
		return value
	}
	if !knownCodename(codename) {
		r.logger.Warn("permission check for unknown codename",
			slog.String("codename", codename), slog.Int64("identity_id", ident.ID))
	}
	if r.groups == nil {
		return false
	}
	granted, err := r.groups.GrantedCodenames(ctx, ident.ID)
	if err != nil {
		r.logger.Error("group store lookup failed, denying",
			slog.Int64("identity_id", ident.ID), slog.Any("error", err))
		return false
	}
	_, ok := granted[codename]
	return ok
}

var codenameSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Codenames))
	for _, codename := range Codenames {
		set[codename] = struct{}{}
	}
	return set
}()

func knownCodename(codename string) bool {
	_, ok := codenameSet[codename]
	return ok
}
