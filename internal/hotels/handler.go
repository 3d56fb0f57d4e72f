package hotels

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Momin9/hotel-management-sub000/internal/authz"
	"github.com/Momin9/hotel-management-sub000/internal/shared"
	"github.com/Momin9/hotel-management-sub000/internal/view"
)

// Handler serves the hotel directory screen.
type Handler struct {
	logger    *slog.Logger
	repo      RepositoryPort
	templates *view.Engine
	csrf      *shared.CSRFManager
	guards    authz.Middleware
	resolver  *authz.Resolver
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, repo RepositoryPort, templates *view.Engine, csrf *shared.CSRFManager, guards authz.Middleware, resolver *authz.Resolver) *Handler {
	return &Handler{logger: logger, repo: repo, templates: templates, csrf: csrf, guards: guards, resolver: resolver}
}

// MountRoutes registers hotel routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guards.RequirePermission(authz.PermViewHotel))
		r.Get("/", h.listHotels)
	})
}

// listHotels shows every active hotel, or only owned hotels for owners.
func (h *Handler) listHotels(w http.ResponseWriter, r *http.Request) {
	ident := authz.IdentityFromContext(r.Context())

	var (
		properties []Hotel
		err        error
	)
	if ident != nil && ident.Role == authz.RoleOwner && !ident.IsSuperuser {
		properties, err = h.repo.ListByOwner(r.Context(), ident.ID)
	} else {
		properties, err = h.repo.ListActive(r.Context())
	}
	if err != nil {
		h.logger.Error("list hotels failed", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	data := view.TemplateData{
		Title:       "Hotel",
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data: map[string]any{
			"Hotels":    properties,
			"CanManage": h.resolver.AllowsAny(r.Context(), ident, authz.PermAddHotel, authz.PermChangeHotel),
		},
	}
	if err := h.templates.Render(w, "pages/hotels/list.html", data); err != nil {
		h.logger.Error("render template", slog.Any("error", err))
	}
}
