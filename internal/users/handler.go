package users

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Momin9/hotel-management-sub000/internal/authz"
	"github.com/Momin9/hotel-management-sub000/internal/shared"
	"github.com/Momin9/hotel-management-sub000/internal/view"
)

// Enqueuer submits bulk provisioning work to the background queue.
type Enqueuer interface {
	EnqueueRoleReapply(ctx context.Context, role string) error
	EnqueueRoleProvision(ctx context.Context, role string) error
}

// Handler manages staff administration endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
	sessions  *shared.SessionManager
	guards    authz.Middleware
	tasks     Enqueuer
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager, sessions *shared.SessionManager, guards authz.Middleware, tasks Enqueuer) *Handler {
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf, sessions: sessions, guards: guards, tasks: tasks}
}

// MountRoutes registers staff routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guards.RequirePermission(authz.PermViewStaff))
		r.Get("/", h.listUsers)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guards.RequireOwnerOrPermission(authz.PermChangeStaff))
		r.Post("/{id}/assign-role", h.assignRole)
		r.Post("/{id}/reapply", h.reapplyTemplate)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guards.RequireAdminRole())
		r.Post("/roles/{role}/reapply", h.bulkReapply)
		r.Post("/roles/{role}/provision", h.provisionRole)
	})
}

type formErrors map[string]string

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("list users failed", slog.Any("error", err))
		h.render(w, r, "pages/users/list.html", map[string]any{
			"Users":      []User{},
			"Pagination": shared.Pagination{},
			"Roles":      authz.AllRoles,
			"Errors":     formErrors{"general": shared.UserSafeMessage(err)},
		}, http.StatusInternalServerError)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pagination := shared.NewPagination(page, 20, len(accounts))
	start := (pagination.Page - 1) * pagination.PerPage
	if start > len(accounts) {
		start = len(accounts)
	}
	end := start + pagination.PerPage
	if end > len(accounts) {
		end = len(accounts)
	}

	h.render(w, r, "pages/users/list.html", map[string]any{
		"Users":      accounts[start:end],
		"Pagination": pagination,
		"Roles":      authz.AllRoles,
		"Errors":     formErrors{},
	}, http.StatusOK)
}

func (h *Handler) assignRole(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	role, ok := authz.ParseRole(r.PostFormValue("role"))
	if !ok {
		h.redirectWithFlash(w, r, "/users", "error", "Peran tidak dikenal")
		return
	}
	if err := h.service.AssignRole(r.Context(), userID, role); err != nil {
		h.logger.Error("assign role failed", slog.Int64("user_id", userID), slog.Any("error", err))
		h.redirectWithFlash(w, r, "/users", "error", shared.UserSafeMessage(err))
		return
	}
	h.redirectWithFlash(w, r, "/users", "success", "Peran diperbarui dan izin disetel ulang")
}

func (h *Handler) reapplyTemplate(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	account, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		h.redirectWithFlash(w, r, "/users", "error", shared.UserSafeMessage(err))
		return
	}
	if err := h.service.ApplyRoleTemplate(r.Context(), userID, account.Role); err != nil {
		h.logger.Error("reapply template failed", slog.Int64("user_id", userID), slog.Any("error", err))
		h.redirectWithFlash(w, r, "/users", "error", shared.UserSafeMessage(err))
		return
	}
	h.redirectWithFlash(w, r, "/users", "success", "Izin disetel ulang dari template peran")
}

func (h *Handler) bulkReapply(w http.ResponseWriter, r *http.Request) {
	role, ok := authz.ParseRole(chi.URLParam(r, "role"))
	if !ok {
		h.redirectWithFlash(w, r, "/users", "error", "Peran tidak dikenal")
		return
	}
	if err := h.tasks.EnqueueRoleReapply(r.Context(), role.String()); err != nil {
		h.logger.Error("enqueue role reapply", slog.String("role", role.String()), slog.Any("error", err))
		h.redirectWithFlash(w, r, "/users", "error", shared.UserSafeMessage(err))
		return
	}
	h.redirectWithFlash(w, r, "/users", "success", "Penyetelan ulang izin dijadwalkan")
}

func (h *Handler) provisionRole(w http.ResponseWriter, r *http.Request) {
	role, ok := authz.ParseRole(chi.URLParam(r, "role"))
	if !ok {
		h.redirectWithFlash(w, r, "/users", "error", "Peran tidak dikenal")
		return
	}
	if err := h.tasks.EnqueueRoleProvision(r.Context(), role.String()); err != nil {
		h.logger.Error("enqueue role provision", slog.String("role", role.String()), slog.Any("error", err))
		h.redirectWithFlash(w, r, "/users", "error", shared.UserSafeMessage(err))
		return
	}
	h.redirectWithFlash(w, r, "/users", "success", "Provisi grup peran dijadwalkan")
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template string, data map[string]any, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{Title: "Staf", CSRFToken: csrfToken, Flash: flash, CurrentPath: r.URL.Path, Data: data}
	w.WriteHeader(status)
	if err := h.templates.Render(w, template, viewData); err != nil {
		h.logger.Error("render template", slog.Any("error", err))
	}
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}
