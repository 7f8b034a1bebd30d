package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/apexgym/members/internal/domain"
	"github.com/apexgym/members/internal/service"
)

// AdminHandler handles the administrator's user-management requests. All
// routes behind it require role admin, enforced by RequireAdmin.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// HandleDashboard lists every member account.
// GET /admin-dashboard
func (h *AdminHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListMembers(r.Context())
	if err != nil {
		slog.Error("list members", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"title": "All Users",
		"users": toUserDTOs(users),
	})
}

// HandleViewUser shows one member with their points of interest,
// optionally filtered by a category submitted with the request.
// GET|POST /view-user/{id}
func (h *AdminHandler) HandleViewUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	// The filter may arrive as a form field or query parameter.
	category := r.FormValue("category")

	detail, err := h.admin.ViewUser(r.Context(), id, category)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "User not found.")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "Unknown category.")
		default:
			slog.Error("view user", "error", err, "user_id", id)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"title":      "View User",
		"user":       toUserDTO(detail.User),
		"pois":       toPoiDTOs(detail.Pois),
		"categories": toCategoryDTOs(detail.Categories),
	})
}

// HandleDeleteUser removes a member and all of their dependent records.
// Destructive, so POST only.
// POST /delete-user/{id}
func (h *AdminHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	if err := h.admin.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found.")
			return
		}
		slog.Error("delete user", "error", err, "user_id", id)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	http.Redirect(w, r, "/admin-dashboard", http.StatusSeeOther)
}
