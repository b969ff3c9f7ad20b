package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"kegama-backend/internal/middleware"
	"kegama-backend/internal/models"
	"kegama-backend/internal/services"
	"kegama-backend/pkg/utils"
)

// GuestAdminHandler serves the desk-side registration endpoints.
type GuestAdminHandler struct {
	guests *services.GuestService
}

func NewGuestAdminHandler(guests *services.GuestService) *GuestAdminHandler {
	return &GuestAdminHandler{guests: guests}
}

// Dashboard handles GET /api/admin/dashboard.
func (h *GuestAdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.guests.Dashboard(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	utils.JSON(w, http.StatusOK, dashboard)
}

// Get handles GET /api/admin/guests/{id}.
func (h *GuestAdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.guests.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.Error(w, http.StatusNotFound, "Guest not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Failed to load guest")
		return
	}
	utils.JSON(w, http.StatusOK, detail)
}

// Update handles PUT /api/admin/guests/{id}.
func (h *GuestAdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.GuestUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.guests.Update(r.Context(), mux.Vars(r)["id"], &req, middleware.ClientIP(r))
	if err != nil {
		var vErr *services.ValidationError
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			utils.Error(w, http.StatusNotFound, "Guest not found")
		case errors.Is(err, services.ErrUnderage):
			utils.Error(w, http.StatusBadRequest, "Guest must be at least 18 years old")
		case errors.As(err, &vErr):
			utils.JSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":   "Missing or invalid fields",
				"missing": vErr.Missing,
			})
		default:
			utils.Error(w, http.StatusInternalServerError, "Failed to update guest")
		}
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

// Delete handles DELETE /api/admin/guests/{id}.
func (h *GuestAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.guests.Delete(r.Context(), mux.Vars(r)["id"], middleware.ClientIP(r))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.Error(w, http.StatusNotFound, "Guest not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Failed to delete guest")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Clone handles POST /api/admin/guests/{id}/clone.
func (h *GuestAdminHandler) Clone(w http.ResponseWriter, r *http.Request) {
	clone, err := h.guests.Clone(r.Context(), mux.Vars(r)["id"], middleware.ClientIP(r))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.Error(w, http.StatusNotFound, "Guest not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Failed to clone guest")
		return
	}
	utils.JSON(w, http.StatusCreated, clone)
}

// CreateBooking handles POST /api/admin/bookings.
func (h *GuestAdminHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req models.BookingCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	g, err := h.guests.CreateBooking(r.Context(), &req)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			utils.JSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":   "Missing or invalid fields",
				"missing": vErr.Missing,
			})
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}
	utils.JSON(w, http.StatusCreated, g)
}

// Search handles GET /api/admin/guests/search?q=.
func (h *GuestAdminHandler) Search(w http.ResponseWriter, r *http.Request) {
	briefs, err := h.guests.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Search failed")
		return
	}
	if briefs == nil {
		briefs = []*models.GuestBrief{}
	}
	utils.JSON(w, http.StatusOK, briefs)
}
