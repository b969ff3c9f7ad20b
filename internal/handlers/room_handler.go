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

type RoomHandler struct {
	rack *services.RackService
}

func NewRoomHandler(rack *services.RackService) *RoomHandler {
	return &RoomHandler{rack: rack}
}

// Rack handles GET /api/admin/rack.
func (h *RoomHandler) Rack(w http.ResponseWriter, r *http.Request) {
	floors, err := h.rack.Rack(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load rack")
		return
	}
	utils.JSON(w, http.StatusOK, floors)
}

// MarkClean handles POST /api/admin/rooms/{number}/clean.
func (h *RoomHandler) MarkClean(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	if err := h.rack.MarkClean(r.Context(), number, middleware.ClientIP(r)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.Error(w, http.StatusNotFound, "Room not found")
			return
		}
		utils.Error(w, http.StatusConflict, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"number": number, "status": models.RoomAvailable})
}

// List handles GET /api/admin/rooms.
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	overview, err := h.rack.RoomsOverview(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load rooms")
		return
	}
	utils.JSON(w, http.StatusOK, overview)
}

// Update handles PUT /api/admin/rooms.
func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rooms []models.RoomUpdateRequest `json:"rooms"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.rack.UpdateRooms(r.Context(), req.Rooms, middleware.ClientIP(r)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.Error(w, http.StatusNotFound, "Room not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Failed to update rooms")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"updated": true})
}
