package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"kegama-backend/internal/middleware"
	"kegama-backend/internal/models"
	"kegama-backend/internal/repositories"
	"kegama-backend/internal/services"
	"kegama-backend/pkg/utils"
)

// auditLogPageSize bounds the audit-log endpoint.
const auditLogPageSize = 50

type SettingsHandler struct {
	settings *services.SettingsService
	audit    *repositories.AuditLogRepository
}

func NewSettingsHandler(settings *services.SettingsService, audit *repositories.AuditLogRepository) *SettingsHandler {
	return &SettingsHandler{settings: settings, audit: audit}
}

// Get handles GET /api/admin/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	utils.JSON(w, http.StatusOK, settings)
}

// Update handles PUT /api/admin/settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.SettingsUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.settings.Update(r.Context(), &req, middleware.ClientIP(r)); err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"updated": true})
}

// ChangePIN handles POST /api/admin/settings/pin.
func (h *SettingsHandler) ChangePIN(w http.ResponseWriter, r *http.Request) {
	var req models.PINChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.settings.ChangePIN(r.Context(), &req, middleware.ClientIP(r))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPINMismatch),
			errors.Is(err, services.ErrPINTooShort):
			utils.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrWrongOldPIN):
			utils.Error(w, http.StatusForbidden, err.Error())
		default:
			utils.Error(w, http.StatusInternalServerError, "Failed to change PIN")
		}
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"changed": true})
}

// AuditLog handles GET /api/admin/audit-log.
func (h *SettingsHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.audit.Recent(r.Context(), auditLogPageSize)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load audit log")
		return
	}
	if entries == nil {
		entries = []*models.AuditLog{}
	}
	utils.JSON(w, http.StatusOK, entries)
}
