package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"

	"kegama-backend/internal/auth"
	"kegama-backend/internal/models"
	"kegama-backend/internal/services"
	"kegama-backend/pkg/utils"
)

// Registrar is the slice of the registration service the public surface
// needs.
type Registrar interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.GuestRegistration, error)
	PendingStatus(ctx context.Context, guestID string) (*models.GuestRegistration, error)
	CheckAccessCode(ctx context.Context, code string) error
}

// GuestHandler serves the public self-registration endpoints.
type GuestHandler struct {
	registrar Registrar
	cookies   *auth.GuestCookieSigner
}

func NewGuestHandler(registrar Registrar, cookies *auth.GuestCookieSigner) *GuestHandler {
	return &GuestHandler{registrar: registrar, cookies: cookies}
}

// Register handles POST /api/guest/register.
func (h *GuestHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	g, err := h.registrar.Register(r.Context(), &req)
	if err != nil {
		var vErr *services.ValidationError
		switch {
		case errors.Is(err, services.ErrHoneypot):
			utils.Error(w, http.StatusBadRequest, "Invalid submission")
		case errors.Is(err, services.ErrMaintenanceMode):
			utils.Error(w, http.StatusServiceUnavailable, "Registration is temporarily closed")
		case errors.As(err, &vErr):
			utils.JSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":   "Missing required fields",
				"missing": vErr.Missing,
			})
		default:
			utils.Error(w, http.StatusInternalServerError, "Failed to save registration")
		}
		return
	}

	h.cookies.SetCookie(w, g.ID)
	utils.JSON(w, http.StatusCreated, map[string]string{
		"id":     g.ID,
		"status": g.Status,
	})
}

// Status handles GET /api/guest/status: does the caller's cookie point at a
// still-pending registration?
func (h *GuestHandler) Status(w http.ResponseWriter, r *http.Request) {
	guestID, err := h.cookies.ReadCookie(r)
	if err != nil {
		utils.JSON(w, http.StatusOK, map[string]interface{}{"pending": false})
		return
	}

	g, err := h.registrar.PendingStatus(r.Context(), guestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.JSON(w, http.StatusOK, map[string]interface{}{"pending": false})
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Failed to load status")
		return
	}
	if g == nil {
		utils.JSON(w, http.StatusOK, map[string]interface{}{"pending": false})
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"pending":    true,
		"id":         g.ID,
		"first_name": g.FirstName,
		"last_name":  g.LastName,
	})
}

// AccessCode handles POST /api/guest/access-code.
func (h *GuestHandler) AccessCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.registrar.CheckAccessCode(r.Context(), req.Code); err != nil {
		if errors.Is(err, services.ErrBadAccessCode) {
			utils.Error(w, http.StatusForbidden, "Invalid access code")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Failed to check access code")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"authorized": true})
}
