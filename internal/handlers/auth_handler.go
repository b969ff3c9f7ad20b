package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"kegama-backend/internal/middleware"
	"kegama-backend/internal/services"
	"kegama-backend/pkg/utils"
)

// PINAuthenticator is the slice of the auth service the login endpoint needs.
type PINAuthenticator interface {
	Login(ctx context.Context, pin, ip string) (token string, owner bool, err error)
}

type AuthHandler struct {
	auth PINAuthenticator
}

func NewAuthHandler(auth PINAuthenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles POST /api/admin/login. Wrong PINs and rate-limited attempts
// get the same response, so the limiter leaks nothing.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, owner, err := h.auth.Login(r.Context(), req.PIN, middleware.ClientIP(r))
	if err != nil {
		if errors.Is(err, services.ErrBadPIN) {
			utils.Error(w, http.StatusUnauthorized, "Incorrect PIN")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "admin_session",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"owner": owner,
	})
}
