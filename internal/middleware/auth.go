package middleware

import (
	"context"
	"net/http"
	"strings"

	"kegama-backend/internal/auth"
)

type contextKey string

const SessionKey contextKey = "session"

type AuthMiddleware struct {
	sessions *auth.SessionManager
}

func NewAuthMiddleware(sessions *auth.SessionManager) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireManager validates the PIN session token and puts the claims on the
// request context. The token is read from the Authorization header, falling
// back to the admin_session cookie for browser requests.
func (m *AuthMiddleware) RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := m.authenticate(w, r)
		if !ok {
			return
		}
		ctx := context.WithValue(r.Context(), SessionKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireOwner additionally demands the owner claim. Gates the payroll API.
func (m *AuthMiddleware) RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := m.authenticate(w, r)
		if !ok {
			return
		}
		if !claims.Owner {
			http.Error(w, "Forbidden: Owner access required", http.StatusForbidden)
			return
		}
		ctx := context.WithValue(r.Context(), SessionKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) authenticate(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	token := bearerToken(r)
	if token == "" {
		if c, err := r.Cookie("admin_session"); err == nil {
			token = c.Value
		}
	}
	if token == "" {
		http.Error(w, "Authorization required", http.StatusUnauthorized)
		return nil, false
	}

	claims, err := m.sessions.ValidateToken(token)
	if err != nil {
		http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
		return nil, false
	}
	return claims, true
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// SessionFromContext extracts the session claims put there by the auth
// middleware.
func SessionFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(SessionKey).(*auth.Claims)
	return claims, ok
}
