package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"kegama-backend/internal/config"
	"kegama-backend/internal/timeutil"
)

// Claims is the admin session token payload. Owner unlocks the payroll
// surface on top of the manager session.
type Claims struct {
	Manager bool `json:"manager"`
	Owner   bool `json:"owner"`
	jwt.RegisteredClaims
}

type SessionManager struct {
	cfg *config.Config
}

func NewSessionManager(cfg *config.Config) *SessionManager {
	return &SessionManager{cfg: cfg}
}

// GenerateToken creates a session token after a successful PIN login.
func (s *SessionManager) GenerateToken(owner bool) (string, error) {
	now := timeutil.Now()
	expirationTime := now.Add(time.Duration(s.cfg.Session.ExpirationHours) * time.Hour)

	claims := &Claims{
		Manager: true,
		Owner:   owner,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.cfg.Session.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Session.Secret))
}

// ValidateToken verifies a session token and returns the claims.
func (s *SessionManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.cfg.Session.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
