package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"kegama-backend/internal/auth"
	"kegama-backend/internal/config"
	"kegama-backend/internal/metrics"
	"kegama-backend/internal/models"
	"kegama-backend/internal/ratelimit"
	"kegama-backend/internal/repositories"
)

// DefaultPIN seeds the settings row on first boot. Changing it immediately
// is part of the install checklist.
const DefaultPIN = "12345"

// ErrBadPIN is returned for a wrong PIN and for a rate-limited attempt
// alike, so callers cannot tell the two apart.
var ErrBadPIN = errors.New("incorrect PIN")

type AuthService struct {
	cfg      *config.Config
	settings *repositories.SettingsRepository
	audit    *repositories.AuditLogRepository
	sessions *auth.SessionManager
	limiter  *ratelimit.Limiter
}

func NewAuthService(
	cfg *config.Config,
	settings *repositories.SettingsRepository,
	audit *repositories.AuditLogRepository,
	sessions *auth.SessionManager,
	limiter *ratelimit.Limiter,
) *AuthService {
	return &AuthService{
		cfg:      cfg,
		settings: settings,
		audit:    audit,
		sessions: sessions,
		limiter:  limiter,
	}
}

// Login verifies the PIN for the given client IP and returns a session
// token. Five failures in ten minutes block the IP; blocked attempts are
// not counted, so the block lifts once the window rolls past.
func (s *AuthService) Login(ctx context.Context, pin, ip string) (string, bool, error) {
	if s.limiter.Blocked(ctx, ip) {
		return "", false, ErrBadPIN
	}

	settings, err := s.currentSettings(ctx)
	if err != nil {
		return "", false, fmt.Errorf("load settings: %w", err)
	}

	owner := s.cfg.Auth.OwnerPIN != "" && pin == s.cfg.Auth.OwnerPIN
	manager := auth.VerifyPIN(settings.PINHash, pin)
	if !manager && !owner {
		s.limiter.Fail(ctx, ip)
		metrics.LoginFailuresTotal.Inc()
		return "", false, ErrBadPIN
	}

	// No separate owner PIN configured: the manager PIN carries owner
	// access (single-operator setup).
	if s.cfg.Auth.OwnerPIN == "" {
		owner = true
	}

	s.limiter.Reset(ctx, ip)

	token, err := s.sessions.GenerateToken(owner)
	if err != nil {
		return "", false, fmt.Errorf("generate session token: %w", err)
	}

	if err := s.audit.Append(ctx, models.ActionLogin, "Admin login", ip); err != nil {
		log.Printf("[Audit] append login failed: %v", err)
	}
	return token, owner, nil
}

// VerifyCurrentPIN checks a PIN against the stored hash, used by the PIN
// change flow.
func (s *AuthService) VerifyCurrentPIN(ctx context.Context, pin string) (bool, error) {
	settings, err := s.currentSettings(ctx)
	if err != nil {
		return false, err
	}
	return auth.VerifyPIN(settings.PINHash, pin), nil
}

func (s *AuthService) currentSettings(ctx context.Context) (*models.AdminSettings, error) {
	hash, err := auth.HashPIN(DefaultPIN)
	if err != nil {
		return nil, err
	}
	return s.settings.GetOrCreate(ctx, hash)
}
