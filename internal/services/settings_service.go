package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"kegama-backend/internal/auth"
	"kegama-backend/internal/cache"
	"kegama-backend/internal/models"
	"kegama-backend/internal/repositories"
)

var (
	ErrPINMismatch = errors.New("new PIN and confirmation do not match")
	ErrPINTooShort = errors.New("PIN must be at least 4 digits")
	ErrWrongOldPIN = errors.New("current PIN is incorrect")
)

type SettingsService struct {
	settings *repositories.SettingsRepository
	audit    *repositories.AuditLogRepository
}

func NewSettingsService(settings *repositories.SettingsRepository, audit *repositories.AuditLogRepository) *SettingsService {
	return &SettingsService{settings: settings, audit: audit}
}

// Get returns the settings singleton, from cache when possible. The cached
// copy never carries the PIN hash; PIN verification always hits the
// repository through load.
func (s *SettingsService) Get(ctx context.Context) (*models.AdminSettings, error) {
	if data, ok := cache.GetCached(ctx, cache.SettingsKey); ok {
		var cached models.AdminSettings
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}
	return s.load(ctx)
}

func (s *SettingsService) load(ctx context.Context) (*models.AdminSettings, error) {
	hash, err := auth.HashPIN(DefaultPIN)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.GetOrCreate(ctx, hash)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(settings); err == nil {
		cache.SetCached(ctx, cache.SettingsKey, data, 10*time.Minute)
	}
	return settings, nil
}

// Update writes the non-PIN settings and audits the change.
func (s *SettingsService) Update(ctx context.Context, req *models.SettingsUpdateRequest, ip string) error {
	if err := s.settings.Update(ctx, req.MaintenanceMode, req.FormAccessCode); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	cache.InvalidateSettingsCache(ctx)

	details := fmt.Sprintf("maintenance_mode=%t", req.MaintenanceMode)
	if err := s.audit.Append(ctx, models.ActionUpdateSettings, details, ip); err != nil {
		log.Printf("[Audit] append settings update failed: %v", err)
	}
	return nil
}

// ChangePIN verifies the current PIN and stores a bcrypt hash of the new one.
func (s *SettingsService) ChangePIN(ctx context.Context, req *models.PINChangeRequest, ip string) error {
	if req.NewPIN != req.ConfirmPIN {
		return ErrPINMismatch
	}
	if len(req.NewPIN) < 4 {
		return ErrPINTooShort
	}

	settings, err := s.load(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if !auth.VerifyPIN(settings.PINHash, req.OldPIN) {
		return ErrWrongOldPIN
	}

	hash, err := auth.HashPIN(req.NewPIN)
	if err != nil {
		return fmt.Errorf("hash PIN: %w", err)
	}
	if err := s.settings.UpdatePINHash(ctx, hash); err != nil {
		return fmt.Errorf("store PIN: %w", err)
	}
	cache.InvalidateSettingsCache(ctx)

	if err := s.audit.Append(ctx, models.ActionUpdateSettings, "PIN changed", ip); err != nil {
		log.Printf("[Audit] append PIN change failed: %v", err)
	}
	return nil
}
