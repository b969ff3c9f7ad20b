package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kegama-backend/internal/cache"
	"kegama-backend/internal/metrics"
	"kegama-backend/internal/models"
	"kegama-backend/internal/repositories"
	"kegama-backend/internal/timeutil"
)

var (
	// ErrMaintenanceMode rejects public submissions while the form is down.
	ErrMaintenanceMode = errors.New("registration is temporarily closed")
	// ErrHoneypot flags a filled hidden field on the public form.
	ErrHoneypot = errors.New("invalid submission")
	// ErrBadAccessCode rejects a wrong form access code.
	ErrBadAccessCode = errors.New("invalid access code")
)

// ValidationError lists the required fields a submission is missing.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// RegistrationService owns the public self-registration surface.
type RegistrationService struct {
	guests   *repositories.GuestRepository
	settings *SettingsService
}

func NewRegistrationService(guests *repositories.GuestRepository, settings *SettingsService) *RegistrationService {
	return &RegistrationService{guests: guests, settings: settings}
}

// Register validates and stores a public form submission as a PENDING
// registration. Names, address and car plate are stored uppercased.
func (s *RegistrationService) Register(ctx context.Context, req *models.RegisterRequest) (*models.GuestRegistration, error) {
	if req.Nickname != "" {
		return nil, ErrHoneypot
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if settings.MaintenanceMode {
		return nil, ErrMaintenanceMode
	}

	var missing []string
	require := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	require("last_name", req.LastName)
	require("first_name", req.FirstName)
	require("address", req.Address)
	require("phone", req.Phone)
	require("birth_date", req.BirthDate)
	require("gender", req.Gender)
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	birthDate, err := timeutil.ParseDate(strings.TrimSpace(req.BirthDate))
	if err != nil {
		return nil, &ValidationError{Missing: []string{"birth_date"}}
	}

	g := &models.GuestRegistration{
		Status:          models.StatusPending,
		Source:          models.SourceWalkIn,
		SecurityDeposit: 1000,
		LastName:        strings.ToUpper(strings.TrimSpace(req.LastName)),
		FirstName:       strings.ToUpper(strings.TrimSpace(req.FirstName)),
		Address:         strings.ToUpper(strings.TrimSpace(req.Address)),
		Phone:           strings.TrimSpace(req.Phone),
		Email:           strings.TrimSpace(req.Email),
		BirthDate:       &birthDate,
		Gender:          req.Gender,
		Pax:             1,
		Nights:          1,
		ModeOfPayment:   models.PaymentCash,
	}
	if plate := strings.ToUpper(strings.TrimSpace(req.CarPlate)); plate != "" {
		g.CarPlate = &plate
	}

	if err := s.guests.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("create registration: %w", err)
	}

	metrics.RegistrationsTotal.WithLabelValues(g.Source).Inc()
	cache.InvalidateGuestCaches(ctx)
	return g, nil
}

// PendingStatus returns the guest's pending registration if it still exists
// and has not been processed by the desk yet.
func (s *RegistrationService) PendingStatus(ctx context.Context, guestID string) (*models.GuestRegistration, error) {
	g, err := s.guests.Get(ctx, guestID)
	if err != nil {
		return nil, err
	}
	if g.Status != models.StatusPending {
		return nil, nil
	}
	return g, nil
}

// CheckAccessCode validates the optional form access code. An empty
// configured code leaves the form open.
func (s *RegistrationService) CheckAccessCode(ctx context.Context, code string) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if settings.FormAccessCode == "" {
		return nil
	}
	if code != settings.FormAccessCode {
		return ErrBadAccessCode
	}
	return nil
}

// StalePendingCutoff is how long an unprocessed public submission lives.
const StalePendingCutoff = time.Hour
