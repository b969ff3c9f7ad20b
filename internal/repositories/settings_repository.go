package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"kegama-backend/internal/models"
)

// settingsID pins the singleton row.
const settingsID = 1

type SettingsRepository struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// GetOrCreate returns the settings row, inserting the seed row on first use.
// The fixed primary key makes concurrent first calls converge on one row.
func (r *SettingsRepository) GetOrCreate(ctx context.Context, defaultPINHash string) (*models.AdminSettings, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO admin_settings (id, pin_hash)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING`,
		settingsID, defaultPINHash)
	if err != nil {
		return nil, err
	}

	var s models.AdminSettings
	err = r.pool.QueryRow(ctx, `
		SELECT id, pin_hash, maintenance_mode, form_access_code, updated_at
		FROM admin_settings WHERE id = $1`, settingsID,
	).Scan(&s.ID, &s.PINHash, &s.MaintenanceMode, &s.FormAccessCode, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Update writes the non-PIN settings.
func (r *SettingsRepository) Update(ctx context.Context, maintenanceMode bool, formAccessCode string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE admin_settings
		SET maintenance_mode = $2, form_access_code = $3, updated_at = NOW()
		WHERE id = $1`,
		settingsID, maintenanceMode, formAccessCode)
	return err
}

// UpdatePINHash replaces the stored PIN hash.
func (r *SettingsRepository) UpdatePINHash(ctx context.Context, pinHash string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE admin_settings
		SET pin_hash = $2, updated_at = NOW()
		WHERE id = $1`,
		settingsID, pinHash)
	return err
}
