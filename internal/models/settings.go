package models

import "time"

// AdminSettings is a singleton row with a fixed primary key of 1.
type AdminSettings struct {
	ID              int       `json:"-"`
	PINHash         string    `json:"-"`
	MaintenanceMode bool      `json:"maintenance_mode"`
	FormAccessCode  string    `json:"form_access_code"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SettingsUpdateRequest updates the non-PIN settings.
type SettingsUpdateRequest struct {
	MaintenanceMode bool   `json:"maintenance_mode"`
	FormAccessCode  string `json:"form_access_code"`
}

// PINChangeRequest changes the admin PIN after verifying the old one.
type PINChangeRequest struct {
	OldPIN     string `json:"old_pin"`
	NewPIN     string `json:"new_pin"`
	ConfirmPIN string `json:"confirm_pin"`
}
