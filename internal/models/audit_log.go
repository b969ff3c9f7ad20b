package models

import "time"

// Audit actions recorded against admin activity.
const (
	ActionLogin          = "LOGIN"
	ActionUpdateGuest    = "UPDATE_GUEST"
	ActionDeleteGuest    = "DELETE_GUEST"
	ActionCloneGuest     = "CLONE_GUEST"
	ActionPrintPDF       = "PRINT_PDF"
	ActionUpdateSettings = "UPDATE_SETTINGS"
	ActionUpdateRooms    = "UPDATE_ROOMS"
	ActionHousekeeping   = "HOUSEKEEPING"
)

// AuditLog is an append-only record of an admin action.
type AuditLog struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	IPAddress string    `json:"ip_address"`
	Timestamp time.Time `json:"timestamp"`
}
