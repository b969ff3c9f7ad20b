package models

// Room statuses. Status is a cache over the booking table: reconciliation
// flips AVAILABLE and OCCUPIED, MAINTENANCE is manual, DIRTY is set on
// checkout and cleared by housekeeping.
const (
	RoomAvailable   = "AVAILABLE"
	RoomOccupied    = "OCCUPIED"
	RoomMaintenance = "MAINTENANCE"
	RoomDirty       = "DIRTY"
)

type Room struct {
	Number   string  `json:"number"`
	Floor    int     `json:"floor"`
	Price    float64 `json:"price"`
	Price6hr float64 `json:"price_6hr"`
	Price10h float64 `json:"price_10hr"`
	Capacity int     `json:"capacity"`
	Status   string  `json:"status"`
}

// RoomUpdateRequest is one row of the bulk room management form.
type RoomUpdateRequest struct {
	Number   string `json:"number"`
	Price    string `json:"price"`
	Price6hr string `json:"price_6hr"`
	Price10h string `json:"price_10hr"`
	Capacity string `json:"capacity"`
	Status   string `json:"status"`
}

// RackCard is one room tile on the rack view.
type RackCard struct {
	Room           Room   `json:"room"`
	DisplayStatus  string `json:"display_status"`
	GuestID        string `json:"guest_id,omitempty"`
	GuestName      string `json:"guest_name,omitempty"`
	CheckOutDate   string `json:"check_out_date,omitempty"`
	HasAdvanceStay bool   `json:"has_advance_stay"`
	PendingGuestID string `json:"pending_guest_id,omitempty"`
}

// RoomStats summarizes the room inventory for the management screen.
type RoomStats struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Occupied    int `json:"occupied"`
	Maintenance int `json:"maintenance"`
	Dirty       int `json:"dirty"`
}
