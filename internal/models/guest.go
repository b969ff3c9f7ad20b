package models

import "time"

// Registration lifecycle statuses.
const (
	StatusPending    = "PENDING"
	StatusPrinted    = "PRINTED"
	StatusCheckedIn  = "CHECKED_IN"
	StatusCheckedOut = "CHECKED_OUT"
)

// Booking sources.
const (
	SourceOYO    = "OYO"
	SourceAirbnb = "AIRBNB"
	SourceWalkIn = "WALKIN"
)

// Payment modes.
const (
	PaymentCash         = "CASH"
	PaymentGCash        = "GCASH"
	PaymentMaya         = "MAYA"
	PaymentBankTransfer = "BANK_TRANSFER"
)

// RequestItem is one line on the guest's additional-requests list.
// Lines with a blank item are dropped before summing and persistence.
type RequestItem struct {
	Item  string `json:"item"`
	Price string `json:"price"`
}

// GuestRegistration is a stay record from self-registration through checkout.
type GuestRegistration struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Status          string  `json:"status"`
	Source          string  `json:"source"`
	BookingID       string  `json:"booking_id"`
	SecurityDeposit float64 `json:"security_deposit"`

	LastName  string     `json:"last_name"`
	FirstName string     `json:"first_name"`
	Address   string     `json:"address"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	CarPlate  *string    `json:"car_plate"`
	BirthDate *time.Time `json:"birth_date"`
	Gender    string     `json:"gender"`

	Pax          int     `json:"pax"`
	Nights       int     `json:"nights"`
	StayDuration string  `json:"stay_duration"`
	RoomNumber   *string `json:"room_number"`
	RoomRate     float64 `json:"room_rate"`

	ModeOfPayment      string        `json:"mode_of_payment"`
	AdditionalRequests []RequestItem `json:"additional_requests"`
	TotalAmount        float64       `json:"total_amount"`

	CheckInDate  *time.Time `json:"check_in_date"`
	CheckInTime  string     `json:"check_in_time"`
	CheckOutDate *time.Time `json:"check_out_date"`
	CheckOutTime string     `json:"check_out_time"`

	Notes string `json:"notes"`
}

// FullName is "FIRST LAST" as shown on the rack and folio.
func (g *GuestRegistration) FullName() string {
	if g.FirstName == "" {
		return g.LastName
	}
	if g.LastName == "" {
		return g.FirstName
	}
	return g.FirstName + " " + g.LastName
}

// IsActive reports whether the stay currently blocks a room.
func (g *GuestRegistration) IsActive() bool {
	return g.Status == StatusPrinted || g.Status == StatusCheckedIn
}

// RegisterRequest is the public self-registration payload. Nickname is a
// honeypot; any non-empty value rejects the submission.
type RegisterRequest struct {
	Nickname  string `json:"nickname"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	CarPlate  string `json:"car_plate"`
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`
}

// GuestUpdateRequest carries the admin edit form. Numeric fields arrive as
// strings and are coerced leniently server-side.
type GuestUpdateRequest struct {
	Action string `json:"action"` // save | save_and_print | checkout

	Status          string `json:"status"`
	Source          string `json:"source"`
	BookingID       string `json:"booking_id"`
	SecurityDeposit string `json:"security_deposit"`

	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	CarPlate  string `json:"car_plate"`
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`

	Pax          string `json:"pax"`
	Nights       string `json:"nights"`
	StayDuration string `json:"stay_duration"`
	RoomNumber   string `json:"room_number"`
	RoomRate     string `json:"room_rate"`

	ModeOfPayment      string        `json:"mode_of_payment"`
	AdditionalRequests []RequestItem `json:"additional_requests"`

	CheckInDate  string `json:"check_in_date"`
	CheckInTime  string `json:"check_in_time"`
	CheckOutDate string `json:"check_out_date"`
	CheckOutTime string `json:"check_out_time"`

	Notes string `json:"notes"`
}

// BookingCreateRequest pre-fills a walk-in booking from the rack.
type BookingCreateRequest struct {
	RoomNumber  string `json:"room_number"`
	CheckInDate string `json:"check_in_date"`
	Source      string `json:"source"`
	LastName    string `json:"last_name"`
	FirstName   string `json:"first_name"`
	Phone       string `json:"phone"`
	Nights      string `json:"nights"`
}

// GuestBrief is a deduplicated search hit for the returning-guest picker.
type GuestBrief struct {
	ID        string `json:"id"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`
}

// DashboardStats is the header block on the admin dashboard.
type DashboardStats struct {
	Total         int `json:"total"`
	Active        int `json:"active"`
	Pending       int `json:"pending"`
	TodayCheckins int `json:"today_checkins"`
}
