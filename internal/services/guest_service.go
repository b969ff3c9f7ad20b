package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"kegama-backend/internal/booking"
	"kegama-backend/internal/cache"
	"kegama-backend/internal/finance"
	"kegama-backend/internal/models"
	"kegama-backend/internal/repositories"
	"kegama-backend/internal/timeutil"
)

var ErrUnderage = errors.New("guest must be at least 18 years old")

// dashboardAuditEntries is how many recent audit rows ride on the dashboard.
const dashboardAuditEntries = 8

// GuestService owns the desk-side registration lifecycle: dashboard, edits,
// check-in printing, checkout, cloning and walk-in bookings.
type GuestService struct {
	guests *repositories.GuestRepository
	rooms  *repositories.RoomRepository
	audit  *repositories.AuditLogRepository
}

func NewGuestService(
	guests *repositories.GuestRepository,
	rooms *repositories.RoomRepository,
	audit *repositories.AuditLogRepository,
) *GuestService {
	return &GuestService{guests: guests, rooms: rooms, audit: audit}
}

// MonthGroup is one dashboard section of guests sharing a creation month.
type MonthGroup struct {
	Label  string                      `json:"label"`
	Guests []*models.GuestRegistration `json:"guests"`
}

// Dashboard assembles the admin landing page. Stale PENDING submissions are
// expired here instead of by a background job.
type Dashboard struct {
	Stats  *models.DashboardStats `json:"stats"`
	Months []MonthGroup           `json:"months"`
	Audit  []*models.AuditLog     `json:"recent_activity"`
}

func (s *GuestService) Dashboard(ctx context.Context, search string) (*Dashboard, error) {
	cutoff := timeutil.Now().Add(-StalePendingCutoff)
	if removed, err := s.guests.DeleteStalePending(ctx, cutoff); err != nil {
		log.Printf("[Guests] stale pending cleanup failed: %v", err)
	} else if removed > 0 {
		log.Printf("[Guests] expired %d stale pending registration(s)", removed)
		cache.InvalidateGuestCaches(ctx)
	}

	stats, err := s.guests.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}

	guests, err := s.guests.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}

	entries, err := s.audit.Recent(ctx, dashboardAuditEntries)
	if err != nil {
		return nil, fmt.Errorf("load audit entries: %w", err)
	}

	return &Dashboard{
		Stats:  stats,
		Months: groupByMonth(guests),
		Audit:  entries,
	}, nil
}

// groupByMonth buckets newest-first guests under "January 2006" labels,
// preserving order within and across groups.
func groupByMonth(guests []*models.GuestRegistration) []MonthGroup {
	var groups []MonthGroup
	index := map[string]int{}
	for _, g := range guests {
		label := timeutil.ToLocal(g.CreatedAt).Format(timeutil.MonthLayout)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, MonthGroup{Label: label})
		}
		groups[i].Guests = append(groups[i].Guests, g)
	}
	return groups
}

// GuestDetail is the edit screen payload: the guest plus bookable rooms
// grouped by floor.
type GuestDetail struct {
	Guest  *models.GuestRegistration `json:"guest"`
	Floors []FloorRooms              `json:"floors"`
}

type FloorRooms struct {
	Floor int            `json:"floor"`
	Rooms []*models.Room `json:"rooms"`
}

func (s *GuestService) Get(ctx context.Context, id string) (*GuestDetail, error) {
	g, err := s.guests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	floors, err := s.floorsForAssignment(ctx, g.RoomNumber)
	if err != nil {
		return nil, err
	}
	return &GuestDetail{Guest: g, Floors: floors}, nil
}

// floorsForAssignment lists rooms a guest may be assigned to: everything
// except rooms under maintenance, keeping the guest's own room in the list.
func (s *GuestService) floorsForAssignment(ctx context.Context, current *string) ([]FloorRooms, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	byFloor := map[int][]*models.Room{}
	for _, rm := range rooms {
		if rm.Status == models.RoomMaintenance &&
			(current == nil || *current != rm.Number) {
			continue
		}
		byFloor[rm.Floor] = append(byFloor[rm.Floor], rm)
	}

	floors := make([]FloorRooms, 0, len(byFloor))
	for floor, list := range byFloor {
		floors = append(floors, FloorRooms{Floor: floor, Rooms: list})
	}
	sort.Slice(floors, func(i, j int) bool { return floors[i].Floor < floors[j].Floor })
	return floors, nil
}

// UpdateResult reports the saved guest plus a double-booking warning when
// the chosen room is already taken for the dates.
type UpdateResult struct {
	Guest   *models.GuestRegistration `json:"guest"`
	Warning string                    `json:"warning,omitempty"`
}

// Update applies an admin edit. Numeric fields are coerced leniently, the
// folio total and checkout date are recomputed server-side, and room status
// is written back according to the action taken.
func (s *GuestService) Update(ctx context.Context, id string, req *models.GuestUpdateRequest, ip string) (*UpdateResult, error) {
	g, err := s.guests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	oldRoom := g.RoomNumber

	if err := applyEdit(g, req); err != nil {
		return nil, err
	}

	switch req.Action {
	case "save_and_print":
		g.Status = models.StatusPrinted
		if g.BookingID == "" {
			g.BookingID = newBookingCode()
		}
	case "checkout":
		g.Status = models.StatusCheckedOut
		now := timeutil.Now()
		day := timeutil.StartOfDay(now)
		g.CheckOutDate = &day
		g.CheckOutTime = now.Format(timeutil.TimeLayout)
	}

	warning, err := s.conflictWarning(ctx, g)
	if err != nil {
		return nil, err
	}

	if err := s.guests.Update(ctx, g); err != nil {
		return nil, fmt.Errorf("update guest: %w", err)
	}

	if w := s.writeBackRooms(ctx, g, oldRoom); w != "" {
		if warning != "" {
			warning += "; "
		}
		warning += w
	}

	cache.InvalidateGuestCaches(ctx)
	details := fmt.Sprintf("%s (%s)", g.FullName(), req.Action)
	if err := s.audit.Append(ctx, models.ActionUpdateGuest, details, ip); err != nil {
		log.Printf("[Audit] append guest update failed: %v", err)
	}

	return &UpdateResult{Guest: g, Warning: warning}, nil
}

// applyEdit copies the form onto the record, enforcing the uppercase
// convention, the adult-guest rule, the derived checkout date and the folio
// total.
func applyEdit(g *models.GuestRegistration, req *models.GuestUpdateRequest) error {
	g.Source = req.Source
	g.BookingID = strings.ToUpper(strings.TrimSpace(req.BookingID))
	g.SecurityDeposit = finance.ParseAmount(req.SecurityDeposit)
	g.LastName = strings.ToUpper(strings.TrimSpace(req.LastName))
	g.FirstName = strings.ToUpper(strings.TrimSpace(req.FirstName))
	g.Address = strings.ToUpper(strings.TrimSpace(req.Address))
	g.Phone = strings.TrimSpace(req.Phone)
	g.Email = strings.TrimSpace(req.Email)
	g.Gender = req.Gender
	g.Notes = req.Notes
	g.StayDuration = req.StayDuration
	g.ModeOfPayment = req.ModeOfPayment
	g.CheckInTime = req.CheckInTime
	g.CheckOutTime = req.CheckOutTime

	g.CarPlate = nil
	if plate := strings.ToUpper(strings.TrimSpace(req.CarPlate)); plate != "" {
		g.CarPlate = &plate
	}

	if req.Status != "" {
		g.Status = req.Status
	}

	g.BirthDate = nil
	if req.BirthDate != "" {
		bd, err := timeutil.ParseDate(req.BirthDate)
		if err != nil {
			return &ValidationError{Missing: []string{"birth_date"}}
		}
		if age(bd, timeutil.Today()) < 18 {
			return ErrUnderage
		}
		g.BirthDate = &bd
	}

	g.Pax = finance.ParseInt(req.Pax, 1)
	g.Nights = finance.ParseNights(req.Nights)
	g.RoomRate = finance.ParseAmount(req.RoomRate)

	g.RoomNumber = nil
	if room := strings.TrimSpace(req.RoomNumber); room != "" {
		g.RoomNumber = &room
	}

	g.CheckInDate = nil
	g.CheckOutDate = nil
	if req.CheckInDate != "" {
		in, err := timeutil.ParseDate(req.CheckInDate)
		if err != nil {
			return &ValidationError{Missing: []string{"check_in_date"}}
		}
		g.CheckInDate = &in
		out := in.AddDate(0, 0, g.Nights)
		g.CheckOutDate = &out
	}

	g.AdditionalRequests = finance.CleanRequests(req.AdditionalRequests)
	g.TotalAmount = finance.Total(g.RoomRate, g.Nights, g.AdditionalRequests)
	return nil
}

func age(birth, today time.Time) int {
	years := today.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(today) {
		years--
	}
	return years
}

func (s *GuestService) conflictWarning(ctx context.Context, g *models.GuestRegistration) (string, error) {
	if g.RoomNumber == nil || g.CheckInDate == nil || g.CheckOutDate == nil {
		return "", nil
	}
	active, err := s.guests.ListActive(ctx)
	if err != nil {
		return "", fmt.Errorf("list active guests: %w", err)
	}
	return booking.ConflictWarning(booking.FindConflicts(g, active)), nil
}

// writeBackRooms maintains the room-status cache after a guest edit. A
// vacated room opens up, a printed current stay claims its room, and a
// checkout leaves the room dirty for housekeeping. Returns a warning when
// the claimed room was not available.
func (s *GuestService) writeBackRooms(ctx context.Context, g *models.GuestRegistration, oldRoom *string) string {
	if oldRoom != nil && (g.RoomNumber == nil || *g.RoomNumber != *oldRoom) {
		if err := s.rooms.UpdateStatus(ctx, *oldRoom, models.RoomAvailable); err != nil {
			log.Printf("[Rooms] release %s failed: %v", *oldRoom, err)
		}
	}
	if g.RoomNumber == nil {
		return ""
	}

	switch {
	case g.Status == models.StatusCheckedOut:
		if err := s.rooms.UpdateStatus(ctx, *g.RoomNumber, models.RoomDirty); err != nil {
			log.Printf("[Rooms] mark dirty %s failed: %v", *g.RoomNumber, err)
		}
	case booking.OccupiesOn(g, timeutil.Today()):
		claimed, err := s.rooms.UpdateStatusIf(ctx, *g.RoomNumber,
			models.RoomAvailable, models.RoomOccupied)
		if err != nil {
			log.Printf("[Rooms] claim %s failed: %v", *g.RoomNumber, err)
			return ""
		}
		if !claimed {
			rm, err := s.rooms.Get(ctx, *g.RoomNumber)
			if err == nil && rm.Status != models.RoomOccupied {
				return fmt.Sprintf("Room %s is %s and could not be marked occupied",
					rm.Number, rm.Status)
			}
		}
	}
	cache.InvalidateRoomCaches(ctx)
	return ""
}

// Delete removes a registration and opens its room back up.
func (s *GuestService) Delete(ctx context.Context, id, ip string) error {
	g, err := s.guests.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guests.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete guest: %w", err)
	}
	if g.RoomNumber != nil {
		if err := s.rooms.UpdateStatus(ctx, *g.RoomNumber, models.RoomAvailable); err != nil {
			log.Printf("[Rooms] release %s failed: %v", *g.RoomNumber, err)
		}
	}
	cache.InvalidateGuestCaches(ctx)

	if err := s.audit.Append(ctx, models.ActionDeleteGuest, g.FullName(), ip); err != nil {
		log.Printf("[Audit] append guest delete failed: %v", err)
	}
	return nil
}

// Clone copies a guest's personal details into a fresh PENDING registration
// for a repeat stay.
func (s *GuestService) Clone(ctx context.Context, id, ip string) (*models.GuestRegistration, error) {
	src, err := s.guests.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	clone := &models.GuestRegistration{
		Status:          models.StatusPending,
		Source:          src.Source,
		SecurityDeposit: src.SecurityDeposit,
		LastName:        src.LastName,
		FirstName:       src.FirstName,
		Address:         src.Address,
		Phone:           src.Phone,
		Email:           src.Email,
		CarPlate:        src.CarPlate,
		BirthDate:       src.BirthDate,
		Gender:          src.Gender,
		Pax:             src.Pax,
		Nights:          1,
		ModeOfPayment:   src.ModeOfPayment,
	}
	if err := s.guests.Create(ctx, clone); err != nil {
		return nil, fmt.Errorf("create clone: %w", err)
	}
	cache.InvalidateGuestCaches(ctx)

	if err := s.audit.Append(ctx, models.ActionCloneGuest, src.FullName(), ip); err != nil {
		log.Printf("[Audit] append guest clone failed: %v", err)
	}
	return clone, nil
}

// CreateBooking opens a pre-filled registration from the rack, typically a
// walk-in pointed at a specific room and date.
func (s *GuestService) CreateBooking(ctx context.Context, req *models.BookingCreateRequest) (*models.GuestRegistration, error) {
	g := &models.GuestRegistration{
		Status:          models.StatusPending,
		Source:          models.SourceWalkIn,
		SecurityDeposit: 1000,
		LastName:        strings.ToUpper(strings.TrimSpace(req.LastName)),
		FirstName:       strings.ToUpper(strings.TrimSpace(req.FirstName)),
		Phone:           strings.TrimSpace(req.Phone),
		Pax:             1,
		Nights:          finance.ParseNights(req.Nights),
		ModeOfPayment:   models.PaymentCash,
	}
	if req.Source != "" {
		g.Source = req.Source
	}
	if room := strings.TrimSpace(req.RoomNumber); room != "" {
		g.RoomNumber = &room
		if rm, err := s.rooms.Get(ctx, room); err == nil {
			g.RoomRate = rm.Price
		}
	}
	if req.CheckInDate != "" {
		in, err := timeutil.ParseDate(req.CheckInDate)
		if err != nil {
			return nil, &ValidationError{Missing: []string{"check_in_date"}}
		}
		g.CheckInDate = &in
		out := in.AddDate(0, 0, g.Nights)
		g.CheckOutDate = &out
	}
	g.TotalAmount = finance.Total(g.RoomRate, g.Nights, nil)

	if err := s.guests.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	cache.InvalidateGuestCaches(ctx)
	return g, nil
}

// Search returns deduplicated returning-guest hits; terms under two
// characters return nothing.
func (s *GuestService) Search(ctx context.Context, term string) ([]*models.GuestBrief, error) {
	term = strings.TrimSpace(term)
	if len(term) < 2 {
		return nil, nil
	}
	return s.guests.SearchBrief(ctx, term)
}

// newBookingCode mints an 8-character uppercase reference.
func newBookingCode() string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	buf := make([]byte, 8)
	rand.Read(buf)
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(buf)
}
