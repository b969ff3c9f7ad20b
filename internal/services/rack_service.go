package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"kegama-backend/internal/booking"
	"kegama-backend/internal/cache"
	"kegama-backend/internal/finance"
	"kegama-backend/internal/models"
	"kegama-backend/internal/repositories"
	"kegama-backend/internal/timeutil"
)

// RackService builds the room-rack view and owns housekeeping and room
// management.
type RackService struct {
	guests *repositories.GuestRepository
	rooms  *repositories.RoomRepository
	audit  *repositories.AuditLogRepository
}

func NewRackService(
	guests *repositories.GuestRepository,
	rooms *repositories.RoomRepository,
	audit *repositories.AuditLogRepository,
) *RackService {
	return &RackService{guests: guests, rooms: rooms, audit: audit}
}

// RackFloor is one floor's worth of room cards.
type RackFloor struct {
	Floor int               `json:"floor"`
	Cards []models.RackCard `json:"rooms"`
}

// Rack assembles the per-floor room cards. Stale AVAILABLE/OCCUPIED statuses
// discovered while reading are repaired in place with conditional updates,
// so concurrent readers converge instead of fighting.
func (s *RackService) Rack(ctx context.Context) ([]RackFloor, error) {
	if data, ok := cache.GetCached(ctx, cache.RackKey); ok {
		var cached []RackFloor
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	active, err := s.guests.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active guests: %w", err)
	}

	today := timeutil.Today()
	current := map[string]*models.GuestRegistration{}
	pending := map[string]*models.GuestRegistration{}
	advance := map[string]bool{}
	for _, g := range active {
		if g.RoomNumber == nil {
			continue
		}
		room := *g.RoomNumber
		switch {
		case booking.OccupiesOn(g, today):
			current[room] = g
		case g.Status == models.StatusPending:
			if _, ok := pending[room]; !ok {
				pending[room] = g
			}
		case g.Status == models.StatusPrinted &&
			g.CheckInDate != nil && g.CheckInDate.After(today):
			advance[room] = true
		}
	}

	byFloor := map[int][]models.RackCard{}
	for _, rm := range rooms {
		s.repairStatus(ctx, rm, current[rm.Number] != nil)

		card := models.RackCard{
			Room:           *rm,
			DisplayStatus:  rm.Status,
			HasAdvanceStay: advance[rm.Number],
		}
		if g := current[rm.Number]; g != nil {
			card.DisplayStatus = models.RoomOccupied
			card.GuestID = g.ID
			card.GuestName = g.FullName()
			if g.CheckOutDate != nil {
				card.CheckOutDate = g.CheckOutDate.Format(timeutil.DateLayout)
			}
		} else if g := pending[rm.Number]; g != nil {
			card.DisplayStatus = models.StatusPending
			card.PendingGuestID = g.ID
		}
		byFloor[rm.Floor] = append(byFloor[rm.Floor], card)
	}

	floors := make([]RackFloor, 0, len(byFloor))
	for floor, cards := range byFloor {
		floors = append(floors, RackFloor{Floor: floor, Cards: cards})
	}
	sort.Slice(floors, func(i, j int) bool { return floors[i].Floor < floors[j].Floor })

	if data, err := json.Marshal(floors); err == nil {
		cache.SetCached(ctx, cache.RackKey, data, time.Minute)
	}
	return floors, nil
}

// repairStatus reconciles the cached room status with the booking table.
// MAINTENANCE and DIRTY are sticky and never touched here.
func (s *RackService) repairStatus(ctx context.Context, rm *models.Room, occupiedNow bool) {
	switch rm.Status {
	case models.RoomAvailable:
		if occupiedNow {
			if ok, err := s.rooms.UpdateStatusIf(ctx, rm.Number,
				models.RoomAvailable, models.RoomOccupied); err == nil && ok {
				rm.Status = models.RoomOccupied
			}
		}
	case models.RoomOccupied:
		if !occupiedNow {
			if ok, err := s.rooms.UpdateStatusIf(ctx, rm.Number,
				models.RoomOccupied, models.RoomAvailable); err == nil && ok {
				rm.Status = models.RoomAvailable
			}
		}
	}
}

// MarkClean flips a DIRTY room back to AVAILABLE.
func (s *RackService) MarkClean(ctx context.Context, number, ip string) error {
	ok, err := s.rooms.UpdateStatusIf(ctx, number, models.RoomDirty, models.RoomAvailable)
	if err != nil {
		return fmt.Errorf("mark clean: %w", err)
	}
	if !ok {
		rm, err := s.rooms.Get(ctx, number)
		if err != nil {
			return err
		}
		return fmt.Errorf("room %s is %s, not dirty", number, rm.Status)
	}
	cache.InvalidateRoomCaches(ctx)

	details := fmt.Sprintf("Room %s cleaned", number)
	if err := s.audit.Append(ctx, models.ActionHousekeeping, details, ip); err != nil {
		log.Printf("[Audit] append housekeeping failed: %v", err)
	}
	return nil
}

// RoomsOverview is the management screen payload.
type RoomsOverview struct {
	Stats  *models.RoomStats `json:"stats"`
	Floors []FloorRooms      `json:"floors"`
}

func (s *RackService) RoomsOverview(ctx context.Context) (*RoomsOverview, error) {
	stats, err := s.rooms.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("room stats: %w", err)
	}
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	byFloor := map[int][]*models.Room{}
	for _, rm := range rooms {
		byFloor[rm.Floor] = append(byFloor[rm.Floor], rm)
	}
	floors := make([]FloorRooms, 0, len(byFloor))
	for floor, list := range byFloor {
		floors = append(floors, FloorRooms{Floor: floor, Rooms: list})
	}
	sort.Slice(floors, func(i, j int) bool { return floors[i].Floor < floors[j].Floor })

	return &RoomsOverview{Stats: stats, Floors: floors}, nil
}

// UpdateRooms applies a bulk price/capacity/status edit.
func (s *RackService) UpdateRooms(ctx context.Context, updates []models.RoomUpdateRequest, ip string) error {
	for _, u := range updates {
		rm, err := s.rooms.Get(ctx, u.Number)
		if err != nil {
			return fmt.Errorf("room %s: %w", u.Number, err)
		}
		applyRoomEdit(rm, &u)
		if err := s.rooms.Update(ctx, rm); err != nil {
			return fmt.Errorf("update room %s: %w", u.Number, err)
		}
	}
	cache.InvalidateRoomCaches(ctx)

	details := fmt.Sprintf("%d room(s) updated", len(updates))
	if err := s.audit.Append(ctx, models.ActionUpdateRooms, details, ip); err != nil {
		log.Printf("[Audit] append room update failed: %v", err)
	}
	return nil
}

func applyRoomEdit(rm *models.Room, u *models.RoomUpdateRequest) {
	if u.Price != "" {
		rm.Price = finance.ParseAmount(u.Price)
	}
	if u.Price6hr != "" {
		rm.Price6hr = finance.ParseAmount(u.Price6hr)
	}
	if u.Price10h != "" {
		rm.Price10h = finance.ParseAmount(u.Price10h)
	}
	if u.Capacity != "" {
		rm.Capacity = finance.ParseInt(u.Capacity, rm.Capacity)
	}
	if u.Status != "" {
		rm.Status = u.Status
	}
}
