package services

import (
	"context"
	"fmt"
	"time"

	"kegama-backend/internal/booking"
	"kegama-backend/internal/repositories"
	"kegama-backend/internal/timeutil"
)

// CalendarService renders the month timeline: which guest holds which room
// on which night.
type CalendarService struct {
	guests *repositories.GuestRepository
	rooms  *repositories.RoomRepository
}

func NewCalendarService(guests *repositories.GuestRepository, rooms *repositories.RoomRepository) *CalendarService {
	return &CalendarService{guests: guests, rooms: rooms}
}

// CalendarEntry is one stay bar on the timeline.
type CalendarEntry struct {
	GuestID       string `json:"guest_id"`
	GuestName     string `json:"guest_name"`
	Status        string `json:"status"`
	StartDay      int    `json:"start_day"`
	LastNight     int    `json:"last_night"`
	OccupiedToday bool   `json:"occupied_today"`
}

// CalendarRoom is one room row with its stays for the month.
type CalendarRoom struct {
	Number  string          `json:"number"`
	Floor   int             `json:"floor"`
	Entries []CalendarEntry `json:"entries"`
}

// Calendar is the month view payload.
type Calendar struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Days  int            `json:"days"`
	Rooms []CalendarRoom `json:"rooms"`
}

// Month assembles the calendar for a given year and month. Stay bars are
// clamped to the month; the last night follows the day-use/nightly rule.
func (s *CalendarService) Month(ctx context.Context, year, month int) (*Calendar, error) {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, timeutil.Manila)
	monthEnd := monthStart.AddDate(0, 1, -1)
	days := monthEnd.Day()

	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	stays, err := s.guests.ListForCalendar(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("list stays: %w", err)
	}

	today := timeutil.Today()
	byRoom := map[string][]CalendarEntry{}
	for _, g := range stays {
		if g.RoomNumber == nil {
			continue
		}
		lastNight := booking.LastOccupiedNight(g)
		if lastNight.Before(monthStart) || g.CheckInDate.After(monthEnd) {
			continue
		}

		entry := CalendarEntry{
			GuestID:       g.ID,
			GuestName:     g.FullName(),
			Status:        g.Status,
			StartDay:      clampDay(*g.CheckInDate, monthStart, 1),
			LastNight:     clampDayEnd(lastNight, monthEnd, days),
			OccupiedToday: booking.OccupiesOn(g, today),
		}
		byRoom[*g.RoomNumber] = append(byRoom[*g.RoomNumber], entry)
	}

	out := &Calendar{Year: year, Month: month, Days: days}
	for _, rm := range rooms {
		out.Rooms = append(out.Rooms, CalendarRoom{
			Number:  rm.Number,
			Floor:   rm.Floor,
			Entries: byRoom[rm.Number],
		})
	}
	return out, nil
}

func clampDay(t, monthStart time.Time, floor int) int {
	if t.Before(monthStart) {
		return floor
	}
	return t.Day()
}

func clampDayEnd(t, monthEnd time.Time, ceil int) int {
	if t.After(monthEnd) {
		return ceil
	}
	return t.Day()
}
