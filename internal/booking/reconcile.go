// Package booking holds the pure stay-overlap and occupancy rules shared by
// the rack, calendar, and guest-edit flows.
package booking

import (
	"fmt"
	"strings"
	"time"

	"kegama-backend/internal/models"
	"kegama-backend/internal/timeutil"
)

// Overlaps reports whether two half-open stay ranges intersect.
// A stay occupies [check_in, check_out): the checkout day is free.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}

// FindConflicts returns the existing bookings whose stay range intersects the
// candidate's. Checked-out rows, the candidate itself, rows for other rooms,
// and rows with missing dates never conflict.
func FindConflicts(candidate *models.GuestRegistration, existing []*models.GuestRegistration) []*models.GuestRegistration {
	if candidate.RoomNumber == nil || *candidate.RoomNumber == "" ||
		candidate.CheckInDate == nil || candidate.CheckOutDate == nil {
		return nil
	}

	var conflicts []*models.GuestRegistration
	for _, other := range existing {
		if other.ID == candidate.ID || other.Status == models.StatusCheckedOut {
			continue
		}
		if other.RoomNumber == nil || *other.RoomNumber != *candidate.RoomNumber {
			continue
		}
		if other.CheckInDate == nil || other.CheckOutDate == nil {
			continue
		}
		if Overlaps(*candidate.CheckInDate, *candidate.CheckOutDate,
			*other.CheckInDate, *other.CheckOutDate) {
			conflicts = append(conflicts, other)
		}
	}
	return conflicts
}

// ConflictWarning formats the warning shown after a save that double-books a
// room. Empty when there are no conflicts.
func ConflictWarning(conflicts []*models.GuestRegistration) string {
	if len(conflicts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		parts = append(parts, fmt.Sprintf("%s (%s to %s)",
			c.FullName(),
			c.CheckInDate.Format(timeutil.DateLayout),
			c.CheckOutDate.Format(timeutil.DateLayout)))
	}
	return "Room conflict with: " + strings.Join(parts, ", ")
}

// IsNightly reports whether a stay is an overnight booking. Day-use stays
// are sold as 6-hour and 10-hour blocks; overnight packages all carry a
// 22:00 cutoff in their duration label.
func IsNightly(stayDuration string) bool {
	return strings.Contains(stayDuration, "22")
}

// LastOccupiedNight returns the final calendar night a stay blocks on the
// timeline. Nightly stays run through checkout day; day-use stays end the
// day before checkout, collapsing to the check-in day for same-day stays.
func LastOccupiedNight(g *models.GuestRegistration) time.Time {
	out := *g.CheckOutDate
	if IsNightly(g.StayDuration) {
		return out
	}
	last := out.AddDate(0, 0, -1)
	if g.CheckInDate != nil && last.Before(*g.CheckInDate) {
		return *g.CheckInDate
	}
	return last
}

// OccupiesOn reports whether a printed stay holds its room on the given day.
// Missing dates exclude the stay.
func OccupiesOn(g *models.GuestRegistration, day time.Time) bool {
	if g.Status != models.StatusPrinted {
		return false
	}
	if g.CheckInDate == nil || g.CheckOutDate == nil {
		return false
	}
	return !day.Before(*g.CheckInDate) && day.Before(*g.CheckOutDate)
}
