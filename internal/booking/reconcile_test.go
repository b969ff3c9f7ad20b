package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kegama-backend/internal/models"
	"kegama-backend/internal/timeutil"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, timeutil.Manila)
	return &t
}

func stay(id, room, status string, in, out *time.Time) *models.GuestRegistration {
	r := room
	return &models.GuestRegistration{
		ID:           id,
		Status:       status,
		RoomNumber:   &r,
		CheckInDate:  in,
		CheckOutDate: out,
		FirstName:    "JUAN",
		LastName:     "CRUZ",
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                   string
		aIn, aOut, bIn, bOut   *time.Time
		want                   bool
	}{
		{"back to back is free", date(2026, 3, 1), date(2026, 3, 3), date(2026, 3, 3), date(2026, 3, 5), false},
		{"one night shared", date(2026, 3, 1), date(2026, 3, 4), date(2026, 3, 3), date(2026, 3, 5), true},
		{"contained", date(2026, 3, 1), date(2026, 3, 10), date(2026, 3, 3), date(2026, 3, 5), true},
		{"disjoint", date(2026, 3, 1), date(2026, 3, 2), date(2026, 3, 5), date(2026, 3, 6), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(*tt.aIn, *tt.aOut, *tt.bIn, *tt.bOut))
		})
	}
}

func TestFindConflicts(t *testing.T) {
	candidate := stay("a", "101", models.StatusPrinted, date(2026, 3, 2), date(2026, 3, 5))
	existing := []*models.GuestRegistration{
		stay("a", "101", models.StatusPrinted, date(2026, 3, 2), date(2026, 3, 5)),   // self
		stay("b", "101", models.StatusCheckedOut, date(2026, 3, 2), date(2026, 3, 5)), // checked out
		stay("c", "102", models.StatusPrinted, date(2026, 3, 2), date(2026, 3, 5)),   // other room
		stay("d", "101", models.StatusPrinted, date(2026, 3, 4), date(2026, 3, 7)),   // real conflict
		stay("e", "101", models.StatusPrinted, nil, nil),                             // missing dates
	}

	conflicts := FindConflicts(candidate, existing)
	if assert.Len(t, conflicts, 1) {
		assert.Equal(t, "d", conflicts[0].ID)
	}

	warning := ConflictWarning(conflicts)
	assert.Contains(t, warning, "JUAN CRUZ")
	assert.Contains(t, warning, "2026-03-04 to 2026-03-07")
}

func TestFindConflictsNoRoom(t *testing.T) {
	candidate := stay("a", "", models.StatusPrinted, date(2026, 3, 2), date(2026, 3, 5))
	others := []*models.GuestRegistration{
		stay("b", "", models.StatusPrinted, date(2026, 3, 2), date(2026, 3, 5)),
	}
	assert.Empty(t, FindConflicts(candidate, others))
	assert.Empty(t, ConflictWarning(nil))
}

func TestIsNightly(t *testing.T) {
	assert.True(t, IsNightly("Overnight (2PM-12NN) 22hrs"))
	assert.True(t, IsNightly("22 hours"))
	assert.False(t, IsNightly("6 hours"))
	assert.False(t, IsNightly("10 hours"))
	assert.False(t, IsNightly(""))
}

func TestLastOccupiedNight(t *testing.T) {
	nightly := stay("a", "101", models.StatusPrinted, date(2026, 3, 2), date(2026, 3, 5))
	nightly.StayDuration = "22hrs"
	assert.Equal(t, *date(2026, 3, 5), LastOccupiedNight(nightly))

	dayUse := stay("b", "101", models.StatusPrinted, date(2026, 3, 2), date(2026, 3, 5))
	dayUse.StayDuration = "10 hours"
	assert.Equal(t, *date(2026, 3, 4), LastOccupiedNight(dayUse))

	sameDay := stay("c", "101", models.StatusPrinted, date(2026, 3, 2), date(2026, 3, 2))
	sameDay.StayDuration = "6 hours"
	assert.Equal(t, *date(2026, 3, 2), LastOccupiedNight(sameDay))
}

func TestOccupiesOn(t *testing.T) {
	g := stay("a", "101", models.StatusPrinted, date(2026, 3, 2), date(2026, 3, 5))

	assert.False(t, OccupiesOn(g, *date(2026, 3, 1)))
	assert.True(t, OccupiesOn(g, *date(2026, 3, 2)))
	assert.True(t, OccupiesOn(g, *date(2026, 3, 4)))
	assert.False(t, OccupiesOn(g, *date(2026, 3, 5))) // checkout day is free

	pending := stay("b", "101", models.StatusPending, date(2026, 3, 2), date(2026, 3, 5))
	assert.False(t, OccupiesOn(pending, *date(2026, 3, 3)))

	noDates := stay("c", "101", models.StatusPrinted, nil, nil)
	assert.False(t, OccupiesOn(noDates, *date(2026, 3, 3)))
}
