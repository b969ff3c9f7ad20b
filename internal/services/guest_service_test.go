package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kegama-backend/internal/models"
	"kegama-backend/internal/timeutil"
)

func TestApplyEditUppercasesAndRecomputes(t *testing.T) {
	g := &models.GuestRegistration{Status: models.StatusPending}
	req := &models.GuestUpdateRequest{
		Source:          models.SourceWalkIn,
		BookingID:       " hx7k2m9p ",
		SecurityDeposit: "1,000",
		LastName:        "dela cruz",
		FirstName:       "juan",
		Address:         "123 Rizal St",
		Phone:           "09171234567",
		CarPlate:        "abc 123",
		Pax:             "2",
		Nights:          "3",
		RoomNumber:      "201",
		RoomRate:        "1,500.50",
		CheckInDate:     "2026-03-04",
		AdditionalRequests: []models.RequestItem{
			{Item: "Extra bed", Price: "500"},
			{Item: "", Price: ""},
		},
	}

	require.NoError(t, applyEdit(g, req))

	assert.Equal(t, "DELA CRUZ", g.LastName)
	assert.Equal(t, "JUAN", g.FirstName)
	assert.Equal(t, "123 RIZAL ST", g.Address)
	assert.Equal(t, "HX7K2M9P", g.BookingID)
	require.NotNil(t, g.CarPlate)
	assert.Equal(t, "ABC 123", *g.CarPlate)
	assert.Equal(t, 1000.0, g.SecurityDeposit)
	assert.Equal(t, 2, g.Pax)
	assert.Equal(t, 3, g.Nights)
	assert.Equal(t, 1500.50, g.RoomRate)

	// Blank request lines are dropped and the folio total is recomputed.
	require.Len(t, g.AdditionalRequests, 1)
	assert.InDelta(t, 1500.50*3+500, g.TotalAmount, 0.001)

	// Checkout date is derived from check-in plus nights.
	require.NotNil(t, g.CheckOutDate)
	in, _ := timeutil.ParseDate("2026-03-04")
	assert.Equal(t, in.AddDate(0, 0, 3), *g.CheckOutDate)
}

func TestApplyEditLenientNumbers(t *testing.T) {
	g := &models.GuestRegistration{}
	req := &models.GuestUpdateRequest{
		SecurityDeposit: "abc",
		Pax:             "",
		Nights:          "zero",
		RoomRate:        "",
	}

	require.NoError(t, applyEdit(g, req))

	assert.Equal(t, 0.0, g.SecurityDeposit)
	assert.Equal(t, 1, g.Pax)
	assert.Equal(t, 1, g.Nights)
	assert.Equal(t, 0.0, g.RoomRate)
}

func TestApplyEditRejectsMinor(t *testing.T) {
	g := &models.GuestRegistration{}
	minor := timeutil.Today().AddDate(-17, 0, 0)
	req := &models.GuestUpdateRequest{BirthDate: minor.Format(timeutil.DateLayout)}

	err := applyEdit(g, req)
	assert.ErrorIs(t, err, ErrUnderage)
}

func TestApplyEditBadDates(t *testing.T) {
	err := applyEdit(&models.GuestRegistration{}, &models.GuestUpdateRequest{BirthDate: "04/03/1990"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"birth_date"}, vErr.Missing)

	err = applyEdit(&models.GuestRegistration{}, &models.GuestUpdateRequest{CheckInDate: "March 4"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"check_in_date"}, vErr.Missing)
}

func TestAge(t *testing.T) {
	today := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 18, age(time.Date(2008, 3, 4, 0, 0, 0, 0, time.UTC), today))
	assert.Equal(t, 17, age(time.Date(2008, 3, 5, 0, 0, 0, 0, time.UTC), today))
	assert.Equal(t, 35, age(time.Date(1990, 12, 25, 0, 0, 0, 0, time.UTC), today))
}

func TestGroupByMonthPreservesOrder(t *testing.T) {
	mk := func(name string, created time.Time) *models.GuestRegistration {
		return &models.GuestRegistration{FirstName: name, CreatedAt: created}
	}
	march := time.Date(2026, 3, 10, 12, 0, 0, 0, timeutil.Manila)
	feb := time.Date(2026, 2, 20, 12, 0, 0, 0, timeutil.Manila)

	groups := groupByMonth([]*models.GuestRegistration{
		mk("A", march),
		mk("B", march.Add(-time.Hour)),
		mk("C", feb),
	})

	require.Len(t, groups, 2)
	assert.Equal(t, "March 2026", groups[0].Label)
	assert.Len(t, groups[0].Guests, 2)
	assert.Equal(t, "A", groups[0].Guests[0].FirstName)
	assert.Equal(t, "February 2026", groups[1].Label)
}

func TestNewBookingCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := newBookingCode()
		assert.Len(t, code, 8)
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "I")
		assert.NotContains(t, code, "1")
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)
}
