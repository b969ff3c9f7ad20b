package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kegama-backend/internal/timeutil"
)

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, timeutil.Manila)
}

func TestWindow(t *testing.T) {
	now := at(2026, 8, 28, 15)
	day := timeutil.StartOfDay(now)

	assert.Equal(t, day.AddDate(0, 0, -30), Window(Daily, now))
	assert.Equal(t, day.AddDate(0, 0, -364), Window(Weekly, now))
	assert.Equal(t, day.AddDate(0, -12, 0), Window(Monthly, now))
	assert.Equal(t, day.AddDate(-5, 0, 0), Window(Yearly, now))
}

func TestRollupDaily(t *testing.T) {
	rows := []Row{
		{CreatedAt: at(2026, 8, 25, 9), Revenue: 1500, Source: "WALKIN"},
		{CreatedAt: at(2026, 8, 25, 21), Revenue: 2000, Source: "OYO"},
		{CreatedAt: at(2026, 8, 27, 12), Revenue: 1800, Source: "WALKIN"},
	}

	buckets := Rollup(rows, Daily)
	if assert.Len(t, buckets, 2) {
		assert.Equal(t, at(2026, 8, 25, 0), buckets[0].Start)
		assert.Equal(t, 3500.0, buckets[0].Revenue)
		assert.Equal(t, 2, buckets[0].Guests)
		assert.Equal(t, at(2026, 8, 27, 0), buckets[1].Start)
		assert.Equal(t, 1800.0, buckets[1].Revenue)
	}
}

func TestRollupWeeklyStartsMonday(t *testing.T) {
	// 2026-08-26 is a Wednesday; its week starts Monday 2026-08-24
	rows := []Row{
		{CreatedAt: at(2026, 8, 26, 10), Revenue: 100},
		{CreatedAt: at(2026, 8, 24, 0), Revenue: 50},  // Monday itself
		{CreatedAt: at(2026, 8, 23, 23), Revenue: 10}, // Sunday, previous week
	}

	buckets := Rollup(rows, Weekly)
	if assert.Len(t, buckets, 2) {
		assert.Equal(t, at(2026, 8, 17, 0), buckets[0].Start)
		assert.Equal(t, 10.0, buckets[0].Revenue)
		assert.Equal(t, at(2026, 8, 24, 0), buckets[1].Start)
		assert.Equal(t, 150.0, buckets[1].Revenue)
	}
}

func TestRollupMonthlyAndYearly(t *testing.T) {
	rows := []Row{
		{CreatedAt: at(2026, 2, 1, 0), Revenue: 100},
		{CreatedAt: at(2026, 2, 28, 23), Revenue: 200},
		{CreatedAt: at(2025, 12, 31, 12), Revenue: 300},
	}

	monthly := Rollup(rows, Monthly)
	if assert.Len(t, monthly, 2) {
		assert.Equal(t, at(2025, 12, 1, 0), monthly[0].Start)
		assert.Equal(t, at(2026, 2, 1, 0), monthly[1].Start)
		assert.Equal(t, 300.0, monthly[1].Revenue)
	}

	yearly := Rollup(rows, Yearly)
	if assert.Len(t, yearly, 2) {
		assert.Equal(t, at(2025, 1, 1, 0), yearly[0].Start)
		assert.Equal(t, at(2026, 1, 1, 0), yearly[1].Start)
	}
}

func TestMaxRevenue(t *testing.T) {
	assert.Equal(t, 0.0, MaxRevenue(nil))
	assert.Equal(t, 250.0, MaxRevenue([]Bucket{{Revenue: 100}, {Revenue: 250}, {Revenue: 50}}))
}

func TestCountBySource(t *testing.T) {
	rows := []Row{
		{Source: "WALKIN"},
		{Source: "WALKIN"},
		{Source: "OYO"},
		{Source: "AIRBNB"},
	}
	counts := CountBySource(rows)
	assert.Equal(t, 2, counts["WALKIN"])
	assert.Equal(t, 1, counts["OYO"])
	assert.Equal(t, 1, counts["AIRBNB"])
}
