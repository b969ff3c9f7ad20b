package timeutil

import (
	"time"
)

// Manila is the hotel's local time zone (UTC+8). All business dates and
// timestamps are interpreted in hotel-local time.
var Manila *time.Location

func init() {
	var err error
	Manila, err = time.LoadLocation("Asia/Manila")
	if err != nil {
		// Fallback: fixed zone if the tz database is unavailable
		Manila = time.FixedZone("PHT", 8*60*60)
	}
}

// Now returns the current time in hotel-local time.
func Now() time.Time {
	return time.Now().In(Manila)
}

// Today returns the start of the current hotel-local day.
func Today() time.Time {
	return StartOfDay(Now())
}

// ToLocal converts any time to hotel-local time.
func ToLocal(t time.Time) time.Time {
	return t.In(Manila)
}

// StartOfDay returns 00:00:00 hotel-local for the given time.
func StartOfDay(t time.Time) time.Time {
	lt := t.In(Manila)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, Manila)
}

// ParseDate parses a YYYY-MM-DD string as a hotel-local date.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, Manila)
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
	MonthLayout    = "January 2006"
	DateTimeLayout = "2006-01-02 15:04:05"
)
