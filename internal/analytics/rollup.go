// Package analytics rolls registration revenue into time-bucketed series.
package analytics

import (
	"sort"
	"time"

	"kegama-backend/internal/timeutil"
)

type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
	Yearly  Granularity = "yearly"
)

// Row is one registration's contribution to the revenue series.
type Row struct {
	CreatedAt time.Time
	Revenue   float64
	Source    string
}

// Bucket is one point on the revenue chart.
type Bucket struct {
	Start   time.Time `json:"bucket_start"`
	Revenue float64   `json:"revenue"`
	Guests  int       `json:"guests"`
}

// Window returns the inclusive start of the trailing window for a
// granularity, measured back from now: 30 days, 52 weeks, 12 months, or
// 5 years.
func Window(g Granularity, now time.Time) time.Time {
	day := timeutil.StartOfDay(now)
	switch g {
	case Weekly:
		return day.AddDate(0, 0, -7*52)
	case Monthly:
		return day.AddDate(0, -12, 0)
	case Yearly:
		return day.AddDate(-5, 0, 0)
	default:
		return day.AddDate(0, 0, -30)
	}
}

// Rollup groups rows into buckets for the granularity, ordered by bucket
// start. Buckets with no rows are absent from the result.
func Rollup(rows []Row, g Granularity) []Bucket {
	grouped := make(map[time.Time]*Bucket)
	for _, r := range rows {
		start := truncate(r.CreatedAt, g)
		b, ok := grouped[start]
		if !ok {
			b = &Bucket{Start: start}
			grouped[start] = b
		}
		b.Revenue += r.Revenue
		b.Guests++
	}

	out := make([]Bucket, 0, len(grouped))
	for _, b := range grouped {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// MaxRevenue returns the largest bucket revenue, 0 for an empty series.
func MaxRevenue(buckets []Bucket) float64 {
	var max float64
	for _, b := range buckets {
		if b.Revenue > max {
			max = b.Revenue
		}
	}
	return max
}

// CountBySource tallies rows per booking source.
func CountBySource(rows []Row) map[string]int {
	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.Source]++
	}
	return counts
}

// truncate maps a timestamp to its bucket start in hotel-local time.
// Weekly buckets start on Monday.
func truncate(t time.Time, g Granularity) time.Time {
	day := timeutil.StartOfDay(t)
	switch g {
	case Weekly:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case Monthly:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	case Yearly:
		return time.Date(day.Year(), 1, 1, 0, 0, 0, 0, day.Location())
	default:
		return day
	}
}
