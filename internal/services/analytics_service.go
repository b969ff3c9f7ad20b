package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kegama-backend/internal/analytics"
	"kegama-backend/internal/cache"
	"kegama-backend/internal/repositories"
	"kegama-backend/internal/timeutil"
)

type AnalyticsService struct {
	guests *repositories.GuestRepository
}

func NewAnalyticsService(guests *repositories.GuestRepository) *AnalyticsService {
	return &AnalyticsService{guests: guests}
}

// Report is the analytics screen payload for one granularity.
type Report struct {
	Filter       string             `json:"filter"`
	TotalRevenue float64            `json:"total_revenue"`
	TotalGuests  int                `json:"total_guests"`
	MaxRevenue   float64            `json:"max_revenue"`
	BySource     map[string]int     `json:"by_source"`
	Buckets      []analytics.Bucket `json:"buckets"`
}

// Report rolls revenue into the requested granularity over its trailing
// window. Unknown filters fall back to daily.
func (s *AnalyticsService) Report(ctx context.Context, filter string) (*Report, error) {
	g := analytics.Granularity(filter)
	switch g {
	case analytics.Daily, analytics.Weekly, analytics.Monthly, analytics.Yearly:
	default:
		g = analytics.Daily
	}

	key := cache.AnalyticsKey(string(g))
	if data, ok := cache.GetCached(ctx, key); ok {
		var cached Report
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	since := analytics.Window(g, timeutil.Now())
	dbRows, err := s.guests.AnalyticsRows(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("load analytics rows: %w", err)
	}

	rows := make([]analytics.Row, len(dbRows))
	for i, r := range dbRows {
		rows[i] = analytics.Row{CreatedAt: r.CreatedAt, Revenue: r.Revenue, Source: r.Source}
	}

	buckets := analytics.Rollup(rows, g)
	report := &Report{
		Filter:     string(g),
		MaxRevenue: analytics.MaxRevenue(buckets),
		BySource:   analytics.CountBySource(rows),
		Buckets:    buckets,
	}
	for _, b := range buckets {
		report.TotalRevenue += b.Revenue
		report.TotalGuests += b.Guests
	}

	if data, err := json.Marshal(report); err == nil {
		cache.SetCached(ctx, key, data, 5*time.Minute)
	}
	return report, nil
}

// MonthlyRows feeds the revenue PDF: the trailing 12 months of buckets.
func (s *AnalyticsService) MonthlyRows(ctx context.Context) ([]analytics.Bucket, error) {
	since := analytics.Window(analytics.Monthly, timeutil.Now())
	dbRows, err := s.guests.AnalyticsRows(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("load analytics rows: %w", err)
	}
	rows := make([]analytics.Row, len(dbRows))
	for i, r := range dbRows {
		rows[i] = analytics.Row{CreatedAt: r.CreatedAt, Revenue: r.Revenue, Source: r.Source}
	}
	return analytics.Rollup(rows, analytics.Monthly), nil
}
