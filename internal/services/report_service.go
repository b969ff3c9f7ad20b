package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"kegama-backend/internal/archive"
	"kegama-backend/internal/metrics"
	"kegama-backend/internal/models"
	"kegama-backend/internal/repositories"
	"kegama-backend/internal/timeutil"
)

// ReportService renders the printable PDFs: guest folios, the monthly
// revenue report and the room timeline grid.
type ReportService struct {
	guests    *repositories.GuestRepository
	audit     *repositories.AuditLogRepository
	analytics *AnalyticsService
	calendar  *CalendarService
	archive   *archive.Client
}

func NewReportService(
	guests *repositories.GuestRepository,
	audit *repositories.AuditLogRepository,
	analytics *AnalyticsService,
	calendar *CalendarService,
	archiveClient *archive.Client,
) *ReportService {
	return &ReportService{
		guests:    guests,
		audit:     audit,
		analytics: analytics,
		calendar:  calendar,
		archive:   archiveClient,
	}
}

// GuestFolio renders the registration form / folio for one guest.
func (s *ReportService) GuestFolio(ctx context.Context, id, ip string) ([]byte, error) {
	g, err := s.guests.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Kegama Residences - Guest Folio", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Guest Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Guest Information", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", g.FullName()), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Phone: %s", g.Phone), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Address: %s", g.Address), "LB", 0, "L", false, 0, "")
	plate := ""
	if g.CarPlate != nil {
		plate = *g.CarPlate
	}
	pdf.CellFormat(95, 7, fmt.Sprintf("Car Plate: %s", plate), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Booking Ref: %s", g.BookingID), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Source: %s", g.Source), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Stay Details
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Stay Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	room := ""
	if g.RoomNumber != nil {
		room = *g.RoomNumber
	}
	checkIn, checkOut := "", ""
	if g.CheckInDate != nil {
		checkIn = g.CheckInDate.Format(timeutil.DateLayout) + " " + g.CheckInTime
	}
	if g.CheckOutDate != nil {
		checkOut = g.CheckOutDate.Format(timeutil.DateLayout) + " " + g.CheckOutTime
	}
	pdf.CellFormat(63, 7, fmt.Sprintf("Room: %s", room), "1", 0, "L", false, 0, "")
	pdf.CellFormat(63, 7, fmt.Sprintf("Pax: %d", g.Pax), "1", 0, "L", false, 0, "")
	pdf.CellFormat(64, 7, fmt.Sprintf("Nights: %d", g.Nights), "1", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Check-in: %s", checkIn), "1", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Check-out: %s", checkOut), "1", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Charges table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Charges", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(140, 7, "Item", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, "Amount", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(140, 6, fmt.Sprintf("Room %s x %d night(s)", room, g.Nights), "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 6, fmt.Sprintf("PHP %.2f", g.RoomRate*float64(g.Nights)), "1", 1, "R", false, 0, "")
	for _, item := range g.AdditionalRequests {
		name := item.Item
		if len(name) > 60 {
			name = name[:57] + "..."
		}
		pdf.CellFormat(140, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("PHP %s", item.Price), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(220, 220, 220)
	pdf.CellFormat(140, 8, "TOTAL", "1", 0, "R", true, 0, "")
	pdf.CellFormat(50, 8, fmt.Sprintf("PHP %.2f", g.TotalAmount), "1", 1, "R", true, 0, "")
	pdf.CellFormat(140, 7, "Security Deposit (refundable)", "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 7, fmt.Sprintf("PHP %.2f", g.SecurityDeposit), "1", 1, "R", false, 0, "")

	data, err := s.output(pdf)
	if err != nil {
		return nil, err
	}

	s.recordExport(ctx, "folio", fmt.Sprintf("Folio for %s", g.FullName()), ip)
	s.archive.StorePDF(fmt.Sprintf("folios/%s.pdf", g.ID), data)
	return data, nil
}

// RevenueReport renders the trailing-12-month revenue and guest-count table.
func (s *ReportService) RevenueReport(ctx context.Context, ip string) ([]byte, error) {
	buckets, err := s.analytics.MonthlyRows(ctx)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Kegama Residences - Revenue Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Last 12 months, generated %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(80, 7, "Month", "1", 0, "C", true, 0, "")
	pdf.CellFormat(55, 7, "Guests", "1", 0, "C", true, 0, "")
	pdf.CellFormat(55, 7, "Revenue", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	var totalRevenue float64
	var totalGuests int
	for _, b := range buckets {
		pdf.CellFormat(80, 6, b.Start.Format(timeutil.MonthLayout), "1", 0, "L", false, 0, "")
		pdf.CellFormat(55, 6, fmt.Sprintf("%d", b.Guests), "1", 0, "C", false, 0, "")
		pdf.CellFormat(55, 6, fmt.Sprintf("PHP %.2f", b.Revenue), "1", 1, "R", false, 0, "")
		totalRevenue += b.Revenue
		totalGuests += b.Guests
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(220, 220, 220)
	pdf.CellFormat(80, 8, "TOTAL", "1", 0, "R", true, 0, "")
	pdf.CellFormat(55, 8, fmt.Sprintf("%d", totalGuests), "1", 0, "C", true, 0, "")
	pdf.CellFormat(55, 8, fmt.Sprintf("PHP %.2f", totalRevenue), "1", 1, "R", true, 0, "")

	data, err := s.output(pdf)
	if err != nil {
		return nil, err
	}

	s.recordExport(ctx, "revenue", "Revenue report", ip)
	return data, nil
}

// TimelineReport renders the room-by-day occupancy grid for a month.
// Landscape to fit 31 day columns.
func (s *ReportService) TimelineReport(ctx context.Context, year, month int, ip string) ([]byte, error) {
	cal, err := s.calendar.Month(ctx, year, month)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(8, 8, 8)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	title := fmt.Sprintf("Room Timeline - %s %d", monthName(month), year)
	pdf.CellFormat(281, 8, title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	dayWidth := 256.0 / float64(cal.Days)

	// Header row: day numbers
	pdf.SetFont("Arial", "B", 7)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(25, 6, "Room", "1", 0, "C", true, 0, "")
	for d := 1; d <= cal.Days; d++ {
		pdf.CellFormat(dayWidth, 6, fmt.Sprintf("%d", d), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	// One row per room, occupied nights filled
	pdf.SetFont("Arial", "", 7)
	for _, room := range cal.Rooms {
		occupied := make(map[int]string, cal.Days)
		for _, e := range room.Entries {
			for d := e.StartDay; d <= e.LastNight; d++ {
				occupied[d] = e.Status
			}
		}

		pdf.CellFormat(25, 6, room.Number, "1", 0, "C", false, 0, "")
		for d := 1; d <= cal.Days; d++ {
			fill := false
			switch occupied[d] {
			case models.StatusPrinted:
				pdf.SetFillColor(150, 200, 150)
				fill = true
			case models.StatusCheckedOut:
				pdf.SetFillColor(200, 200, 230)
				fill = true
			}
			pdf.CellFormat(dayWidth, 6, "", "1", 0, "C", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	data, err := s.output(pdf)
	if err != nil {
		return nil, err
	}

	s.recordExport(ctx, "timeline", title, ip)
	return data, nil
}

func (s *ReportService) output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ReportService) recordExport(ctx context.Context, kind, details, ip string) {
	metrics.PDFExportsTotal.WithLabelValues(kind).Inc()
	if err := s.audit.Append(ctx, models.ActionPrintPDF, details, ip); err != nil {
		log.Printf("[Audit] append pdf export failed: %v", err)
	}
}

func monthName(m int) string {
	return time.Month(m).String()
}
