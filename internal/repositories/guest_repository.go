package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kegama-backend/internal/models"
	"kegama-backend/internal/timeutil"
)

const guestColumns = `
	id, created_at, updated_at, status, source, booking_id, security_deposit,
	last_name, first_name, address, phone, email, car_plate, birth_date, gender,
	pax, nights, stay_duration, room_number, room_rate,
	mode_of_payment, additional_requests, total_amount,
	check_in_date, check_in_time, check_out_date, check_out_time, notes`

type GuestRepository struct {
	pool *pgxpool.Pool
}

func NewGuestRepository(pool *pgxpool.Pool) *GuestRepository {
	return &GuestRepository{pool: pool}
}

func scanGuest(row pgx.Row) (*models.GuestRegistration, error) {
	var g models.GuestRegistration
	var requests []byte

	err := row.Scan(
		&g.ID, &g.CreatedAt, &g.UpdatedAt, &g.Status, &g.Source, &g.BookingID,
		&g.SecurityDeposit, &g.LastName, &g.FirstName, &g.Address, &g.Phone,
		&g.Email, &g.CarPlate, &g.BirthDate, &g.Gender, &g.Pax, &g.Nights,
		&g.StayDuration, &g.RoomNumber, &g.RoomRate, &g.ModeOfPayment,
		&requests, &g.TotalAmount, &g.CheckInDate, &g.CheckInTime,
		&g.CheckOutDate, &g.CheckOutTime, &g.Notes,
	)
	if err != nil {
		return nil, err
	}

	if len(requests) > 0 {
		if err := json.Unmarshal(requests, &g.AdditionalRequests); err != nil {
			g.AdditionalRequests = nil
		}
	}
	return &g, nil
}

func collectGuests(rows pgx.Rows) ([]*models.GuestRegistration, error) {
	defer rows.Close()
	var guests []*models.GuestRegistration
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

// Create inserts a registration, assigning the ID when blank.
func (r *GuestRepository) Create(ctx context.Context, g *models.GuestRegistration) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	requests, err := json.Marshal(g.AdditionalRequests)
	if err != nil {
		return fmt.Errorf("marshal additional requests: %w", err)
	}
	if g.AdditionalRequests == nil {
		requests = []byte("[]")
	}

	query := `
		INSERT INTO guest_registrations (
			id, status, source, booking_id, security_deposit,
			last_name, first_name, address, phone, email, car_plate, birth_date, gender,
			pax, nights, stay_duration, room_number, room_rate,
			mode_of_payment, additional_requests, total_amount,
			check_in_date, check_in_time, check_out_date, check_out_time, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
		)
		RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		g.ID, g.Status, g.Source, g.BookingID, g.SecurityDeposit,
		g.LastName, g.FirstName, g.Address, g.Phone, g.Email, g.CarPlate,
		g.BirthDate, g.Gender, g.Pax, g.Nights, g.StayDuration, g.RoomNumber,
		g.RoomRate, g.ModeOfPayment, requests, g.TotalAmount,
		g.CheckInDate, g.CheckInTime, g.CheckOutDate, g.CheckOutTime, g.Notes,
	).Scan(&g.CreatedAt, &g.UpdatedAt)
}

func (r *GuestRepository) Get(ctx context.Context, id string) (*models.GuestRegistration, error) {
	query := `SELECT` + guestColumns + ` FROM guest_registrations WHERE id = $1`
	return scanGuest(r.pool.QueryRow(ctx, query, id))
}

// Update persists every mutable field and bumps updated_at.
func (r *GuestRepository) Update(ctx context.Context, g *models.GuestRegistration) error {
	requests, err := json.Marshal(g.AdditionalRequests)
	if err != nil {
		return fmt.Errorf("marshal additional requests: %w", err)
	}
	if g.AdditionalRequests == nil {
		requests = []byte("[]")
	}

	query := `
		UPDATE guest_registrations SET
			updated_at = NOW(),
			status = $2, source = $3, booking_id = $4, security_deposit = $5,
			last_name = $6, first_name = $7, address = $8, phone = $9, email = $10,
			car_plate = $11, birth_date = $12, gender = $13,
			pax = $14, nights = $15, stay_duration = $16, room_number = $17, room_rate = $18,
			mode_of_payment = $19, additional_requests = $20, total_amount = $21,
			check_in_date = $22, check_in_time = $23, check_out_date = $24, check_out_time = $25,
			notes = $26
		WHERE id = $1
		RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		g.ID, g.Status, g.Source, g.BookingID, g.SecurityDeposit,
		g.LastName, g.FirstName, g.Address, g.Phone, g.Email, g.CarPlate,
		g.BirthDate, g.Gender, g.Pax, g.Nights, g.StayDuration, g.RoomNumber,
		g.RoomRate, g.ModeOfPayment, requests, g.TotalAmount,
		g.CheckInDate, g.CheckInTime, g.CheckOutDate, g.CheckOutTime, g.Notes,
	).Scan(&g.UpdatedAt)
}

func (r *GuestRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM guest_registrations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// List returns registrations newest-first, optionally filtered on name,
// room number or booking id.
func (r *GuestRepository) List(ctx context.Context, search string) ([]*models.GuestRegistration, error) {
	query := `SELECT` + guestColumns + ` FROM guest_registrations`
	args := []interface{}{}
	if search != "" {
		query += `
		WHERE first_name ILIKE '%' || $1 || '%'
		   OR last_name ILIKE '%' || $1 || '%'
		   OR COALESCE(room_number, '') ILIKE '%' || $1 || '%'
		   OR booking_id ILIKE '%' || $1 || '%'`
		args = append(args, search)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectGuests(rows)
}

// ListActive returns stays that may block a room: anything not checked out
// that has a room assigned.
func (r *GuestRepository) ListActive(ctx context.Context) ([]*models.GuestRegistration, error) {
	query := `SELECT` + guestColumns + `
		FROM guest_registrations
		WHERE status != $1 AND room_number IS NOT NULL
		ORDER BY check_in_date NULLS LAST`

	rows, err := r.pool.Query(ctx, query, models.StatusCheckedOut)
	if err != nil {
		return nil, err
	}
	return collectGuests(rows)
}

// ListForCalendar returns printed and checked-out stays whose range touches
// the given month.
func (r *GuestRepository) ListForCalendar(ctx context.Context, monthStart, monthEnd time.Time) ([]*models.GuestRegistration, error) {
	query := `SELECT` + guestColumns + `
		FROM guest_registrations
		WHERE status IN ($1, $2)
		  AND check_in_date IS NOT NULL AND check_out_date IS NOT NULL
		  AND check_in_date <= $4 AND check_out_date >= $3
		ORDER BY check_in_date`

	rows, err := r.pool.Query(ctx, query,
		models.StatusPrinted, models.StatusCheckedOut, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	return collectGuests(rows)
}

// DeleteStalePending removes PENDING rows older than the cutoff. Rides on
// dashboard loads instead of a background sweep.
func (r *GuestRepository) DeleteStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM guest_registrations WHERE status = $1 AND created_at < $2`,
		models.StatusPending, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Stats computes the dashboard header counts in one round trip.
func (r *GuestRepository) Stats(ctx context.Context) (*models.DashboardStats, error) {
	today := timeutil.Today()
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status IN ($1, $2)),
			COUNT(*) FILTER (WHERE status = $3),
			COUNT(*) FILTER (WHERE status != $4 AND check_in_date = $5)
		FROM guest_registrations`

	var s models.DashboardStats
	err := r.pool.QueryRow(ctx, query,
		models.StatusPrinted, models.StatusCheckedIn,
		models.StatusPending, models.StatusCheckedOut, today,
	).Scan(&s.Total, &s.Active, &s.Pending, &s.TodayCheckins)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SearchBrief powers the returning-guest picker: deduplicated by name and
// phone, most recent first, top 10.
func (r *GuestRepository) SearchBrief(ctx context.Context, term string) ([]*models.GuestBrief, error) {
	query := `
		SELECT DISTINCT ON (last_name, first_name, phone)
			id, last_name, first_name, address, phone, email,
			COALESCE(TO_CHAR(birth_date, 'YYYY-MM-DD'), ''), gender
		FROM guest_registrations
		WHERE first_name ILIKE '%' || $1 || '%'
		   OR last_name ILIKE '%' || $1 || '%'
		ORDER BY last_name, first_name, phone, created_at DESC
		LIMIT 10`

	rows, err := r.pool.Query(ctx, query, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var briefs []*models.GuestBrief
	for rows.Next() {
		var b models.GuestBrief
		if err := rows.Scan(&b.ID, &b.LastName, &b.FirstName, &b.Address,
			&b.Phone, &b.Email, &b.BirthDate, &b.Gender); err != nil {
			return nil, err
		}
		briefs = append(briefs, &b)
	}
	return briefs, rows.Err()
}

// AnalyticsRow mirrors analytics.Row for the revenue rollups.
type AnalyticsRow struct {
	CreatedAt time.Time
	Revenue   float64
	Source    string
}

// AnalyticsRows returns revenue-bearing registrations created since the
// window start. Pending rows carry no revenue yet and are excluded.
func (r *GuestRepository) AnalyticsRows(ctx context.Context, since time.Time) ([]AnalyticsRow, error) {
	query := `
		SELECT created_at, total_amount, source
		FROM guest_registrations
		WHERE status != $1 AND created_at >= $2`

	rows, err := r.pool.Query(ctx, query, models.StatusPending, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AnalyticsRow
	for rows.Next() {
		var row AnalyticsRow
		if err := rows.Scan(&row.CreatedAt, &row.Revenue, &row.Source); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
