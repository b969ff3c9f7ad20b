package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kegama-backend/internal/models"
)

type RoomRepository struct {
	pool *pgxpool.Pool
}

func NewRoomRepository(pool *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{pool: pool}
}

const roomColumns = `number, floor, price, price_6hr, price_10hr, capacity, status`

func scanRoom(row pgx.Row) (*models.Room, error) {
	var rm models.Room
	err := row.Scan(&rm.Number, &rm.Floor, &rm.Price, &rm.Price6hr,
		&rm.Price10h, &rm.Capacity, &rm.Status)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

// List returns every room ordered by floor then number.
func (r *RoomRepository) List(ctx context.Context) ([]*models.Room, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+roomColumns+` FROM rooms ORDER BY floor, number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

func (r *RoomRepository) Get(ctx context.Context, number string) (*models.Room, error) {
	return scanRoom(r.pool.QueryRow(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE number = $1`, number))
}

// UpdateStatus sets a room's status unconditionally.
func (r *RoomRepository) UpdateStatus(ctx context.Context, number, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE rooms SET status = $2 WHERE number = $1`, number, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateStatusIf flips a room's status only when it still holds the expected
// value. Returns false when someone else got there first.
func (r *RoomRepository) UpdateStatusIf(ctx context.Context, number, expected, status string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE rooms SET status = $3 WHERE number = $1 AND status = $2`,
		number, expected, status)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Update applies a bulk management edit to one room.
func (r *RoomRepository) Update(ctx context.Context, rm *models.Room) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE rooms
		SET price = $2, price_6hr = $3, price_10hr = $4, capacity = $5, status = $6
		WHERE number = $1`,
		rm.Number, rm.Price, rm.Price6hr, rm.Price10h, rm.Capacity, rm.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Stats counts rooms per status.
func (r *RoomRepository) Stats(ctx context.Context) (*models.RoomStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = $1),
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3),
			COUNT(*) FILTER (WHERE status = $4)
		FROM rooms`

	var s models.RoomStats
	err := r.pool.QueryRow(ctx, query,
		models.RoomAvailable, models.RoomOccupied,
		models.RoomMaintenance, models.RoomDirty,
	).Scan(&s.Total, &s.Available, &s.Occupied, &s.Maintenance, &s.Dirty)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
