package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"kegama-backend/internal/models"
)

type AuditLogRepository struct {
	pool *pgxpool.Pool
}

func NewAuditLogRepository(pool *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{pool: pool}
}

// Append writes one audit entry. Failures are the caller's problem to log,
// never to abort the operation being audited.
func (r *AuditLogRepository) Append(ctx context.Context, action, details, ip string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_log (id, action, details, ip_address)
		VALUES ($1, $2, $3, $4)`,
		uuid.NewString(), action, details, ip)
	return err
}

// Recent returns the newest entries first.
func (r *AuditLogRepository) Recent(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, action, details, ip_address, timestamp
		FROM audit_log
		ORDER BY timestamp DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AuditLog
	for rows.Next() {
		var e models.AuditLog
		if err := rows.Scan(&e.ID, &e.Action, &e.Details, &e.IPAddress, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
