package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kegama-backend/internal/models"
)

type EmployeeRepository struct {
	pool *pgxpool.Pool
}

func NewEmployeeRepository(pool *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *models.Employee) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Status == "" {
		e.Status = models.EmployeeActive
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO employees (id, first_name, last_name, position, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		e.ID, e.FirstName, e.LastName, e.Position, e.Status,
	).Scan(&e.CreatedAt)
}

func (r *EmployeeRepository) Get(ctx context.Context, id string) (*models.Employee, error) {
	var e models.Employee
	err := r.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, position, status, created_at
		FROM employees WHERE id = $1`, id,
	).Scan(&e.ID, &e.FirstName, &e.LastName, &e.Position, &e.Status, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) List(ctx context.Context) ([]*models.Employee, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, first_name, last_name, position, status, created_at
		FROM employees
		ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Position,
			&e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, &e)
	}
	return employees, rows.Err()
}

// Delete removes the employee; payslips go with them via cascade.
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
