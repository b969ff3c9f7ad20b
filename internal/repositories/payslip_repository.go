package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kegama-backend/internal/models"
)

type PayslipRepository struct {
	pool *pgxpool.Pool
}

func NewPayslipRepository(pool *pgxpool.Pool) *PayslipRepository {
	return &PayslipRepository{pool: pool}
}

const payslipColumns = `
	id, employee_id, pay_period, pay_date, created_at,
	regular_pay, holiday_pay, overtime_pay, allowances, thirteenth_pay, other_earnings,
	sss, philhealth, pagibig, tax, cash_advance, other_deductions`

func scanPayslip(row pgx.Row) (*models.Payslip, error) {
	var p models.Payslip
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.PayPeriod, &p.PayDate, &p.CreatedAt,
		&p.RegularPay, &p.HolidayPay, &p.OvertimePay, &p.Allowances,
		&p.ThirteenthPay, &p.OtherEarnings,
		&p.SSS, &p.PhilHealth, &p.PagIBIG, &p.Tax, &p.CashAdvance, &p.OtherDeduct,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert writes a payslip, updating in place when a row already exists for
// the same employee, pay period and pay date.
func (r *PayslipRepository) Upsert(ctx context.Context, p *models.Payslip) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	query := `
		INSERT INTO payslips (
			id, employee_id, pay_period, pay_date,
			regular_pay, holiday_pay, overtime_pay, allowances, thirteenth_pay, other_earnings,
			sss, philhealth, pagibig, tax, cash_advance, other_deductions
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (employee_id, pay_period, pay_date) DO UPDATE SET
			regular_pay = EXCLUDED.regular_pay,
			holiday_pay = EXCLUDED.holiday_pay,
			overtime_pay = EXCLUDED.overtime_pay,
			allowances = EXCLUDED.allowances,
			thirteenth_pay = EXCLUDED.thirteenth_pay,
			other_earnings = EXCLUDED.other_earnings,
			sss = EXCLUDED.sss,
			philhealth = EXCLUDED.philhealth,
			pagibig = EXCLUDED.pagibig,
			tax = EXCLUDED.tax,
			cash_advance = EXCLUDED.cash_advance,
			other_deductions = EXCLUDED.other_deductions
		RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		p.ID, p.EmployeeID, p.PayPeriod, p.PayDate,
		p.RegularPay, p.HolidayPay, p.OvertimePay, p.Allowances,
		p.ThirteenthPay, p.OtherEarnings,
		p.SSS, p.PhilHealth, p.PagIBIG, p.Tax, p.CashAdvance, p.OtherDeduct,
	).Scan(&p.ID, &p.CreatedAt)
}

// Latest returns the employee's most recent payslip by pay date, then
// creation time, or nil when they have none.
func (r *PayslipRepository) Latest(ctx context.Context, employeeID string) (*models.Payslip, error) {
	p, err := scanPayslip(r.pool.QueryRow(ctx, `
		SELECT`+payslipColumns+`
		FROM payslips
		WHERE employee_id = $1
		ORDER BY pay_date DESC, created_at DESC
		LIMIT 1`, employeeID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CollapseDuplicates deletes legacy duplicate rows for a pay run, keeping
// only the most recently created one. Rows written before the unique
// constraint existed can still carry duplicates.
func (r *PayslipRepository) CollapseDuplicates(ctx context.Context, employeeID, payPeriod string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM payslips
		WHERE employee_id = $1 AND pay_period = $2
		  AND id NOT IN (
			SELECT id FROM payslips
			WHERE employee_id = $1 AND pay_period = $2
			ORDER BY created_at DESC
			LIMIT 1
		  )`, employeeID, payPeriod)
	return err
}
