package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kegama-backend/internal/finance"
	"kegama-backend/internal/models"
	"kegama-backend/internal/repositories"
	"kegama-backend/internal/timeutil"
)

var ErrEmployeeFields = errors.New("first name, last name and position are required")

type PayrollService struct {
	employees *repositories.EmployeeRepository
	payslips  *repositories.PayslipRepository
}

func NewPayrollService(employees *repositories.EmployeeRepository, payslips *repositories.PayslipRepository) *PayrollService {
	return &PayrollService{employees: employees, payslips: payslips}
}

func (s *PayrollService) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	return s.employees.List(ctx)
}

func (s *PayrollService) CreateEmployee(ctx context.Context, req *models.EmployeeCreateRequest) (*models.Employee, error) {
	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	position := strings.TrimSpace(req.Position)
	if first == "" || last == "" || position == "" {
		return nil, ErrEmployeeFields
	}

	e := &models.Employee{
		FirstName: first,
		LastName:  last,
		Position:  position,
		Status:    models.EmployeeActive,
	}
	if err := s.employees.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	return e, nil
}

func (s *PayrollService) DeleteEmployee(ctx context.Context, id string) error {
	return s.employees.Delete(ctx, id)
}

// PayslipView pairs an employee with their latest payslip and its derived
// totals.
type PayslipView struct {
	Employee        *models.Employee `json:"employee"`
	Payslip         *models.Payslip  `json:"payslip"`
	TotalEarnings   float64          `json:"total_earnings"`
	TotalDeductions float64          `json:"total_deductions"`
	NetPay          float64          `json:"net_pay"`
}

// LatestPayslip returns the employee and their most recent payslip, if any.
func (s *PayrollService) LatestPayslip(ctx context.Context, employeeID string) (*PayslipView, error) {
	e, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	p, err := s.payslips.Latest(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("load payslip: %w", err)
	}

	view := &PayslipView{Employee: e, Payslip: p}
	if p != nil {
		view.TotalEarnings = p.TotalEarnings()
		view.TotalDeductions = p.TotalDeductions()
		view.NetPay = p.NetPay()
	}
	return view, nil
}

// SavePayslip coerces the form amounts, upserts on (employee, period, date)
// and collapses any legacy duplicate rows for the run.
func (s *PayrollService) SavePayslip(ctx context.Context, req *models.PayslipUpsertRequest) (*PayslipView, error) {
	e, err := s.employees.Get(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	payDate, err := timeutil.ParseDate(strings.TrimSpace(req.PayDate))
	if err != nil {
		return nil, &ValidationError{Missing: []string{"pay_date"}}
	}
	period := strings.TrimSpace(req.PayPeriod)
	if period == "" {
		return nil, &ValidationError{Missing: []string{"pay_period"}}
	}

	p := &models.Payslip{
		EmployeeID: e.ID,
		PayPeriod:  period,
		PayDate:    payDate,

		RegularPay:    finance.ParseAmount(req.RegularPay),
		HolidayPay:    finance.ParseAmount(req.HolidayPay),
		OvertimePay:   finance.ParseAmount(req.OvertimePay),
		Allowances:    finance.ParseAmount(req.Allowances),
		ThirteenthPay: finance.ParseAmount(req.ThirteenthPay),
		OtherEarnings: finance.ParseAmount(req.OtherEarnings),

		SSS:         finance.ParseAmount(req.SSS),
		PhilHealth:  finance.ParseAmount(req.PhilHealth),
		PagIBIG:     finance.ParseAmount(req.PagIBIG),
		Tax:         finance.ParseAmount(req.Tax),
		CashAdvance: finance.ParseAmount(req.CashAdvance),
		OtherDeduct: finance.ParseAmount(req.OtherDeduct),
	}

	if err := s.payslips.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("save payslip: %w", err)
	}
	if err := s.payslips.CollapseDuplicates(ctx, e.ID, period); err != nil {
		return nil, fmt.Errorf("collapse duplicates: %w", err)
	}

	return &PayslipView{
		Employee:        e,
		Payslip:         p,
		TotalEarnings:   p.TotalEarnings(),
		TotalDeductions: p.TotalDeductions(),
		NetPay:          p.NetPay(),
	}, nil
}
