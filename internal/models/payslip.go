package models

import "time"

// Payslip is one pay run for one employee. At most one row may exist per
// (employee, pay period, pay date); writes upsert on that key.
type Payslip struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	PayPeriod  string    `json:"pay_period"`
	PayDate    time.Time `json:"pay_date"`
	CreatedAt  time.Time `json:"created_at"`

	RegularPay    float64 `json:"regular_pay"`
	HolidayPay    float64 `json:"holiday_pay"`
	OvertimePay   float64 `json:"overtime_pay"`
	Allowances    float64 `json:"allowances"`
	ThirteenthPay float64 `json:"thirteenth_pay"`
	OtherEarnings float64 `json:"other_earnings"`

	SSS          float64 `json:"sss"`
	PhilHealth   float64 `json:"philhealth"`
	PagIBIG      float64 `json:"pagibig"`
	Tax          float64 `json:"tax"`
	CashAdvance  float64 `json:"cash_advance"`
	OtherDeduct  float64 `json:"other_deductions"`
}

func (p *Payslip) TotalEarnings() float64 {
	return p.RegularPay + p.HolidayPay + p.OvertimePay + p.Allowances +
		p.ThirteenthPay + p.OtherEarnings
}

func (p *Payslip) TotalDeductions() float64 {
	return p.SSS + p.PhilHealth + p.PagIBIG + p.Tax + p.CashAdvance +
		p.OtherDeduct
}

func (p *Payslip) NetPay() float64 {
	return p.TotalEarnings() - p.TotalDeductions()
}

// PayslipUpsertRequest carries the payslip form; amounts arrive as strings
// and are coerced leniently.
type PayslipUpsertRequest struct {
	EmployeeID string `json:"employee_id"`
	PayPeriod  string `json:"pay_period"`
	PayDate    string `json:"pay_date"`

	RegularPay    string `json:"regular_pay"`
	HolidayPay    string `json:"holiday_pay"`
	OvertimePay   string `json:"overtime_pay"`
	Allowances    string `json:"allowances"`
	ThirteenthPay string `json:"thirteenth_pay"`
	OtherEarnings string `json:"other_earnings"`

	SSS         string `json:"sss"`
	PhilHealth  string `json:"philhealth"`
	PagIBIG     string `json:"pagibig"`
	Tax         string `json:"tax"`
	CashAdvance string `json:"cash_advance"`
	OtherDeduct string `json:"other_deductions"`
}
