package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayslipTotals(t *testing.T) {
	p := &Payslip{
		RegularPay:    12000,
		HolidayPay:    1000,
		OvertimePay:   500,
		Allowances:    2000,
		ThirteenthPay: 0,
		OtherEarnings: 250,

		SSS:         581.30,
		PhilHealth:  300,
		PagIBIG:     100,
		Tax:         0,
		CashAdvance: 1500,
		OtherDeduct: 0,
	}

	assert.InDelta(t, 15750.0, p.TotalEarnings(), 0.001)
	assert.InDelta(t, 2481.30, p.TotalDeductions(), 0.001)
	assert.InDelta(t, 13268.70, p.NetPay(), 0.001)
}

func TestPayslipTotalsZero(t *testing.T) {
	p := &Payslip{}
	assert.Equal(t, 0.0, p.TotalEarnings())
	assert.Equal(t, 0.0, p.TotalDeductions())
	assert.Equal(t, 0.0, p.NetPay())
}

func TestGuestFullName(t *testing.T) {
	g := &GuestRegistration{FirstName: "MARIA", LastName: "SANTOS"}
	assert.Equal(t, "MARIA SANTOS", g.FullName())

	assert.Equal(t, "SANTOS", (&GuestRegistration{LastName: "SANTOS"}).FullName())
	assert.Equal(t, "MARIA", (&GuestRegistration{FirstName: "MARIA"}).FullName())
}

func TestGuestIsActive(t *testing.T) {
	assert.True(t, (&GuestRegistration{Status: StatusPrinted}).IsActive())
	assert.True(t, (&GuestRegistration{Status: StatusCheckedIn}).IsActive())
	assert.False(t, (&GuestRegistration{Status: StatusPending}).IsActive())
	assert.False(t, (&GuestRegistration{Status: StatusCheckedOut}).IsActive())
}
