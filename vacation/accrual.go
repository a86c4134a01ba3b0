/*
accrual.go - Days earned per work period

PURPOSE:
  The tenure-proportional accrual formula. A fully elapsed period earns
  the full annual entitlement; the current partial period earns
  daysWorked * (annual / yearLength), rounded to 2 decimal places.

PARAMETERS:
  24 days per year over a 365-day year are domain parameters, not
  incidental literals. They are carried in Params so a statutory change
  is a config edit, not a code hunt.
*/
package vacation

import "github.com/shopspring/decimal"

// Params holds the accrual constants of the formula-based model.
type Params struct {
	// DaysPerYear is the annual entitlement for a full work period.
	DaysPerYear decimal.Decimal

	// DaysInYear is the year length the partial-period proration divides by.
	DaysInYear decimal.Decimal
}

// DefaultParams returns the statutory 24-days-per-365-day-year accrual.
func DefaultParams() Params {
	return Params{
		DaysPerYear: decimal.NewFromInt(24),
		DaysInYear:  decimal.NewFromInt(365),
	}
}

// EarnedDays computes the days credited for a period.
//
// Fully elapsed period: the full annual entitlement, exactly.
// Current period:       daysWorked * (DaysPerYear / DaysInYear), rounded
//                       half away from zero to 2 decimal places.
func (p Params) EarnedDays(period WorkPeriod) decimal.Decimal {
	if !period.Current {
		return p.DaysPerYear
	}

	daysWorked := decimal.NewFromInt(int64(period.DaysWorked()))
	return daysWorked.Mul(p.DaysPerYear.Div(p.DaysInYear)).Round(2)
}
