/*
severance.go - Unused-day compensation at dismissal

PURPOSE:
  On termination, every legacy row's rounded day count is owed to the
  employee. The newest row is still mid-year, so it is projected forward
  at the daily rate until the dismissal date before rounding.
*/
package legacy

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/staffhub/vacation-engine/vacation"
)

// SeveranceLine is one tenure year's contribution to the payout.
type SeveranceLine struct {
	Days       int
	PeriodFrom vacation.Date
	PeriodTo   vacation.Date
}

// Severance is the dismissal compensation summary.
type Severance struct {
	TotalDays int
	Lines     []SeveranceLine
}

// ComputeSeverance totals the compensable days across all legacy rows.
// daysUntilDismissal is the calendar-day count from today to the dismissal
// date (computed by the caller against the exclusion calendar); the newest
// row accrues for those days before rounding, and its period line ends on
// the dismissal date instead of the nominal anniversary.
func ComputeSeverance(ctx context.Context, repo Repository, employee *vacation.Employee, dismissal vacation.Date, daysUntilDismissal int, rate decimal.Decimal) (*Severance, error) {
	rows, err := repo.ListForEmployee(ctx, employee.ID)
	if err != nil {
		return nil, fmt.Errorf("list balance rows for employee %d: %w", employee.ID, err)
	}

	sev := &Severance{}
	for i := range rows {
		row := &rows[i]
		from := vacation.NewDate(row.Year-1, employee.HireDate.Month(), employee.HireDate.Day())
		to := vacation.NewDate(row.Year, employee.HireDate.Month(), employee.HireDate.Day())
		days := row.Days

		if i == len(rows)-1 {
			projected := row.FractionalDays.Add(rate.Mul(decimal.NewFromInt(int64(daysUntilDismissal))))
			days = RoundHalfUp(projected)
			to = dismissal
		}

		sev.Lines = append(sev.Lines, SeveranceLine{Days: days, PeriodFrom: from, PeriodTo: to})
		sev.TotalDays += days
	}

	return sev, nil
}
