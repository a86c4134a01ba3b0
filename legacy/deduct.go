/*
deduct.go - Balance deduction when a paid leave is processed

PURPOSE:
  When a deducting leave (annual or extended paid) is approved, the
  requested calendar days are subtracted from the legacy rows oldest
  year first, and every row is stamped with the assignment window so the
  daily accrual pauses for its duration. The per-row deductions become
  the period lines printed into the leave order document.
*/
package legacy

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/staffhub/vacation-engine/vacation"
)

// DeductionLine is one order-document line: days taken from one tenure year.
type DeductionLine struct {
	Days       int
	PeriodFrom vacation.Date
	PeriodTo   vacation.Date
}

// String renders the line the way leave orders print it.
func (l DeductionLine) String() string {
	return fmt.Sprintf("- %02d calendar days for the work period from %s to %s",
		l.Days, l.PeriodFrom.String(), l.PeriodTo.String())
}

// DeductionResult summarizes a processed deduction across tenure years.
type DeductionResult struct {
	Lines []DeductionLine

	// The overall span covered, first period start to last period end.
	WorkPeriodFrom vacation.Date
	WorkPeriodTo   vacation.Date
}

// Deduct subtracts daysCount from the employee's legacy rows oldest-first
// and stamps the assignment window (code, start, end) on every row. Rows
// with nothing left are stamped but not charged.
//
// Callers invoke this only for deducting codes; non-deducting assignments
// never touch the rows.
func Deduct(ctx context.Context, repo Repository, employee *vacation.Employee, code string, start, end vacation.Date, daysCount int) (*DeductionResult, error) {
	rows, err := repo.ListForEmployee(ctx, employee.ID)
	if err != nil {
		return nil, fmt.Errorf("list balance rows for employee %d: %w", employee.ID, err)
	}

	result := &DeductionResult{}
	remaining := decimal.NewFromInt(int64(daysCount))

	for i := range rows {
		row := &rows[i]
		row.VacationCode = code
		row.VacationStart = &start
		row.VacationEnd = &end

		if remaining.IsPositive() && row.FractionalDays.IsPositive() {
			taken := decimal.Min(remaining, row.FractionalDays)
			row.FractionalDays = row.FractionalDays.Sub(taken)
			row.Days = RoundHalfUp(row.FractionalDays)
			remaining = remaining.Sub(taken)

			from := vacation.NewDate(row.Year-1, employee.HireDate.Month(), employee.HireDate.Day())
			to := vacation.NewDate(row.Year, employee.HireDate.Month(), employee.HireDate.Day())
			result.Lines = append(result.Lines, DeductionLine{
				Days:       RoundHalfUp(taken),
				PeriodFrom: from,
				PeriodTo:   to,
			})
			if result.WorkPeriodFrom.IsZero() {
				result.WorkPeriodFrom = from
			}
			result.WorkPeriodTo = to
		}

		if err := repo.Save(ctx, row); err != nil {
			return nil, fmt.Errorf("save balance row %d for employee %d: %w", row.Year, employee.ID, err)
		}
	}

	return result, nil
}
