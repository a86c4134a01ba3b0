/*
period.go - Tenure partitioning into yearly work periods

PURPOSE:
  Splits an employee's tenure (hire date -> as-of date) into consecutive
  one-year periods anchored on the hire-date anniversary. The period is
  the unit of entitlement: every accrual and every FIFO allocation works
  on the sequence produced here.

EXAMPLE:
  Hired 02.05.2023, as of 01.05.2025:
    Period 1: 02.05.2023 - 01.05.2024
    Period 2: 02.05.2024 - 01.05.2025 (current, clamped to the as-of date)

INVARIANTS:
  - Periods are contiguous: period[i+1].Start == period[i].End + 1 day
  - Non-overlapping, union equals [hireDate, asOfDate]
  - The final period never ends after the as-of date
  - Deterministic: same inputs always yield the same sequence

SAFETY BOUND:
  Generation is capped at 100 periods so a malformed hire date can never
  loop unbounded. Hitting the cap truncates the sequence and logs a
  warning; it does not fail the calculation.
*/
package vacation

import (
	"log/slog"

	"github.com/shopspring/decimal"
)

// MaxWorkPeriods caps period generation at roughly a century of tenure.
const MaxWorkPeriods = 100

// WorkPeriod is one tenure year. Computed fresh for every calculation,
// never persisted. Earned is filled by the accrual formula, Used and
// Balance by the FIFO allocator; nothing else mutates a period.
type WorkPeriod struct {
	Start   Date
	End     Date // clamped to the as-of date for the current period
	Current bool // the open, partially elapsed period

	Earned  decimal.Decimal
	Used    decimal.Decimal
	Balance decimal.Decimal
}

// DaysWorked returns the inclusive day count of the period.
func (p WorkPeriod) DaysWorked() int {
	return DaysBetween(p.Start, p.End) + 1
}

// String renders the period the way order documents print it.
func (p WorkPeriod) String() string {
	return p.Start.String() + " - " + p.End.String()
}

// GeneratePeriods partitions [hireDate, asOfDate] into work periods.
// A hire date after the as-of date yields an empty sequence.
func GeneratePeriods(hireDate, asOfDate Date) []WorkPeriod {
	var periods []WorkPeriod

	start := hireDate
	for start.BeforeOrEqual(asOfDate) {
		if len(periods) >= MaxWorkPeriods {
			slog.Warn("work period generation truncated at cap",
				slog.String("hire_date", hireDate.String()),
				slog.String("as_of", asOfDate.String()),
				slog.Int("cap", MaxWorkPeriods))
			break
		}

		nominalEnd := start.AddYears(1).AddDays(-1)
		current := nominalEnd.AfterOrEqual(asOfDate)

		end := nominalEnd
		if current {
			end = asOfDate
		}

		periods = append(periods, WorkPeriod{Start: start, End: end, Current: current})
		start = nominalEnd.AddDays(1)
	}

	return periods
}
