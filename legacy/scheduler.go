/*
scheduler.go - The two periodic legacy maintenance steps

PURPOSE:
  Daily accrual: bump every active employee's newest row by the daily
  rate, unless an assignment is currently in progress. Annual rollover:
  once tenure crosses a year past the previous anniversary, append a
  fresh zero row for the new tenure year.

IDEMPOTENCY:
  Re-running either step within the same day re-applies the daily
  increment. At-most-once-per-day execution is the caller's job (the
  api scheduler tracks the last run date); nothing here enforces it.
*/
package legacy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/staffhub/vacation-engine/vacation"
)

// Scheduler runs the periodic legacy steps over all active employees.
type Scheduler struct {
	Staff     vacation.StaffRepository
	Balances  Repository
	DailyRate decimal.Decimal
	Logger    *slog.Logger
}

// NewScheduler wires a scheduler with the default daily rate.
func NewScheduler(staff vacation.StaffRepository, balances Repository, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{Staff: staff, Balances: balances, DailyRate: DefaultDailyRate, Logger: logger}
}

// RunDailyAccrual applies one daily increment to the newest row of every
// active employee, clearing assignment windows that have already ended.
//
// A row accrues when it has no assignment, the assignment has not started
// yet, or the assignment carries a non-deducting code.
func (s *Scheduler) RunDailyAccrual(ctx context.Context, today vacation.Date) error {
	staff, err := s.Staff.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active employees: %w", err)
	}

	for i := range staff {
		employee := &staff[i]
		row, err := s.Balances.LatestForEmployee(ctx, employee.ID)
		if err != nil {
			return fmt.Errorf("latest balance row for employee %d: %w", employee.ID, err)
		}
		if row == nil {
			continue
		}

		if row.VacationEnd != nil && today.After(*row.VacationEnd) {
			row.ClearAssignment()
			if err := s.Balances.Save(ctx, row); err != nil {
				return fmt.Errorf("clear expired assignment for employee %d: %w", employee.ID, err)
			}
		}

		notStarted := row.VacationStart != nil && today.Before(*row.VacationStart)
		if notStarted || accruesWithCode(row.VacationCode) {
			row.FractionalDays = s.DailyRate.Add(row.FractionalDays).Round(3)
			row.Days = RoundHalfUp(row.FractionalDays)
			if err := s.Balances.Save(ctx, row); err != nil {
				return fmt.Errorf("save accrual for employee %d: %w", employee.ID, err)
			}
			s.Logger.Debug("legacy daily accrual applied",
				slog.Int64("employee_id", employee.ID),
				slog.Int("year", row.Year),
				slog.String("fractional", row.FractionalDays.String()))
		}
	}

	return nil
}

// RunAnnualRollover appends a zero row for the new tenure year of every
// active employee whose tenure has crossed 365 days past the anniversary
// in the previous calendar year. Appends at most one row per tenure year.
func (s *Scheduler) RunAnnualRollover(ctx context.Context, today vacation.Date) error {
	staff, err := s.Staff.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active employees: %w", err)
	}

	for i := range staff {
		employee := &staff[i]
		if employee.HireDate.IsZero() {
			continue
		}

		latest, err := s.Balances.LatestForEmployee(ctx, employee.ID)
		if err != nil {
			return fmt.Errorf("latest balance row for employee %d: %w", employee.ID, err)
		}
		if latest == nil {
			continue
		}

		anniversary := vacation.NewDate(today.Year()-1, employee.HireDate.Month(), employee.HireDate.Day())
		if vacation.DaysBetween(anniversary, today) < 365 || latest.Year == today.Year()+1 {
			continue
		}

		row := &YearBalance{
			EmployeeID:     employee.ID,
			Year:           today.Year() + 1,
			FractionalDays: decimal.Zero,
		}
		if err := s.Balances.Save(ctx, row); err != nil {
			return fmt.Errorf("append rollover row for employee %d: %w", employee.ID, err)
		}
		s.Logger.Info("legacy tenure year rolled over",
			slog.Int64("employee_id", employee.ID),
			slog.Int("year", row.Year))
	}

	return nil
}
