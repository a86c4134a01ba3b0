/*
report.go - Per-employee balance report

PURPOSE:
  Orchestrates the engine: generate periods, credit each one via the
  accrual formula, fetch the consumed total from the usage ledger, run
  the FIFO allocator, and sum the remaining balances. This is the single
  authoritative balance computation; the balance guard and every HTTP
  report read go through it.

AS-OF DATE:
  The report can be evaluated as of any date, not just today. Accrual is
  tenure-proportional, so a leave starting in three months sees a larger
  available balance than one starting today. Callers pass the leave's
  start date as the as-of date for exactly that reason.

RETRY SAFETY:
  Building a report performs no writes. It is always safe to recompute.
*/
package vacation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// BalanceReport is the computed entitlement state of one employee.
type BalanceReport struct {
	EmployeeID   int64
	FullName     string
	NationalID   string
	HireDate     Date
	AsOf         Date
	TotalUsed    int
	TotalBalance decimal.Decimal
	Periods      []WorkPeriod
}

// ReportBuilder computes balance reports from the staff record and the
// usage ledger.
type ReportBuilder struct {
	Ledger LedgerRepository
	Params Params
}

// NewReportBuilder wires a builder with the default accrual parameters.
func NewReportBuilder(ledger LedgerRepository) *ReportBuilder {
	return &ReportBuilder{Ledger: ledger, Params: DefaultParams()}
}

// Build computes the report for an employee. A zero asOf defaults to today.
// Fails with ErrMissingHireDate when the staff record has no hire date.
func (rb *ReportBuilder) Build(ctx context.Context, employee *Employee, asOf Date) (*BalanceReport, error) {
	if employee.HireDate.IsZero() {
		return nil, fmt.Errorf("employee %d: %w", employee.ID, ErrMissingHireDate)
	}
	if asOf.IsZero() {
		asOf = Today()
	}

	periods := GeneratePeriods(employee.HireDate, asOf)
	for i := range periods {
		periods[i].Earned = rb.Params.EarnedDays(periods[i])
	}

	totalUsed, err := rb.Ledger.SumDaysUsed(ctx, employee.ID)
	if err != nil {
		return nil, fmt.Errorf("sum used days for employee %d: %w", employee.ID, err)
	}

	periods = AllocateFIFO(periods, totalUsed)

	total := decimal.Zero
	for _, p := range periods {
		total = total.Add(p.Balance)
	}

	return &BalanceReport{
		EmployeeID:   employee.ID,
		FullName:     employee.FullName,
		NationalID:   employee.NationalID,
		HireDate:     employee.HireDate,
		AsOf:         asOf,
		TotalUsed:    totalUsed,
		TotalBalance: total.Round(2),
		Periods:      periods,
	}, nil
}
