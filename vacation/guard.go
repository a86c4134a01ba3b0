/*
guard.go - The gate in front of new ledger entries

PURPOSE:
  Checks whether a requested number of days fits the computed balance
  before a new usage entry may be appended. This is the sole gate on the
  request path; the append itself is a plain repository call made by the
  caller after approval.

CONCURRENCY NOTE:
  The guard does not serialize concurrent requests for the same employee.
  The external transaction boundary around "check balance, then append"
  must be atomic per employee, otherwise two near-simultaneous requests
  can each see a balance that fits them individually but not combined.
*/
package vacation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// CheckResult is the outcome of a balance check. A rejection is a normal
// result: Approved is false and Message carries both figures for display.
type CheckResult struct {
	Approved  bool
	Available decimal.Decimal
	Message   string
}

// BalanceGuard validates leave requests against the computed balance.
type BalanceGuard struct {
	Staff   StaffRepository
	Reports *ReportBuilder
}

// NewBalanceGuard wires a guard over the given repositories.
func NewBalanceGuard(staff StaffRepository, ledger LedgerRepository) *BalanceGuard {
	return &BalanceGuard{Staff: staff, Reports: NewReportBuilder(ledger)}
}

// CheckBalance approves the request iff daysRequested fits the total
// balance as of the given date (zero asOf means today). Fails with
// ErrEmployeeNotFound when the id resolves to nothing.
func (g *BalanceGuard) CheckBalance(ctx context.Context, employeeID int64, daysRequested int, asOf Date) (*CheckResult, error) {
	employee, err := g.Staff.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	return g.CheckEmployee(ctx, employee, daysRequested, asOf)
}

// CheckEmployee is CheckBalance for an already-resolved employee record.
func (g *BalanceGuard) CheckEmployee(ctx context.Context, employee *Employee, daysRequested int, asOf Date) (*CheckResult, error) {
	report, err := g.Reports.Build(ctx, employee, asOf)
	if err != nil {
		return nil, err
	}

	requested := decimal.NewFromInt(int64(daysRequested))
	if requested.GreaterThan(report.TotalBalance) {
		return &CheckResult{
			Approved:  false,
			Available: report.TotalBalance,
			Message: fmt.Sprintf("not enough vacation days: requested %d, available %s",
				daysRequested, report.TotalBalance.String()),
		}, nil
	}

	return &CheckResult{
		Approved:  true,
		Available: report.TotalBalance,
		Message:   "OK",
	}, nil
}
