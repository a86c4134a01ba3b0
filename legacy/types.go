/*
Package legacy maintains the older daily-accrual vacation model.

PURPOSE:
  Before the ledger-based engine, balances lived in mutable per-tenure-year
  rows: a fractional day counter bumped once per calendar day and rolled
  over on each hire anniversary. Order documents and pre-migration data
  still read these rows, so the model is kept running next to the new one.

AUTHORITY:
  The formula-based model (package vacation) is authoritative for every
  balance-gating decision. This package exists only for legacy document
  text and backward-compatible data. The two models drift apart over
  multi-year horizons (daily compounding vs per-period computation); they
  are intentionally NOT reconciled here - see DESIGN.md.

KEY CONCEPTS IN THIS FILE (types.go):
  - YearBalance: one mutable row per employee per tenure year
  - Repository:  persistence contract for those rows
  - Vacation codes: which assignment kinds deduct from the balance
*/
package legacy

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/staffhub/vacation-engine/vacation"
)

// DefaultDailyRate is the fixed per-calendar-day accrual increment.
// Historically 24/365 truncated to three decimals; it is applied as this
// constant, never recomputed from the fraction.
var DefaultDailyRate = decimal.RequireFromString("0.066")

// Vacation codes carried on an active assignment. Annual and extended
// paid leave deduct from the balance; the two special codes stamp the
// assignment window without deducting, and the row keeps accruing.
const (
	CodePaidAnnual   = "932"
	CodePaidExtended = "933"
	CodeNoDeductA    = "935"
	CodeNoDeductB    = "936"
)

// Deducts reports whether a vacation code consumes balance.
func Deducts(code string) bool {
	return code == CodePaidAnnual || code == CodePaidExtended
}

// accruesWithCode reports whether a row with this assignment code keeps
// receiving the daily increment.
func accruesWithCode(code string) bool {
	return code == "" || code == CodeNoDeductA || code == CodeNoDeductB
}

// YearBalance is one mutable legacy balance row. Year labels the calendar
// year the tenure year ends in: an employee hired in 2023 has Year 2024
// on the first row.
type YearBalance struct {
	ID         int64
	EmployeeID int64
	Year       int

	// FractionalDays grows by the daily rate absent consumption.
	FractionalDays decimal.Decimal

	// Days is the rounded integer view: floor(FractionalDays + 0.5).
	Days int

	// An in-progress assignment, if any. Cleared once the end date passes.
	VacationCode  string
	VacationStart *vacation.Date
	VacationEnd   *vacation.Date
}

// HasAssignment reports whether the row carries an active assignment window.
func (b *YearBalance) HasAssignment() bool {
	return b.VacationCode != "" || b.VacationStart != nil || b.VacationEnd != nil
}

// ClearAssignment drops the assignment fields once the window has passed.
func (b *YearBalance) ClearAssignment() {
	b.VacationCode = ""
	b.VacationStart = nil
	b.VacationEnd = nil
}

// RoundHalfUp is the legacy rounding rule: floor(x + 0.5).
func RoundHalfUp(d decimal.Decimal) int {
	return int(d.Add(decimal.NewFromFloat(0.5)).Floor().IntPart())
}

// Repository persists legacy year rows. Unlike the usage ledger these rows
// are mutable; Save overwrites in place.
type Repository interface {
	// LatestForEmployee returns the newest row by year, or nil when the
	// employee has none.
	LatestForEmployee(ctx context.Context, employeeID int64) (*YearBalance, error)

	// ListForEmployee returns all rows ordered by year ascending.
	ListForEmployee(ctx context.Context, employeeID int64) ([]YearBalance, error)

	Save(ctx context.Context, row *YearBalance) error
}
