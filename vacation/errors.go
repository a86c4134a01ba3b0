/*
errors.go - Centralized error types for the vacation engine

PURPOSE:
  All error kinds the engine can surface, in one place. HTTP and other
  outer layers map these to status codes; they never invent their own.

ERROR CATEGORIES:
  1. Lookup errors - employee cannot be resolved
  2. Input errors  - malformed dates, impossible ranges
  3. Outcome types - insufficient balance (a normal rejection, not a bug)

USAGE:
  if errors.Is(err, vacation.ErrEmployeeNotFound) { ... }

  var ib *vacation.InsufficientBalanceError
  if errors.As(err, &ib) {
      // ib.Requested / ib.Available for caller display
  }
*/
package vacation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEmployeeNotFound is returned when no employee matches the given
	// identifier. Surfaced to the caller, never retried.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrMissingHireDate is returned when an employee record exists but has
	// no hire date, which every period computation requires.
	ErrMissingHireDate = errors.New("employee has no hire date")

	// ErrInvalidDateFormat is returned when a date string matches none of
	// the accepted layouts.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrInsufficientBalance is the rejection outcome of a balance check.
	// It is a normal business result, not an exceptional failure.
	ErrInsufficientBalance = errors.New("insufficient vacation balance")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidDateError carries the offending input value.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("no accepted format matches date %q", e.Value)
}

func (e *InvalidDateError) Unwrap() error { return ErrInvalidDateFormat }

// InsufficientBalanceError reports a rejected request with both figures,
// so callers can display "requested X, available Y" verbatim.
type InsufficientBalanceError struct {
	EmployeeID int64
	Requested  int
	Available  decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("not enough vacation days: requested %d, available %s",
		e.Requested, e.Available.String())
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound reports whether the error indicates a missing employee.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound)
}

// IsClientError reports whether the error is caused by caller input rather
// than an engine or store failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDateFormat) ||
		errors.Is(err, ErrMissingHireDate) ||
		errors.Is(err, ErrInsufficientBalance)
}
