/*
Package vacation implements the paid-leave entitlement engine.

PURPOSE:
  This package answers one question: how many vacation days does an
  employee have on a given date? It partitions tenure into yearly work
  periods anchored on the hire date, credits days per period under a
  tenure-proportional formula, and consumes them oldest-first against
  the usage ledger.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee: identity + hire date, owned by an external staff system
  - LedgerEntry: an immutable record of leave actually taken
  - Repository interfaces: the collaborator contracts the engine consumes

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal for every day amount; entitlement math
     must not accumulate float error
  2. Ledger truth: "days used" always comes from the append-only ledger,
     never from a mutable counter
  3. Pure core: period generation, accrual and allocation are pure
     functions over dates; persistence stays behind interfaces

SEE ALSO:
  - period.go:   tenure partitioning
  - accrual.go:  days earned per period
  - allocate.go: FIFO consumption
  - report.go:   per-employee balance report
  - guard.go:    the gate in front of new ledger entries
*/
package vacation

import (
	"context"
	"time"
)

// =============================================================================
// EMPLOYEE - Read-only view of the staff record
// =============================================================================

// Employee is the slice of the staff record the engine needs.
// The staff system owns the full record; the engine only reads identity
// and the hire date.
type Employee struct {
	ID         int64
	GUID       string // correlation id used by upstream systems
	FullName   string
	NationalID string // unique person identifier
	HireDate   Date   // zero value means "missing", see ErrMissingHireDate
	Terminated bool
}

// =============================================================================
// USAGE LEDGER - Append-only record of leave taken
// =============================================================================

// EntryType classifies a ledger entry.
type EntryType string

const (
	EntryPaid             EntryType = "paid"
	EntryUnpaid           EntryType = "unpaid"
	EntryMigrationBalance EntryType = "migration_balance"
)

// LedgerEntry is one consumed leave. Entries are immutable once written;
// corrections are new entries, not edits.
type LedgerEntry struct {
	ID         int64
	EmployeeID int64
	DateStart  Date
	DateEnd    Date
	DaysCount  int // calendar days consumed
	Type       EntryType
	CreatedAt  time.Time
	Comment    string
}

// =============================================================================
// REPOSITORY INTERFACES - External collaborators
// =============================================================================

// StaffRepository resolves employees. Implemented by the persistence layer.
type StaffRepository interface {
	// GetByID returns the employee or ErrEmployeeNotFound.
	GetByID(ctx context.Context, id int64) (*Employee, error)

	// GetByGUID resolves the upstream correlation id.
	GetByGUID(ctx context.Context, guid string) (*Employee, error)

	// FindByNationalIDOrName resolves an exact national id first, then
	// falls back to a case-insensitive name match.
	FindByNationalIDOrName(ctx context.Context, query string) (*Employee, error)

	// ListActive returns all non-terminated employees.
	ListActive(ctx context.Context) ([]Employee, error)

	Create(ctx context.Context, e *Employee) error

	// Terminate sets the terminated flag. The record itself stays.
	Terminate(ctx context.Context, id int64) error
}

// LedgerRepository is the append-only usage ledger. No update, no delete.
type LedgerRepository interface {
	// SumDaysUsed totals DaysCount over every entry of the employee.
	SumDaysUsed(ctx context.Context, employeeID int64) (int, error)

	// Append persists a new entry. The single write operation.
	Append(ctx context.Context, entry *LedgerEntry) error

	// ListByEmployee returns the employee's entries ordered by DateStart.
	ListByEmployee(ctx context.Context, employeeID int64) ([]LedgerEntry, error)
}
