/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements vacation.StaffRepository, vacation.LedgerRepository and
  legacy.Repository on database/sql. The same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  employees:     staff records (identity, hire date, terminated flag)
  usage_ledger:  append-only record of leave taken (the new model's
                 source of truth for days used)
  legacy_years:  mutable per-tenure-year balance rows (old model)

APPEND-ONLY ENFORCEMENT:
  usage_ledger has no UPDATE or DELETE path in this package. Corrections
  are new entries. legacy_years is mutable on purpose - that is the
  legacy model's nature.

WAL MODE:
  The database opens with WAL so readers never block on the scheduler's
  writes. Foreign keys are enforced.

DATE STORAGE:
  Dates are stored as ISO text (YYYY-MM-DD); day amounts as decimal text
  to round-trip shopspring/decimal without float loss.
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/staffhub/vacation-engine/legacy"
	"github.com/staffhub/vacation-engine/vacation"
)

const dateLayout = "2006-01-02"

// Store implements all repository interfaces over a single SQLite handle.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Compile-time interface checks.
var (
	_ vacation.StaffRepository  = (*Store)(nil)
	_ vacation.LedgerRepository = (*Store)(nil)
	_ legacy.Repository         = (*Store)(nil)
)

// New opens (or creates) the database at dbPath. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guid TEXT UNIQUE,
		full_name TEXT NOT NULL,
		national_id TEXT UNIQUE NOT NULL,
		hire_date TEXT,
		terminated INTEGER NOT NULL DEFAULT 0
	);

	-- Append-only: no UPDATE/DELETE statements exist for this table.
	CREATE TABLE IF NOT EXISTS usage_ledger (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id INTEGER NOT NULL REFERENCES employees(id),
		date_start TEXT NOT NULL,
		date_end TEXT NOT NULL,
		days_count INTEGER NOT NULL,
		entry_type TEXT NOT NULL DEFAULT 'paid',
		created_at TEXT NOT NULL,
		comment TEXT
	);

	CREATE TABLE IF NOT EXISTS legacy_years (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id INTEGER NOT NULL REFERENCES employees(id),
		year INTEGER NOT NULL,
		fractional_days TEXT NOT NULL DEFAULT '0',
		days INTEGER NOT NULL DEFAULT 0,
		vacation_code TEXT,
		vacation_start TEXT,
		vacation_end TEXT,
		UNIQUE(employee_id, year)
	);

	CREATE INDEX IF NOT EXISTS idx_ledger_employee_start
		ON usage_ledger(employee_id, date_start);
	CREATE INDEX IF NOT EXISTS idx_legacy_employee_year
		ON legacy_years(employee_id, year);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// StaffRepository
// =============================================================================

func (s *Store) GetByID(ctx context.Context, id int64) (*vacation.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, guid, full_name, national_id, hire_date, terminated
		 FROM employees WHERE id = ?`, id)
	return scanEmployee(row)
}

func (s *Store) GetByGUID(ctx context.Context, guid string) (*vacation.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, guid, full_name, national_id, hire_date, terminated
		 FROM employees WHERE guid = ?`, guid)
	return scanEmployee(row)
}

func (s *Store) FindByNationalIDOrName(ctx context.Context, query string) (*vacation.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, guid, full_name, national_id, hire_date, terminated
		 FROM employees WHERE national_id = ?`, query)
	e, err := scanEmployee(row)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, vacation.ErrEmployeeNotFound) {
		return nil, err
	}

	row = s.db.QueryRowContext(ctx,
		`SELECT id, guid, full_name, national_id, hire_date, terminated
		 FROM employees WHERE full_name LIKE '%' || ? || '%' COLLATE NOCASE
		 LIMIT 1`, query)
	return scanEmployee(row)
}

func (s *Store) ListActive(ctx context.Context) ([]vacation.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, guid, full_name, national_id, hire_date, terminated
		 FROM employees WHERE terminated = 0 ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []vacation.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}

func (s *Store) Create(ctx context.Context, e *vacation.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var hire any
	if !e.HireDate.IsZero() {
		hire = e.HireDate.Time().Format(dateLayout)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO employees (guid, full_name, national_id, hire_date, terminated)
		 VALUES (?, ?, ?, ?, ?)`,
		nullable(e.GUID), e.FullName, e.NationalID, hire, boolToInt(e.Terminated))
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	e.ID, err = res.LastInsertId()
	return err
}

func (s *Store) Terminate(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE employees SET terminated = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return vacation.ErrEmployeeNotFound
	}
	return nil
}

// =============================================================================
// LedgerRepository (append-only)
// =============================================================================

func (s *Store) SumDaysUsed(ctx context.Context, employeeID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(days_count), 0) FROM usage_ledger WHERE employee_id = ?`,
		employeeID).Scan(&total)
	return total, err
}

func (s *Store) Append(ctx context.Context, entry *vacation.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO usage_ledger (employee_id, date_start, date_end, days_count, entry_type, created_at, comment)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.EmployeeID,
		entry.DateStart.Time().Format(dateLayout),
		entry.DateEnd.Time().Format(dateLayout),
		entry.DaysCount,
		string(entry.Type),
		entry.CreatedAt.UTC().Format(time.RFC3339),
		nullable(entry.Comment))
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	entry.ID, err = res.LastInsertId()
	return err
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID int64) ([]vacation.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, employee_id, date_start, date_end, days_count, entry_type, created_at, comment
		 FROM usage_ledger WHERE employee_id = ? ORDER BY date_start`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []vacation.LedgerEntry
	for rows.Next() {
		var (
			e          vacation.LedgerEntry
			start, end string
			entryType  string
			createdAt  string
			comment    sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.EmployeeID, &start, &end, &e.DaysCount, &entryType, &createdAt, &comment); err != nil {
			return nil, err
		}
		if e.DateStart, err = parseStoredDate(start); err != nil {
			return nil, err
		}
		if e.DateEnd, err = parseStoredDate(end); err != nil {
			return nil, err
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, err
		}
		e.Type = vacation.EntryType(entryType)
		e.Comment = comment.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// =============================================================================
// legacy.Repository (mutable rows)
// =============================================================================

func (s *Store) LatestForEmployee(ctx context.Context, employeeID int64) (*legacy.YearBalance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, employee_id, year, fractional_days, days, vacation_code, vacation_start, vacation_end
		 FROM legacy_years WHERE employee_id = ? ORDER BY year DESC LIMIT 1`, employeeID)
	yb, err := scanYearBalance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return yb, err
}

func (s *Store) ListForEmployee(ctx context.Context, employeeID int64) ([]legacy.YearBalance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, employee_id, year, fractional_days, days, vacation_code, vacation_start, vacation_end
		 FROM legacy_years WHERE employee_id = ? ORDER BY year`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []legacy.YearBalance
	for rows.Next() {
		yb, err := scanYearBalance(rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, *yb)
	}
	return balances, rows.Err()
}

func (s *Store) Save(ctx context.Context, row *legacy.YearBalance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var start, end any
	if row.VacationStart != nil {
		start = row.VacationStart.Time().Format(dateLayout)
	}
	if row.VacationEnd != nil {
		end = row.VacationEnd.Time().Format(dateLayout)
	}

	if row.ID != 0 {
		_, err := s.db.ExecContext(ctx,
			`UPDATE legacy_years
			 SET fractional_days = ?, days = ?, vacation_code = ?, vacation_start = ?, vacation_end = ?
			 WHERE id = ?`,
			row.FractionalDays.String(), row.Days, nullable(row.VacationCode), start, end, row.ID)
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO legacy_years (employee_id, year, fractional_days, days, vacation_code, vacation_start, vacation_end)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		row.EmployeeID, row.Year, row.FractionalDays.String(), row.Days,
		nullable(row.VacationCode), start, end)
	if err != nil {
		return fmt.Errorf("insert legacy year row: %w", err)
	}
	row.ID, err = res.LastInsertId()
	return err
}

// =============================================================================
// SCAN HELPERS
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(r rowScanner) (*vacation.Employee, error) {
	var (
		e          vacation.Employee
		guid       sql.NullString
		hire       sql.NullString
		terminated int
	)
	err := r.Scan(&e.ID, &guid, &e.FullName, &e.NationalID, &hire, &terminated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, vacation.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	e.GUID = guid.String
	e.Terminated = terminated != 0
	if hire.Valid {
		if e.HireDate, err = parseStoredDate(hire.String); err != nil {
			return nil, err
		}
	}
	return &e, nil
}

func scanYearBalance(r rowScanner) (*legacy.YearBalance, error) {
	var (
		yb         legacy.YearBalance
		fractional string
		code       sql.NullString
		start, end sql.NullString
	)
	err := r.Scan(&yb.ID, &yb.EmployeeID, &yb.Year, &fractional, &yb.Days, &code, &start, &end)
	if err != nil {
		return nil, err
	}
	if yb.FractionalDays, err = decimal.NewFromString(fractional); err != nil {
		return nil, fmt.Errorf("parse fractional days %q: %w", fractional, err)
	}
	yb.VacationCode = code.String
	if start.Valid {
		d, err := parseStoredDate(start.String)
		if err != nil {
			return nil, err
		}
		yb.VacationStart = &d
	}
	if end.Valid {
		d, err := parseStoredDate(end.String)
		if err != nil {
			return nil, err
		}
		yb.VacationEnd = &d
	}
	return &yb, nil
}

func parseStoredDate(s string) (vacation.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return vacation.Date{}, fmt.Errorf("parse stored date %q: %w", s, err)
	}
	return vacation.DateOf(t), nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
