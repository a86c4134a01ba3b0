// Package store provides in-memory repository implementations for tests
// and development. The SQLite-backed production store lives in
// store/sqlite at the repository root.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/staffhub/vacation-engine/legacy"
	"github.com/staffhub/vacation-engine/vacation"
)

// =============================================================================
// MEMORY STORE - Implements every repository interface
// =============================================================================

type Memory struct {
	mu sync.RWMutex

	employees map[int64]vacation.Employee
	entries   map[int64][]vacation.LedgerEntry // by employee, ordered by DateStart
	rows      map[int64][]legacy.YearBalance   // by employee, ordered by Year

	nextEmployeeID int64
	nextEntryID    int64
	nextRowID      int64
}

func NewMemory() *Memory {
	return &Memory{
		employees: make(map[int64]vacation.Employee),
		entries:   make(map[int64][]vacation.LedgerEntry),
		rows:      make(map[int64][]legacy.YearBalance),
	}
}

// Compile-time interface checks.
var (
	_ vacation.StaffRepository  = (*Memory)(nil)
	_ vacation.LedgerRepository = (*Memory)(nil)
	_ legacy.Repository         = (*Memory)(nil)
)

// =============================================================================
// StaffRepository
// =============================================================================

func (m *Memory) GetByID(_ context.Context, id int64) (*vacation.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.employees[id]
	if !ok {
		return nil, vacation.ErrEmployeeNotFound
	}
	return &e, nil
}

func (m *Memory) GetByGUID(_ context.Context, guid string) (*vacation.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.employees {
		if e.GUID == guid {
			e := e
			return &e, nil
		}
	}
	return nil, vacation.ErrEmployeeNotFound
}

func (m *Memory) FindByNationalIDOrName(_ context.Context, query string) (*vacation.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.employees {
		if e.NationalID == query {
			e := e
			return &e, nil
		}
	}
	// Fall back to a case-insensitive name match.
	q := strings.ToLower(query)
	for _, e := range m.employees {
		if strings.Contains(strings.ToLower(e.FullName), q) {
			e := e
			return &e, nil
		}
	}
	return nil, vacation.ErrEmployeeNotFound
}

func (m *Memory) ListActive(_ context.Context) ([]vacation.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var active []vacation.Employee
	for _, e := range m.employees {
		if !e.Terminated {
			active = append(active, e)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })
	return active, nil
}

func (m *Memory) Create(_ context.Context, e *vacation.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextEmployeeID++
	e.ID = m.nextEmployeeID
	m.employees[e.ID] = *e
	return nil
}

func (m *Memory) Terminate(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.employees[id]
	if !ok {
		return vacation.ErrEmployeeNotFound
	}
	e.Terminated = true
	m.employees[id] = e
	return nil
}

// =============================================================================
// LedgerRepository (append-only)
// =============================================================================

func (m *Memory) SumDaysUsed(_ context.Context, employeeID int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := 0
	for _, entry := range m.entries[employeeID] {
		total += entry.DaysCount
	}
	return total, nil
}

func (m *Memory) Append(_ context.Context, entry *vacation.LedgerEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextEntryID++
	entry.ID = m.nextEntryID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	entries := m.entries[entry.EmployeeID]
	i := sort.Search(len(entries), func(i int) bool {
		return entries[i].DateStart.After(entry.DateStart)
	})
	entries = append(entries, vacation.LedgerEntry{})
	copy(entries[i+1:], entries[i:])
	entries[i] = *entry
	m.entries[entry.EmployeeID] = entries
	return nil
}

func (m *Memory) ListByEmployee(_ context.Context, employeeID int64) ([]vacation.LedgerEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]vacation.LedgerEntry, len(m.entries[employeeID]))
	copy(entries, m.entries[employeeID])
	return entries, nil
}

// =============================================================================
// legacy.Repository (mutable rows)
// =============================================================================

func (m *Memory) LatestForEmployee(_ context.Context, employeeID int64) (*legacy.YearBalance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := m.rows[employeeID]
	if len(rows) == 0 {
		return nil, nil
	}
	row := rows[len(rows)-1]
	return &row, nil
}

func (m *Memory) ListForEmployee(_ context.Context, employeeID int64) ([]legacy.YearBalance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := make([]legacy.YearBalance, len(m.rows[employeeID]))
	copy(rows, m.rows[employeeID])
	return rows, nil
}

func (m *Memory) Save(_ context.Context, row *legacy.YearBalance) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.rows[row.EmployeeID]
	if row.ID != 0 {
		for i := range rows {
			if rows[i].ID == row.ID {
				rows[i] = *row
				return nil
			}
		}
	}

	m.nextRowID++
	row.ID = m.nextRowID
	rows = append(rows, *row)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })
	m.rows[row.EmployeeID] = rows
	return nil
}
