package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/vacation-engine/legacy"
	"github.com/staffhub/vacation-engine/store/sqlite"
	"github.com/staffhub/vacation-engine/vacation"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func createEmployee(t *testing.T, s *sqlite.Store, guid, name, nationalID string) *vacation.Employee {
	t.Helper()

	e := &vacation.Employee{
		GUID:       guid,
		FullName:   name,
		NationalID: nationalID,
		HireDate:   vacation.NewDate(2023, time.May, 2),
	}
	require.NoError(t, s.Create(context.Background(), e))
	require.NotZero(t, e.ID)
	return e
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func TestStore_EmployeeRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	created := createEmployee(t, s, "g-1", "Dina Maurer", "78012345678")

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dina Maurer", got.FullName)
	assert.Equal(t, "78012345678", got.NationalID)
	assert.True(t, got.HireDate.Equal(vacation.NewDate(2023, time.May, 2)))
	assert.False(t, got.Terminated)

	got, err = s.GetByGUID(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestStore_GetByID_NotFound(t *testing.T) {
	s := newStore(t)

	_, err := s.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, vacation.ErrEmployeeNotFound)
}

func TestStore_EmployeeWithoutHireDate(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	e := &vacation.Employee{FullName: "No Hire Date", NationalID: "111"}
	require.NoError(t, s.Create(ctx, e))

	got, err := s.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, got.HireDate.IsZero())
}

func TestStore_FindByNationalIDOrName(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	createEmployee(t, s, "g-1", "Dina Maurer", "78012345678")
	createEmployee(t, s, "g-2", "Emil Brandt", "78099999999")

	byID, err := s.FindByNationalIDOrName(ctx, "78099999999")
	require.NoError(t, err)
	assert.Equal(t, "Emil Brandt", byID.FullName)

	byName, err := s.FindByNationalIDOrName(ctx, "maurer")
	require.NoError(t, err)
	assert.Equal(t, "Dina Maurer", byName.FullName)

	_, err = s.FindByNationalIDOrName(ctx, "nobody")
	assert.ErrorIs(t, err, vacation.ErrEmployeeNotFound)
}

func TestStore_TerminateRemovesFromActiveList(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	e1 := createEmployee(t, s, "g-1", "Dina Maurer", "78012345678")
	createEmployee(t, s, "g-2", "Emil Brandt", "78099999999")

	require.NoError(t, s.Terminate(ctx, e1.ID))

	active, err := s.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Emil Brandt", active[0].FullName)

	got, err := s.GetByID(ctx, e1.ID)
	require.NoError(t, err)
	assert.True(t, got.Terminated)

	assert.ErrorIs(t, s.Terminate(ctx, 42), vacation.ErrEmployeeNotFound)
}

// =============================================================================
// USAGE LEDGER
// =============================================================================

func TestStore_LedgerAppendAndSum(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	e := createEmployee(t, s, "g-1", "Dina Maurer", "78012345678")

	entries := []*vacation.LedgerEntry{
		{
			EmployeeID: e.ID,
			DateStart:  vacation.NewDate(2024, time.August, 5),
			DateEnd:    vacation.NewDate(2024, time.August, 9),
			DaysCount:  5,
			Type:       vacation.EntryPaid,
			Comment:    "vacation code 932",
		},
		{
			EmployeeID: e.ID,
			DateStart:  vacation.NewDate(2023, time.August, 7),
			DateEnd:    vacation.NewDate(2023, time.August, 16),
			DaysCount:  10,
			Type:       vacation.EntryMigrationBalance,
		},
	}
	for _, entry := range entries {
		require.NoError(t, s.Append(ctx, entry))
		assert.NotZero(t, entry.ID)
	}

	total, err := s.SumDaysUsed(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, total)

	// listed oldest start date first, regardless of insert order
	list, err := s.ListByEmployee(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 10, list[0].DaysCount)
	assert.Equal(t, vacation.EntryMigrationBalance, list[0].Type)
	assert.Equal(t, 5, list[1].DaysCount)
	assert.Equal(t, "vacation code 932", list[1].Comment)
	assert.False(t, list[1].CreatedAt.IsZero())
}

func TestStore_SumDaysUsed_NoEntries(t *testing.T) {
	s := newStore(t)
	e := createEmployee(t, s, "g-1", "Dina Maurer", "78012345678")

	total, err := s.SumDaysUsed(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Zero(t, total)
}

// =============================================================================
// LEGACY YEAR ROWS
// =============================================================================

func TestStore_LegacyRowRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	e := createEmployee(t, s, "g-1", "Dina Maurer", "78012345678")

	start := vacation.NewDate(2024, time.June, 10)
	end := vacation.NewDate(2024, time.June, 20)
	row := &legacy.YearBalance{
		EmployeeID:     e.ID,
		Year:           2024,
		FractionalDays: decimal.RequireFromString("12.342"),
		Days:           12,
		VacationCode:   legacy.CodePaidAnnual,
		VacationStart:  &start,
		VacationEnd:    &end,
	}
	require.NoError(t, s.Save(ctx, row))
	require.NotZero(t, row.ID)

	got, err := s.LatestForEmployee(ctx, e.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "12.342", got.FractionalDays.String(), "decimal text survives the round trip")
	assert.Equal(t, 12, got.Days)
	assert.Equal(t, legacy.CodePaidAnnual, got.VacationCode)
	require.NotNil(t, got.VacationStart)
	assert.True(t, got.VacationStart.Equal(start))
	require.NotNil(t, got.VacationEnd)
	assert.True(t, got.VacationEnd.Equal(end))
}

func TestStore_LegacyRowUpdateInPlace(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	e := createEmployee(t, s, "g-1", "Dina Maurer", "78012345678")

	row := &legacy.YearBalance{EmployeeID: e.ID, Year: 2024, FractionalDays: decimal.RequireFromString("5")}
	require.NoError(t, s.Save(ctx, row))

	row.FractionalDays = decimal.RequireFromString("5.066")
	row.Days = legacy.RoundHalfUp(row.FractionalDays)
	require.NoError(t, s.Save(ctx, row))

	rows, err := s.ListForEmployee(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1, "saving with an id must update, not insert")
	assert.Equal(t, "5.066", rows[0].FractionalDays.String())
}

func TestStore_LatestForEmployee(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	e := createEmployee(t, s, "g-1", "Dina Maurer", "78012345678")

	// no rows yet: nil, not an error
	got, err := s.LatestForEmployee(ctx, e.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	for _, year := range []int{2024, 2026, 2025} {
		require.NoError(t, s.Save(ctx, &legacy.YearBalance{
			EmployeeID:     e.ID,
			Year:           year,
			FractionalDays: decimal.Zero,
		}))
	}

	got, err = s.LatestForEmployee(ctx, e.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2026, got.Year)

	rows, err := s.ListForEmployee(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 2024, rows[0].Year)
	assert.Equal(t, 2026, rows[2].Year)
}

func TestStore_LegacyYearUniquePerEmployee(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	e := createEmployee(t, s, "g-1", "Dina Maurer", "78012345678")

	require.NoError(t, s.Save(ctx, &legacy.YearBalance{EmployeeID: e.ID, Year: 2024, FractionalDays: decimal.Zero}))
	err := s.Save(ctx, &legacy.YearBalance{EmployeeID: e.ID, Year: 2024, FractionalDays: decimal.Zero})
	assert.Error(t, err, "duplicate tenure year rows are rejected by the schema")
}
