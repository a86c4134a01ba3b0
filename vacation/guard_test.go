package vacation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/vacation-engine/vacation"
	"github.com/staffhub/vacation-engine/vacation/store"
)

func TestBalanceGuard_RejectsWhenBalanceTooLow(t *testing.T) {
	// given: 38 days available (two years of tenure, 10 days taken)
	mem := store.NewMemory()
	emp := seedEmployee(t, mem, date(2023, time.May, 2))
	require.NoError(t, mem.Append(context.Background(), &vacation.LedgerEntry{
		EmployeeID: emp.ID,
		DateStart:  date(2023, time.August, 7),
		DateEnd:    date(2023, time.August, 16),
		DaysCount:  10,
		Type:       vacation.EntryPaid,
	}))

	guard := vacation.NewBalanceGuard(mem, mem)

	// when: 40 days are requested
	result, err := guard.CheckBalance(context.Background(), emp.ID, 40, date(2025, time.May, 1))
	require.NoError(t, err)

	// then: rejected, and the message carries both figures
	assert.False(t, result.Approved)
	assert.Equal(t, "38", result.Available.String())
	assert.Contains(t, result.Message, "requested 40")
	assert.Contains(t, result.Message, "available 38")
}

func TestBalanceGuard_ApprovesExactBalance(t *testing.T) {
	mem := store.NewMemory()
	emp := seedEmployee(t, mem, date(2023, time.May, 2))
	require.NoError(t, mem.Append(context.Background(), &vacation.LedgerEntry{
		EmployeeID: emp.ID,
		DateStart:  date(2023, time.August, 7),
		DateEnd:    date(2023, time.August, 16),
		DaysCount:  10,
		Type:       vacation.EntryPaid,
	}))

	guard := vacation.NewBalanceGuard(mem, mem)

	result, err := guard.CheckBalance(context.Background(), emp.ID, 38, date(2025, time.May, 1))
	require.NoError(t, err)

	assert.True(t, result.Approved)
	assert.Equal(t, "OK", result.Message)
	assert.Equal(t, "38", result.Available.String())
}

func TestBalanceGuard_UnknownEmployee(t *testing.T) {
	mem := store.NewMemory()
	guard := vacation.NewBalanceGuard(mem, mem)

	_, err := guard.CheckBalance(context.Background(), 999, 5, date(2025, time.May, 1))

	require.Error(t, err)
	assert.ErrorIs(t, err, vacation.ErrEmployeeNotFound)
}

func TestBalanceGuard_AsOfLeaveStartChangesOutcome(t *testing.T) {
	// A request that does not fit today can fit when evaluated as of the
	// leave's start date, because accrual keeps running until then.
	mem := store.NewMemory()
	emp := seedEmployee(t, mem, date(2024, time.January, 1))

	guard := vacation.NewBalanceGuard(mem, mem)

	early, err := guard.CheckBalance(context.Background(), emp.ID, 14, date(2024, time.July, 1))
	require.NoError(t, err)
	assert.False(t, early.Approved)

	later, err := guard.CheckBalance(context.Background(), emp.ID, 14, date(2024, time.December, 1))
	require.NoError(t, err)
	assert.True(t, later.Approved)
}
