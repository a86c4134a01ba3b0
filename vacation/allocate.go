/*
allocate.go - FIFO distribution of consumed days across periods

PURPOSE:
  Spreads the employee's total consumed days over the generated periods
  oldest-first: leave taken depletes the oldest entitlement before any
  newer one. The ledger only stores a total; which period each day came
  from is derived here, deterministically, on every calculation.

INVARIANTS:
  - No period's Used ever exceeds its Earned
  - No Balance is ever negative
  - sum(Used) == min(totalUsed, sum(Earned))
*/
package vacation

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AllocateFIFO fills Used and Balance on each period, consuming totalUsed
// oldest-first. Periods are re-sorted by start date defensively in case a
// caller ever hands over a sequence that was not freshly generated.
func AllocateFIFO(periods []WorkPeriod, totalUsed int) []WorkPeriod {
	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].Start.Before(periods[j].Start)
	})

	remaining := decimal.NewFromInt(int64(totalUsed))

	for i := range periods {
		if remaining.IsPositive() {
			used := decimal.Min(periods[i].Earned, remaining)
			periods[i].Used = used
			remaining = remaining.Sub(used)
		} else {
			periods[i].Used = decimal.Zero
		}

		periods[i].Balance = periods[i].Earned.Sub(periods[i].Used).Round(2)
	}

	return periods
}
