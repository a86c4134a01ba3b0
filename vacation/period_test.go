package vacation_test

import (
	"testing"
	"time"

	"github.com/staffhub/vacation-engine/vacation"
)

func date(y int, m time.Month, d int) vacation.Date {
	return vacation.NewDate(y, m, d)
}

// =============================================================================
// PARTITION PROPERTY TESTS
// =============================================================================

func TestGeneratePeriods_PartitionProperty(t *testing.T) {
	// For any hire date <= as-of date, the periods must be contiguous,
	// non-overlapping, and cover exactly [hireDate, asOfDate].

	cases := []struct {
		name string
		hire vacation.Date
		asOf vacation.Date
	}{
		{"mid year hire", date(2023, time.May, 2), date(2025, time.May, 1)},
		{"new year hire", date(2024, time.January, 1), date(2024, time.July, 1)},
		{"same day", date(2024, time.March, 10), date(2024, time.March, 10)},
		{"one day of tenure", date(2024, time.March, 10), date(2024, time.March, 11)},
		{"anniversary eve", date(2020, time.February, 29), date(2024, time.February, 28)},
		{"decade", date(2014, time.August, 15), date(2024, time.August, 20)},
		{"end of year", date(2022, time.December, 31), date(2025, time.January, 1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			periods := vacation.GeneratePeriods(tc.hire, tc.asOf)
			if len(periods) == 0 {
				t.Fatal("expected at least one period")
			}

			if !periods[0].Start.Equal(tc.hire) {
				t.Errorf("first period starts %s, want %s", periods[0].Start, tc.hire)
			}
			last := periods[len(periods)-1]
			if !last.End.Equal(tc.asOf) {
				t.Errorf("last period ends %s, want %s", last.End, tc.asOf)
			}
			if !last.Current {
				t.Error("last period should be marked current")
			}

			for i := 1; i < len(periods); i++ {
				wantStart := periods[i-1].End.AddDays(1)
				if !periods[i].Start.Equal(wantStart) {
					t.Errorf("period %d starts %s, want %s (gap or overlap)",
						i, periods[i].Start, wantStart)
				}
				if periods[i-1].Current {
					t.Errorf("period %d is current but not last", i-1)
				}
			}

			for i, p := range periods {
				if p.End.Before(p.Start) {
					t.Errorf("period %d inverted: %s", i, p)
				}
				if p.End.After(tc.asOf) {
					t.Errorf("period %d ends %s, after as-of %s", i, p.End, tc.asOf)
				}
			}
		})
	}
}

func TestGeneratePeriods_Deterministic(t *testing.T) {
	hire := date(2019, time.October, 7)
	asOf := date(2025, time.March, 3)

	first := vacation.GeneratePeriods(hire, asOf)
	second := vacation.GeneratePeriods(hire, asOf)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Start.Equal(second[i].Start) || !first[i].End.Equal(second[i].End) {
			t.Errorf("period %d differs between runs", i)
		}
	}
}

// =============================================================================
// SHAPE TESTS
// =============================================================================

func TestGeneratePeriods_TwoFullYears(t *testing.T) {
	// Hired 02.05.2023, as of 01.05.2025: exactly two year-long periods,
	// the second ending on (and clamped to) the as-of date.

	periods := vacation.GeneratePeriods(date(2023, time.May, 2), date(2025, time.May, 1))

	if len(periods) != 2 {
		t.Fatalf("expected 2 periods, got %d", len(periods))
	}

	if got, want := periods[0].String(), "02.05.2023 - 01.05.2024"; got != want {
		t.Errorf("period 1 = %s, want %s", got, want)
	}
	if got, want := periods[1].String(), "02.05.2024 - 01.05.2025"; got != want {
		t.Errorf("period 2 = %s, want %s", got, want)
	}
	if periods[0].Current {
		t.Error("period 1 should not be current")
	}
	if !periods[1].Current {
		t.Error("period 2 should be current")
	}
}

func TestGeneratePeriods_HireAfterAsOf(t *testing.T) {
	periods := vacation.GeneratePeriods(date(2025, time.June, 1), date(2025, time.May, 1))
	if len(periods) != 0 {
		t.Fatalf("expected no periods, got %d", len(periods))
	}
}

func TestGeneratePeriods_TruncatesAtCap(t *testing.T) {
	// A malformed hire date far in the past must truncate, not loop or fail.
	periods := vacation.GeneratePeriods(date(1800, time.January, 1), date(2025, time.January, 1))
	if len(periods) != vacation.MaxWorkPeriods {
		t.Fatalf("expected %d periods, got %d", vacation.MaxWorkPeriods, len(periods))
	}
}

func TestWorkPeriod_DaysWorked(t *testing.T) {
	p := vacation.WorkPeriod{Start: date(2024, time.January, 1), End: date(2024, time.July, 1)}
	if got := p.DaysWorked(); got != 183 {
		t.Errorf("DaysWorked = %d, want 183", got)
	}

	sameDay := vacation.WorkPeriod{Start: date(2024, time.January, 1), End: date(2024, time.January, 1)}
	if got := sameDay.DaysWorked(); got != 1 {
		t.Errorf("same-day DaysWorked = %d, want 1", got)
	}
}
