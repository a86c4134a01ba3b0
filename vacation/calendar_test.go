package vacation_test

import (
	"testing"
	"time"

	"github.com/staffhub/vacation-engine/vacation"
)

func TestCalendarDays_SkipsHolidays(t *testing.T) {
	// 01.06.2025 - 05.06.2025 is five days; 02.06.2025 is a public holiday.
	cal := vacation.NewExclusionCalendar(
		[]vacation.Date{date(2025, time.June, 2)},
		nil,
	)

	got := cal.CalendarDays(date(2025, time.June, 1), date(2025, time.June, 5))
	if got != 4 {
		t.Errorf("CalendarDays = %d, want 4", got)
	}
}

func TestCalendarDays_SingleDay(t *testing.T) {
	cal := vacation.NewExclusionCalendar(nil, nil)

	if got := cal.CalendarDays(date(2025, time.June, 3), date(2025, time.June, 3)); got != 1 {
		t.Errorf("CalendarDays = %d, want 1", got)
	}
}

func TestCalendarDays_SingleHoliday(t *testing.T) {
	cal := vacation.NewExclusionCalendar([]vacation.Date{date(2025, time.June, 3)}, nil)

	if got := cal.CalendarDays(date(2025, time.June, 3), date(2025, time.June, 3)); got != 0 {
		t.Errorf("CalendarDays = %d, want 0", got)
	}
}

func TestCalendarDays_InvertedRangeIsEmpty(t *testing.T) {
	cal := vacation.NewExclusionCalendar(nil, nil)

	if got := cal.CalendarDays(date(2025, time.June, 5), date(2025, time.June, 1)); got != 0 {
		t.Errorf("CalendarDays = %d, want 0", got)
	}
	if got := cal.WorkingDays(date(2025, time.June, 5), date(2025, time.June, 1)); got != 0 {
		t.Errorf("WorkingDays = %d, want 0", got)
	}
}

func TestWorkingDays_SkipsWeekends(t *testing.T) {
	// 01.06.2025 is a Sunday; 02.06.2025 is a holiday.
	// Of 01..05 June only Tue 03, Wed 04, Thu 05 count.
	cal := vacation.NewExclusionCalendar(
		[]vacation.Date{date(2025, time.June, 2)},
		nil,
	)

	got := cal.WorkingDays(date(2025, time.June, 1), date(2025, time.June, 5))
	if got != 3 {
		t.Errorf("WorkingDays = %d, want 3", got)
	}
}

func TestWorkingDays_SkipsExtraNonWorkingDays(t *testing.T) {
	// A bridge day counts as a calendar day but not as a working day.
	cal := vacation.NewExclusionCalendar(
		nil,
		[]vacation.Date{date(2025, time.June, 4)},
	)

	from, to := date(2025, time.June, 2), date(2025, time.June, 6) // Mon..Fri

	if got := cal.CalendarDays(from, to); got != 5 {
		t.Errorf("CalendarDays = %d, want 5", got)
	}
	if got := cal.WorkingDays(from, to); got != 4 {
		t.Errorf("WorkingDays = %d, want 4", got)
	}
}

func TestWorkingDays_FullWeek(t *testing.T) {
	cal := vacation.NewExclusionCalendar(nil, nil)

	// Mon 02.06.2025 .. Sun 08.06.2025: 7 calendar days, 5 working days.
	from, to := date(2025, time.June, 2), date(2025, time.June, 8)

	if got := cal.CalendarDays(from, to); got != 7 {
		t.Errorf("CalendarDays = %d, want 7", got)
	}
	if got := cal.WorkingDays(from, to); got != 5 {
		t.Errorf("WorkingDays = %d, want 5", got)
	}
}
