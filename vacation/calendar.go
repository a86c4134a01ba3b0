/*
calendar.go - Calendar and business day counting

PURPOSE:
  Counts days between two dates against exclusion sets. Two counters:

  CalendarDays: every date in [start, end] not in the holiday set.
  WorkingDays:  additionally skips Saturday/Sunday and the extra
                non-working set (bridge days moved next to holidays).

QUIRK (kept on purpose):
  An inverted range (start after end) counts 0 days instead of failing.
  Upstream order-document code relies on this when a leave starts today.

CONFIGURATION:
  The exclusion sets are process-wide static data loaded from config at
  startup and injected here, so tests substitute fixture calendars
  without touching shared state.
*/
package vacation

// ExclusionCalendar holds the non-counting dates. Read-only after
// construction; replacing it requires a restart, not a runtime mutation.
type ExclusionCalendar struct {
	holidays   map[Date]struct{}
	nonWorking map[Date]struct{} // extra non-working days outside Sat/Sun
}

// NewExclusionCalendar builds a calendar from explicit date lists.
func NewExclusionCalendar(holidays, nonWorking []Date) *ExclusionCalendar {
	c := &ExclusionCalendar{
		holidays:   make(map[Date]struct{}, len(holidays)),
		nonWorking: make(map[Date]struct{}, len(nonWorking)),
	}
	for _, d := range holidays {
		c.holidays[d] = struct{}{}
	}
	for _, d := range nonWorking {
		c.nonWorking[d] = struct{}{}
	}
	return c
}

// IsHoliday reports whether the date is in the holiday set.
func (c *ExclusionCalendar) IsHoliday(d Date) bool {
	_, ok := c.holidays[d]
	return ok
}

// IsNonWorking reports whether the date is an extra non-working day.
func (c *ExclusionCalendar) IsNonWorking(d Date) bool {
	_, ok := c.nonWorking[d]
	return ok
}

// CalendarDays counts dates in [start, end] inclusive that are not
// holidays. An inverted range counts 0.
func (c *ExclusionCalendar) CalendarDays(start, end Date) int {
	count := 0
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if !c.IsHoliday(d) {
			count++
		}
	}
	return count
}

// WorkingDays counts dates in [start, end] inclusive that are not
// holidays, weekends or extra non-working days. An inverted range counts 0.
func (c *ExclusionCalendar) WorkingDays(start, end Date) int {
	count := 0
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if c.IsHoliday(d) || d.IsWeekend() || c.IsNonWorking(d) {
			continue
		}
		count++
	}
	return count
}
