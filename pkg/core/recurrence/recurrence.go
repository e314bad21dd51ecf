// Package recurrence is the single authority for deciding where a shift
// appears on the calendar. A shift's stored record lives on one primary date;
// a weekly weekday pattern projects virtual occurrences onto later dates
// without duplicating the record.
package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/marlowtransit/shiftboard/pkg/core/model"
)

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// OccursOn reports whether the shift appears on the calendar day containing
// target. The stored date is always an occurrence, whether or not its weekday
// is flagged; recurrence flags add occurrences on matching weekdays from the
// stored date onward, never remove the origin.
func OccursOn(shift model.Shift, target time.Time) (bool, error) {
	loc := target.Location()
	origin, err := model.ParseDate(shift.Date, loc)
	if err != nil {
		return false, err
	}
	y, m, d := target.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)

	if day.Equal(origin) {
		return true, nil
	}
	if shift.Recurrence.IsZero() {
		return false, nil
	}

	rule, err := weeklyRule(shift.Recurrence, origin)
	if err != nil {
		return false, err
	}
	return len(rule.Between(day, day, true)) > 0, nil
}

// ProjectedRange re-anchors the shift's wall-clock time window to the calendar
// day containing target. For non-recurring shifts viewed on their own date
// this is the stored range unchanged.
func ProjectedRange(shift model.Shift, target time.Time) model.TimeRange {
	loc := shift.Range.Start.Location()
	y, m, d := target.In(loc).Date()
	start := shift.Range.Start
	end := shift.Range.End
	return model.TimeRange{
		Start: time.Date(y, m, d, start.Hour(), start.Minute(), start.Second(), 0, loc),
		End:   time.Date(y, m, d, end.Hour(), end.Minute(), end.Second(), 0, loc),
	}
}

// OccurrencesBetween lists the calendar days in [from, to] (inclusive, both
// truncated to midnight in from's location) on which the shift occurs.
func OccurrencesBetween(shift model.Shift, from, to time.Time) ([]time.Time, error) {
	loc := from.Location()
	origin, err := model.ParseDate(shift.Date, loc)
	if err != nil {
		return nil, err
	}
	fy, fm, fd := from.Date()
	first := time.Date(fy, fm, fd, 0, 0, 0, 0, loc)
	ty, tm, td := to.In(loc).Date()
	last := time.Date(ty, tm, td, 0, 0, 0, 0, loc)
	if last.Before(first) {
		return nil, fmt.Errorf("occurrence window end %s precedes start %s",
			last.Format(model.DateLayout), first.Format(model.DateLayout))
	}

	var days []time.Time
	if !origin.Before(first) && !origin.After(last) {
		days = append(days, origin)
	}
	if shift.Recurrence.IsZero() {
		return days, nil
	}

	rule, err := weeklyRule(shift.Recurrence, origin)
	if err != nil {
		return nil, err
	}
	for _, occ := range rule.Between(first, last, true) {
		if occ.Equal(origin) {
			continue // already included above
		}
		days = append(days, occ)
	}
	return days, nil
}

func weeklyRule(pattern model.Recurrence, origin time.Time) (*rrule.RRule, error) {
	byweekday := make([]rrule.Weekday, 0, 7)
	for _, day := range pattern.Weekdays() {
		byweekday = append(byweekday, rruleWeekdays[day])
	}
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   origin,
		Byweekday: byweekday,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build recurrence rule for pattern %s: %w", pattern, err)
	}
	return rule, nil
}
