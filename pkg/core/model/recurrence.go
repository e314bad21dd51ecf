package model

import "time"

// Recurrence is a weekly weekday pattern stored as a bitmask, bit n being
// time.Weekday n (Sunday = 0). The zero value means the shift does not recur.
type Recurrence uint8

// RecurrenceOn builds a Recurrence covering the given weekdays.
func RecurrenceOn(days ...time.Weekday) Recurrence {
	var r Recurrence
	for _, d := range days {
		r |= 1 << uint(d)
	}
	return r
}

// On reports whether the pattern includes the given weekday.
func (r Recurrence) On(day time.Weekday) bool {
	return r&(1<<uint(day)) != 0
}

// IsZero reports whether the shift has no recurrence at all.
func (r Recurrence) IsZero() bool {
	return r == 0
}

// Weekdays lists the flagged weekdays in Sunday-first order.
func (r Recurrence) Weekdays() []time.Weekday {
	var days []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if r.On(d) {
			days = append(days, d)
		}
	}
	return days
}

// String renders the pattern as a comma-separated weekday list, e.g. "Mon,Wed".
func (r Recurrence) String() string {
	if r.IsZero() {
		return "none"
	}
	out := ""
	for _, d := range r.Weekdays() {
		if out != "" {
			out += ","
		}
		out += d.String()[:3]
	}
	return out
}
