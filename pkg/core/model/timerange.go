package model

import (
	"fmt"
	"time"
)

// TimeRange is a half-open [Start, End) interval. Two ranges that only touch
// at an endpoint do not overlap.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange constructs a TimeRange, rejecting ranges where the end does not
// come strictly after the start.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, fmt.Errorf("time range end %s must be after start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return TimeRange{Start: start, End: end}, nil
}

// Overlaps reports whether the two ranges share any instant.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Contains reports whether the instant falls within the range (start inclusive,
// end exclusive).
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Duration returns the length of the range.
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// SameCalendarDay reports whether start and end fall on the same calendar date
// in the range's own location. Shifts are not allowed to span midnight.
func (r TimeRange) SameCalendarDay() bool {
	sy, sm, sd := r.Start.Date()
	ey, em, ed := r.End.Date()
	return sy == ey && sm == em && sd == ed
}

// IsZero reports whether the range is unset.
func (r TimeRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}
