// Package conflict decides whether a proposed shift time window collides with
// existing shifts over a shared driver or vehicle.
package conflict

import (
	"time"

	"github.com/marlowtransit/shiftboard/pkg/core/model"
	"github.com/marlowtransit/shiftboard/pkg/core/recurrence"
)

// Candidate is a proposed shift placement to check: a time window on a
// calendar day plus the driver and/or vehicle it would hold. ExcludeShiftID
// names the shift being edited so it cannot conflict with itself.
type Candidate struct {
	Date           time.Time // the calendar day being targeted
	Range          model.TimeRange
	DriverID       string
	VehicleID      string
	ExcludeShiftID string
}

// Report lists the shifts blocking a candidate, split by the resource they
// collide on. A shift sharing both the driver and the vehicle appears in both
// lists. Callers render the report to users with a count and shift identities.
type Report struct {
	Driver  []model.Shift
	Vehicle []model.Shift
}

// Empty reports whether the candidate is clear to proceed.
func (r Report) Empty() bool {
	return len(r.Driver) == 0 && len(r.Vehicle) == 0
}

// All returns every blocking shift exactly once, driver conflicts first.
func (r Report) All() []model.Shift {
	seen := make(map[string]bool, len(r.Driver)+len(r.Vehicle))
	out := make([]model.Shift, 0, len(r.Driver)+len(r.Vehicle))
	for _, s := range r.Driver {
		if !seen[s.ID] {
			seen[s.ID] = true
			out = append(out, s)
		}
	}
	for _, s := range r.Vehicle {
		if !seen[s.ID] {
			seen[s.ID] = true
			out = append(out, s)
		}
	}
	return out
}

// FindConflicts scans existing shifts for overlaps with the candidate on the
// candidate's date. Recurring shifts are projected onto that date before the
// overlap test, so a Monday shift repeating on Fridays blocks Friday
// candidates at the same clock time. Intervals that only touch at an endpoint
// never conflict, and a candidate holding neither a driver nor a vehicle can
// never conflict with anything.
func FindConflicts(candidate Candidate, existing []model.Shift) (Report, error) {
	var report Report
	if candidate.DriverID == "" && candidate.VehicleID == "" {
		return report, nil
	}

	for _, shift := range existing {
		if shift.ID != "" && shift.ID == candidate.ExcludeShiftID {
			continue
		}
		occurs, err := recurrence.OccursOn(shift, candidate.Date)
		if err != nil {
			return Report{}, err
		}
		if !occurs {
			continue
		}
		projected := recurrence.ProjectedRange(shift, candidate.Date)
		if !projected.Overlaps(candidate.Range) {
			continue
		}
		if candidate.DriverID != "" && shift.DriverID == candidate.DriverID {
			report.Driver = append(report.Driver, shift)
		}
		if candidate.VehicleID != "" && shift.VehicleID == candidate.VehicleID {
			report.Vehicle = append(report.Vehicle, shift)
		}
	}
	return report, nil
}
