package model

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used throughout the scheduler.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string in the given location.
// A nil location defaults to UTC.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// Status describes who, if anyone, holds a shift.
type Status string

const (
	// StatusAvailable marks an open shift with no driver attached.
	StatusAvailable Status = "available"
	// StatusAssigned marks a shift held by a driver.
	StatusAssigned Status = "assigned"
	// StatusPending marks a shift a driver has requested but not yet been
	// confirmed for. The driver reference stays empty until confirmation.
	StatusPending Status = "pending"
)

// IsValid reports whether s is one of the known shift statuses.
func (s Status) IsValid() bool {
	return s == StatusAvailable || s == StatusAssigned || s == StatusPending
}

// Shift is a scheduled work block for a role, optionally held by a driver
// and/or a vehicle. A shift with a recurrence is stored once and projected
// onto other weekdays by the recurrence package.
type Shift struct {
	ID         string
	Date       string // primary occurrence date, YYYY-MM-DD
	Range      TimeRange
	Role       string
	Status     Status
	DriverID   string // empty when unassigned
	VehicleID  string // empty when no vehicle attached
	Recurrence Recurrence
}

// Validate checks the structural invariants that must hold for every stored
// shift: a well-formed date, a forward range that stays within the shift's
// calendar day, and a status consistent with the driver reference.
func (s Shift) Validate() error {
	day, err := ParseDate(s.Date, s.Range.Start.Location())
	if err != nil {
		return err
	}
	if s.Range.IsZero() || !s.Range.Start.Before(s.Range.End) {
		return fmt.Errorf("shift %s: range end must be after start", s.ID)
	}
	if !s.Range.SameCalendarDay() {
		return fmt.Errorf("shift %s: range must not cross midnight", s.ID)
	}
	sy, sm, sd := s.Range.Start.Date()
	dy, dm, dd := day.Date()
	if sy != dy || sm != dm || sd != dd {
		return fmt.Errorf("shift %s: range starts on %04d-%02d-%02d but shift date is %s",
			s.ID, sy, sm, sd, s.Date)
	}
	if s.Role == "" {
		return fmt.Errorf("shift %s: role is required", s.ID)
	}
	if !s.Status.IsValid() {
		return fmt.Errorf("shift %s: unknown status %q", s.ID, s.Status)
	}
	if s.DriverID != "" && s.Status != StatusAssigned {
		return fmt.Errorf("shift %s: has driver %s but status is %q", s.ID, s.DriverID, s.Status)
	}
	if s.DriverID == "" && s.Status == StatusAssigned {
		return fmt.Errorf("shift %s: status is assigned but no driver is set", s.ID)
	}
	return nil
}

// DeriveStatus returns the status implied by a driver reference: assigned when
// a driver holds the shift, available otherwise. Pending must be set
// explicitly by the pickup workflow.
func DeriveStatus(driverID string) Status {
	if driverID != "" {
		return StatusAssigned
	}
	return StatusAvailable
}

// Role is a named, ordered shift category. Order defines the left-to-right
// lane ordering on the timeline.
type Role struct {
	ID    string
	Name  string
	Order int
}

// VehicleStatus describes whether a vehicle can be scheduled at all.
type VehicleStatus string

const (
	VehicleActive       VehicleStatus = "active"
	VehicleOutOfService VehicleStatus = "out_of_service"
)

// Vehicle is a schedulable fleet vehicle. AssignedShifts mirrors the in-memory
// availability index so the assignment state survives restarts: it maps a
// YYYY-MM-DD date to the ids of shifts holding the vehicle that day.
type Vehicle struct {
	ID             string
	Name           string
	Status         VehicleStatus
	AssignedShifts map[string][]string
}

// InService reports whether the vehicle may be assigned to shifts.
func (v Vehicle) InService() bool {
	return v.Status == VehicleActive
}
