package db

import (
	"fmt"
	"time"

	"github.com/marlowtransit/shiftboard/pkg/core/model"
)

// ShiftRecord is the persisted form of a shift. Instants are ISO-8601 strings
// and the date key is YYYY-MM-DD; the recurrence is a weekday bitmask with
// bit 0 = Sunday.
type ShiftRecord struct {
	ID         string
	Date       string
	StartTime  string // RFC 3339
	EndTime    string // RFC 3339
	Role       string
	Status     string
	DriverID   string
	VehicleID  string
	Recurrence int
}

// ToModel converts the stored record into the domain shift, reading instants
// in the given operating location.
func (r ShiftRecord) ToModel(loc *time.Location) (model.Shift, error) {
	if loc == nil {
		loc = time.UTC
	}
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return model.Shift{}, fmt.Errorf("shift %s: invalid start time %q: %w", r.ID, r.StartTime, err)
	}
	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return model.Shift{}, fmt.Errorf("shift %s: invalid end time %q: %w", r.ID, r.EndTime, err)
	}
	rng, err := model.NewTimeRange(start.In(loc), end.In(loc))
	if err != nil {
		return model.Shift{}, fmt.Errorf("shift %s: %w", r.ID, err)
	}
	return model.Shift{
		ID:         r.ID,
		Date:       r.Date,
		Range:      rng,
		Role:       r.Role,
		Status:     model.Status(r.Status),
		DriverID:   r.DriverID,
		VehicleID:  r.VehicleID,
		Recurrence: model.Recurrence(r.Recurrence),
	}, nil
}

// NewShiftRecord converts a domain shift into its persisted form.
func NewShiftRecord(s model.Shift) ShiftRecord {
	return ShiftRecord{
		ID:         s.ID,
		Date:       s.Date,
		StartTime:  s.Range.Start.Format(time.RFC3339),
		EndTime:    s.Range.End.Format(time.RFC3339),
		Role:       s.Role,
		Status:     string(s.Status),
		DriverID:   s.DriverID,
		VehicleID:  s.VehicleID,
		Recurrence: int(s.Recurrence),
	}
}

// VehicleRecord is the persisted form of a vehicle, including the
// date -> shift-ids assignment mirror kept in step with the in-memory index.
type VehicleRecord struct {
	ID             string
	Name           string
	Status         string
	AssignedShifts map[string][]string
}

// ToModel converts the stored record into the domain vehicle.
func (r VehicleRecord) ToModel() model.Vehicle {
	return model.Vehicle{
		ID:             r.ID,
		Name:           r.Name,
		Status:         model.VehicleStatus(r.Status),
		AssignedShifts: r.AssignedShifts,
	}
}

// RoleRecord is the persisted form of a role.
type RoleRecord struct {
	ID    string
	Name  string
	Order int
}

// ToModel converts the stored record into the domain role.
func (r RoleRecord) ToModel() model.Role {
	return model.Role{ID: r.ID, Name: r.Name, Order: r.Order}
}
