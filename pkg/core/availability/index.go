// Package availability maintains the inverse index from vehicles to the
// shifts holding them, keyed per calendar date. Shifts record which vehicle
// they use; this index answers the opposite question ("is vehicle V free on
// date D") without scanning every shift.
package availability

import (
	"fmt"
	"sort"
	"sync"

	"github.com/marlowtransit/shiftboard/pkg/core/model"
)

// Availability is the result of a vehicle availability query.
type Availability struct {
	Available         bool
	ConflictingShifts []string
}

// VehicleIndex is a per-vehicle, per-date set of assigned shift ids. Entries
// are created lazily on first assignment and dropped as soon as their set
// empties. All operations hold one lock for their full duration, so a
// reassignment is never observable half-applied.
type VehicleIndex struct {
	mu       sync.Mutex
	vehicles map[string]map[string]map[string]bool // vehicleID -> date -> shiftID set
}

// NewVehicleIndex returns an empty index.
func NewVehicleIndex() *VehicleIndex {
	return &VehicleIndex{vehicles: make(map[string]map[string]map[string]bool)}
}

// Load seeds the index from persisted per-vehicle assignment mirrors,
// replacing any state for those vehicles. Used at startup.
func (idx *VehicleIndex) Load(vehicles []model.Vehicle) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, v := range vehicles {
		dates := make(map[string]map[string]bool, len(v.AssignedShifts))
		for date, shiftIDs := range v.AssignedShifts {
			if len(shiftIDs) == 0 {
				continue
			}
			set := make(map[string]bool, len(shiftIDs))
			for _, id := range shiftIDs {
				set[id] = true
			}
			dates[date] = set
		}
		if len(dates) > 0 {
			idx.vehicles[v.ID] = dates
		} else {
			delete(idx.vehicles, v.ID)
		}
	}
}

// Assign records that the shift holds the vehicle on the given date.
// Assigning the same triple twice is a no-op.
func (idx *VehicleIndex) Assign(vehicleID, date, shiftID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.assignLocked(vehicleID, date, shiftID)
}

// Unassign removes the shift from the vehicle's set for the date, dropping
// the entry once empty. Removing an absent assignment is a no-op.
func (idx *VehicleIndex) Unassign(vehicleID, date, shiftID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.unassignLocked(vehicleID, date, shiftID)
}

// Reassign moves the shift's assignment from one vehicle to another on the
// same date under a single lock hold, so no reader can observe the shift in
// neither or both sets. Equal ids make the whole call a no-op.
func (idx *VehicleIndex) Reassign(oldVehicleID, newVehicleID, date, shiftID string) {
	idx.Move(oldVehicleID, date, newVehicleID, date, shiftID)
}

// Move atomically relocates a shift's assignment across vehicles and/or
// dates. Either side may be empty: an empty old vehicle means the shift had
// none before, an empty new vehicle clears the assignment.
func (idx *VehicleIndex) Move(oldVehicleID, oldDate, newVehicleID, newDate, shiftID string) {
	if oldVehicleID == newVehicleID && oldDate == newDate {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if oldVehicleID != "" {
		idx.unassignLocked(oldVehicleID, oldDate, shiftID)
	}
	if newVehicleID != "" {
		idx.assignLocked(newVehicleID, newDate, shiftID)
	}
}

// IsAvailable checks the vehicle's sets for every date from startDate to
// endDate inclusive, ignoring excludeShiftID (the shift being edited). Pass
// the same date twice for a single-day query. Dates are YYYY-MM-DD strings.
func (idx *VehicleIndex) IsAvailable(vehicleID, startDate, endDate, excludeShiftID string) (Availability, error) {
	start, err := model.ParseDate(startDate, nil)
	if err != nil {
		return Availability{}, err
	}
	end, err := model.ParseDate(endDate, nil)
	if err != nil {
		return Availability{}, err
	}
	if end.Before(start) {
		return Availability{}, fmt.Errorf("availability window end %s precedes start %s", endDate, startDate)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	var conflicting []string
	dates := idx.vehicles[vehicleID]
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		for shiftID := range dates[day.Format(model.DateLayout)] {
			if shiftID == excludeShiftID {
				continue
			}
			conflicting = append(conflicting, shiftID)
		}
	}
	sort.Strings(conflicting)
	return Availability{Available: len(conflicting) == 0, ConflictingShifts: conflicting}, nil
}

// Snapshot returns the vehicle's full date->shift-ids mirror in the shape the
// persistence layer stores on the vehicle record. The result is a copy.
func (idx *VehicleIndex) Snapshot(vehicleID string) map[string][]string {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	out := make(map[string][]string)
	for date, set := range idx.vehicles[vehicleID] {
		ids := make([]string, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		out[date] = ids
	}
	return out
}

func (idx *VehicleIndex) assignLocked(vehicleID, date, shiftID string) {
	dates := idx.vehicles[vehicleID]
	if dates == nil {
		dates = make(map[string]map[string]bool)
		idx.vehicles[vehicleID] = dates
	}
	set := dates[date]
	if set == nil {
		set = make(map[string]bool)
		dates[date] = set
	}
	set[shiftID] = true
}

func (idx *VehicleIndex) unassignLocked(vehicleID, date, shiftID string) {
	dates := idx.vehicles[vehicleID]
	if dates == nil {
		return
	}
	set := dates[date]
	if set == nil {
		return
	}
	delete(set, shiftID)
	if len(set) == 0 {
		delete(dates, date)
	}
	if len(dates) == 0 {
		delete(idx.vehicles, vehicleID)
	}
}
