package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/marlowtransit/shiftboard/pkg/db"
)

// VehicleAvailabilityResult answers "can this vehicle be booked over these
// dates". An out-of-service vehicle is unavailable regardless of what the
// index says, and the index is not consulted for it.
type VehicleAvailabilityResult struct {
	VehicleID         string
	Available         bool
	OutOfService      bool
	ConflictingShifts []string
}

// VehicleAvailability queries the availability index for the vehicle over the
// inclusive date range, ignoring excludeShiftID (the shift being edited).
// Pass equal dates for a single-day query; excludeShiftID may be empty.
func (s *Scheduler) VehicleAvailability(ctx context.Context, vehicleID, startDate, endDate, excludeShiftID string) (*VehicleAvailabilityResult, error) {
	record, err := s.store.GetVehicle(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, validationErrf("unknown vehicle %q", vehicleID)
		}
		return nil, &PersistenceError{Op: "get vehicle", Err: err}
	}

	if !record.ToModel().InService() {
		s.logger.Debug("Vehicle out of service, reporting unavailable",
			zap.String("vehicle_id", vehicleID))
		return &VehicleAvailabilityResult{
			VehicleID:    vehicleID,
			Available:    false,
			OutOfService: true,
		}, nil
	}

	result, err := s.vehicles.IsAvailable(vehicleID, startDate, endDate, excludeShiftID)
	if err != nil {
		return nil, validationErrf("%v", err)
	}
	return &VehicleAvailabilityResult{
		VehicleID:         vehicleID,
		Available:         result.Available,
		ConflictingShifts: result.ConflictingShifts,
	}, nil
}
