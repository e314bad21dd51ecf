package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlowtransit/shiftboard/pkg/core/model"
)

func TestShiftRecordToModel(t *testing.T) {
	record := ShiftRecord{
		ID:         "shift-1",
		Date:       "2025-06-02",
		StartTime:  "2025-06-02T09:00:00Z",
		EndTime:    "2025-06-02T12:00:00Z",
		Role:       "driver",
		Status:     "assigned",
		DriverID:   "driver-7",
		VehicleID:  "van-1",
		Recurrence: int(model.RecurrenceOn(time.Wednesday, time.Friday)),
	}

	shift, err := record.ToModel(time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "shift-1", shift.ID)
	assert.Equal(t, "2025-06-02", shift.Date)
	assert.Equal(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), shift.Range.Start)
	assert.Equal(t, time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC), shift.Range.End)
	assert.Equal(t, model.StatusAssigned, shift.Status)
	assert.Equal(t, "driver-7", shift.DriverID)
	assert.Equal(t, "van-1", shift.VehicleID)
	assert.True(t, shift.Recurrence.On(time.Wednesday))
	assert.True(t, shift.Recurrence.On(time.Friday))
	assert.False(t, shift.Recurrence.On(time.Monday))

	assert.NoError(t, shift.Validate())
}

func TestShiftRecordToModel_ConvertsToOperatingLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	record := ShiftRecord{
		ID:        "shift-1",
		Date:      "2025-06-02",
		StartTime: "2025-06-02T08:00:00Z", // 09:00 BST
		EndTime:   "2025-06-02T11:00:00Z",
		Role:      "driver",
		Status:    "available",
	}

	shift, err := record.ToModel(loc)
	require.NoError(t, err)
	assert.Equal(t, 9, shift.Range.Start.Hour())
	assert.Equal(t, loc, shift.Range.Start.Location())
}

func TestShiftRecordToModel_NilLocationDefaultsToUTC(t *testing.T) {
	record := ShiftRecord{
		ID:        "shift-1",
		Date:      "2025-06-02",
		StartTime: "2025-06-02T09:00:00Z",
		EndTime:   "2025-06-02T12:00:00Z",
		Role:      "driver",
		Status:    "available",
	}

	shift, err := record.ToModel(nil)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, shift.Range.Start.Location())
}

func TestShiftRecordToModel_RejectsBadInstants(t *testing.T) {
	record := ShiftRecord{
		ID:        "shift-1",
		Date:      "2025-06-02",
		StartTime: "yesterday",
		EndTime:   "2025-06-02T12:00:00Z",
	}

	_, err := record.ToModel(time.UTC)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid start time")
}

func TestShiftRecordToModel_RejectsBackwardRange(t *testing.T) {
	record := ShiftRecord{
		ID:        "shift-1",
		Date:      "2025-06-02",
		StartTime: "2025-06-02T12:00:00Z",
		EndTime:   "2025-06-02T09:00:00Z",
	}

	_, err := record.ToModel(time.UTC)
	assert.Error(t, err)
}

func TestNewShiftRecordRoundTrip(t *testing.T) {
	rng, err := model.NewTimeRange(
		time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	shift := model.Shift{
		ID:         "shift-1",
		Date:       "2025-06-02",
		Range:      rng,
		Role:       "driver",
		Status:     model.StatusPending,
		Recurrence: model.RecurrenceOn(time.Monday),
	}

	back, err := NewShiftRecord(shift).ToModel(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, shift, back)
}

func TestVehicleRecordToModel(t *testing.T) {
	record := VehicleRecord{
		ID:     "van-1",
		Name:   "Transit 1",
		Status: "out_of_service",
		AssignedShifts: map[string][]string{
			"2025-06-02": {"shift-1"},
		},
	}

	vehicle := record.ToModel()
	assert.Equal(t, model.VehicleOutOfService, vehicle.Status)
	assert.False(t, vehicle.InService())
	assert.Equal(t, []string{"shift-1"}, vehicle.AssignedShifts["2025-06-02"])
}

func TestRoleRecordToModel(t *testing.T) {
	role := RoleRecord{ID: "driver", Name: "Driver", Order: 2}.ToModel()
	assert.Equal(t, model.Role{ID: "driver", Name: "Driver", Order: 2}, role)
}
