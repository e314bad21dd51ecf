package conflict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlowtransit/shiftboard/pkg/core/model"
)

func rangeAt(t *testing.T, date string, startHour, endHour int) model.TimeRange {
	t.Helper()
	day, err := model.ParseDate(date, time.UTC)
	require.NoError(t, err)
	rng, err := model.NewTimeRange(
		day.Add(time.Duration(startHour)*time.Hour),
		day.Add(time.Duration(endHour)*time.Hour))
	require.NoError(t, err)
	return rng
}

func shiftOn(t *testing.T, id, date string, startHour, endHour int, driverID, vehicleID string) model.Shift {
	t.Helper()
	return model.Shift{
		ID:        id,
		Date:      date,
		Range:     rangeAt(t, date, startHour, endHour),
		Role:      "driver",
		Status:    model.DeriveStatus(driverID),
		DriverID:  driverID,
		VehicleID: vehicleID,
	}
}

func candidateOn(t *testing.T, date string, startHour, endHour int, driverID, vehicleID string) Candidate {
	t.Helper()
	day, err := model.ParseDate(date, time.UTC)
	require.NoError(t, err)
	return Candidate{
		Date:      day,
		Range:     rangeAt(t, date, startHour, endHour),
		DriverID:  driverID,
		VehicleID: vehicleID,
	}
}

func TestFindConflicts_DriverDoubleBooking(t *testing.T) {
	existing := []model.Shift{
		shiftOn(t, "shift-1", "2025-06-02", 9, 12, "driver-7", ""),
	}

	report, err := FindConflicts(candidateOn(t, "2025-06-02", 11, 14, "driver-7", ""), existing)
	require.NoError(t, err)

	require.Len(t, report.Driver, 1)
	assert.Equal(t, "shift-1", report.Driver[0].ID)
	assert.Empty(t, report.Vehicle)
	assert.False(t, report.Empty())
}

func TestFindConflicts_VehicleDoubleBooking(t *testing.T) {
	existing := []model.Shift{
		shiftOn(t, "shift-1", "2025-06-02", 9, 12, "driver-7", "van-1"),
	}

	// Different driver, same vehicle.
	report, err := FindConflicts(candidateOn(t, "2025-06-02", 10, 13, "driver-8", "van-1"), existing)
	require.NoError(t, err)

	assert.Empty(t, report.Driver)
	require.Len(t, report.Vehicle, 1)
	assert.Equal(t, "shift-1", report.Vehicle[0].ID)
}

func TestFindConflicts_SharedDriverAndVehicleReportedOnBoth(t *testing.T) {
	existing := []model.Shift{
		shiftOn(t, "shift-1", "2025-06-02", 9, 12, "driver-7", "van-1"),
	}

	report, err := FindConflicts(candidateOn(t, "2025-06-02", 10, 13, "driver-7", "van-1"), existing)
	require.NoError(t, err)

	require.Len(t, report.Driver, 1)
	require.Len(t, report.Vehicle, 1)
	// All dedupes the shared shift.
	assert.Len(t, report.All(), 1)
}

func TestFindConflicts_NoSharedResourceNoConflict(t *testing.T) {
	existing := []model.Shift{
		shiftOn(t, "shift-1", "2025-06-02", 9, 12, "driver-7", "van-1"),
	}

	report, err := FindConflicts(candidateOn(t, "2025-06-02", 9, 12, "driver-8", "van-2"), existing)
	require.NoError(t, err)
	assert.True(t, report.Empty())
}

func TestFindConflicts_UnassignedCandidateNeverConflicts(t *testing.T) {
	existing := []model.Shift{
		shiftOn(t, "shift-1", "2025-06-02", 9, 12, "driver-7", "van-1"),
	}

	report, err := FindConflicts(candidateOn(t, "2025-06-02", 9, 12, "", ""), existing)
	require.NoError(t, err)
	assert.True(t, report.Empty())
}

func TestFindConflicts_TouchingEndpointsDoNotConflict(t *testing.T) {
	existing := []model.Shift{
		shiftOn(t, "shift-1", "2025-06-02", 9, 12, "driver-7", ""),
	}

	report, err := FindConflicts(candidateOn(t, "2025-06-02", 12, 15, "driver-7", ""), existing)
	require.NoError(t, err)
	assert.True(t, report.Empty())
}

func TestFindConflicts_ExcludesShiftBeingEdited(t *testing.T) {
	existing := []model.Shift{
		shiftOn(t, "shift-1", "2025-06-02", 9, 12, "driver-7", "van-1"),
	}

	candidate := candidateOn(t, "2025-06-02", 9, 12, "driver-7", "van-1")
	candidate.ExcludeShiftID = "shift-1"

	report, err := FindConflicts(candidate, existing)
	require.NoError(t, err)
	assert.True(t, report.Empty())
}

func TestFindConflicts_RecurringShiftBlocksProjectedDate(t *testing.T) {
	// Stored on Monday 2025-06-02, repeating Fridays.
	recurring := shiftOn(t, "shift-1", "2025-06-02", 9, 12, "driver-7", "")
	recurring.Recurrence = model.RecurrenceOn(time.Friday)

	report, err := FindConflicts(candidateOn(t, "2025-06-06", 10, 13, "driver-7", ""), []model.Shift{recurring})
	require.NoError(t, err)

	require.Len(t, report.Driver, 1)
	assert.Equal(t, "shift-1", report.Driver[0].ID)
}

func TestFindConflicts_RecurringShiftDoesNotBlockUnflaggedDate(t *testing.T) {
	recurring := shiftOn(t, "shift-1", "2025-06-02", 9, 12, "driver-7", "")
	recurring.Recurrence = model.RecurrenceOn(time.Friday)

	// Thursday is not flagged and is not the stored date.
	report, err := FindConflicts(candidateOn(t, "2025-06-05", 9, 12, "driver-7", ""), []model.Shift{recurring})
	require.NoError(t, err)
	assert.True(t, report.Empty())
}

func TestFindConflicts_DifferentDatesNeverConflict(t *testing.T) {
	existing := []model.Shift{
		shiftOn(t, "shift-1", "2025-06-02", 9, 12, "driver-7", ""),
	}

	report, err := FindConflicts(candidateOn(t, "2025-06-03", 9, 12, "driver-7", ""), existing)
	require.NoError(t, err)
	assert.True(t, report.Empty())
}

func TestFindConflicts_MultipleBlockingShifts(t *testing.T) {
	existing := []model.Shift{
		shiftOn(t, "shift-1", "2025-06-02", 8, 10, "driver-7", ""),
		shiftOn(t, "shift-2", "2025-06-02", 11, 13, "driver-7", ""),
		shiftOn(t, "shift-3", "2025-06-02", 14, 16, "driver-7", ""),
	}

	report, err := FindConflicts(candidateOn(t, "2025-06-02", 9, 12, "driver-7", ""), existing)
	require.NoError(t, err)

	require.Len(t, report.Driver, 2)
	assert.Equal(t, "shift-1", report.Driver[0].ID)
	assert.Equal(t, "shift-2", report.Driver[1].ID)
}
