package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlowtransit/shiftboard/pkg/core/model"
)

func TestAssignAndIsAvailable(t *testing.T) {
	idx := NewVehicleIndex()
	idx.Assign("van-1", "2025-06-02", "shift-1")

	result, err := idx.IsAvailable("van-1", "2025-06-02", "2025-06-02", "")
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, []string{"shift-1"}, result.ConflictingShifts)

	// Other dates and other vehicles stay free.
	result, err = idx.IsAvailable("van-1", "2025-06-03", "2025-06-03", "")
	require.NoError(t, err)
	assert.True(t, result.Available)

	result, err = idx.IsAvailable("van-2", "2025-06-02", "2025-06-02", "")
	require.NoError(t, err)
	assert.True(t, result.Available)
}

func TestIsAvailable_MultiDateWindow(t *testing.T) {
	idx := NewVehicleIndex()
	idx.Assign("van-1", "2025-06-03", "shift-b")
	idx.Assign("van-1", "2025-06-05", "shift-a")

	result, err := idx.IsAvailable("van-1", "2025-06-01", "2025-06-07", "")
	require.NoError(t, err)
	assert.False(t, result.Available)
	// Sorted for deterministic rendering.
	assert.Equal(t, []string{"shift-a", "shift-b"}, result.ConflictingShifts)
}

func TestIsAvailable_ExcludesShiftBeingEdited(t *testing.T) {
	idx := NewVehicleIndex()
	idx.Assign("van-1", "2025-06-02", "shift-1")

	result, err := idx.IsAvailable("van-1", "2025-06-02", "2025-06-02", "shift-1")
	require.NoError(t, err)
	assert.True(t, result.Available)
}

func TestIsAvailable_RejectsBackwardWindow(t *testing.T) {
	idx := NewVehicleIndex()

	_, err := idx.IsAvailable("van-1", "2025-06-05", "2025-06-02", "")
	assert.Error(t, err)
}

func TestIsAvailable_RejectsMalformedDates(t *testing.T) {
	idx := NewVehicleIndex()

	_, err := idx.IsAvailable("van-1", "junk", "2025-06-02", "")
	assert.Error(t, err)
}

func TestUnassign_IsIdempotentAndDropsEmptyEntries(t *testing.T) {
	idx := NewVehicleIndex()
	idx.Assign("van-1", "2025-06-02", "shift-1")

	idx.Unassign("van-1", "2025-06-02", "shift-1")
	idx.Unassign("van-1", "2025-06-02", "shift-1") // absent, no-op
	idx.Unassign("van-9", "2025-06-02", "shift-1") // unknown vehicle, no-op

	result, err := idx.IsAvailable("van-1", "2025-06-02", "2025-06-02", "")
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Empty(t, idx.Snapshot("van-1"), "empty entries are dropped, not kept as empty sets")
}

func TestAssign_SameTripleTwiceIsNoOp(t *testing.T) {
	idx := NewVehicleIndex()
	idx.Assign("van-1", "2025-06-02", "shift-1")
	idx.Assign("van-1", "2025-06-02", "shift-1")

	result, err := idx.IsAvailable("van-1", "2025-06-02", "2025-06-02", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"shift-1"}, result.ConflictingShifts)
}

func TestReassign_MovesBetweenVehicles(t *testing.T) {
	idx := NewVehicleIndex()
	idx.Assign("van-1", "2025-06-02", "shift-1")

	idx.Reassign("van-1", "van-2", "2025-06-02", "shift-1")

	old, err := idx.IsAvailable("van-1", "2025-06-02", "2025-06-02", "")
	require.NoError(t, err)
	assert.True(t, old.Available)

	moved, err := idx.IsAvailable("van-2", "2025-06-02", "2025-06-02", "")
	require.NoError(t, err)
	assert.False(t, moved.Available)
}

func TestMove_AcrossDates(t *testing.T) {
	idx := NewVehicleIndex()
	idx.Assign("van-1", "2025-06-02", "shift-1")

	idx.Move("van-1", "2025-06-02", "van-1", "2025-06-09", "shift-1")

	assert.Equal(t, map[string][]string{"2025-06-09": {"shift-1"}}, idx.Snapshot("van-1"))
}

func TestMove_EmptySidesClearOrCreate(t *testing.T) {
	idx := NewVehicleIndex()

	// No previous vehicle: assignment is created.
	idx.Move("", "", "van-1", "2025-06-02", "shift-1")
	assert.Equal(t, map[string][]string{"2025-06-02": {"shift-1"}}, idx.Snapshot("van-1"))

	// No new vehicle: assignment is cleared.
	idx.Move("van-1", "2025-06-02", "", "", "shift-1")
	assert.Empty(t, idx.Snapshot("van-1"))
}

func TestLoad_SeedsFromPersistedMirrors(t *testing.T) {
	idx := NewVehicleIndex()
	idx.Load([]model.Vehicle{
		{
			ID:     "van-1",
			Status: model.VehicleActive,
			AssignedShifts: map[string][]string{
				"2025-06-02": {"shift-1", "shift-2"},
				"2025-06-03": {},
			},
		},
		{ID: "van-2", Status: model.VehicleActive},
	})

	result, err := idx.IsAvailable("van-1", "2025-06-02", "2025-06-02", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"shift-1", "shift-2"}, result.ConflictingShifts)

	// Empty date lists are not materialized.
	snapshot := idx.Snapshot("van-1")
	_, hasEmptyDate := snapshot["2025-06-03"]
	assert.False(t, hasEmptyDate)

	assert.Empty(t, idx.Snapshot("van-2"))
}

func TestLoad_ReplacesExistingVehicleState(t *testing.T) {
	idx := NewVehicleIndex()
	idx.Assign("van-1", "2025-06-02", "stale-shift")

	idx.Load([]model.Vehicle{
		{
			ID:             "van-1",
			Status:         model.VehicleActive,
			AssignedShifts: map[string][]string{"2025-06-09": {"shift-1"}},
		},
	})

	assert.Equal(t, map[string][]string{"2025-06-09": {"shift-1"}}, idx.Snapshot("van-1"))
}

func TestSnapshot_ReturnsCopy(t *testing.T) {
	idx := NewVehicleIndex()
	idx.Assign("van-1", "2025-06-02", "shift-1")

	snapshot := idx.Snapshot("van-1")
	snapshot["2025-06-02"] = append(snapshot["2025-06-02"], "intruder")

	fresh := idx.Snapshot("van-1")
	assert.Equal(t, []string{"shift-1"}, fresh["2025-06-02"])
}
