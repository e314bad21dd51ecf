package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlowtransit/shiftboard/pkg/core/model"
)

func TestScheduleForDate_EmptyDay(t *testing.T) {
	store := newMockStore()
	s := newTestScheduler(store)

	entries, err := s.ScheduleForDate(context.Background(), "2025-06-02")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestScheduleForDate_RejectsMalformedDate(t *testing.T) {
	store := newMockStore()
	s := newTestScheduler(store)

	_, err := s.ScheduleForDate(context.Background(), "junk")

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestScheduleForDate_SortsByLaneThenStart(t *testing.T) {
	store := newMockStore()
	s := newTestScheduler(store)
	ctx := context.Background()

	// Created out of order on purpose.
	lateDriver, err := s.CreateShift(ctx, testInput("2025-06-02", 13, 16, "driver", "", ""))
	require.NoError(t, err)
	escort, err := s.CreateShift(ctx, testInput("2025-06-02", 8, 11, "escort", "", ""))
	require.NoError(t, err)
	earlyDriver, err := s.CreateShift(ctx, testInput("2025-06-02", 9, 12, "driver", "", ""))
	require.NoError(t, err)

	entries, err := s.ScheduleForDate(ctx, "2025-06-02")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Driver lane comes before escort; within a lane, earlier starts first.
	assert.Equal(t, earlyDriver.ID, entries[0].Shift.ID)
	assert.Equal(t, lateDriver.ID, entries[1].Shift.ID)
	assert.Equal(t, escort.ID, entries[2].Shift.ID)
}

func TestScheduleForDate_ProjectsRecurringShifts(t *testing.T) {
	store := newMockStore()
	s := newTestScheduler(store)
	ctx := context.Background()

	input := testInput("2025-06-02", 9, 12, "driver", "driver-7", "")
	input.Recurrence = model.RecurrenceOn(time.Friday)
	created, err := s.CreateShift(ctx, input)
	require.NoError(t, err)

	entries, err := s.ScheduleForDate(ctx, "2025-06-06")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, created.ID, entry.Shift.ID)
	assert.True(t, entry.Projected)
	// The range is re-anchored to the viewed Friday at the stored wall clock.
	assert.Equal(t, time.Date(2025, 6, 6, 9, 0, 0, 0, time.UTC), entry.Range.Start)
	assert.Equal(t, time.Date(2025, 6, 6, 12, 0, 0, 0, time.UTC), entry.Range.End)

	// On its own date the occurrence is not projected.
	entries, err = s.ScheduleForDate(ctx, "2025-06-02")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Projected)
}

func TestScheduleForDate_SkipsUnflaggedDays(t *testing.T) {
	store := newMockStore()
	s := newTestScheduler(store)
	ctx := context.Background()

	input := testInput("2025-06-02", 9, 12, "driver", "", "")
	input.Recurrence = model.RecurrenceOn(time.Friday)
	_, err := s.CreateShift(ctx, input)
	require.NoError(t, err)

	entries, err := s.ScheduleForDate(ctx, "2025-06-05")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBuildScheduleRows(t *testing.T) {
	store := newMockStore()
	s := newTestScheduler(store)
	ctx := context.Background()

	_, err := s.CreateShift(ctx, testInput("2025-06-02", 9, 12, "driver", "driver-7", "van-1"))
	require.NoError(t, err)
	_, err = s.CreateShift(ctx, testInput("2025-06-03", 10, 14, "escort", "", ""))
	require.NoError(t, err)

	grid, err := s.BuildScheduleRows(ctx, "2025-06-02", "2025-06-04")
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Driver", "Escort"}, grid.Header)
	require.Len(t, grid.Rows, 3)

	assert.Equal(t, "Mon Jun 02 2025", grid.Rows[0].Date)
	assert.Equal(t, "09:00-12:00 driver-7 / van-1", grid.Rows[0].Cells[0])
	assert.Empty(t, grid.Rows[0].Cells[1])

	assert.Equal(t, "Tue Jun 03 2025", grid.Rows[1].Date)
	assert.Empty(t, grid.Rows[1].Cells[0])
	assert.Equal(t, "10:00-14:00 (open)", grid.Rows[1].Cells[1])

	assert.Equal(t, "Wed Jun 04 2025", grid.Rows[2].Date)
	assert.Empty(t, grid.Rows[2].Cells[0])
	assert.Empty(t, grid.Rows[2].Cells[1])
}

func TestBuildScheduleRows_PendingCell(t *testing.T) {
	store := newMockStore()
	s := newTestScheduler(store)
	ctx := context.Background()

	input := testInput("2025-06-02", 9, 12, "driver", "", "")
	input.Pending = true
	_, err := s.CreateShift(ctx, input)
	require.NoError(t, err)

	grid, err := s.BuildScheduleRows(ctx, "2025-06-02", "2025-06-02")
	require.NoError(t, err)
	require.Len(t, grid.Rows, 1)
	assert.Equal(t, "09:00-12:00 (pending)", grid.Rows[0].Cells[0])
}

func TestBuildScheduleRows_RejectsBackwardWindow(t *testing.T) {
	store := newMockStore()
	s := newTestScheduler(store)

	_, err := s.BuildScheduleRows(context.Background(), "2025-06-04", "2025-06-02")

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
