package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/marlowtransit/shiftboard/pkg/core/model"
	"github.com/marlowtransit/shiftboard/pkg/db"
)

const shiftColumns = `id, shift_date, start_time, end_time, role, status, driver_id, vehicle_id, recurrence`

// ListShiftsForDate retrieves the shifts whose primary date is the given day.
func (s *Store) ListShiftsForDate(ctx context.Context, date string) ([]db.ShiftRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+shiftColumns+`
		FROM shift
		WHERE shift_date = $1
	`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts for %s: %w", date, err)
	}
	defer rows.Close()

	return scanShifts(rows)
}

// ListShiftsBetween retrieves shifts with a primary date in [startDate, endDate].
func (s *Store) ListShiftsBetween(ctx context.Context, startDate, endDate string) ([]db.ShiftRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+shiftColumns+`
		FROM shift
		WHERE shift_date BETWEEN $1 AND $2
	`, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts between %s and %s: %w", startDate, endDate, err)
	}
	defer rows.Close()

	return scanShifts(rows)
}

// ListRecurringShifts retrieves every shift carrying a recurrence pattern,
// regardless of primary date. Views of any date must consider these.
func (s *Store) ListRecurringShifts(ctx context.Context) ([]db.ShiftRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+shiftColumns+`
		FROM shift
		WHERE recurrence <> 0
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring shifts: %w", err)
	}
	defer rows.Close()

	return scanShifts(rows)
}

// GetShiftRecord retrieves a single shift by date and id.
func (s *Store) GetShiftRecord(ctx context.Context, date, id string) (*db.ShiftRecord, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+shiftColumns+`
		FROM shift
		WHERE shift_date = $1 AND id = $2
	`, date, id)

	record, err := scanShift(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get shift %s: %w", id, err)
	}
	return record, nil
}

// CreateShiftRecord inserts a new shift.
func (s *Store) CreateShiftRecord(ctx context.Context, record db.ShiftRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO shift (`+shiftColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, record.ID, record.Date, record.StartTime, record.EndTime, record.Role,
		record.Status, nullable(record.DriverID), nullable(record.VehicleID), record.Recurrence)
	if err != nil {
		return fmt.Errorf("failed to insert shift: %w", err)
	}
	return nil
}

// UpdateShiftRecord replaces the stored fields of an existing shift. The date
// parameter addresses the record; the new date (possibly different, when a
// shift is dragged to another day) comes from the record itself.
func (s *Store) UpdateShiftRecord(ctx context.Context, date, id string, record db.ShiftRecord) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE shift
		SET shift_date = $3, start_time = $4, end_time = $5, role = $6,
		    status = $7, driver_id = $8, vehicle_id = $9, recurrence = $10
		WHERE shift_date = $1 AND id = $2
	`, date, id, record.Date, record.StartTime, record.EndTime, record.Role,
		record.Status, nullable(record.DriverID), nullable(record.VehicleID), record.Recurrence)
	if err != nil {
		return fmt.Errorf("failed to update shift %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// DeleteShiftRecord removes a shift by date and id.
func (s *Store) DeleteShiftRecord(ctx context.Context, date, id string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM shift WHERE shift_date = $1 AND id = $2
	`, date, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func scanShifts(rows pgx.Rows) ([]db.ShiftRecord, error) {
	var records []db.ShiftRecord
	for rows.Next() {
		record, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}
	return records, nil
}

func scanShift(row pgx.Row) (*db.ShiftRecord, error) {
	var r db.ShiftRecord
	var shiftDate, startTime, endTime time.Time
	var driverID, vehicleID *string
	if err := row.Scan(&r.ID, &shiftDate, &startTime, &endTime, &r.Role,
		&r.Status, &driverID, &vehicleID, &r.Recurrence); err != nil {
		return nil, err
	}
	r.Date = shiftDate.Format(model.DateLayout)
	r.StartTime = startTime.UTC().Format(time.RFC3339)
	r.EndTime = endTime.UTC().Format(time.RFC3339)
	if driverID != nil {
		r.DriverID = *driverID
	}
	if vehicleID != nil {
		r.VehicleID = *vehicleID
	}
	return &r, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
