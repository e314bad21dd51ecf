package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/marlowtransit/shiftboard/pkg/db"
)

// GetVehicle retrieves a vehicle and its assignment mirror by id.
func (s *Store) GetVehicle(ctx context.Context, vehicleID string) (*db.VehicleRecord, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, status, assigned_shifts
		FROM vehicle
		WHERE id = $1
	`, vehicleID)

	var r db.VehicleRecord
	if err := row.Scan(&r.ID, &r.Name, &r.Status, &r.AssignedShifts); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle %s: %w", vehicleID, err)
	}
	return &r, nil
}

// ListVehicles retrieves every vehicle in the registry.
func (s *Store) ListVehicles(ctx context.Context) ([]db.VehicleRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, status, assigned_shifts
		FROM vehicle
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []db.VehicleRecord
	for rows.Next() {
		var r db.VehicleRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Status, &r.AssignedShifts); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vehicles: %w", err)
	}
	return vehicles, nil
}

// UpdateVehicleAssignments replaces a vehicle's date -> shift-ids mirror.
func (s *Store) UpdateVehicleAssignments(ctx context.Context, vehicleID string, assignedShifts map[string][]string) error {
	if assignedShifts == nil {
		assignedShifts = map[string][]string{}
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE vehicle SET assigned_shifts = $2 WHERE id = $1
	`, vehicleID, assignedShifts)
	if err != nil {
		return fmt.Errorf("failed to update vehicle %s assignments: %w", vehicleID, err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
