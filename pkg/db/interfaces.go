package db

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ShiftStore defines the shift record operations the scheduler needs. Shift
// records are scoped by their primary date; recurring shifts are fetched
// separately so views of other dates can project them.
type ShiftStore interface {
	ListShiftsForDate(ctx context.Context, date string) ([]ShiftRecord, error)
	ListShiftsBetween(ctx context.Context, startDate, endDate string) ([]ShiftRecord, error)
	ListRecurringShifts(ctx context.Context) ([]ShiftRecord, error)
	GetShiftRecord(ctx context.Context, date, id string) (*ShiftRecord, error)
	CreateShiftRecord(ctx context.Context, record ShiftRecord) error
	UpdateShiftRecord(ctx context.Context, date, id string, record ShiftRecord) error
	DeleteShiftRecord(ctx context.Context, date, id string) error
}

// VehicleStore defines the vehicle registry operations the scheduler needs.
type VehicleStore interface {
	GetVehicle(ctx context.Context, vehicleID string) (*VehicleRecord, error)
	ListVehicles(ctx context.Context) ([]VehicleRecord, error)
	UpdateVehicleAssignments(ctx context.Context, vehicleID string, assignedShifts map[string][]string) error
}

// RoleStore defines the role configuration operations the scheduler needs.
type RoleStore interface {
	// ListRoles returns the configured roles ordered by their timeline order.
	ListRoles(ctx context.Context) ([]RoleRecord, error)
}

// Store is the full persistence surface consumed by the scheduler.
// The postgres-backed store implements it.
type Store interface {
	ShiftStore
	VehicleStore
	RoleStore
}
