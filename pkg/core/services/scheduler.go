// Package services sequences schedule mutations: validate, check conflicts,
// persist, update the vehicle availability index. It is the only writer of
// the shift collection and the index; UI event handlers call it and render
// the typed results.
package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marlowtransit/shiftboard/pkg/core/availability"
	"github.com/marlowtransit/shiftboard/pkg/core/conflict"
	"github.com/marlowtransit/shiftboard/pkg/core/model"
	"github.com/marlowtransit/shiftboard/pkg/db"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Scheduler owns every mutation of the shift collection and the vehicle
// availability index. Reads of roles go through an internal read-through
// cache; shifts are always re-read so each mutation sees the latest committed
// state from this client.
type Scheduler struct {
	store    db.Store
	vehicles *availability.VehicleIndex
	logger   *zap.Logger
	loc      *time.Location

	roleMu    sync.Mutex
	roleCache []model.Role
}

// NewScheduler builds a scheduler over the given store. The location is the
// single operating timezone all date comparisons happen in; nil defaults to
// UTC.
func NewScheduler(store db.Store, vehicles *availability.VehicleIndex, logger *zap.Logger, loc *time.Location) *Scheduler {
	if vehicles == nil {
		vehicles = availability.NewVehicleIndex()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{store: store, vehicles: vehicles, logger: logger, loc: loc}
}

// WarmIndex seeds the in-memory vehicle index from the assignment mirrors
// persisted on the vehicle records. Called once at startup.
func (s *Scheduler) WarmIndex(ctx context.Context) error {
	records, err := s.store.ListVehicles(ctx)
	if err != nil {
		return &PersistenceError{Op: "list vehicles", Err: err}
	}
	vehicles := make([]model.Vehicle, len(records))
	for i, r := range records {
		vehicles[i] = r.ToModel()
	}
	s.vehicles.Load(vehicles)
	s.logger.Info("Vehicle availability index warmed", zap.Int("vehicles", len(vehicles)))
	return nil
}

// CreateShiftInput describes a new shift to place on the board.
type CreateShiftInput struct {
	Date       string    `validate:"required,datetime=2006-01-02"`
	Start      time.Time `validate:"required"`
	End        time.Time `validate:"required"`
	Role       string    `validate:"required"`
	DriverID   string
	VehicleID  string
	Pending    bool // mark the shift as awaiting pickup confirmation
	Recurrence model.Recurrence
}

// CreateShift validates the input, checks the origin date for driver and
// vehicle conflicts, persists the shift with a fresh id, and records any
// vehicle assignment in the availability index. Recurring shifts are only
// conflict-checked on their origin date here; projected dates are checked
// when later mutations target them.
func (s *Scheduler) CreateShift(ctx context.Context, input CreateShiftInput) (*model.Shift, error) {
	s.logger.Info("Creating shift",
		zap.String("date", input.Date),
		zap.String("role", input.Role),
		zap.String("driver_id", input.DriverID),
		zap.String("vehicle_id", input.VehicleID),
		zap.Stringer("recurrence", input.Recurrence))

	if err := validate.Struct(input); err != nil {
		return nil, validationErrf("%v", err)
	}
	rng, err := model.NewTimeRange(input.Start.In(s.loc), input.End.In(s.loc))
	if err != nil {
		return nil, validationErrf("%v", err)
	}

	status := model.DeriveStatus(input.DriverID)
	if input.Pending && input.DriverID == "" {
		status = model.StatusPending
	}
	shift := model.Shift{
		ID:         uuid.New().String(),
		Date:       input.Date,
		Range:      rng,
		Role:       input.Role,
		Status:     status,
		DriverID:   input.DriverID,
		VehicleID:  input.VehicleID,
		Recurrence: input.Recurrence,
	}
	if err := shift.Validate(); err != nil {
		return nil, validationErrf("%v", err)
	}
	if err := s.requireRole(ctx, shift.Role); err != nil {
		return nil, err
	}
	if err := s.requireVehicleInService(ctx, shift.VehicleID); err != nil {
		return nil, err
	}

	if err := s.checkConflicts(ctx, conflict.Candidate{
		Date:      mustDate(shift.Date, s.loc),
		Range:     shift.Range,
		DriverID:  shift.DriverID,
		VehicleID: shift.VehicleID,
	}); err != nil {
		return nil, err
	}

	s.logger.Debug("Persisting shift", zap.String("id", shift.ID))
	if err := s.store.CreateShiftRecord(ctx, db.NewShiftRecord(shift)); err != nil {
		return nil, &PersistenceError{Op: "create shift", Err: err}
	}

	if shift.VehicleID != "" {
		s.vehicles.Assign(shift.VehicleID, shift.Date, shift.ID)
		if err := s.persistVehicleMirror(ctx, shift.VehicleID); err != nil {
			return nil, s.partialApply(shift.ID, shift.VehicleID, err)
		}
	}

	s.logger.Info("Shift created", zap.String("id", shift.ID), zap.String("date", shift.Date))
	return &shift, nil
}

// UpdateShiftChanges carries the optional field changes of an update. Nil
// pointers leave the field untouched; empty strings clear driver and vehicle
// references.
type UpdateShiftChanges struct {
	Date       *string
	Start      *time.Time
	End        *time.Time
	Role       *string
	DriverID   *string
	VehicleID  *string
	Pending    *bool
	Recurrence *model.Recurrence
}

// UpdateShift merges the changes onto the stored shift, re-checks conflicts
// with the shift itself excluded, persists the result, and keeps the vehicle
// index and its persisted mirrors in step. A mirror failure after the shift
// write surfaces as PartialApplyError, never as success.
func (s *Scheduler) UpdateShift(ctx context.Context, date, id string, changes UpdateShiftChanges) (*model.Shift, error) {
	s.logger.Info("Updating shift", zap.String("id", id), zap.String("date", date))

	current, err := s.fetchShift(ctx, date, id)
	if err != nil {
		return nil, err
	}

	merged := *current
	if changes.Date != nil {
		merged.Date = *changes.Date
	}
	start := merged.Range.Start
	end := merged.Range.End
	if changes.Date != nil && changes.Start == nil && changes.End == nil {
		// Date-only change keeps the wall-clock window on the new day.
		if day, err := model.ParseDate(merged.Date, s.loc); err == nil {
			start = time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), 0, 0, s.loc)
			end = time.Date(day.Year(), day.Month(), day.Day(), end.Hour(), end.Minute(), 0, 0, s.loc)
		}
	}
	if changes.Start != nil {
		start = changes.Start.In(s.loc)
	}
	if changes.End != nil {
		end = changes.End.In(s.loc)
	}
	rng, err := model.NewTimeRange(start, end)
	if err != nil {
		return nil, validationErrf("%v", err)
	}
	merged.Range = rng
	if changes.Role != nil {
		merged.Role = *changes.Role
	}
	if changes.DriverID != nil {
		merged.DriverID = *changes.DriverID
	}
	if changes.VehicleID != nil {
		merged.VehicleID = *changes.VehicleID
	}
	if changes.Recurrence != nil {
		merged.Recurrence = *changes.Recurrence
	}
	merged.Status = model.DeriveStatus(merged.DriverID)
	if changes.Pending != nil && *changes.Pending && merged.DriverID == "" {
		merged.Status = model.StatusPending
	}

	if err := merged.Validate(); err != nil {
		return nil, validationErrf("%v", err)
	}
	if merged.Role != current.Role {
		if err := s.requireRole(ctx, merged.Role); err != nil {
			return nil, err
		}
	}
	if merged.VehicleID != current.VehicleID {
		if err := s.requireVehicleInService(ctx, merged.VehicleID); err != nil {
			return nil, err
		}
	}

	if err := s.checkConflicts(ctx, conflict.Candidate{
		Date:           mustDate(merged.Date, s.loc),
		Range:          merged.Range,
		DriverID:       merged.DriverID,
		VehicleID:      merged.VehicleID,
		ExcludeShiftID: id,
	}); err != nil {
		return nil, err
	}

	s.logger.Debug("Persisting shift update", zap.String("id", id))
	if err := s.store.UpdateShiftRecord(ctx, date, id, db.NewShiftRecord(merged)); err != nil {
		return nil, &PersistenceError{Op: "update shift", Err: err}
	}

	if merged.VehicleID != current.VehicleID || merged.Date != current.Date {
		s.vehicles.Move(current.VehicleID, current.Date, merged.VehicleID, merged.Date, id)
		for _, vehicleID := range distinctIDs(current.VehicleID, merged.VehicleID) {
			if err := s.persistVehicleMirror(ctx, vehicleID); err != nil {
				return nil, s.partialApply(id, vehicleID, err)
			}
		}
	}

	s.logger.Info("Shift updated", zap.String("id", id), zap.String("date", merged.Date))
	return &merged, nil
}

// DeleteShift removes the shift and releases its vehicle assignment.
func (s *Scheduler) DeleteShift(ctx context.Context, date, id string) error {
	s.logger.Info("Deleting shift", zap.String("id", id), zap.String("date", date))

	current, err := s.fetchShift(ctx, date, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteShiftRecord(ctx, date, id); err != nil {
		return &PersistenceError{Op: "delete shift", Err: err}
	}

	if current.VehicleID != "" {
		s.vehicles.Unassign(current.VehicleID, current.Date, id)
		if err := s.persistVehicleMirror(ctx, current.VehicleID); err != nil {
			return s.partialApply(id, current.VehicleID, err)
		}
	}

	s.logger.Info("Shift deleted", zap.String("id", id))
	return nil
}

// MoveShift applies a timeline drag or resize: a new time window and
// optionally a new role lane. The shift's date follows the new start's
// calendar day. The window is always re-validated against existing shifts;
// UI-provided ranges are never trusted as pre-checked.
func (s *Scheduler) MoveShift(ctx context.Context, date, id string, newStart, newEnd time.Time, newRole string) (*model.Shift, error) {
	newDate := newStart.In(s.loc).Format(model.DateLayout)
	changes := UpdateShiftChanges{
		Date:  &newDate,
		Start: &newStart,
		End:   &newEnd,
	}
	if newRole != "" {
		changes.Role = &newRole
	}
	return s.UpdateShift(ctx, date, id, changes)
}

// Roles returns the configured roles in lane order through a read-through
// cache. InvalidateRoles drops the cache when role configuration changes
// outside the scheduler.
func (s *Scheduler) Roles(ctx context.Context) ([]model.Role, error) {
	s.roleMu.Lock()
	defer s.roleMu.Unlock()
	if s.roleCache != nil {
		return s.roleCache, nil
	}
	records, err := s.store.ListRoles(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list roles", Err: err}
	}
	roles := make([]model.Role, len(records))
	for i, r := range records {
		roles[i] = r.ToModel()
	}
	s.roleCache = roles
	return roles, nil
}

// InvalidateRoles drops the cached role list.
func (s *Scheduler) InvalidateRoles() {
	s.roleMu.Lock()
	defer s.roleMu.Unlock()
	s.roleCache = nil
}

// checkConflicts runs the conflict checker against every shift that could
// occur on the candidate's date: the date's own records plus all recurring
// shifts, whatever their primary date.
func (s *Scheduler) checkConflicts(ctx context.Context, candidate conflict.Candidate) error {
	existing, err := s.shiftsTouchingDate(ctx, candidate.Date.Format(model.DateLayout))
	if err != nil {
		return err
	}
	report, err := conflict.FindConflicts(candidate, existing)
	if err != nil {
		return validationErrf("%v", err)
	}
	if !report.Empty() {
		s.logger.Info("Mutation blocked by conflicts",
			zap.Int("driver_conflicts", len(report.Driver)),
			zap.Int("vehicle_conflicts", len(report.Vehicle)))
		return &ConflictError{Driver: report.Driver, Vehicle: report.Vehicle}
	}
	return nil
}

// shiftsTouchingDate fetches the date's own shifts plus every recurring shift
// and converts them to domain form, deduplicated by id.
func (s *Scheduler) shiftsTouchingDate(ctx context.Context, date string) ([]model.Shift, error) {
	onDate, err := s.store.ListShiftsForDate(ctx, date)
	if err != nil {
		return nil, &PersistenceError{Op: "list shifts", Err: err}
	}
	recurring, err := s.store.ListRecurringShifts(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list recurring shifts", Err: err}
	}

	return s.dedupeRecords(onDate, recurring)
}

// dedupeRecords converts record lists to domain shifts, keeping the first
// record seen per id.
func (s *Scheduler) dedupeRecords(lists ...[]db.ShiftRecord) ([]model.Shift, error) {
	seen := make(map[string]bool)
	var shifts []model.Shift
	for _, list := range lists {
		for _, record := range list {
			if seen[record.ID] {
				continue
			}
			seen[record.ID] = true
			shift, err := record.ToModel(s.loc)
			if err != nil {
				return nil, &PersistenceError{Op: "decode shift", Err: err}
			}
			shifts = append(shifts, shift)
		}
	}
	return shifts, nil
}

func (s *Scheduler) fetchShift(ctx context.Context, date, id string) (*model.Shift, error) {
	record, err := s.store.GetShiftRecord(ctx, date, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, validationErrf("shift %s not found on %s", id, date)
		}
		return nil, &PersistenceError{Op: "get shift", Err: err}
	}
	shift, err := record.ToModel(s.loc)
	if err != nil {
		return nil, &PersistenceError{Op: "decode shift", Err: err}
	}
	return &shift, nil
}

func (s *Scheduler) requireRole(ctx context.Context, roleID string) error {
	roles, err := s.Roles(ctx)
	if err != nil {
		return err
	}
	for _, role := range roles {
		if role.ID == roleID {
			return nil
		}
	}
	return validationErrf("unknown role %q", roleID)
}

// requireVehicleInService short-circuits vehicle assignments to vehicles the
// registry marks out of service, before the availability index is consulted.
func (s *Scheduler) requireVehicleInService(ctx context.Context, vehicleID string) error {
	if vehicleID == "" {
		return nil
	}
	record, err := s.store.GetVehicle(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return validationErrf("unknown vehicle %q", vehicleID)
		}
		return &PersistenceError{Op: "get vehicle", Err: err}
	}
	if !record.ToModel().InService() {
		return &OutOfServiceError{VehicleID: vehicleID}
	}
	return nil
}

func (s *Scheduler) persistVehicleMirror(ctx context.Context, vehicleID string) error {
	return s.store.UpdateVehicleAssignments(ctx, vehicleID, s.vehicles.Snapshot(vehicleID))
}

// partialApply logs the shift/mirror divergence distinctly from ordinary
// failures so operators can reconcile, then returns the typed error.
func (s *Scheduler) partialApply(shiftID, vehicleID string, err error) error {
	s.logger.Error("Shift record saved but vehicle assignment mirror update failed",
		zap.String("shift_id", shiftID),
		zap.String("vehicle_id", vehicleID),
		zap.Error(err))
	return &PartialApplyError{ShiftID: shiftID, VehicleID: vehicleID, Err: err}
}

func distinctIDs(ids ...string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// mustDate parses a date string already validated upstream.
func mustDate(date string, loc *time.Location) time.Time {
	t, err := model.ParseDate(date, loc)
	if err != nil {
		panic(err)
	}
	return t
}
