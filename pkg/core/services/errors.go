package services

import (
	"fmt"
	"strings"

	"github.com/marlowtransit/shiftboard/pkg/core/model"
)

// ValidationError reports malformed input: a backwards time range, a missing
// role or date, a midnight-spanning shift. Never retried automatically.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

func validationErrf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ConflictError blocks a mutation that would double-book a driver or a
// vehicle. Driver and vehicle conflicts are carried separately so the UI can
// surface both reasons distinctly.
type ConflictError struct {
	Driver  []model.Shift
	Vehicle []model.Shift
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.Driver) > 0 {
		parts = append(parts, fmt.Sprintf("driver double-booked by %s", shiftIDs(e.Driver)))
	}
	if len(e.Vehicle) > 0 {
		parts = append(parts, fmt.Sprintf("vehicle double-booked by %s", shiftIDs(e.Vehicle)))
	}
	total := len(e.conflictIDs())
	return fmt.Sprintf("%d conflicting shift(s): %s", total, strings.Join(parts, "; "))
}

// ConflictingShiftIDs returns each blocking shift id once.
func (e *ConflictError) ConflictingShiftIDs() []string {
	return e.conflictIDs()
}

func (e *ConflictError) conflictIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, s := range e.Driver {
		if !seen[s.ID] {
			seen[s.ID] = true
			ids = append(ids, s.ID)
		}
	}
	for _, s := range e.Vehicle {
		if !seen[s.ID] {
			seen[s.ID] = true
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func shiftIDs(shifts []model.Shift) string {
	ids := make([]string, len(shifts))
	for i, s := range shifts {
		ids[i] = s.ID
	}
	return strings.Join(ids, ", ")
}

// OutOfServiceError rejects a vehicle assignment because the vehicle registry
// marks the vehicle out of service. The availability index is never consulted
// in that case.
type OutOfServiceError struct {
	VehicleID string
}

func (e *OutOfServiceError) Error() string {
	return fmt.Sprintf("vehicle %s is out of service", e.VehicleID)
}

// PersistenceError wraps a storage failure. Surfaced to callers as a generic
// retryable failure; the underlying cause is preserved for logs.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// PartialApplyError reports that the shift record was written but the
// companion vehicle assignment update failed, leaving the stored mirror
// behind the shift state. Operators reconcile these manually; callers must
// treat the whole operation as failed.
type PartialApplyError struct {
	ShiftID   string
	VehicleID string
	Err       error
}

func (e *PartialApplyError) Error() string {
	return fmt.Sprintf("shift %s was saved but the assignment update for vehicle %s failed: %v",
		e.ShiftID, e.VehicleID, e.Err)
}

func (e *PartialApplyError) Unwrap() error {
	return e.Err
}
