package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/marlowtransit/shiftboard/pkg/core/model"
	"github.com/marlowtransit/shiftboard/pkg/core/services"
)

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
	"sat": time.Saturday,
}

// parseWeekdays turns a comma-separated list like "mon,wed,fri" into a
// recurrence pattern.
func parseWeekdays(list string) (model.Recurrence, error) {
	if list == "" {
		return 0, nil
	}
	var days []time.Weekday
	for _, part := range strings.Split(list, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if len(name) > 3 {
			name = name[:3]
		}
		day, ok := weekdayNames[name]
		if !ok {
			return 0, fmt.Errorf("unknown weekday %q", part)
		}
		days = append(days, day)
	}
	return model.RecurrenceOn(days...), nil
}

// parseClock combines a YYYY-MM-DD date and an HH:MM clock string into an
// instant in the operating timezone.
func parseClock(date, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(model.DateLayout+" 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q on %s: %w", clock, date, err)
	}
	return t, nil
}

// renderError prints scheduler errors in a form an administrator can act on,
// returning the error unchanged so cobra still exits non-zero.
func renderError(err error) error {
	var conflictErr *services.ConflictError
	if errors.As(err, &conflictErr) {
		fmt.Printf("\n✗ Blocked by %d conflicting shift(s):\n", len(conflictErr.ConflictingShiftIDs()))
		for _, s := range conflictErr.Driver {
			fmt.Printf("  - %s (%s %s-%s) driver %s\n", s.ID, s.Date,
				s.Range.Start.Format("15:04"), s.Range.End.Format("15:04"), s.DriverID)
		}
		for _, s := range conflictErr.Vehicle {
			fmt.Printf("  - %s (%s %s-%s) vehicle %s\n", s.ID, s.Date,
				s.Range.Start.Format("15:04"), s.Range.End.Format("15:04"), s.VehicleID)
		}
		fmt.Println()
		return err
	}

	var persistenceErr *services.PersistenceError
	if errors.As(err, &persistenceErr) {
		fmt.Println("\n✗ Storage failure - please retry.")
		return err
	}

	var partialErr *services.PartialApplyError
	if errors.As(err, &partialErr) {
		fmt.Printf("\n✗ Shift %s was saved but vehicle %s's assignment record was not updated.\n",
			partialErr.ShiftID, partialErr.VehicleID)
		fmt.Println("  The vehicle availability data needs manual reconciliation.")
		return err
	}

	return err
}
