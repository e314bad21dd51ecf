package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/marlowtransit/shiftboard/pkg/core/model"
	"github.com/marlowtransit/shiftboard/pkg/core/recurrence"
)

// ScheduleEntry is one shift occurrence as it appears on a given calendar
// day. Projected is true when the occurrence comes from a recurrence pattern
// rather than the shift's own stored date; Range is then re-anchored to the
// viewed day.
type ScheduleEntry struct {
	Shift     model.Shift
	Range     model.TimeRange
	Projected bool
}

// ScheduleForDate lists every shift occurrence visible on the given date,
// including recurring shifts projected from other weekdays, sorted by role
// lane order and then start time.
func (s *Scheduler) ScheduleForDate(ctx context.Context, date string) ([]ScheduleEntry, error) {
	day, err := model.ParseDate(date, s.loc)
	if err != nil {
		return nil, validationErrf("%v", err)
	}

	shifts, err := s.shiftsTouchingDate(ctx, date)
	if err != nil {
		return nil, err
	}

	var entries []ScheduleEntry
	for _, shift := range shifts {
		occurs, err := recurrence.OccursOn(shift, day)
		if err != nil {
			return nil, &PersistenceError{Op: "resolve recurrence", Err: err}
		}
		if !occurs {
			continue
		}
		entries = append(entries, ScheduleEntry{
			Shift:     shift,
			Range:     recurrence.ProjectedRange(shift, day),
			Projected: shift.Date != date,
		})
	}

	laneOrder, err := s.roleLaneOrder(ctx)
	if err != nil {
		return nil, err
	}
	lane := func(roleID string) int {
		if pos, ok := laneOrder[roleID]; ok {
			return pos
		}
		return len(laneOrder) // unconfigured roles sort last
	}
	sort.SliceStable(entries, func(i, j int) bool {
		li, lj := lane(entries[i].Shift.Role), lane(entries[j].Shift.Role)
		if li != lj {
			return li < lj
		}
		return entries[i].Range.Start.Before(entries[j].Range.Start)
	})

	s.logger.Debug("Built schedule view",
		zap.String("date", date),
		zap.Int("entries", len(entries)))
	return entries, nil
}

// ScheduleGrid is a publishable rendering of the schedule over a date range:
// a header of role lanes and one row per day.
type ScheduleGrid struct {
	Header []string
	Rows   []ScheduleRow
}

// ScheduleRow is one calendar day of the grid. Cells line up with the grid
// header's role columns; each cell lists that role's occurrences for the day.
type ScheduleRow struct {
	Date  string // "Mon Jan 02 2006"
	Cells []string
}

// BuildScheduleRows assembles the schedule between two dates inclusive into a
// grid of days by role lanes, ready for publishing.
func (s *Scheduler) BuildScheduleRows(ctx context.Context, startDate, endDate string) (*ScheduleGrid, error) {
	start, err := model.ParseDate(startDate, s.loc)
	if err != nil {
		return nil, validationErrf("%v", err)
	}
	end, err := model.ParseDate(endDate, s.loc)
	if err != nil {
		return nil, validationErrf("%v", err)
	}
	if end.Before(start) {
		return nil, validationErrf("end date %s precedes start date %s", endDate, startDate)
	}

	roles, err := s.Roles(ctx)
	if err != nil {
		return nil, err
	}

	header := make([]string, 0, len(roles)+1)
	header = append(header, "Date")
	for _, role := range roles {
		header = append(header, role.Name)
	}

	// One fetch for the whole range: the window's own shifts plus every
	// recurring shift, which can project into the window from outside it.
	stored, err := s.store.ListShiftsBetween(ctx, startDate, endDate)
	if err != nil {
		return nil, &PersistenceError{Op: "list shifts", Err: err}
	}
	recurring, err := s.store.ListRecurringShifts(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list recurring shifts", Err: err}
	}
	shifts, err := s.dedupeRecords(stored, recurring)
	if err != nil {
		return nil, err
	}

	grid := &ScheduleGrid{Header: header}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(model.DateLayout)

		byRole := make(map[string][]ScheduleEntry)
		for _, shift := range shifts {
			occurs, err := recurrence.OccursOn(shift, day)
			if err != nil {
				return nil, &PersistenceError{Op: "resolve recurrence", Err: err}
			}
			if !occurs {
				continue
			}
			byRole[shift.Role] = append(byRole[shift.Role], ScheduleEntry{
				Shift:     shift,
				Range:     recurrence.ProjectedRange(shift, day),
				Projected: shift.Date != date,
			})
		}
		for _, entries := range byRole {
			sort.SliceStable(entries, func(i, j int) bool {
				return entries[i].Range.Start.Before(entries[j].Range.Start)
			})
		}

		row := ScheduleRow{Date: day.Format("Mon Jan 02 2006")}
		for _, role := range roles {
			row.Cells = append(row.Cells, formatCell(byRole[role.ID]))
		}
		grid.Rows = append(grid.Rows, row)
	}

	s.logger.Info("Built schedule grid",
		zap.String("start", startDate),
		zap.String("end", endDate),
		zap.Int("days", len(grid.Rows)))
	return grid, nil
}

func formatCell(entries []ScheduleEntry) string {
	cell := ""
	for _, entry := range entries {
		if cell != "" {
			cell += "\n"
		}
		line := fmt.Sprintf("%s-%s",
			entry.Range.Start.Format("15:04"),
			entry.Range.End.Format("15:04"))
		switch {
		case entry.Shift.DriverID != "":
			line += " " + entry.Shift.DriverID
		case entry.Shift.Status == model.StatusPending:
			line += " (pending)"
		default:
			line += " (open)"
		}
		if entry.Shift.VehicleID != "" {
			line += " / " + entry.Shift.VehicleID
		}
		cell += line
	}
	return cell
}

// roleLaneOrder maps role ids to their lane position.
func (s *Scheduler) roleLaneOrder(ctx context.Context) (map[string]int, error) {
	roles, err := s.Roles(ctx)
	if err != nil {
		return nil, err
	}
	order := make(map[string]int, len(roles))
	for i, role := range roles {
		order[role.ID] = i
	}
	return order, nil
}
