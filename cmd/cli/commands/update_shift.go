package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marlowtransit/shiftboard/pkg/core/services"
)

// UpdateShiftCmd creates the updateShift command. Only flags the caller sets
// are applied; --driver "" clears the driver and reopens the shift.
func UpdateShiftCmd(app *AppContext) *cobra.Command {
	var (
		newDate   string
		startTime string
		endTime   string
		role      string
		driverID  string
		vehicleID string
		pending   bool
		repeat    string
	)

	cmd := &cobra.Command{
		Use:   "updateShift <date> <shift_id>",
		Short: "Update fields of an existing shift",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, id := args[0], args[1]

			changes := services.UpdateShiftChanges{}
			targetDate := date
			if cmd.Flags().Changed("date") {
				changes.Date = &newDate
				targetDate = newDate
			}
			if cmd.Flags().Changed("start") {
				start, err := parseClock(targetDate, startTime, app.Location)
				if err != nil {
					return err
				}
				changes.Start = &start
			}
			if cmd.Flags().Changed("end") {
				end, err := parseClock(targetDate, endTime, app.Location)
				if err != nil {
					return err
				}
				changes.End = &end
			}
			if cmd.Flags().Changed("role") {
				changes.Role = &role
			}
			if cmd.Flags().Changed("driver") {
				changes.DriverID = &driverID
			}
			if cmd.Flags().Changed("vehicle") {
				changes.VehicleID = &vehicleID
			}
			if cmd.Flags().Changed("pending") {
				changes.Pending = &pending
			}
			if cmd.Flags().Changed("repeat") {
				recurrence, err := parseWeekdays(repeat)
				if err != nil {
					return err
				}
				changes.Recurrence = &recurrence
			}

			shift, err := app.Scheduler.UpdateShift(app.Ctx, date, id, changes)
			if err != nil {
				return renderError(err)
			}

			fmt.Printf("\n✓ Shift %s updated: %s %s-%s role=%s status=%s\n\n",
				shift.ID, shift.Date,
				shift.Range.Start.Format("15:04"), shift.Range.End.Format("15:04"),
				shift.Role, shift.Status)

			return nil
		},
	}

	cmd.Flags().StringVar(&newDate, "date", "", "Move the shift to another date")
	cmd.Flags().StringVar(&startTime, "start", "", "New start time (HH:MM)")
	cmd.Flags().StringVar(&endTime, "end", "", "New end time (HH:MM)")
	cmd.Flags().StringVar(&role, "role", "", "New role")
	cmd.Flags().StringVar(&driverID, "driver", "", "New driver (empty clears)")
	cmd.Flags().StringVar(&vehicleID, "vehicle", "", "New vehicle (empty clears)")
	cmd.Flags().BoolVar(&pending, "pending", false, "Mark as awaiting pickup confirmation")
	cmd.Flags().StringVar(&repeat, "repeat", "", "New repeat weekdays (empty clears)")

	return cmd
}
