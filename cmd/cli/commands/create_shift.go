package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marlowtransit/shiftboard/pkg/core/services"
)

// CreateShiftCmd creates the createShift command.
func CreateShiftCmd(app *AppContext) *cobra.Command {
	var (
		driverID  string
		vehicleID string
		pending   bool
		repeat    string
	)

	cmd := &cobra.Command{
		Use:   "createShift <date> <start> <end> <role>",
		Short: "Create a shift on the board, e.g. createShift 2025-06-01 09:00 12:00 driver",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, startClock, endClock, role := args[0], args[1], args[2], args[3]

			start, err := parseClock(date, startClock, app.Location)
			if err != nil {
				return err
			}
			end, err := parseClock(date, endClock, app.Location)
			if err != nil {
				return err
			}
			recurrence, err := parseWeekdays(repeat)
			if err != nil {
				return err
			}

			shift, err := app.Scheduler.CreateShift(app.Ctx, services.CreateShiftInput{
				Date:       date,
				Start:      start,
				End:        end,
				Role:       role,
				DriverID:   driverID,
				VehicleID:  vehicleID,
				Pending:    pending,
				Recurrence: recurrence,
			})
			if err != nil {
				return renderError(err)
			}

			fmt.Printf("\n✓ Shift created!\n\n")
			fmt.Printf("ID:      %s\n", shift.ID)
			fmt.Printf("Date:    %s\n", shift.Date)
			fmt.Printf("Time:    %s-%s\n", shift.Range.Start.Format("15:04"), shift.Range.End.Format("15:04"))
			fmt.Printf("Role:    %s\n", shift.Role)
			fmt.Printf("Status:  %s\n", shift.Status)
			if shift.DriverID != "" {
				fmt.Printf("Driver:  %s\n", shift.DriverID)
			}
			if shift.VehicleID != "" {
				fmt.Printf("Vehicle: %s\n", shift.VehicleID)
			}
			if !shift.Recurrence.IsZero() {
				fmt.Printf("Repeats: %s\n", shift.Recurrence)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringVar(&driverID, "driver", "", "Driver to assign")
	cmd.Flags().StringVar(&vehicleID, "vehicle", "", "Vehicle to assign")
	cmd.Flags().BoolVar(&pending, "pending", false, "Mark the shift as awaiting pickup confirmation")
	cmd.Flags().StringVar(&repeat, "repeat", "", "Weekdays the shift repeats on, e.g. mon,wed,fri")

	return cmd
}
