package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// VehicleAvailabilityCmd creates the vehicleAvailability command. The end date
// is optional; omitting it queries a single day.
func VehicleAvailabilityCmd(app *AppContext) *cobra.Command {
	var excludeShiftID string

	cmd := &cobra.Command{
		Use:   "vehicleAvailability <vehicle_id> <start_date> [end_date]",
		Short: "Check whether a vehicle is free over a date range",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			vehicleID, startDate := args[0], args[1]
			endDate := startDate
			if len(args) == 3 {
				endDate = args[2]
			}

			result, err := app.Scheduler.VehicleAvailability(app.Ctx, vehicleID, startDate, endDate, excludeShiftID)
			if err != nil {
				return renderError(err)
			}

			switch {
			case result.OutOfService:
				fmt.Printf("\n✗ Vehicle %s is out of service.\n\n", vehicleID)
			case result.Available:
				fmt.Printf("\n✓ Vehicle %s is available %s to %s.\n\n", vehicleID, startDate, endDate)
			default:
				fmt.Printf("\n✗ Vehicle %s is booked by %d shift(s):\n", vehicleID, len(result.ConflictingShifts))
				for _, id := range result.ConflictingShifts {
					fmt.Printf("  - %s\n", id)
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&excludeShiftID, "exclude", "", "Shift id to ignore, useful when editing that shift")

	return cmd
}
