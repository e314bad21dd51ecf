package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ViewScheduleCmd creates the viewSchedule command.
func ViewScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewSchedule <date>",
		Short: "Show every shift occurring on a date, including projected repeats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := args[0]

			entries, err := app.Scheduler.ScheduleForDate(app.Ctx, date)
			if err != nil {
				return renderError(err)
			}

			if len(entries) == 0 {
				fmt.Printf("\nNo shifts on %s.\n\n", date)
				return nil
			}

			fmt.Printf("\nSchedule for %s:\n\n", date)
			for _, entry := range entries {
				line := fmt.Sprintf("  %s-%s  %-12s",
					entry.Range.Start.Format("15:04"),
					entry.Range.End.Format("15:04"),
					entry.Shift.Role)
				if entry.Shift.DriverID != "" {
					line += "  " + entry.Shift.DriverID
				} else {
					line += fmt.Sprintf("  (%s)", entry.Shift.Status)
				}
				if entry.Shift.VehicleID != "" {
					line += " / " + entry.Shift.VehicleID
				}
				if entry.Projected {
					line += fmt.Sprintf("  [repeats from %s]", entry.Shift.Date)
				}
				line += "  " + entry.Shift.ID
				fmt.Println(line)
			}
			fmt.Println()

			return nil
		},
	}
}
