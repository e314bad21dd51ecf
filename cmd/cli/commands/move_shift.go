package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// MoveShiftCmd creates the moveShift command: the CLI analogue of a timeline
// drag or resize. The new window is always re-checked for conflicts.
func MoveShiftCmd(app *AppContext) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "moveShift <date> <shift_id> <new_date> <new_start> <new_end>",
		Short: "Move or resize a shift, e.g. moveShift 2025-06-01 <id> 2025-06-02 10:00 14:00",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, id, newDate, startClock, endClock := args[0], args[1], args[2], args[3], args[4]

			newStart, err := parseClock(newDate, startClock, app.Location)
			if err != nil {
				return err
			}
			newEnd, err := parseClock(newDate, endClock, app.Location)
			if err != nil {
				return err
			}

			shift, err := app.Scheduler.MoveShift(app.Ctx, date, id, newStart, newEnd, role)
			if err != nil {
				return renderError(err)
			}

			fmt.Printf("\n✓ Shift %s moved to %s %s-%s (role %s)\n\n",
				shift.ID, shift.Date,
				shift.Range.Start.Format("15:04"), shift.Range.End.Format("15:04"),
				shift.Role)

			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Also move the shift to another role lane")

	return cmd
}
