package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// DeleteShiftCmd creates the deleteShift command.
func DeleteShiftCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteShift <date> <shift_id>",
		Short: "Delete a shift and release its vehicle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, id := args[0], args[1]

			if err := app.Scheduler.DeleteShift(app.Ctx, date, id); err != nil {
				return renderError(err)
			}

			fmt.Printf("\n✓ Shift %s deleted.\n\n", id)
			return nil
		},
	}
}
