package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ListRolesCmd creates the listRoles command.
func ListRolesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listRoles",
		Short: "List the configured roles in lane order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roles, err := app.Scheduler.Roles(app.Ctx)
			if err != nil {
				return renderError(err)
			}

			if len(roles) == 0 {
				fmt.Println("\nNo roles configured.")
				fmt.Println()
				return nil
			}

			fmt.Println()
			for _, role := range roles {
				fmt.Printf("  %2d  %-16s %s\n", role.Order, role.ID, role.Name)
			}
			fmt.Println()

			return nil
		},
	}
}
