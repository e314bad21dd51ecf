package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marlowtransit/shiftboard/internal/config"
	"github.com/marlowtransit/shiftboard/pkg/clients/sheetsclient"
)

// PublishScheduleCmd creates the publishSchedule command. The sheets client is
// built lazily here rather than at app startup so that the other commands work
// without OAuth credentials on disk.
func PublishScheduleCmd(app *AppContext) *cobra.Command {
	var tab string

	cmd := &cobra.Command{
		Use:   "publishSchedule <start_date> <end_date>",
		Short: "Publish the schedule for a date range to the configured Google Sheet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, endDate := args[0], args[1]

			if app.Cfg.PublishSheetID == "" {
				return fmt.Errorf("publishSheetID is not set in the config file")
			}
			if tab == "" {
				tab = app.Cfg.PublishTab
			}
			if tab == "" {
				tab = fmt.Sprintf("%s to %s", startDate, endDate)
			}

			grid, err := app.Scheduler.BuildScheduleRows(app.Ctx, startDate, endDate)
			if err != nil {
				return renderError(err)
			}

			oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
			if err != nil {
				return fmt.Errorf("failed to load oauth client config: %w", err)
			}

			client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env)
			if err != nil {
				return fmt.Errorf("failed to create sheets client: %w", err)
			}

			values := make([][]interface{}, 0, len(grid.Rows)+1)
			headerRow := make([]interface{}, len(grid.Header))
			for i, h := range grid.Header {
				headerRow[i] = h
			}
			values = append(values, headerRow)
			for _, row := range grid.Rows {
				cells := make([]interface{}, 0, len(row.Cells)+1)
				cells = append(cells, row.Date)
				for _, cell := range row.Cells {
					cells = append(cells, cell)
				}
				values = append(values, cells)
			}

			if err := client.PublishSchedule(app.Cfg.PublishSheetID, tab, values); err != nil {
				return fmt.Errorf("failed to publish schedule: %w", err)
			}

			fmt.Printf("\n✓ Published %d day(s) to tab %q.\n\n", len(grid.Rows), tab)
			return nil
		},
	}

	cmd.Flags().StringVar(&tab, "tab", "", "Sheet tab to write, defaults to the configured tab")

	return cmd
}
