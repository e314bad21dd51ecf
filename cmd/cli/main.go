package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/marlowtransit/shiftboard/cmd/cli/commands"
	"github.com/marlowtransit/shiftboard/internal/config"
	"github.com/marlowtransit/shiftboard/pkg/core/services"
	"github.com/marlowtransit/shiftboard/pkg/postgres"
	"github.com/marlowtransit/shiftboard/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     *commands.AppContext
	store   *postgres.Store
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shiftboard",
		Short: "Shiftboard CLI - Manage driver shift schedules",
		Long:  `A CLI tool for managing driver shifts, vehicle assignments, and conflict-free schedules.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if store != nil {
				store.Close()
			}
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output on the console")

	app = &commands.AppContext{}
	rootCmd.AddCommand(commands.CreateShiftCmd(app))
	rootCmd.AddCommand(commands.UpdateShiftCmd(app))
	rootCmd.AddCommand(commands.DeleteShiftCmd(app))
	rootCmd.AddCommand(commands.MoveShiftCmd(app))
	rootCmd.AddCommand(commands.ViewScheduleCmd(app))
	rootCmd.AddCommand(commands.VehicleAvailabilityCmd(app))
	rootCmd.AddCommand(commands.ListRolesCmd(app))
	rootCmd.AddCommand(commands.PublishScheduleCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, database, and the scheduler.
func initApp(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	app.Ctx = ctx
	app.Env = env

	var err error
	app.Logger, err = logging.New(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Location, err = app.Cfg.Location()
	if err != nil {
		return err
	}

	app.Logger.Info("Connecting to database")
	store, err = postgres.NewStore(ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := store.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Store = store
	app.Logger.Debug("Database ready")

	app.Scheduler = services.NewScheduler(app.Store, nil, app.Logger, app.Location)
	if err := app.Scheduler.WarmIndex(ctx); err != nil {
		return fmt.Errorf("failed to warm vehicle availability index: %w", err)
	}
	app.Logger.Info("Application initialized")

	return nil
}
