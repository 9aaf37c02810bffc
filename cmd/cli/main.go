package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bandtools/gigplan/cmd/cli/commands"
	"github.com/bandtools/gigplan/internal/config"
	"github.com/bandtools/gigplan/pkg/clients/geoclient"
	"github.com/bandtools/gigplan/pkg/core/availability"
	"github.com/bandtools/gigplan/pkg/core/model"
	"github.com/bandtools/gigplan/pkg/core/roster"
	"github.com/bandtools/gigplan/pkg/core/useradmin"
	"github.com/bandtools/gigplan/pkg/postgres"
	"github.com/bandtools/gigplan/pkg/utils/logging"
)

// app is filled in by initApp before any command runs; the command
// constructors capture the pointer.
var (
	env    string
	userID string
	app    = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gigplan",
		Short: "Gigplan CLI - Manage band rosters, gigs and availability",
		Long:  `A CLI tool for managing a band's roster, gig schedule, per-gig availability and user accounts.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "Act as this user id (defaults to the configured defaultUserID)")

	// Add all commands
	rootCmd.AddCommand(commands.ListRosterCmd(app))
	rootCmd.AddCommand(commands.AddMemberCmd(app))
	rootCmd.AddCommand(commands.RemoveMemberCmd(app))
	rootCmd.AddCommand(commands.AddInstrumentCmd(app))
	rootCmd.AddCommand(commands.RemoveInstrumentCmd(app))
	rootCmd.AddCommand(commands.ReassignCmd(app))
	rootCmd.AddCommand(commands.ScheduleGigsCmd(app))
	rootCmd.AddCommand(commands.ListGigsCmd(app))
	rootCmd.AddCommand(commands.RecordAvailabilityCmd(app))
	rootCmd.AddCommand(commands.ViewAvailabilityCmd(app))
	rootCmd.AddCommand(commands.SheetMusicCmd(app))
	rootCmd.AddCommand(commands.ListUsersCmd(app))
	rootCmd.AddCommand(commands.SetRoleCmd(app))
	rootCmd.AddCommand(commands.DeleteUserCmd(app))
	rootCmd.AddCommand(commands.NotifyGigCmd(app))
	rootCmd.AddCommand(commands.GigDistanceCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, database, managers and the caller session
func initApp() error {
	app.Ctx = context.Background()
	app.Env = env

	var err error
	app.Logger, err = logging.InitLogger(env)
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

	app.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Database = database
	app.Logger.Info("Database initialized successfully")

	app.Roster = roster.New(database, app.Logger)
	app.UserAdmin = useradmin.New(database, app.Logger)
	app.Recorder = availability.NewRecorder(database, app.Logger)
	app.Geo = geoclient.NewClient(app.Cfg.GeocodeBaseURL, app.Cfg.RouteBaseURL)

	app.Session, err = resolveSession()
	if err != nil {
		return err
	}

	return nil
}

// resolveSession loads the acting user's identity and role flags. With no
// --user flag and no configured defaultUserID the session is anonymous and
// management commands will be refused.
func resolveSession() (model.Session, error) {
	uid := userID
	if uid == "" {
		uid = app.Cfg.DefaultUserID
	}
	if uid == "" {
		app.Logger.Warn("No user id given, running with an anonymous session")
		return model.Session{}, nil
	}

	user, err := app.Database.GetUser(app.Ctx, uid)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to load user %s: %w", uid, err)
	}

	app.Logger.Debug("Session resolved",
		zap.String("uid", user.UID),
		zap.String("email", user.Email))

	// Accounts resolved from the local store count as verified
	return model.Session{
		UserID:        user.UID,
		Email:         user.Email,
		EmailVerified: true,
		Roles:         user.Roles,
	}, nil
}
