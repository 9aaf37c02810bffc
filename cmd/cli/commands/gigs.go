package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bandtools/gigplan/pkg/core/services"
)

// ScheduleGigsCmd creates the scheduleGigs command
func ScheduleGigsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scheduleGigs",
		Short: "Expand the configured gig schedules into concrete gigs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			weeks, _ := cmd.Flags().GetInt("weeks")
			from := time.Now()
			until := from.AddDate(0, 0, weeks*7)

			if len(app.Cfg.GigSchedules) == 0 {
				fmt.Println("\nNo gig schedules configured.")
				return nil
			}

			totalCreated := 0
			totalSkipped := 0
			for _, schedule := range app.Cfg.GigSchedules {
				result, err := services.ScheduleGigs(app.Ctx, app.Database, app.Logger, schedule, from, until)
				if err != nil {
					return fmt.Errorf("failed to schedule %q: %w", schedule.Title, err)
				}
				totalCreated += len(result.Created)
				totalSkipped += result.Skipped
			}

			fmt.Printf("\n✓ Scheduled %d gigs (%d already existed)\n\n", totalCreated, totalSkipped)
			return nil
		},
	}

	cmd.Flags().Int("weeks", 8, "How many weeks ahead to schedule")

	return cmd
}

// ListGigsCmd creates the listGigs command
func ListGigsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listGigs",
		Short: "List all gigs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gigs, err := app.Database.ListGigs(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to list gigs: %w", err)
			}

			fmt.Printf("\nGigs (%d):\n", len(gigs))
			for _, g := range gigs {
				venue := ""
				if g.Venue != "" {
					venue = " @ " + g.Venue
				}
				fmt.Printf("  %s  %s%s (%s)\n", g.Date, g.Title, venue, g.ID)
			}
			fmt.Println()

			return nil
		},
	}
}
