package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// GigDistanceCmd creates the gigDistance command
func GigDistanceCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gigDistance <gig_id>",
		Short: "Show the driving distance from home base to a gig's venue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString("from")
			if from == "" {
				from = app.Cfg.HomeBase
			}
			if from == "" {
				return fmt.Errorf("no starting address: set homeBase in the config or pass --from")
			}

			gig, err := app.Database.GetGig(app.Ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch gig: %w", err)
			}
			if gig.Address == "" {
				return fmt.Errorf("gig %q has no address", gig.Title)
			}

			result, err := app.Geo.Distance(app.Ctx, from, gig.Address)
			if err != nil {
				return err
			}

			fmt.Printf("\n%s - %s\n", gig.Title, gig.Date)
			fmt.Printf("Destination: %s\n", result.LocationName)
			fmt.Printf("Distance:    %.1f km\n", result.DistanceKM)
			fmt.Printf("Drive time:  %.0f min\n\n", result.DurationMinutes)

			return nil
		},
	}

	cmd.Flags().String("from", "", "Starting address (defaults to the configured home base)")

	return cmd
}
