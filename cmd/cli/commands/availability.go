package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bandtools/gigplan/pkg/core/model"
	"github.com/bandtools/gigplan/pkg/core/services"
)

// RecordAvailabilityCmd creates the recordAvailability command
func RecordAvailabilityCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recordAvailability <gig_id> <member_id> <available|maybe|unavailable>",
		Short: "Record a member's availability for a gig",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, _ := cmd.Flags().GetString("notes")
			record := model.AvailabilityRecord{
				Status: model.AvailabilityStatus(args[2]),
				Notes:  notes,
			}
			if cmd.Flags().Changed("can-drive") {
				canDrive, _ := cmd.Flags().GetBool("can-drive")
				record.CanDrive = &canDrive
			}

			if err := app.Recorder.Record(app.Ctx, app.Session, args[0], args[1], record); err != nil {
				return err
			}

			fmt.Printf("\n✓ Availability recorded: %s is %s for gig %s\n\n", args[1], record.Status, args[0])
			return nil
		},
	}

	cmd.Flags().String("notes", "", "Free-form note alongside the response")
	cmd.Flags().Bool("can-drive", false, "Whether the member can drive to this gig")

	return cmd
}

// ViewAvailabilityCmd creates the viewAvailability command
func ViewAvailabilityCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viewAvailability",
		Short: "Show the per-instrument availability board for a gig",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gigID, _ := cmd.Flags().GetString("gig")

			board, err := services.ViewAvailability(app.Ctx, app.Database, app.Logger, gigID)
			if err != nil {
				return err
			}

			fmt.Printf("\n%s - %s", board.Gig.Title, board.Gig.Date)
			if board.Gig.Venue != "" {
				fmt.Printf(" @ %s", board.Gig.Venue)
			}
			fmt.Printf("\nResponses: %d/%d members\n\n", board.Responded, board.TotalMembers)

			for _, summary := range board.Summaries {
				fmt.Printf("  %-20s %s", summary.Instrument, summary.Full())
				if summary.Maybe > 0 {
					fmt.Printf(" (+%d maybe)", summary.Maybe)
				}
				fmt.Println()
			}

			if board.Drivers > 0 {
				fmt.Printf("\nDrivers: %d\n", board.Drivers)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("gig", "", "Gig id (defaults to the next upcoming gig)")

	return cmd
}
