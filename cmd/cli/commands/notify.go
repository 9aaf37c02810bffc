package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bandtools/gigplan/pkg/core/fault"
	"github.com/bandtools/gigplan/pkg/core/services"
)

// NotifyGigCmd creates the notifyGig command
func NotifyGigCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "notifyGig <gig_id>",
		Short: "Email members who have not yet responded for a gig",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Session.CanManage() {
				return fault.New(fault.KindPermissionDenied, "only managers may send gig reminders")
			}

			gmail, err := app.Gmail()
			if err != nil {
				return err
			}

			result, err := services.NotifyGig(app.Ctx, app.Database, gmail, app.Cfg, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n%s - %s\n", result.Gig.Title, result.Gig.Date)
			fmt.Printf("✓ Reminders sent: %d\n", len(result.Sent))
			for _, sent := range result.Sent {
				fmt.Printf("  - %s <%s>\n", sent.MemberName, sent.Email)
			}
			if len(result.Failed) > 0 {
				fmt.Printf("✗ Failed: %d\n", len(result.Failed))
				for _, failed := range result.Failed {
					fmt.Printf("  - %s <%s>: %s\n", failed.MemberName, failed.Email, failed.Error)
				}
			}
			if len(result.SkippedNoEmail) > 0 {
				fmt.Printf("Skipped (no linked account): %d\n", len(result.SkippedNoEmail))
				for _, name := range result.SkippedNoEmail {
					fmt.Printf("  - %s\n", name)
				}
			}
			fmt.Println()

			return nil
		},
	}
}
