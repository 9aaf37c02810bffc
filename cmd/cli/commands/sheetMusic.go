package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bandtools/gigplan/pkg/core/services"
)

// SheetMusicCmd creates the sheetMusic command
func SheetMusicCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sheetMusic",
		Short: "Show printed sheet music counts per instrument group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := services.SheetMusic(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			fmt.Println("\nPrinted sheet music:")
			for _, count := range counts {
				fmt.Printf("  %-20s %d/%d\n", count.Instrument, count.WantsPrinted, count.Total)
			}
			fmt.Println()

			return nil
		},
	}
}
