package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bandtools/gigplan/pkg/core/model"
	"github.com/bandtools/gigplan/pkg/core/roster"
)

// ListRosterCmd creates the listRoster command
func ListRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listRoster",
		Short: "List all band members and their instrument assignments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := app.Database.ListMembers(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to list members: %w", err)
			}
			instruments, err := app.Database.ListInstruments(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to list instruments: %w", err)
			}

			fmt.Printf("\nInstruments (%d): ", len(instruments))
			for i, name := range instruments {
				if i > 0 {
					fmt.Print(", ")
				}
				fmt.Print(name)
			}
			fmt.Printf("\n\nMembers (%d):\n", len(members))
			for _, m := range members {
				sheet := ""
				if m.WantsPrintedSheetMusic {
					sheet = " [printed sheet music]"
				}
				fmt.Printf("  - %s (%s) - %s%s\n", m.Name, m.ID, assignmentLabel(m.Assignment), sheet)
			}
			fmt.Println()

			return nil
		},
	}
}

// AddMemberCmd creates the addMember command
func AddMemberCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addMember <name>",
		Short: "Add a band member to the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instrument, _ := cmd.Flags().GetString("instrument")
			wantsSheetMusic, _ := cmd.Flags().GetBool("sheet-music")

			member, err := app.Roster.AddMember(app.Ctx, app.Session, roster.NewMemberInput{
				Name:                   args[0],
				Instrument:             instrument,
				WantsPrintedSheetMusic: wantsSheetMusic,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Member added: %s (%s)\n\n", member.Name, member.ID)
			return nil
		},
	}

	cmd.Flags().String("instrument", "", "Instrument to assign")
	cmd.Flags().Bool("sheet-music", false, "Member wants printed sheet music")

	return cmd
}

// RemoveMemberCmd creates the removeMember command
func RemoveMemberCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "removeMember <member_id>",
		Short: "Remove a band member from the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Roster.RemoveMember(app.Ctx, app.Session, args[0]); err != nil {
				return err
			}
			fmt.Printf("\n✓ Member removed: %s\n\n", args[0])
			return nil
		},
	}
}

// AddInstrumentCmd creates the addInstrument command
func AddInstrumentCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "addInstrument <name>",
		Short: "Add an instrument to the band's instrument set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Roster.AddInstrument(app.Ctx, app.Session, args[0]); err != nil {
				return err
			}
			fmt.Printf("\n✓ Instrument added: %s\n\n", args[0])
			return nil
		},
	}
}

// RemoveInstrumentCmd creates the removeInstrument command
func RemoveInstrumentCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "removeInstrument <name>",
		Short: "Remove an instrument (fails while members are assigned to it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Roster.RemoveInstrument(app.Ctx, app.Session, args[0]); err != nil {
				return err
			}
			fmt.Printf("\n✓ Instrument removed: %s\n\n", args[0])
			return nil
		},
	}
}

// ReassignCmd creates the reassign command
func ReassignCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reassign <member_id> <instrument|Unassigned>",
		Short: "Reassign a member to an instrument, or unassign them",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Roster.Reassign(app.Ctx, app.Session, args[0], args[1])
			if err != nil {
				return err
			}

			if !result.Changed {
				fmt.Println("\nNothing to do - assignment unchanged.")
				return nil
			}

			fmt.Printf("\n✓ Member %s reassigned to %s\n\n", args[0], assignmentLabel(result.Target))
			return nil
		},
	}
}

// assignmentLabel renders an assignment for display
func assignmentLabel(a model.Assignment) string {
	if name, ok := a.Instrument(); ok {
		return name
	}
	return roster.UnassignedLabel
}
