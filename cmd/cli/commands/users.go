package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bandtools/gigplan/pkg/core/model"
)

// ListUsersCmd creates the listUsers command
func ListUsersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listUsers",
		Short: "List all user accounts and their roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Database.ListUsers(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			fmt.Printf("\nUsers (%d):\n", len(users))
			for _, u := range users {
				fmt.Printf("  - %s <%s> [%s]\n", u.UID, u.Email, roleList(u.Roles))
			}
			fmt.Println()

			return nil
		},
	}
}

// SetRoleCmd creates the setRole command
func SetRoleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setRole <uid> <admin|bandManager|bandMember>",
		Short: "Grant or revoke a role for a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			revoke, _ := cmd.Flags().GetBool("revoke")

			role := model.RoleName(args[1])
			if err := app.UserAdmin.SetRole(app.Ctx, app.Session, args[0], role, !revoke); err != nil {
				return err
			}

			verb := "granted to"
			if revoke {
				verb = "revoked from"
			}
			fmt.Printf("\n✓ Role %s %s %s\n\n", role, verb, args[0])
			return nil
		},
	}

	cmd.Flags().Bool("revoke", false, "Revoke the role instead of granting it")

	return cmd
}

// DeleteUserCmd creates the deleteUser command
func DeleteUserCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteUser <uid>",
		Short: "Delete a user account and its associated records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.UserAdmin.DeleteUser(app.Ctx, app.Session, args[0]); err != nil {
				return err
			}
			fmt.Printf("\n✓ User deleted: %s\n\n", args[0])
			return nil
		},
	}
}

func roleList(roles model.Roles) string {
	names := []string{}
	if roles.Admin {
		names = append(names, string(model.RoleAdmin))
	}
	if roles.BandManager {
		names = append(names, string(model.RoleBandManager))
	}
	if roles.BandMember {
		names = append(names, string(model.RoleBandMember))
	}
	if len(names) == 0 {
		return "no roles"
	}
	return strings.Join(names, ", ")
}
