package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quickspeak/internal/app"
	"github.com/abhisek/quickspeak/internal/config"
	"github.com/abhisek/quickspeak/internal/outcome"
	"github.com/abhisek/quickspeak/internal/user"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List or unlock achievements",
}

var achievementsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		onlyUnlocked, _ := cmd.Flags().GetBool("unlocked")
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			list := a.User.Achievements()
			if onlyUnlocked {
				list = a.User.Unlocked()
			}

			out := cmd.OutOrStdout()
			for _, ach := range list {
				when := "locked"
				if ach.UnlockedAt != nil {
					when = ach.UnlockedAt.Local().Format("2006-01-02")
				}
				fmt.Fprintf(out, "%s %-20s %-10s %-16s %s\n", ach.Icon, ach.Title, when, ach.ID, ach.Description)
			}
			return nil
		})
	},
}

var achievementsUnlockCmd = &cobra.Command{
	Use:   "unlock <id>",
	Short: "Unlock an achievement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			switch r := a.User.Unlock(args[0]); r {
			case outcome.OK:
				fmt.Fprintf(cmd.OutOrStdout(), "Unlocked %s.\n", title(a.User, args[0]))
			case outcome.AlreadyExists:
				fmt.Fprintf(cmd.OutOrStdout(), "%s was already unlocked.\n", title(a.User, args[0]))
			default:
				return fmt.Errorf("achievement %q: %w", args[0], r.Err())
			}
			return nil
		})
	},
}

func title(u *user.Store, id string) string {
	for _, a := range u.Achievements() {
		if a.ID == id {
			return a.Title
		}
	}
	return id
}

func init() {
	achievementsListCmd.Flags().Bool("unlocked", false, "Only unlocked achievements")

	achievementsCmd.AddCommand(achievementsListCmd)
	achievementsCmd.AddCommand(achievementsUnlockCmd)
}
