package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quickspeak/internal/app"
	"github.com/abhisek/quickspeak/internal/chat"
	"github.com/abhisek/quickspeak/internal/config"
	"github.com/abhisek/quickspeak/internal/outcome"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved speakers",
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved speakers for the languages you are learning",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			var saved []chat.SavedSpeaker
			if all {
				saved = a.Chats.Saved()
			} else {
				saved = a.Chats.VisibleSaved()
			}

			out := cmd.OutOrStdout()
			if len(saved) == 0 {
				fmt.Fprintln(out, "No saved speakers.")
				return nil
			}
			for _, s := range saved {
				fmt.Fprintf(out, "%-3d %s %-9s %s\n", s.SpeakerID, s.Flag, s.Name, s.Language)
			}
			return nil
		})
	},
}

var savedAddCmd = &cobra.Command{
	Use:   "add <speakerID>",
	Short: "Save a speaker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			sp, ok := a.Catalog.ByID(id)
			if !ok {
				return fmt.Errorf("speaker %d: %w", id, outcome.ErrNotFound)
			}
			if r := a.Chats.AddSaved(sp); r == outcome.AlreadyExists {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already saved.\n", sp.Name)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s.\n", sp.Name)
			return nil
		})
	},
}

var savedRemoveCmd = &cobra.Command{
	Use:   "remove <speakerID>",
	Short: "Remove a saved speaker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			if r := a.Chats.RemoveSaved(id); !r.OK() {
				return fmt.Errorf("speaker %d is not saved: %w", id, r.Err())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed speaker %d.\n", id)
			return nil
		})
	},
}

func init() {
	savedListCmd.Flags().Bool("all", false, "Include speakers of languages you are not learning")

	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedAddCmd)
	savedCmd.AddCommand(savedRemoveCmd)
}
