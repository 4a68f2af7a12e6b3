package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quickspeak/internal/app"
	"github.com/abhisek/quickspeak/internal/config"
	"github.com/abhisek/quickspeak/internal/language"
	"github.com/abhisek/quickspeak/internal/outcome"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "Manage the languages you are learning",
}

var languagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your learning languages",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			out := cmd.OutOrStdout()
			langs := a.Languages.Learning()
			if len(langs) == 0 {
				fmt.Fprintln(out, "You are not learning any languages.")
				return nil
			}
			for _, l := range langs {
				marker := ""
				if l.Native {
					marker = "  (native)"
				}
				fmt.Fprintf(out, "%-3s %-12s%s\n", l.CountryCode, l.Name, marker)
			}
			return nil
		})
	},
}

var languagesAvailableCmd = &cobra.Command{
	Use:   "available",
	Short: "List languages you can add",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			out := cmd.OutOrStdout()
			for _, l := range a.Languages.Available() {
				fmt.Fprintf(out, "%-3s %s\n", l.CountryCode, l.Name)
			}
			return nil
		})
	},
}

var languagesAddCmd = &cobra.Command{
	Use:   "add <code>",
	Short: "Start learning a language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, ok := language.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown language code %q", args[0])
		}
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			switch r := a.Languages.Add(lang); r {
			case outcome.OK:
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s.\n", lang.Name)
				return nil
			case outcome.AlreadyExists:
				return fmt.Errorf("%s is already in your learning set: %w", lang.Name, r.Err())
			default:
				return r.Err()
			}
		})
	},
}

var languagesRemoveCmd = &cobra.Command{
	Use:   "remove <code>",
	Short: "Stop learning a language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			lang, ok := a.Languages.Find(args[0])
			if !ok {
				return fmt.Errorf("%s is not in your learning set: %w", strings.ToUpper(args[0]), outcome.ErrNotFound)
			}
			switch r := a.Languages.Remove(lang); r {
			case outcome.OK:
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", lang.Name)
				return nil
			case outcome.RefusedNative:
				return fmt.Errorf("%s is your native language; set another native language first: %w", lang.Name, r.Err())
			default:
				return r.Err()
			}
		})
	},
}

var languagesNativeCmd = &cobra.Command{
	Use:   "native <code>",
	Short: "Set your native language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			// Setting an absent language would leave no native language at all.
			lang, ok := a.Languages.Find(args[0])
			if !ok {
				return fmt.Errorf("add %s to your learning set first: %w", strings.ToUpper(args[0]), outcome.ErrNotFound)
			}
			if r := a.Languages.SetNative(lang); !r.OK() {
				return r.Err()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now your native language.\n", lang.Name)
			return nil
		})
	},
}

func init() {
	languagesCmd.AddCommand(languagesListCmd)
	languagesCmd.AddCommand(languagesAvailableCmd)
	languagesCmd.AddCommand(languagesAddCmd)
	languagesCmd.AddCommand(languagesRemoveCmd)
	languagesCmd.AddCommand(languagesNativeCmd)
}
