package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quickspeak/internal/app"
	"github.com/abhisek/quickspeak/internal/assets"
	"github.com/abhisek/quickspeak/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			p := a.User.Profile()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:          %s\n", p.Name)
			fmt.Fprintf(out, "Email:         %s\n", p.Email)
			fmt.Fprintf(out, "Avatar:        %s\n", assets.AvatarURL(p.AvatarSeed))
			fmt.Fprintf(out, "Native:        %s\n", p.NativeLanguage)
			fmt.Fprintf(out, "Learning:      %s (%d)\n", strings.Join(p.LearningLanguages, ", "), a.User.LearningLanguageCount())
			fmt.Fprintf(out, "Saved:         %d speakers\n", a.User.TotalSavedSpeakers())
			fmt.Fprintf(out, "Difficulty:    %s\n", p.PreferredDifficulty)
			fmt.Fprintf(out, "Member since:  %s\n", p.JoinedAt.Local().Format("2006-01-02"))
			return nil
		})
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			changed := 0
			if f := cmd.Flags().Lookup("name"); f.Changed {
				a.User.SetName(f.Value.String())
				changed++
			}
			if f := cmd.Flags().Lookup("email"); f.Changed {
				a.User.SetEmail(f.Value.String())
				changed++
			}
			if f := cmd.Flags().Lookup("avatar"); f.Changed {
				a.User.SetAvatarSeed(f.Value.String())
				changed++
			}
			if f := cmd.Flags().Lookup("difficulty"); f.Changed {
				a.User.SetPreferredDifficulty(f.Value.String())
				changed++
			}
			if changed == 0 {
				return fmt.Errorf("nothing to update; pass --name, --email, --avatar or --difficulty")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated.")
			return nil
		})
	},
}

func init() {
	profileSetCmd.Flags().String("name", "", "Display name")
	profileSetCmd.Flags().String("email", "", "Email address")
	profileSetCmd.Flags().String("avatar", "", "Avatar seed")
	profileSetCmd.Flags().String("difficulty", "", "Preferred difficulty (Beginner, Intermediate, Advanced)")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
}
