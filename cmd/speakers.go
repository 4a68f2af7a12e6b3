package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quickspeak/internal/app"
	"github.com/abhisek/quickspeak/internal/config"
	"github.com/abhisek/quickspeak/internal/speaker"
)

var speakersCmd = &cobra.Command{
	Use:   "speakers",
	Short: "Browse the speaker catalog",
}

func printSpeakers(out io.Writer, speakers []speaker.Speaker) {
	if len(speakers) == 0 {
		fmt.Fprintln(out, "No speakers found.")
		return
	}
	for _, s := range speakers {
		fmt.Fprintf(out, "%-3d %s %-9s %s\n", s.ID, s.Flag, s.Name, s.Language)
	}
}

var speakersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List speakers",
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, _ := cmd.Flags().GetString("language")
		cat := speaker.DefaultCatalog()
		if lang != "" {
			printSpeakers(cmd.OutOrStdout(), cat.ByLanguage(lang))
			return nil
		}
		printSpeakers(cmd.OutOrStdout(), cat.All())
		return nil
	},
}

var speakersLanguagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages speakers are available in",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, l := range speaker.DefaultCatalog().Languages() {
			fmt.Fprintln(cmd.OutOrStdout(), l)
		}
		return nil
	},
}

var speakersDiscoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List unsaved speakers for the languages you are learning",
	RunE: func(cmd *cobra.Command, args []string) error {
		active, _ := cmd.Flags().GetStringSlice("language")
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			printSpeakers(cmd.OutOrStdout(), a.Discover(active))
			return nil
		})
	},
}

var speakersShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a speaker's profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		s, ok := speaker.DefaultCatalog().ByID(id)
		if !ok {
			return fmt.Errorf("speaker %d not found", id)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:          %d\n", s.ID)
		fmt.Fprintf(out, "Name:        %s\n", s.Name)
		fmt.Fprintf(out, "Language:    %s %s\n", s.Flag, s.Language)
		fmt.Fprintf(out, "Personality: %s\n", strings.Join(s.Personality, ", "))
		fmt.Fprintf(out, "Interests:   %s\n", strings.Join(s.Interests, ", "))
		fmt.Fprintf(out, "Theme:       bg %s  card %s  text %s  border %s\n",
			s.Theme.Background, s.Theme.CardBackground, s.Theme.Text, s.Theme.Border)
		fmt.Fprintf(out, "Avatar:      %s\n", s.AvatarURL())
		return nil
	},
}

func init() {
	speakersListCmd.Flags().String("language", "", "Only speakers of this language (exact name)")
	speakersDiscoverCmd.Flags().StringSlice("language", nil, "Restrict to these languages")

	speakersCmd.AddCommand(speakersListCmd)
	speakersCmd.AddCommand(speakersLanguagesCmd)
	speakersCmd.AddCommand(speakersDiscoverCmd)
	speakersCmd.AddCommand(speakersShowCmd)
}
