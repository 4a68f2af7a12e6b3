package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/quickspeak/internal/app"
	"github.com/abhisek/quickspeak/internal/config"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show or record learning statistics",
}

var statsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			s := a.User.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Words learned:   %d\n", s.WordsLearned)
			fmt.Fprintf(out, "Streak:          %d days (longest %d)\n", s.CurrentStreak, s.LongestStreak)
			fmt.Fprintf(out, "Conversations:   %d\n", s.TotalConversations)
			fmt.Fprintf(out, "Time learned:    %d min\n", s.MinutesLearned)
			fmt.Fprintf(out, "This week:       %d / %d min\n", s.WeeklyProgress, s.WeeklyGoal)
			fmt.Fprintf(out, "Achievements:    %d / %d\n", len(a.User.Unlocked()), len(a.User.Achievements()))
			return nil
		})
	},
}

// countArg parses args[i] as a non-negative count, or returns def when absent.
func countArg(args []string, i, def int) (int, error) {
	if len(args) <= i {
		return def, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("expected a non-negative number, got %q", args[i])
	}
	return n, nil
}

var statsWordsCmd = &cobra.Command{
	Use:   "words [n]",
	Short: "Record newly learned words (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := countArg(args, 0, 1)
		if err != nil {
			return err
		}
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			return a.User.IncrementWords(n).Err()
		})
	},
}

var statsStreakCmd = &cobra.Command{
	Use:   "streak <days>",
	Short: "Set the current streak",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := countArg(args, 0, 0)
		if err != nil {
			return err
		}
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			return a.User.UpdateStreak(n).Err()
		})
	},
}

var statsTimeCmd = &cobra.Command{
	Use:   "time <minutes>",
	Short: "Record learning time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := countArg(args, 0, 0)
		if err != nil {
			return err
		}
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			return a.User.AddLearningTime(n).Err()
		})
	},
}

var statsConversationCmd = &cobra.Command{
	Use:   "conversation",
	Short: "Record a finished conversation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			a.User.IncrementConversations()
			return nil
		})
	},
}

func init() {
	statsCmd.AddCommand(statsShowCmd)
	statsCmd.AddCommand(statsWordsCmd)
	statsCmd.AddCommand(statsStreakCmd)
	statsCmd.AddCommand(statsTimeCmd)
	statsCmd.AddCommand(statsConversationCmd)
}
