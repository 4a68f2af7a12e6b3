package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quickspeak/internal/store"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Inspect the store activity log",
}

var activityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent store changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		source, _ := cmd.Flags().GetString("source")

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		events, err := s.EventRepo().QueryActivity(ctx, store.QueryOpts{Limit: limit, Source: source})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No activity found.")
			return nil
		}

		fmt.Fprintf(out, "%-6s  %-19s  %-8s  %-22s  %-20s  %s\n",
			"Seq", "Timestamp", "Source", "Op", "Subject", "Session")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, e := range events {
			session := e.SessionID
			if len(session) > 8 {
				session = session[:8]
			}
			fmt.Fprintf(out, "%-6d  %-19s  %-8s  %-22s  %-20s  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Source,
				e.Op,
				truncate(e.Subject, 20),
				session,
			)
		}
		return nil
	},
}

var activityCountsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Count store changes per store",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		counts, total, err := s.EventRepo().ActivityCounts(context.Background())
		if err != nil {
			return fmt.Errorf("count events: %w", err)
		}

		sources := make([]string, 0, len(counts))
		for src := range counts {
			sources = append(sources, src)
		}
		sort.Strings(sources)

		out := cmd.OutOrStdout()
		for _, src := range sources {
			fmt.Fprintf(out, "%-10s %d\n", src, counts[src])
		}
		fmt.Fprintf(out, "%-10s %d\n", "total", total)
		return nil
	},
}

func init() {
	activityListCmd.Flags().Int("limit", 20, "Maximum number of events to show")
	activityListCmd.Flags().String("source", "", "Filter by store (language, chat, user)")

	activityCmd.AddCommand(activityListCmd)
	activityCmd.AddCommand(activityCountsCmd)
}
