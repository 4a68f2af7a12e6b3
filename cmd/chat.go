package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quickspeak/internal/app"
	"github.com/abhisek/quickspeak/internal/chat"
	"github.com/abhisek/quickspeak/internal/config"
	"github.com/abhisek/quickspeak/internal/outcome"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with speakers",
}

// chatFor finds the current chat with the speaker named by arg.
func chatFor(a *app.App, arg string) (chat.Chat, error) {
	id, err := parseID(arg)
	if err != nil {
		return chat.Chat{}, err
	}
	c, ok := a.Chats.ChatBySpeaker(id)
	if !ok {
		return chat.Chat{}, fmt.Errorf("no chat with speaker %d; start one with 'quickspeak chat start %d': %w", id, id, outcome.ErrNotFound)
	}
	return c, nil
}

var chatListCmd = &cobra.Command{
	Use:   "list",
	Short: "List chats for the languages you are learning",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			chats := a.Chats.VisibleChats()
			if all {
				chats = a.Chats.Chats()
			}

			out := cmd.OutOrStdout()
			if len(chats) == 0 {
				fmt.Fprintln(out, "No chats.")
				return nil
			}
			fmt.Fprintf(out, "%-3s  %-9s  %-16s  %-6s  %s\n", "ID", "Speaker", "Last message", "Unread", "Preview")
			fmt.Fprintln(out, strings.Repeat("─", 72))
			for _, c := range chats {
				unread := ""
				if c.HasUnread {
					unread = "●"
				}
				preview := ""
				if m, ok := c.LastMessage(); ok {
					preview = truncate(m.Content, 32)
				}
				fmt.Fprintf(out, "%-3d  %-9s  %-16s  %-6s  %s\n",
					c.SpeakerID, c.SpeakerName,
					c.LastMessageTime.Local().Format("2006-01-02 15:04"),
					unread, preview)
			}
			return nil
		})
	},
}

var chatStartCmd = &cobra.Command{
	Use:   "start <speakerID>",
	Short: "Start a new chat, replacing any existing one",
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
			if _, existed := a.Chats.ChatBySpeaker(id); existed {
				fmt.Fprintf(cmd.ErrOrStderr(), "Previous chat with %s discarded.\n", sp.Name)
			}
			c := a.Chats.StartChat(sp)
			printMessages(cmd, c)
			return nil
		})
	},
}

var chatSendCmd = &cobra.Command{
	Use:   "send <speakerID> <text>",
	Short: "Send a message in a chat",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		asSpeaker, _ := cmd.Flags().GetBool("as-speaker")
		text := strings.Join(args[1:], " ")
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			c, err := chatFor(a, args[0])
			if err != nil {
				return err
			}
			m, r := a.Chats.AddMessage(c.ID, text, !asSpeaker)
			if !r.OK() {
				return r.Err()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "#%d sent.\n", m.ID)
			return nil
		})
	},
}

var chatShowCmd = &cobra.Command{
	Use:   "show <speakerID>",
	Short: "Show the messages of a chat",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			c, err := chatFor(a, args[0])
			if err != nil {
				return err
			}
			printMessages(cmd, c)
			return nil
		})
	},
}

var chatReadCmd = &cobra.Command{
	Use:   "read <speakerID>",
	Short: "Mark a chat as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			c, err := chatFor(a, args[0])
			if err != nil {
				return err
			}
			return a.Chats.MarkRead(c.ID).Err()
		})
	},
}

func printMessages(cmd *cobra.Command, c chat.Chat) {
	out := cmd.OutOrStdout()
	for _, m := range c.Messages {
		who := c.SpeakerName
		if m.FromUser() {
			who = "You"
		}
		fmt.Fprintf(out, "[%s] %s: %s\n", m.Timestamp.Local().Format("15:04"), who, m.Content)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	chatListCmd.Flags().Bool("all", false, "Include chats in languages you are not learning")
	chatSendCmd.Flags().Bool("as-speaker", false, "Record the message as the speaker's reply")

	chatCmd.AddCommand(chatListCmd)
	chatCmd.AddCommand(chatStartCmd)
	chatCmd.AddCommand(chatSendCmd)
	chatCmd.AddCommand(chatShowCmd)
	chatCmd.AddCommand(chatReadCmd)
}
