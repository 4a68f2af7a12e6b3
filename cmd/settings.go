package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/quickspeak/internal/app"
	"github.com/abhisek/quickspeak/internal/config"
	"github.com/abhisek/quickspeak/internal/outcome"
	"github.com/abhisek/quickspeak/internal/user"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change app settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(_ context.Context, a *app.App, cfg config.Config) error {
			s := a.User.Settings()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Theme:          %s (dark: %s)\n", s.ThemeMode, onOff(a.User.EffectiveDarkMode(cfg.SystemDarkMode)))
			fmt.Fprintf(out, "Manual dark:    %s\n", onOff(s.ManualDarkMode))
			fmt.Fprintf(out, "Notifications:  %s\n", onOff(s.NotificationsEnabled))
			fmt.Fprintf(out, "Daily reminder: %s at %s\n", onOff(s.DailyReminderEnabled), s.DailyReminderTime)
			fmt.Fprintf(out, "Sound:          %s (autoplay %s)\n", onOff(s.SoundEnabled), onOff(s.AutoplayAudio))
			fmt.Fprintf(out, "Speech speed:   %.2fx\n", s.SpeechSpeed)
			fmt.Fprintf(out, "Font size:      %s (%.1fx)\n", s.FontSize.DisplayName(), s.FontSize.Scale())
			fmt.Fprintf(out, "Haptics:        %s\n", onOff(s.HapticsEnabled))
			return nil
		})
	},
}

// toggleCmd builds an "<name> <on|off>" subcommand around set.
func toggleCmd(name, short string, set func(u *user.Store, on bool)) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <on|off>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := parseToggle(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
				set(a.User, on)
				return nil
			})
		},
	}
}

var settingsThemeCmd = &cobra.Command{
	Use:   "theme <system|manual>",
	Short: "Follow the system theme or use the manual dark flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			if r := a.User.SetThemeMode(user.ThemeMode(args[0])); !r.OK() {
				return fmt.Errorf("theme must be system or manual: %w", r.Err())
			}
			return nil
		})
	},
}

var settingsSpeedCmd = &cobra.Command{
	Use:   "speed <multiplier>",
	Short: "Set speech speed (0.5 to 2.0)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid speed %q: %w", args[0], err)
		}
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			if r := a.User.SetSpeechSpeed(v); !r.OK() {
				return fmt.Errorf("speed must be between %.1f and %.1f: %w", user.MinSpeechSpeed, user.MaxSpeechSpeed, r.Err())
			}
			return nil
		})
	},
}

var settingsFontCmd = &cobra.Command{
	Use:   "font <small|medium|large|extra_large>",
	Short: "Set the font size",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			if r := a.User.SetFontSize(user.FontSize(args[0])); !r.OK() {
				return fmt.Errorf("font size must be one of %v: %w", user.FontSizes(), r.Err())
			}
			return nil
		})
	},
}

var settingsReminderCmd = &cobra.Command{
	Use:   "reminder <on|off>",
	Short: "Toggle the daily reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := parseToggle(args[0])
		if err != nil {
			return err
		}
		at, _ := cmd.Flags().GetString("at")
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			if r := a.User.SetDailyReminder(on, at); r == outcome.Invalid {
				return fmt.Errorf("reminder time must be HH:MM, got %q: %w", at, r.Err())
			}
			return nil
		})
	},
}

var settingsSoundCmd = &cobra.Command{
	Use:   "sound <on|off>",
	Short: "Toggle sound",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := parseToggle(args[0])
		if err != nil {
			return err
		}
		var autoplay *bool
		if f := cmd.Flags().Lookup("autoplay"); f.Changed {
			v, err := parseToggle(f.Value.String())
			if err != nil {
				return fmt.Errorf("--autoplay: %w", err)
			}
			autoplay = &v
		}
		return withApp(cmd, func(_ context.Context, a *app.App, _ config.Config) error {
			a.User.SetSound(on, autoplay)
			return nil
		})
	},
}

func init() {
	settingsReminderCmd.Flags().String("at", "", "Reminder time, HH:MM (24h)")
	settingsSoundCmd.Flags().String("autoplay", "", "Autoplay audio: on or off")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsThemeCmd)
	settingsCmd.AddCommand(toggleCmd("dark", "Set the manual dark mode flag", (*user.Store).SetManualDarkMode))
	settingsCmd.AddCommand(settingsSpeedCmd)
	settingsCmd.AddCommand(settingsFontCmd)
	settingsCmd.AddCommand(settingsReminderCmd)
	settingsCmd.AddCommand(settingsSoundCmd)
	settingsCmd.AddCommand(toggleCmd("notifications", "Toggle notifications", (*user.Store).SetNotifications))
	settingsCmd.AddCommand(toggleCmd("haptics", "Toggle haptic feedback", (*user.Store).SetHaptics))
}
