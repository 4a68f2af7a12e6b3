package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/quickspeak/internal/app"
	"github.com/abhisek/quickspeak/internal/config"
	"github.com/abhisek/quickspeak/internal/logger"
	"github.com/abhisek/quickspeak/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "quickspeak",
	Short:        "Practice languages by chatting with speaker personas",
	Long:         "QuickSpeak keeps your learning languages, saved speakers, chats and profile in a local database.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUICKSPEAK_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides QUICKSPEAK_CONFIG env var)")
	rootCmd.PersistentFlags().Bool("system-dark", false, "Report the system as being in dark mode")

	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(speakersCmd)
	rootCmd.AddCommand(savedCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the config file, environment and command-line flags,
// flags taking precedence.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if err := store.EnsureDir(cfg.DBPath); err != nil {
		return config.Config{}, fmt.Errorf("create database directory: %w", err)
	}
	if f := cmd.Flags().Lookup("system-dark"); f != nil && f.Changed {
		cfg.SystemDarkMode, _ = cmd.Flags().GetBool("system-dark")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openStore opens the configured database.
func openStore(cmd *cobra.Command) (*store.Store, config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, config.Config{}, err
	}
	s, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("open database: %w", err)
	}
	return s, cfg, nil
}

// withApp runs fn against the restored app state and saves afterwards. State
// is saved even when fn fails, since fn may have applied some changes first.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App, cfg config.Config) error) error {
	s, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	log, err := logger.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.New(ctx, app.Options{
		Snapshots:    s.SnapshotRepo(),
		Events:       s.EventRepo(),
		Logger:       log.With("command", cmd.CommandPath()),
		DemoData:     cfg.DemoData,
		AppVersion:   version,
		SessionID:    uuid.NewString(),
		SnapshotKeep: cfg.SnapshotKeep,
	})
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	defer a.Close()

	runErr := fn(ctx, a, cfg)
	if err := a.Save(ctx); err != nil {
		return errors.Join(runErr, fmt.Errorf("save state: %w", err))
	}
	return runErr
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", arg, err)
	}
	return id, nil
}

func parseToggle(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", arg)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
