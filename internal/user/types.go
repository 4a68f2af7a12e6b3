package user

import (
	"fmt"
	"time"
)

// ThemeMode selects where the dark-mode flag comes from.
type ThemeMode string

const (
	// ThemeSystem follows the platform dark-mode signal.
	ThemeSystem ThemeMode = "system"
	// ThemeManual uses Settings.ManualDarkMode.
	ThemeManual ThemeMode = "manual"
)

// Valid reports whether m is a known theme mode.
func (m ThemeMode) Valid() bool {
	return m == ThemeSystem || m == ThemeManual
}

// FontSize is one of four text size steps.
type FontSize string

const (
	FontSmall      FontSize = "small"
	FontMedium     FontSize = "medium"
	FontLarge      FontSize = "large"
	FontExtraLarge FontSize = "extra_large"
)

var fontSizes = []struct {
	size  FontSize
	name  string
	scale float64
}{
	{FontSmall, "Small", 0.9},
	{FontMedium, "Medium", 1.0},
	{FontLarge, "Large", 1.1},
	{FontExtraLarge, "Extra Large", 1.2},
}

// FontSizes returns every font size, smallest first.
func FontSizes() []FontSize {
	out := make([]FontSize, len(fontSizes))
	for i, f := range fontSizes {
		out[i] = f.size
	}
	return out
}

// Valid reports whether f is a known font size.
func (f FontSize) Valid() bool {
	for _, fs := range fontSizes {
		if fs.size == f {
			return true
		}
	}
	return false
}

// DisplayName returns the label shown to the user, or "" for an unknown size.
func (f FontSize) DisplayName() string {
	for _, fs := range fontSizes {
		if fs.size == f {
			return fs.name
		}
	}
	return ""
}

// Scale returns the text scale factor. Unknown sizes scale by 1.
func (f FontSize) Scale() float64 {
	for _, fs := range fontSizes {
		if fs.size == f {
			return fs.scale
		}
	}
	return 1.0
}

// Speech speed bounds, inclusive.
const (
	MinSpeechSpeed = 0.5
	MaxSpeechSpeed = 2.0
)

// Profile is the user's account information and headline counters.
type Profile struct {
	ID                  string
	Name                string
	Email               string
	AvatarSeed          string
	NativeLanguage      string
	LearningLanguages   []string
	JoinedAt            time.Time
	WordsLearned        int
	CurrentStreak       int
	TotalConversations  int
	PreferredDifficulty string
}

// Settings are the app preferences.
type Settings struct {
	ThemeMode            ThemeMode
	ManualDarkMode       bool
	NotificationsEnabled bool
	DailyReminderEnabled bool
	DailyReminderTime    string // HH:MM, 24h
	SoundEnabled         bool
	AutoplayAudio        bool
	SpeechSpeed          float64
	FontSize             FontSize
	HapticsEnabled       bool
}

// DefaultSettings returns the settings a new install starts with.
func DefaultSettings() Settings {
	return Settings{
		ThemeMode:            ThemeSystem,
		NotificationsEnabled: true,
		DailyReminderEnabled: true,
		DailyReminderTime:    "18:00",
		SoundEnabled:         true,
		AutoplayAudio:        true,
		SpeechSpeed:          1.0,
		FontSize:             FontMedium,
		HapticsEnabled:       true,
	}
}

// Validate checks the enumerated and ranged fields.
func (s Settings) Validate() error {
	if !s.ThemeMode.Valid() {
		return fmt.Errorf("unknown theme mode %q", s.ThemeMode)
	}
	if !s.FontSize.Valid() {
		return fmt.Errorf("unknown font size %q", s.FontSize)
	}
	if s.SpeechSpeed < MinSpeechSpeed || s.SpeechSpeed > MaxSpeechSpeed {
		return fmt.Errorf("speech speed %.2f outside [%.1f, %.1f]", s.SpeechSpeed, MinSpeechSpeed, MaxSpeechSpeed)
	}
	if _, err := time.Parse("15:04", s.DailyReminderTime); err != nil {
		return fmt.Errorf("daily reminder time %q: %w", s.DailyReminderTime, err)
	}
	return nil
}

// Stats are the learning counters.
type Stats struct {
	WordsLearned       int
	CurrentStreak      int
	LongestStreak      int
	TotalConversations int
	MinutesLearned     int
	WeeklyGoal         int
	WeeklyProgress     int
}

// Achievement is a one-way milestone flag.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Unlocked    bool
	UnlockedAt  *time.Time
}

func (a Achievement) clone() Achievement {
	if a.UnlockedAt != nil {
		t := *a.UnlockedAt
		a.UnlockedAt = &t
	}
	return a
}
