package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Source string    // only events from this store ("" = all)
}

// SnapshotVersion is the current layout of SnapshotData.
const SnapshotVersion = 1

// SnapshotData captures the state of every store at a point in time.
type SnapshotData struct {
	Version       int                `json:"version"`
	AppVersion    string             `json:"app_version,omitempty"`
	Languages     []LanguageData     `json:"languages"`
	SavedSpeakers []SavedSpeakerData `json:"saved_speakers"`
	Chats         []ChatData         `json:"chats"`
	User          *UserSnapshotData  `json:"user,omitempty"`
}

// LanguageData is one entry of the learning set.
type LanguageData struct {
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
	Native      bool   `json:"native"`
}

// SavedSpeakerData is a bookmarked speaker snapshot.
type SavedSpeakerData struct {
	SpeakerID  int    `json:"speaker_id"`
	Name       string `json:"name"`
	Language   string `json:"language"`
	Flag       string `json:"flag"`
	AvatarSeed string `json:"avatar_seed"`
}

// MessageData is one chat message. Timestamps are Unix milliseconds.
type MessageData struct {
	ID          int    `json:"id"`
	SenderID    string `json:"sender_id"`
	Content     string `json:"content"`
	TimestampMs int64  `json:"timestamp_ms"`
}

// ChatData is one conversation with its full message history.
type ChatData struct {
	ID            string        `json:"id"`
	SpeakerID     int           `json:"speaker_id"`
	SpeakerName   string        `json:"speaker_name"`
	Messages      []MessageData `json:"messages"`
	LastMessageMs int64         `json:"last_message_ms"`
	HasUnread     bool          `json:"has_unread"`
}

// UserSnapshotData holds the profile, settings, stats and achievements.
type UserSnapshotData struct {
	Profile      ProfileData       `json:"profile"`
	Settings     SettingsData      `json:"settings"`
	Stats        StatsData         `json:"stats"`
	Achievements []AchievementData `json:"achievements"`
}

type ProfileData struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	AvatarSeed          string   `json:"avatar_seed"`
	NativeLanguage      string   `json:"native_language"`
	LearningLanguages   []string `json:"learning_languages"`
	JoinedMs            int64    `json:"joined_ms"`
	WordsLearned        int      `json:"words_learned"`
	CurrentStreak       int      `json:"current_streak"`
	TotalConversations  int      `json:"total_conversations"`
	PreferredDifficulty string   `json:"preferred_difficulty"`
}

type SettingsData struct {
	ThemeMode            string  `json:"theme_mode"`
	ManualDarkMode       bool    `json:"manual_dark_mode"`
	NotificationsEnabled bool    `json:"notifications_enabled"`
	DailyReminderEnabled bool    `json:"daily_reminder_enabled"`
	DailyReminderTime    string  `json:"daily_reminder_time"`
	SoundEnabled         bool    `json:"sound_enabled"`
	AutoplayAudio        bool    `json:"autoplay_audio"`
	SpeechSpeed          float64 `json:"speech_speed"`
	FontSize             string  `json:"font_size"`
	HapticsEnabled       bool    `json:"haptics_enabled"`
}

type StatsData struct {
	WordsLearned       int `json:"words_learned"`
	CurrentStreak      int `json:"current_streak"`
	LongestStreak      int `json:"longest_streak"`
	TotalConversations int `json:"total_conversations"`
	MinutesLearned     int `json:"minutes_learned"`
	WeeklyGoal         int `json:"weekly_goal"`
	WeeklyProgress     int `json:"weekly_progress"`
}

type AchievementData struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
	UnlockedMs  *int64 `json:"unlocked_ms,omitempty"`
}

// Snapshot represents a point-in-time capture of all store state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error

	// Clear deletes every snapshot.
	Clear(ctx context.Context) error
}

// ActivityEventData captures one applied store mutation.
type ActivityEventData struct {
	SessionID string
	Source    string
	Op        string
	Subject   string
	Version   uint64
}

// ActivityEventRecord is a stored activity event.
type ActivityEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionID string
	Source    string
	Op        string
	Subject   string
	Version   uint64
}

// EventRepo provides append and query access to the activity log.
type EventRepo interface {
	// AppendActivity records a store mutation.
	AppendActivity(ctx context.Context, data ActivityEventData) error

	// QueryActivity returns events newest first.
	QueryActivity(ctx context.Context, opts QueryOpts) ([]ActivityEventRecord, error)

	// ActivityCounts returns event counts per source and the total.
	ActivityCounts(ctx context.Context) (map[string]int, int, error)

	// LatestSequence returns the highest sequence assigned so far (0 if none).
	LatestSequence(ctx context.Context) (int64, error)
}
