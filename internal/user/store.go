// Package user owns the profile, app settings, learning stats and
// achievements.
package user

import (
	"sync"
	"time"

	"github.com/abhisek/quickspeak/internal/language"
	"github.com/abhisek/quickspeak/internal/notify"
	"github.com/abhisek/quickspeak/internal/outcome"
)

// SavedCounter reports how many speakers are bookmarked.
type SavedCounter interface {
	SavedCount() int
}

// LanguageSource exposes the learning set.
type LanguageSource interface {
	Native() (language.Language, bool)
	Learning() []language.Language
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for seeding and achievement unlocks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLanguages resolves the profile's language fields and the learning
// language count from src.
func WithLanguages(src LanguageSource) Option {
	return func(s *Store) { s.languages = src }
}

// WithSavedCounter answers TotalSavedSpeakers from c.
func WithSavedCounter(c SavedCounter) Option {
	return func(s *Store) { s.saved = c }
}

// Store holds the user's profile, settings, stats and achievements.
type Store struct {
	now       func() time.Time
	languages LanguageSource
	saved     SavedCounter

	mu           sync.Mutex
	profile      Profile
	settings     Settings
	stats        Stats
	achievements []Achievement
	changes      *notify.Notifier
}

// NewStore creates a Store populated with the seed profile, default
// settings, seed stats and the achievement list.
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:     time.Now,
		changes: notify.New("user"),
	}
	for _, opt := range opts {
		opt(s)
	}
	now := s.now()
	s.profile = seedProfile(now)
	s.settings = DefaultSettings()
	s.stats = seedStats()
	s.achievements = seedAchievements(now)
	return s
}

// Subscribe registers fn for every applied change.
func (s *Store) Subscribe(fn func(notify.Change)) (cancel func()) {
	return s.changes.Subscribe(fn)
}

// Version returns the number of applied changes.
func (s *Store) Version() uint64 {
	return s.changes.Version()
}

// update runs fn under the lock and publishes op afterwards.
func (s *Store) update(op, subject string, fn func()) {
	s.mu.Lock()
	fn()
	s.mu.Unlock()
	s.changes.Publish(op, subject)
}

// Profile returns the profile. When a language source is wired the native
// and learning language names reflect the live learning set.
func (s *Store) Profile() Profile {
	s.mu.Lock()
	p := s.profile
	s.mu.Unlock()

	p.LearningLanguages = append([]string(nil), p.LearningLanguages...)
	if s.languages == nil {
		return p
	}
	p.NativeLanguage = ""
	if native, ok := s.languages.Native(); ok {
		p.NativeLanguage = native.Name
	}
	p.LearningLanguages = []string{}
	for _, l := range s.languages.Learning() {
		if !l.Native {
			p.LearningLanguages = append(p.LearningLanguages, l.Name)
		}
	}
	return p
}

// UpdateProfile replaces the profile.
func (s *Store) UpdateProfile(p Profile) {
	p.LearningLanguages = append([]string(nil), p.LearningLanguages...)
	s.update("update_profile", p.ID, func() { s.profile = p })
}

// SetName changes the display name.
func (s *Store) SetName(name string) {
	s.update("set_name", "", func() { s.profile.Name = name })
}

// SetEmail changes the email address.
func (s *Store) SetEmail(email string) {
	s.update("set_email", "", func() { s.profile.Email = email })
}

// SetAvatarSeed changes the seed the avatar URL is built from.
func (s *Store) SetAvatarSeed(seed string) {
	s.update("set_avatar_seed", "", func() { s.profile.AvatarSeed = seed })
}

// SetPreferredDifficulty changes the difficulty label.
func (s *Store) SetPreferredDifficulty(label string) {
	s.update("set_difficulty", label, func() { s.profile.PreferredDifficulty = label })
}

// Settings returns the app settings.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings replaces every setting at once. Settings that fail
// Validate are rejected with Invalid.
func (s *Store) UpdateSettings(next Settings) outcome.Result {
	if next.Validate() != nil {
		return outcome.Invalid
	}
	s.update("update_settings", "", func() { s.settings = next })
	return outcome.OK
}

// SetThemeMode switches between following the system and the manual flag.
func (s *Store) SetThemeMode(mode ThemeMode) outcome.Result {
	if !mode.Valid() {
		return outcome.Invalid
	}
	s.update("set_theme_mode", string(mode), func() { s.settings.ThemeMode = mode })
	return outcome.OK
}

// SetManualDarkMode sets the flag used when the theme mode is manual.
func (s *Store) SetManualDarkMode(dark bool) {
	s.update("set_manual_dark", "", func() { s.settings.ManualDarkMode = dark })
}

// SetNotifications toggles notifications.
func (s *Store) SetNotifications(enabled bool) {
	s.update("set_notifications", "", func() { s.settings.NotificationsEnabled = enabled })
}

// SetDailyReminder toggles the daily reminder. A non-empty at (HH:MM)
// also moves the reminder time; an empty one keeps it.
func (s *Store) SetDailyReminder(enabled bool, at string) outcome.Result {
	if at != "" {
		if _, err := time.Parse("15:04", at); err != nil {
			return outcome.Invalid
		}
	}
	s.update("set_daily_reminder", at, func() {
		s.settings.DailyReminderEnabled = enabled
		if at != "" {
			s.settings.DailyReminderTime = at
		}
	})
	return outcome.OK
}

// SetSound toggles sound. A nil autoplay keeps the current autoplay flag.
func (s *Store) SetSound(enabled bool, autoplay *bool) {
	s.update("set_sound", "", func() {
		s.settings.SoundEnabled = enabled
		if autoplay != nil {
			s.settings.AutoplayAudio = *autoplay
		}
	})
}

// SetSpeechSpeed sets the playback speed multiplier.
func (s *Store) SetSpeechSpeed(speed float64) outcome.Result {
	if speed < MinSpeechSpeed || speed > MaxSpeechSpeed {
		return outcome.Invalid
	}
	s.update("set_speech_speed", "", func() { s.settings.SpeechSpeed = speed })
	return outcome.OK
}

// SetFontSize sets the text size step.
func (s *Store) SetFontSize(size FontSize) outcome.Result {
	if !size.Valid() {
		return outcome.Invalid
	}
	s.update("set_font_size", string(size), func() { s.settings.FontSize = size })
	return outcome.OK
}

// SetHaptics toggles haptic feedback.
func (s *Store) SetHaptics(enabled bool) {
	s.update("set_haptics", "", func() { s.settings.HapticsEnabled = enabled })
}

// EffectiveDarkMode resolves the dark-mode flag against the system signal.
func (s *Store) EffectiveDarkMode(systemDark bool) bool {
	st := s.Settings()
	if st.ThemeMode == ThemeManual {
		return st.ManualDarkMode
	}
	return systemDark
}

// Stats returns the learning counters.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// UpdateStats replaces the counters. LongestStreak is raised to at least
// CurrentStreak.
func (s *Store) UpdateStats(st Stats) {
	st.LongestStreak = max(st.LongestStreak, st.CurrentStreak)
	s.update("update_stats", "", func() { s.stats = st })
}

// IncrementWords adds n to the words-learned counters.
func (s *Store) IncrementWords(n int) outcome.Result {
	if n < 0 {
		return outcome.Invalid
	}
	s.update("increment_words", "", func() {
		s.stats.WordsLearned += n
		s.profile.WordsLearned += n
	})
	return outcome.OK
}

// UpdateStreak sets the current streak. The longest streak never decreases.
func (s *Store) UpdateStreak(current int) outcome.Result {
	if current < 0 {
		return outcome.Invalid
	}
	s.update("update_streak", "", func() {
		s.stats.CurrentStreak = current
		s.stats.LongestStreak = max(s.stats.LongestStreak, current)
		s.profile.CurrentStreak = current
	})
	return outcome.OK
}

// IncrementConversations counts one more finished conversation.
func (s *Store) IncrementConversations() {
	s.update("increment_conversations", "", func() {
		s.stats.TotalConversations++
		s.profile.TotalConversations++
	})
}

// AddLearningTime adds minutes to the total and to this week's progress.
// Weekly progress is never reset automatically.
func (s *Store) AddLearningTime(minutes int) outcome.Result {
	if minutes < 0 {
		return outcome.Invalid
	}
	s.update("add_learning_time", "", func() {
		s.stats.MinutesLearned += minutes
		s.stats.WeeklyProgress += minutes
	})
	return outcome.OK
}

// Achievements returns every achievement in display order.
func (s *Store) Achievements() []Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Achievement, len(s.achievements))
	for i, a := range s.achievements {
		out[i] = a.clone()
	}
	return out
}

// Unlocked returns the unlocked achievements in display order.
func (s *Store) Unlocked() []Achievement {
	var out []Achievement
	for _, a := range s.Achievements() {
		if a.Unlocked {
			out = append(out, a)
		}
	}
	return out
}

// Unlock marks achievement id as unlocked now. Unlocking twice keeps the
// first timestamp and reports AlreadyExists.
func (s *Store) Unlock(id string) outcome.Result {
	now := s.now()

	s.mu.Lock()
	i := -1
	for j := range s.achievements {
		if s.achievements[j].ID == id {
			i = j
			break
		}
	}
	if i < 0 {
		s.mu.Unlock()
		return outcome.NotFound
	}
	if s.achievements[i].Unlocked {
		s.mu.Unlock()
		return outcome.AlreadyExists
	}
	s.achievements[i].Unlocked = true
	s.achievements[i].UnlockedAt = &now
	s.mu.Unlock()

	s.changes.Publish("unlock_achievement", id)
	return outcome.OK
}

// LearningLanguageCount returns the number of non-native languages being
// learned.
func (s *Store) LearningLanguageCount() int {
	return len(s.Profile().LearningLanguages)
}

// TotalSavedSpeakers returns the number of bookmarked speakers, or 0 when
// no counter is wired.
func (s *Store) TotalSavedSpeakers() int {
	if s.saved == nil {
		return 0
	}
	return s.saved.SavedCount()
}
