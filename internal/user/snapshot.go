package user

import (
	"time"

	"github.com/abhisek/quickspeak/internal/store"
)

// SnapshotData builds the user state for snapshot persistence. The
// profile's language fields are stored as kept, not as resolved live.
func (s *Store) SnapshotData() store.UserSnapshotData {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.profile
	st := s.settings
	out := store.UserSnapshotData{
		Profile: store.ProfileData{
			ID:                  p.ID,
			Name:                p.Name,
			Email:               p.Email,
			AvatarSeed:          p.AvatarSeed,
			NativeLanguage:      p.NativeLanguage,
			LearningLanguages:   append([]string(nil), p.LearningLanguages...),
			JoinedMs:            p.JoinedAt.UnixMilli(),
			WordsLearned:        p.WordsLearned,
			CurrentStreak:       p.CurrentStreak,
			TotalConversations:  p.TotalConversations,
			PreferredDifficulty: p.PreferredDifficulty,
		},
		Settings: store.SettingsData{
			ThemeMode:            string(st.ThemeMode),
			ManualDarkMode:       st.ManualDarkMode,
			NotificationsEnabled: st.NotificationsEnabled,
			DailyReminderEnabled: st.DailyReminderEnabled,
			DailyReminderTime:    st.DailyReminderTime,
			SoundEnabled:         st.SoundEnabled,
			AutoplayAudio:        st.AutoplayAudio,
			SpeechSpeed:          st.SpeechSpeed,
			FontSize:             string(st.FontSize),
			HapticsEnabled:       st.HapticsEnabled,
		},
		Stats: store.StatsData{
			WordsLearned:       s.stats.WordsLearned,
			CurrentStreak:      s.stats.CurrentStreak,
			LongestStreak:      s.stats.LongestStreak,
			TotalConversations: s.stats.TotalConversations,
			MinutesLearned:     s.stats.MinutesLearned,
			WeeklyGoal:         s.stats.WeeklyGoal,
			WeeklyProgress:     s.stats.WeeklyProgress,
		},
	}
	for _, a := range s.achievements {
		ad := store.AchievementData{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Icon:        a.Icon,
			Unlocked:    a.Unlocked,
		}
		if a.UnlockedAt != nil {
			ms := a.UnlockedAt.UnixMilli()
			ad.UnlockedMs = &ms
		}
		out.Achievements = append(out.Achievements, ad)
	}
	return out
}

// Restore replaces the user state with persisted data. Settings that fail
// validation fall back to the defaults field by field, and the longest
// streak is raised to at least the current one.
func (s *Store) Restore(data store.UserSnapshotData) {
	p := data.Profile
	profile := Profile{
		ID:                  p.ID,
		Name:                p.Name,
		Email:               p.Email,
		AvatarSeed:          p.AvatarSeed,
		NativeLanguage:      p.NativeLanguage,
		LearningLanguages:   append([]string(nil), p.LearningLanguages...),
		JoinedAt:            time.UnixMilli(p.JoinedMs),
		WordsLearned:        p.WordsLearned,
		CurrentStreak:       p.CurrentStreak,
		TotalConversations:  p.TotalConversations,
		PreferredDifficulty: p.PreferredDifficulty,
	}

	sd := data.Settings
	settings := Settings{
		ThemeMode:            ThemeMode(sd.ThemeMode),
		ManualDarkMode:       sd.ManualDarkMode,
		NotificationsEnabled: sd.NotificationsEnabled,
		DailyReminderEnabled: sd.DailyReminderEnabled,
		DailyReminderTime:    sd.DailyReminderTime,
		SoundEnabled:         sd.SoundEnabled,
		AutoplayAudio:        sd.AutoplayAudio,
		SpeechSpeed:          sd.SpeechSpeed,
		FontSize:             FontSize(sd.FontSize),
		HapticsEnabled:       sd.HapticsEnabled,
	}
	settings = repairSettings(settings)

	st := data.Stats
	stats := Stats{
		WordsLearned:       st.WordsLearned,
		CurrentStreak:      st.CurrentStreak,
		LongestStreak:      max(st.LongestStreak, st.CurrentStreak),
		TotalConversations: st.TotalConversations,
		MinutesLearned:     st.MinutesLearned,
		WeeklyGoal:         st.WeeklyGoal,
		WeeklyProgress:     st.WeeklyProgress,
	}

	achievements := make([]Achievement, 0, len(data.Achievements))
	for _, ad := range data.Achievements {
		a := Achievement{
			ID:          ad.ID,
			Title:       ad.Title,
			Description: ad.Description,
			Icon:        ad.Icon,
			Unlocked:    ad.Unlocked,
		}
		if ad.Unlocked && ad.UnlockedMs != nil {
			t := time.UnixMilli(*ad.UnlockedMs)
			a.UnlockedAt = &t
		}
		achievements = append(achievements, a)
	}

	s.mu.Lock()
	s.profile = profile
	s.settings = settings
	s.stats = stats
	s.achievements = achievements
	s.mu.Unlock()
}

func repairSettings(st Settings) Settings {
	def := DefaultSettings()
	if !st.ThemeMode.Valid() {
		st.ThemeMode = def.ThemeMode
	}
	if !st.FontSize.Valid() {
		st.FontSize = def.FontSize
	}
	if st.SpeechSpeed < MinSpeechSpeed || st.SpeechSpeed > MaxSpeechSpeed {
		st.SpeechSpeed = def.SpeechSpeed
	}
	if _, err := time.Parse("15:04", st.DailyReminderTime); err != nil {
		st.DailyReminderTime = def.DailyReminderTime
	}
	return st
}
