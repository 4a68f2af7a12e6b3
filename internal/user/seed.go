package user

import "time"

const day = 24 * time.Hour

func seedProfile(now time.Time) Profile {
	return Profile{
		ID:                  "user_001",
		Name:                "Alex Johnson",
		Email:               "alex.johnson@example.com",
		AvatarSeed:          "alexjohnson",
		NativeLanguage:      "English",
		LearningLanguages:   []string{"Portuguese", "German"},
		JoinedAt:            now.Add(-30 * day),
		WordsLearned:        247,
		CurrentStreak:       7,
		TotalConversations:  34,
		PreferredDifficulty: "Intermediate",
	}
}

func seedStats() Stats {
	return Stats{
		WordsLearned:       247,
		CurrentStreak:      7,
		LongestStreak:      12,
		TotalConversations: 34,
		MinutesLearned:     420,
		WeeklyGoal:         120,
		WeeklyProgress:     87,
	}
}

func seedAchievements(now time.Time) []Achievement {
	ago := func(days int) *time.Time {
		t := now.Add(-time.Duration(days) * day)
		return &t
	}
	return []Achievement{
		{ID: "first_chat", Title: "First Chat", Description: "Complete your first conversation", Icon: "💬", Unlocked: true, UnlockedAt: ago(25)},
		{ID: "week_streak", Title: "Week Warrior", Description: "Maintain a 7-day learning streak", Icon: "🔥", Unlocked: true, UnlockedAt: ago(2)},
		{ID: "hundred_words", Title: "Word Master", Description: "Learn 100 new words", Icon: "📚", Unlocked: true, UnlockedAt: ago(10)},
		{ID: "polyglot", Title: "Polyglot", Description: "Chat with speakers from 3 different languages", Icon: "🌍", Unlocked: true, UnlockedAt: ago(15)},
		{ID: "early_bird", Title: "Early Bird", Description: "Complete morning lessons for 5 days", Icon: "🌅"},
		{ID: "social_butterfly", Title: "Social Butterfly", Description: "Save 10 different speakers", Icon: "🦋"},
		{ID: "month_streak", Title: "Monthly Master", Description: "Maintain a 30-day learning streak", Icon: "🏆"},
		{ID: "thousand_words", Title: "Vocabulary Virtuoso", Description: "Learn 1000 new words", Icon: "🎓"},
	}
}
