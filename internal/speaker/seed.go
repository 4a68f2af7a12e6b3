package speaker

const (
	white = "#FFFFFF"
	slate = "#374151"
)

func theme(bg, card, text, border string) Theme {
	return Theme{Background: bg, CardBackground: card, Text: text, Border: border}
}

// seedSpeakers is the built-in persona catalog in display order.
var seedSpeakers = []Speaker{
	{
		ID: 1, Name: "Burkhart", Language: "German", Flag: "🇩🇪",
		Personality: []string{"😐 Neutral", "😇 Polite"},
		Interests:   []string{"🎸 Metal Music", "🎭 Theater", "🏋️‍♂️ Weightlifting"},
		Theme:       theme("#06D6A0", "#50F9C2", slate, "#06D6A0"),
	},
	{
		ID: 2, Name: "Leonie", Language: "French", Flag: "🇫🇷",
		Personality: []string{"🤝 Friendly", "🤪 Goofy"},
		Interests:   []string{"🗻 Hiking", "🎵 Pop Music", "🐘 Elephants"},
		Theme:       theme("#EF476F", "#FE6788", white, "#EF476F"),
	},
	{
		ID: 3, Name: "Marta", Language: "Spanish", Flag: "🇪🇸",
		Personality: []string{"🧐 Curious", "☺️ Kind"},
		Interests:   []string{"🍳 Gourmet Food", "🎞️ Old Cinema", "🎓 Education"},
		Theme:       theme("#FFD166", "#FFE08A", slate, "#FFD166"),
	},
	{
		ID: 4, Name: "Aarav", Language: "Hindi", Flag: "🇮🇳",
		Personality: []string{"🧘‍♂️ Calm", "💡 Insightful"},
		Interests:   []string{"🏏 Cricket", "🌶️ Spicy Food", "🎬 Bollywood"},
		Theme:       theme("#F97316", "#FF9933", white, "#F97316"),
	},
	{
		ID: 5, Name: "Marco", Language: "Italian", Flag: "🇮🇹",
		Personality: []string{"😎 Confident", "🍝 Passionate"},
		Interests:   []string{"⚽ Soccer", "🏛️ History", "🍷 Fine Wine"},
		Theme:       theme("#3B82F6", "#60A5FA", white, "#3B82F6"),
	},
	{
		ID: 6, Name: "Sofia", Language: "Portuguese", Flag: "🇧🇷",
		Personality: []string{"🎉 Energetic", "🎨 Creative"},
		Interests:   []string{"💃 Samba", "🏖️ Beaches", "📸 Photography"},
		Theme:       theme("#10B981", "#34D399", white, "#10B981"),
	},
	{
		ID: 7, Name: "Kenji", Language: "Japanese", Flag: "🇯🇵",
		Personality: []string{"🙏 Respectful", "💻 Tech-savvy"},
		Interests:   []string{"🍣 Sushi", "🌸 Anime", "🕹️ Video Games"},
		Theme:       theme("#F87171", "#FCA5A5", slate, "#F87171"),
	},
	{
		ID: 8, Name: "Fatima", Language: "Arabic", Flag: "🇦🇪",
		Personality: []string{"👑 Gracious", "🏠 Hospitable"},
		Interests:   []string{"☕ Coffee", "🖋️ Poetry", "🏜️ Desert Camping"},
		Theme:       theme("#8B5CF6", "#A78BFA", white, "#8B5CF6"),
	},
	{
		ID: 9, Name: "Dmitri", Language: "Russian", Flag: "🇷🇺",
		Personality: []string{"💪 Stoic", "🤔 Philosophical"},
		Interests:   []string{"📚 Literature", "♟️ Chess", "❄️ Winter Sports"},
		Theme:       theme("#0284C7", "#0EA5E9", white, "#0284C7"),
	},
	{
		ID: 10, Name: "Chloe", Language: "English", Flag: "🇬🇧",
		Personality: []string{"🔥 Witty", "😏 Sarcastic"},
		Interests:   []string{"🎸 Indie Rock", "🌧️ Rainy Days", "☕ Tea"},
		Theme:       theme("#6366F1", "#818CF8", white, "#6366F1"),
	},
	{
		ID: 11, Name: "Liam", Language: "Irish", Flag: "🇮🇪",
		Personality: []string{"😂 Humorous", "📖 Storytelling"},
		Interests:   []string{"🎻 Folk Music", "🍻 Pubs", "🍀 Mythology"},
		Theme:       theme("#059669", "#34D399", white, "#059669"),
	},
	{
		ID: 12, Name: "Hao", Language: "Chinese", Flag: "🇨🇳",
		Personality: []string{"⚡ Diligent", "🎯 Ambitious"},
		Interests:   []string{"🏓 Table Tennis", "🍵 Tea Ceremony", "📈 Business"},
		Theme:       theme("#E11D48", "#F43F5E", white, "#E11D48"),
	},
	{
		ID: 13, Name: "Astrid", Language: "Swedish", Flag: "🇸🇪",
		Personality: []string{"❄️ Cool-headed", "🌿 Nature-loving"},
		Interests:   []string{"🛶 Canoeing", "🔮 Folklore", "☕ Fika"},
		Theme:       theme("#06B6D4", "#22D3EE", white, "#06B6D4"),
	},
	{
		ID: 14, Name: "Ji-hoon", Language: "Korean", Flag: "🇰🇷",
		Personality: []string{"🥋 Disciplined", "🎪 Innovative"},
		Interests:   []string{"🥋 Taekwondo", "🎵 K-pop", "🍜 Street Food"},
		Theme:       theme("#7C3AED", "#A78BEA", white, "#7C3AED"),
	},
	{
		ID: 15, Name: "Aisha", Language: "Swahili", Flag: "🇰🇪",
		Personality: []string{"🌍 Warm-hearted", "🕊️ Peaceful"},
		Interests:   []string{"🦒 Safari", "🎶 Afrobeat", "🌴 Palm Trees"},
		Theme:       theme("#84CC16", "#BEF264", slate, "#84CC16"),
	},
}

func init() {
	for i := range seedSpeakers {
		seedSpeakers[i].AvatarSeed = seedSpeakers[i].Name
	}
}
