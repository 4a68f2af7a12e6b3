package speaker

import "github.com/abhisek/quickspeak/internal/assets"

// Theme is the four-colour palette a speaker's cards are drawn with.
// Colours are #RRGGBB hex strings.
type Theme struct {
	Background     string
	CardBackground string
	Text           string
	Border         string
}

// Speaker is an immutable persona the user can chat with.
type Speaker struct {
	ID          int
	Name        string
	Language    string
	Flag        string
	AvatarSeed  string
	Personality []string
	Interests   []string
	Theme       Theme
}

// AvatarURL returns the avatar image URL derived from the speaker's seed.
func (s Speaker) AvatarURL() string {
	return assets.AvatarURL(s.AvatarSeed)
}

// clone returns a copy that shares no slices with s.
func (s Speaker) clone() Speaker {
	s.Personality = append([]string(nil), s.Personality...)
	s.Interests = append([]string(nil), s.Interests...)
	return s
}
