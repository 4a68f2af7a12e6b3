package chat

import (
	"time"

	"github.com/abhisek/quickspeak/internal/assets"
	"github.com/abhisek/quickspeak/internal/speaker"
)

// UserSender is the sender id carried by messages the user wrote.
const UserSender = "user"

// SavedSpeaker is a bookmark holding a copy of the speaker's fields as they
// were at save time. It is not refreshed when the catalog changes.
type SavedSpeaker struct {
	SpeakerID  int
	Name       string
	Language   string
	Flag       string
	AvatarSeed string
}

// SavedFromSpeaker takes the bookmark snapshot of sp.
func SavedFromSpeaker(sp speaker.Speaker) SavedSpeaker {
	return SavedSpeaker{
		SpeakerID:  sp.ID,
		Name:       sp.Name,
		Language:   sp.Language,
		Flag:       sp.Flag,
		AvatarSeed: sp.AvatarSeed,
	}
}

// AvatarURL returns the avatar image URL for the saved seed.
func (s SavedSpeaker) AvatarURL() string {
	return assets.AvatarURL(s.AvatarSeed)
}

// Message is one entry in a chat. IDs run 1..n within their chat.
type Message struct {
	ID        int
	SenderID  string
	Content   string
	Timestamp time.Time
}

// FromUser reports whether the user wrote the message.
func (m Message) FromUser() bool {
	return m.SenderID == UserSender
}

// Chat is the conversation with one speaker. A store holds at most one chat
// per speaker.
type Chat struct {
	ID              string
	SpeakerID       int
	SpeakerName     string
	Messages        []Message
	LastMessageTime time.Time
	HasUnread       bool
}

// LastMessage returns the most recent message, if any.
func (c Chat) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

func (c Chat) clone() Chat {
	c.Messages = append([]Message(nil), c.Messages...)
	return c
}
