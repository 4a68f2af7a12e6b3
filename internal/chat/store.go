// Package chat owns saved speakers and the conversations with them.
package chat

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/abhisek/quickspeak/internal/notify"
	"github.com/abhisek/quickspeak/internal/outcome"
	"github.com/abhisek/quickspeak/internal/speaker"
	"github.com/abhisek/quickspeak/internal/store"
)

// SpeakerLookup resolves catalog speakers by id.
type SpeakerLookup interface {
	ByID(id int) (speaker.Speaker, bool)
}

// LanguageFilter reports whether a language is in the learning set.
type LanguageFilter interface {
	IsLearning(name string) bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for chat ids and message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithDemoData seeds five bookmarks and five conversations.
func WithDemoData() Option {
	return func(s *Store) { s.demo = true }
}

// Store holds saved speakers and chats, each in insertion order.
type Store struct {
	speakers  SpeakerLookup
	languages LanguageFilter
	now       func() time.Time
	demo      bool

	mu      sync.Mutex
	saved   []SavedSpeaker
	chats   []Chat
	changes *notify.Notifier
}

// NewStore creates a chat store. languages may be nil, in which case every
// saved speaker and chat is visible.
func NewStore(speakers SpeakerLookup, languages LanguageFilter, opts ...Option) *Store {
	s := &Store{
		speakers:  speakers,
		languages: languages,
		now:       time.Now,
		changes:   notify.New("chat"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.demo {
		s.seedDemo(s.now())
	}
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

// AddSaved bookmarks sp. A speaker that is already saved keeps its original
// snapshot.
func (s *Store) AddSaved(sp speaker.Speaker) outcome.Result {
	s.mu.Lock()
	r := s.addSavedLocked(sp)
	s.mu.Unlock()

	if r == outcome.OK {
		s.changes.Publish("save_speaker", strconv.Itoa(sp.ID))
	}
	return r
}

func (s *Store) addSavedLocked(sp speaker.Speaker) outcome.Result {
	if s.savedIndex(sp.ID) >= 0 {
		return outcome.AlreadyExists
	}
	s.saved = append(s.saved, SavedFromSpeaker(sp))
	return outcome.OK
}

// RemoveSaved drops the bookmark for speakerID. Any chat with that speaker
// is kept.
func (s *Store) RemoveSaved(speakerID int) outcome.Result {
	s.mu.Lock()
	i := s.savedIndex(speakerID)
	if i < 0 {
		s.mu.Unlock()
		return outcome.NotFound
	}
	s.saved = append(s.saved[:i], s.saved[i+1:]...)
	s.mu.Unlock()

	s.changes.Publish("unsave_speaker", strconv.Itoa(speakerID))
	return outcome.OK
}

// IsSaved reports whether speakerID is bookmarked.
func (s *Store) IsSaved(speakerID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savedIndex(speakerID) >= 0
}

// Saved returns every bookmark in save order.
func (s *Store) Saved() []SavedSpeaker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SavedSpeaker(nil), s.saved...)
}

// SavedCount returns the number of bookmarks.
func (s *Store) SavedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

// StartChat opens a fresh conversation with sp seeded with the speaker's
// greeting. An existing chat with sp is discarded along with its history.
// The speaker is bookmarked if it was not already.
func (s *Store) StartChat(sp speaker.Speaker) Chat {
	now := s.now()
	c := Chat{
		ID:          fmt.Sprintf("chat_%d_%d", sp.ID, now.UnixMilli()),
		SpeakerID:   sp.ID,
		SpeakerName: sp.Name,
		Messages: []Message{{
			ID:        1,
			SenderID:  strconv.Itoa(sp.ID),
			Content:   Greeting(sp.Name),
			Timestamp: now,
		}},
		LastMessageTime: now,
	}

	s.mu.Lock()
	kept := s.chats[:0]
	for _, existing := range s.chats {
		if existing.SpeakerID != sp.ID {
			kept = append(kept, existing)
		}
	}
	s.chats = append(kept, c)
	saved := s.addSavedLocked(sp) == outcome.OK
	s.mu.Unlock()

	s.changes.Publish("start_chat", c.ID)
	if saved {
		s.changes.Publish("save_speaker", strconv.Itoa(sp.ID))
	}
	return c.clone()
}

// ChatBySpeaker returns the chat with speakerID, if one exists.
func (s *Store) ChatBySpeaker(speakerID int) (Chat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.chats {
		if c.SpeakerID == speakerID {
			return c.clone(), true
		}
	}
	return Chat{}, false
}

// ChatByID returns the chat with the given id, if one exists.
func (s *Store) ChatByID(chatID string) (Chat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.chatIndex(chatID); i >= 0 {
		return s.chats[i].clone(), true
	}
	return Chat{}, false
}

// Chats returns every chat in creation order.
func (s *Store) Chats() []Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Chat, len(s.chats))
	for i, c := range s.chats {
		out[i] = c.clone()
	}
	return out
}

// AddMessage appends a message to chatID. A speaker message marks the chat
// unread and a user message marks it read.
func (s *Store) AddMessage(chatID, content string, fromUser bool) (Message, outcome.Result) {
	now := s.now()

	s.mu.Lock()
	i := s.chatIndex(chatID)
	if i < 0 {
		s.mu.Unlock()
		return Message{}, outcome.NotFound
	}
	c := &s.chats[i]
	sender := UserSender
	if !fromUser {
		sender = strconv.Itoa(c.SpeakerID)
	}
	m := Message{
		ID:        len(c.Messages) + 1,
		SenderID:  sender,
		Content:   content,
		Timestamp: now,
	}
	c.Messages = append(c.Messages, m)
	c.LastMessageTime = m.Timestamp
	c.HasUnread = !fromUser
	s.mu.Unlock()

	s.changes.Publish("add_message", chatID)
	return m, outcome.OK
}

// MarkRead clears the unread flag on chatID.
func (s *Store) MarkRead(chatID string) outcome.Result {
	s.mu.Lock()
	i := s.chatIndex(chatID)
	if i < 0 {
		s.mu.Unlock()
		return outcome.NotFound
	}
	s.chats[i].HasUnread = false
	s.mu.Unlock()

	s.changes.Publish("mark_read", chatID)
	return outcome.OK
}

// UnreadCount returns how many chats have an unread speaker reply.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.chats {
		if c.HasUnread {
			n++
		}
	}
	return n
}

// VisibleSaved returns the bookmarks whose language is being learned.
func (s *Store) VisibleSaved() []SavedSpeaker {
	saved := s.Saved()
	if s.languages == nil {
		return saved
	}
	out := []SavedSpeaker{}
	for _, sp := range saved {
		if s.languages.IsLearning(sp.Language) {
			out = append(out, sp)
		}
	}
	return out
}

// VisibleChats returns the chats whose speaker's language is being learned.
// Chats with a speaker missing from the catalog are hidden.
func (s *Store) VisibleChats() []Chat {
	chats := s.Chats()
	if s.languages == nil {
		return chats
	}
	out := []Chat{}
	for _, c := range chats {
		sp, ok := s.speakers.ByID(c.SpeakerID)
		if ok && s.languages.IsLearning(sp.Language) {
			out = append(out, c)
		}
	}
	return out
}

// SnapshotData builds the bookmarks and chats for snapshot persistence.
func (s *Store) SnapshotData() ([]store.SavedSpeakerData, []store.ChatData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := make([]store.SavedSpeakerData, len(s.saved))
	for i, sp := range s.saved {
		saved[i] = store.SavedSpeakerData{
			SpeakerID:  sp.SpeakerID,
			Name:       sp.Name,
			Language:   sp.Language,
			Flag:       sp.Flag,
			AvatarSeed: sp.AvatarSeed,
		}
	}

	chats := make([]store.ChatData, len(s.chats))
	for i, c := range s.chats {
		msgs := make([]store.MessageData, len(c.Messages))
		for j, m := range c.Messages {
			msgs[j] = store.MessageData{
				ID:          m.ID,
				SenderID:    m.SenderID,
				Content:     m.Content,
				TimestampMs: m.Timestamp.UnixMilli(),
			}
		}
		chats[i] = store.ChatData{
			ID:            c.ID,
			SpeakerID:     c.SpeakerID,
			SpeakerName:   c.SpeakerName,
			Messages:      msgs,
			LastMessageMs: c.LastMessageTime.UnixMilli(),
			HasUnread:     c.HasUnread,
		}
	}
	return saved, chats
}

// Restore replaces bookmarks and chats with persisted data. Later duplicates
// of a speaker id are dropped. Message ids are renumbered 1..n.
func (s *Store) Restore(saved []store.SavedSpeakerData, chats []store.ChatData) {
	restoredSaved := make([]SavedSpeaker, 0, len(saved))
	seen := make(map[int]bool, len(saved))
	for _, d := range saved {
		if seen[d.SpeakerID] {
			continue
		}
		seen[d.SpeakerID] = true
		restoredSaved = append(restoredSaved, SavedSpeaker{
			SpeakerID:  d.SpeakerID,
			Name:       d.Name,
			Language:   d.Language,
			Flag:       d.Flag,
			AvatarSeed: d.AvatarSeed,
		})
	}

	restoredChats := make([]Chat, 0, len(chats))
	seenChat := make(map[int]bool, len(chats))
	for _, d := range chats {
		if seenChat[d.SpeakerID] {
			continue
		}
		seenChat[d.SpeakerID] = true
		c := Chat{
			ID:              d.ID,
			SpeakerID:       d.SpeakerID,
			SpeakerName:     d.SpeakerName,
			LastMessageTime: time.UnixMilli(d.LastMessageMs),
			HasUnread:       d.HasUnread,
		}
		for j, m := range d.Messages {
			c.Messages = append(c.Messages, Message{
				ID:        j + 1,
				SenderID:  m.SenderID,
				Content:   m.Content,
				Timestamp: time.UnixMilli(m.TimestampMs),
			})
		}
		restoredChats = append(restoredChats, c)
	}

	s.mu.Lock()
	s.saved = restoredSaved
	s.chats = restoredChats
	s.mu.Unlock()
}

func (s *Store) savedIndex(speakerID int) int {
	for i, sp := range s.saved {
		if sp.SpeakerID == speakerID {
			return i
		}
	}
	return -1
}

func (s *Store) chatIndex(chatID string) int {
	for i, c := range s.chats {
		if c.ID == chatID {
			return i
		}
	}
	return -1
}
