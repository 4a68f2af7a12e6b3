package chat

import (
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quickspeak/internal/notify"
	"github.com/abhisek/quickspeak/internal/outcome"
	"github.com/abhisek/quickspeak/internal/speaker"
)

// fakeLanguages implements LanguageFilter over a fixed set of names.
type fakeLanguages map[string]bool

func (f fakeLanguages) IsLearning(name string) bool { return f[name] }

// stepClock returns a clock that advances one second per call.
func stepClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, opts ...Option) (*Store, *speaker.Catalog) {
	t.Helper()
	cat := speaker.DefaultCatalog()
	opts = append([]Option{WithClock(stepClock(epoch))}, opts...)
	return NewStore(cat, nil, opts...), cat
}

func mustSpeaker(t *testing.T, cat *speaker.Catalog, id int) speaker.Speaker {
	t.Helper()
	sp, ok := cat.ByID(id)
	require.True(t, ok)
	return sp
}

func TestEmptyByDefault(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Empty(t, s.Saved())
	assert.Empty(t, s.Chats())
	assert.Equal(t, 0, s.UnreadCount())
}

func TestSavedUniqueness(t *testing.T) {
	s, cat := newTestStore(t)
	hao := mustSpeaker(t, cat, 12)
	sofia := mustSpeaker(t, cat, 6)

	assert.Equal(t, outcome.OK, s.AddSaved(hao))
	assert.Equal(t, outcome.AlreadyExists, s.AddSaved(hao))
	assert.Equal(t, outcome.OK, s.AddSaved(sofia))
	assert.Equal(t, outcome.AlreadyExists, s.AddSaved(hao))

	saved := s.Saved()
	require.Len(t, saved, 2)
	assert.Equal(t, 12, saved[0].SpeakerID)
	assert.Equal(t, 6, saved[1].SpeakerID)
	assert.Equal(t, 2, s.SavedCount())
}

func TestSavedSnapshotDoesNotTrackCatalog(t *testing.T) {
	s, cat := newTestStore(t)
	hao := mustSpeaker(t, cat, 12)
	s.AddSaved(hao)

	renamed := hao
	renamed.Name = "Hao Renamed"
	assert.Equal(t, outcome.AlreadyExists, s.AddSaved(renamed))
	assert.Equal(t, "Hao", s.Saved()[0].Name)
	assert.Equal(t, "https://api.dicebear.com/9.x/avataaars/svg?seed=Hao", s.Saved()[0].AvatarURL())
}

func TestRemoveSaved(t *testing.T) {
	s, cat := newTestStore(t)
	s.AddSaved(mustSpeaker(t, cat, 1))

	assert.Equal(t, outcome.OK, s.RemoveSaved(1))
	assert.False(t, s.IsSaved(1))
	assert.Equal(t, outcome.NotFound, s.RemoveSaved(1))
}

// Scenario: starting a chat with Hao seeds one Chinese greeting and saves him.
func TestStartChat(t *testing.T) {
	s, cat := newTestStore(t)
	hao := mustSpeaker(t, cat, 12)

	c := s.StartChat(hao)
	require.Len(t, c.Messages, 1)
	m := c.Messages[0]
	assert.Equal(t, 1, m.ID)
	assert.Equal(t, "12", m.SenderID)
	assert.False(t, m.FromUser())
	assert.Equal(t, "你好！我是郝。很高兴认识你！", m.Content)
	assert.Equal(t, m.Timestamp, c.LastMessageTime)
	assert.False(t, c.HasUnread)
	assert.Equal(t, "Hao", c.SpeakerName)
	assert.Equal(t, "chat_12_"+itoa(m.Timestamp.UnixMilli()), c.ID)
	assert.True(t, s.IsSaved(12))

	got, ok := s.ChatBySpeaker(12)
	require.True(t, ok)
	assert.Equal(t, c, got)
}

// Scenario: a user reply gets id 2 and leaves the chat read.
func TestAddUserMessage(t *testing.T) {
	s, cat := newTestStore(t)
	c := s.StartChat(mustSpeaker(t, cat, 12))

	m, r := s.AddMessage(c.ID, "你好", true)
	require.Equal(t, outcome.OK, r)
	assert.Equal(t, 2, m.ID)
	assert.Equal(t, UserSender, m.SenderID)
	assert.True(t, m.FromUser())

	got, _ := s.ChatByID(c.ID)
	assert.False(t, got.HasUnread)
	last, ok := got.LastMessage()
	require.True(t, ok)
	assert.Equal(t, m, last)
}

func TestStartChatReplacesHistory(t *testing.T) {
	s, cat := newTestStore(t)
	marco := mustSpeaker(t, cat, 5)
	s.StartChat(mustSpeaker(t, cat, 3))

	first := s.StartChat(marco)
	s.AddMessage(first.ID, "Ciao!", true)
	s.AddMessage(first.ID, "Come stai?", false)

	second := s.StartChat(marco)
	assert.NotEqual(t, first.ID, second.ID)

	var forMarco []Chat
	for _, c := range s.Chats() {
		if c.SpeakerID == 5 {
			forMarco = append(forMarco, c)
		}
	}
	require.Len(t, forMarco, 1)
	require.Len(t, forMarco[0].Messages, 1)
	assert.Equal(t, "Ciao! Sono Marco. Piacere di conoscerti!", forMarco[0].Messages[0].Content)

	_, ok := s.ChatByID(first.ID)
	assert.False(t, ok)
	assert.Equal(t, 3, s.Chats()[0].SpeakerID)
	assert.Equal(t, 2, s.SavedCount())
}

func TestMessageSequencing(t *testing.T) {
	s, cat := newTestStore(t)
	c := s.StartChat(mustSpeaker(t, cat, 9))

	var last Message
	for i := 0; i < 5; i++ {
		m, r := s.AddMessage(c.ID, "msg", i%2 == 0)
		require.Equal(t, outcome.OK, r)
		last = m
	}

	got, _ := s.ChatByID(c.ID)
	require.Len(t, got.Messages, 6)
	for i, m := range got.Messages {
		assert.Equal(t, i+1, m.ID)
	}
	assert.Equal(t, last.Timestamp, got.LastMessageTime)
	assert.True(t, got.LastMessageTime.After(c.LastMessageTime))
}

func TestUnreadToggling(t *testing.T) {
	s, cat := newTestStore(t)
	c := s.StartChat(mustSpeaker(t, cat, 2))

	s.AddMessage(c.ID, "Coucou", false)
	got, _ := s.ChatByID(c.ID)
	assert.True(t, got.HasUnread)
	assert.Equal(t, 1, s.UnreadCount())

	assert.Equal(t, outcome.OK, s.MarkRead(c.ID))
	got, _ = s.ChatByID(c.ID)
	assert.False(t, got.HasUnread)

	s.AddMessage(c.ID, "Ça va?", false)
	s.AddMessage(c.ID, "Oui", true)
	got, _ = s.ChatByID(c.ID)
	assert.False(t, got.HasUnread)
}

func TestUnknownChat(t *testing.T) {
	s, _ := newTestStore(t)
	_, r := s.AddMessage("chat_404", "hello", true)
	assert.Equal(t, outcome.NotFound, r)
	assert.Equal(t, outcome.NotFound, s.MarkRead("chat_404"))
	_, ok := s.ChatBySpeaker(404)
	assert.False(t, ok)
	assert.Equal(t, uint64(0), s.Version())
}

func TestGreetingFallback(t *testing.T) {
	assert.Equal(t, "Hello! I'm Dmitri. Nice to meet you!", Greeting("Dmitri"))
	assert.Equal(t, "Guten Tag! Ich bin Burkhart. Freut mich.", Greeting("Burkhart"))
}

func TestDemoData(t *testing.T) {
	s, _ := newTestStore(t, WithDemoData())

	var savedIDs []int
	for _, sp := range s.Saved() {
		savedIDs = append(savedIDs, sp.SpeakerID)
	}
	assert.Equal(t, []int{12, 6, 1, 3, 5}, savedIDs)

	chats := s.Chats()
	require.Len(t, chats, 5)
	assert.Equal(t, "chat_hao_1", chats[0].ID)
	assert.Len(t, chats[0].Messages, 5)
	assert.Equal(t, 3, s.UnreadCount())

	for _, c := range chats {
		last, ok := c.LastMessage()
		require.True(t, ok)
		assert.Equal(t, last.Timestamp, c.LastMessageTime, c.ID)
		for i, m := range c.Messages {
			assert.Equal(t, i+1, m.ID)
			assert.Equal(t, i%2 == 1, m.FromUser(), "%s message %d", c.ID, m.ID)
		}
	}

	// Demo seeding is not a change.
	assert.Equal(t, uint64(0), s.Version())

	m, r := s.AddMessage("chat_hao_1", "好的", true)
	require.Equal(t, outcome.OK, r)
	assert.Equal(t, 6, m.ID)
}

func TestVisibility(t *testing.T) {
	cat := speaker.DefaultCatalog()
	langs := fakeLanguages{"Chinese": true, "German": true}
	s := NewStore(cat, langs, WithClock(stepClock(epoch)), WithDemoData())

	var saved []string
	for _, sp := range s.VisibleSaved() {
		saved = append(saved, sp.Name)
	}
	assert.Equal(t, []string{"Hao", "Burkhart"}, saved)

	var chats []string
	for _, c := range s.VisibleChats() {
		chats = append(chats, c.SpeakerName)
	}
	assert.Equal(t, []string{"Hao", "Burkhart"}, chats)

	langs["Spanish"] = true
	assert.Len(t, s.VisibleChats(), 3)
	assert.Len(t, s.Chats(), 5)
}

func TestVisibleChatsHidesUnknownSpeakers(t *testing.T) {
	cat := speaker.DefaultCatalog()
	s := NewStore(cat, fakeLanguages{"German": true}, WithClock(stepClock(epoch)))
	s.StartChat(speaker.Speaker{ID: 99, Name: "Ghost", Language: "German"})

	assert.Len(t, s.Chats(), 1)
	assert.Empty(t, s.VisibleChats())
	assert.Len(t, s.VisibleSaved(), 1)
}

func TestSubscribe(t *testing.T) {
	s, cat := newTestStore(t)
	var ops []string
	s.Subscribe(func(c notify.Change) { ops = append(ops, c.Op) })

	c := s.StartChat(mustSpeaker(t, cat, 7))
	s.StartChat(mustSpeaker(t, cat, 7))
	s.AddMessage(c.ID, "stale id", true)
	s.RemoveSaved(7)

	assert.Equal(t, []string{"start_chat", "save_speaker", "start_chat", "unsave_speaker"}, ops)
}

func TestSnapshotRestore(t *testing.T) {
	s, cat := newTestStore(t, WithDemoData())
	c := s.StartChat(mustSpeaker(t, cat, 9))
	s.AddMessage(c.ID, "Privet", true)
	saved, chats := s.SnapshotData()

	r := NewStore(cat, nil)
	r.Restore(saved, chats)

	assert.Equal(t, s.Saved(), r.Saved())
	require.Len(t, r.Chats(), len(s.Chats()))
	for i, want := range s.Chats() {
		got := r.Chats()[i]
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.HasUnread, got.HasUnread)
		assert.True(t, want.LastMessageTime.Equal(got.LastMessageTime))
		require.Len(t, got.Messages, len(want.Messages))
		for j := range want.Messages {
			assert.Equal(t, want.Messages[j].Content, got.Messages[j].Content)
			assert.Equal(t, want.Messages[j].SenderID, got.Messages[j].SenderID)
			assert.True(t, want.Messages[j].Timestamp.Equal(got.Messages[j].Timestamp))
		}
	}
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func TestConcurrentMessages(t *testing.T) {
	cat := speaker.DefaultCatalog()
	s := NewStore(cat, nil, WithClock(time.Now))
	c := s.StartChat(mustSpeaker(t, cat, 12))

	var added atomic.Int64
	s.Subscribe(func(ch notify.Change) {
		if ch.Op == "add_message" {
			added.Add(1)
		}
	})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_, res := s.AddMessage(c.ID, "msg", (g+i)%2 == 0)
				assert.Equal(t, outcome.OK, res)
				s.Chats()
				s.UnreadCount()
				s.SnapshotData()
				assert.True(t, s.IsSaved(12))
			}
		}(g)
	}
	wg.Wait()

	got, ok := s.ChatByID(c.ID)
	require.True(t, ok)
	require.Len(t, got.Messages, 401)
	for i, m := range got.Messages {
		assert.Equal(t, i+1, m.ID)
	}
	assert.Equal(t, int64(400), added.Load())
}
