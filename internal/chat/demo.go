package chat

import (
	"strconv"
	"time"
)

// demoSavedIDs are the speakers bookmarked in the demo data set.
var demoSavedIDs = []int{12, 6, 1, 3, 5}

type demoLine struct {
	fromUser bool
	content  string
	ago      time.Duration
}

type demoChat struct {
	id        string
	speakerID int
	name      string
	unread    bool
	lines     []demoLine
}

var demoChats = []demoChat{
	{
		id: "chat_hao_1", speakerID: 12, name: "Hao", unread: true,
		lines: []demoLine{
			{false, "你好！我是郝。你好吗？", 240 * time.Second},
			{true, "你好郝！我很好，谢谢。你呢？", 210 * time.Second},
			{false, "我也很好！你学中文多长时间了？", 180 * time.Second},
			{true, "我学了六个月。还在学习中。", 150 * time.Second},
			{false, "很棒！继续加油！你想聊什么？", 120 * time.Second},
		},
	},
	{
		id: "chat_sofia_1", speakerID: 6, name: "Sofia", unread: true,
		lines: []demoLine{
			{false, "Oi! Como vai? Sou a Sofia!", 35 * time.Minute},
			{true, "Oi Sofia! Tudo bem e você?", 34*time.Minute + 30*time.Second},
			{false, "Tudo ótimo! Que legal conhecer você. That sounds cool. What...", 34 * time.Minute},
		},
	},
	{
		id: "chat_burkhart_1", speakerID: 1, name: "Burkhart", unread: true,
		lines: []demoLine{
			{false, "Hallo! Ich bin Burkhart. Wie geht's?", 39 * time.Minute},
			{true, "Hallo Burkhart! Mir geht's gut, und dir?", 38*time.Minute + 30*time.Second},
			{false, "Mir geht es gut, aber du hast einen kleinen Fehler gemacht. I like to do a lot of different...", 38 * time.Minute},
		},
	},
	{
		id: "chat_marta_1", speakerID: 3, name: "Marta",
		lines: []demoLine{
			{false, "¡Hola! Soy Marta. ¿Cómo estás?", 24 * time.Hour},
			{true, "¡Hola Marta! Muy bien, gracias.", 24*time.Hour - 30*time.Second},
			{false, "That's awesome.", 24*time.Hour - 60*time.Second},
		},
	},
	{
		id: "chat_marco_1", speakerID: 5, name: "Marco",
		lines: []demoLine{
			{false, "Ciao! Sono Marco. Come stai?", 24 * time.Hour},
			{true, "Ciao Marco! Sto bene, grazie!", 24*time.Hour - 30*time.Second},
			{false, "Okay, sounds good!", 24*time.Hour - 60*time.Second},
		},
	},
}

// seedDemo loads the demo bookmarks and conversations, with message times
// relative to now. Callers must hold s.mu.
func (s *Store) seedDemo(now time.Time) {
	for _, id := range demoSavedIDs {
		if sp, ok := s.speakers.ByID(id); ok {
			s.saved = append(s.saved, SavedFromSpeaker(sp))
		}
	}

	for _, dc := range demoChats {
		c := Chat{ID: dc.id, SpeakerID: dc.speakerID, SpeakerName: dc.name, HasUnread: dc.unread}
		for i, l := range dc.lines {
			sender := strconv.Itoa(dc.speakerID)
			if l.fromUser {
				sender = UserSender
			}
			c.Messages = append(c.Messages, Message{
				ID:        i + 1,
				SenderID:  sender,
				Content:   l.content,
				Timestamp: now.Add(-l.ago),
			})
		}
		if last, ok := c.LastMessage(); ok {
			c.LastMessageTime = last.Timestamp
		}
		s.chats = append(s.chats, c)
	}
}
