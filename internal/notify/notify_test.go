package notify

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishBumpsVersion(t *testing.T) {
	n := New("language")
	assert.Equal(t, uint64(0), n.Version())

	n.Publish("add", "ES")
	n.Publish("remove", "ES")
	assert.Equal(t, uint64(2), n.Version())
}

func TestSubscribeReceivesChanges(t *testing.T) {
	n := New("chat")
	var got []Change
	cancel := n.Subscribe(func(c Change) { got = append(got, c) })

	n.Publish("start_chat", "12")
	require.Len(t, got, 1)
	assert.Equal(t, Change{Source: "chat", Op: "start_chat", Subject: "12", Version: 1}, got[0])

	cancel()
	cancel()
	n.Publish("mark_read", "chat_12_1")
	assert.Len(t, got, 1, "cancelled subscriber should not be called")
	assert.Equal(t, uint64(2), n.Version())
}

func TestSubscriberMayReadVersion(t *testing.T) {
	n := New("user")
	var seen uint64
	n.Subscribe(func(Change) { seen = n.Version() })
	n.Publish("unlock_achievement", "first_chat")
	assert.Equal(t, uint64(1), seen)
}

func TestConcurrentPublishDeliversInOrder(t *testing.T) {
	n := New("chat")
	var (
		mu   sync.Mutex
		seen []uint64
	)
	n.Subscribe(func(c Change) {
		mu.Lock()
		seen = append(seen, c.Version)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				n.Publish("add_message", "chat_1")
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, 400)
	for i, v := range seen {
		assert.Equal(t, uint64(i+1), v)
	}
	assert.Equal(t, uint64(400), n.Version())
}
