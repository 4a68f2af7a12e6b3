package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "quickspeak.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func sampleData() SnapshotData {
	unlocked := int64(1_700_000_000_000)
	return SnapshotData{
		Version:    SnapshotVersion,
		AppVersion: "v1.2.0",
		Languages: []LanguageData{
			{Name: "English", CountryCode: "US", Native: true},
			{Name: "German", CountryCode: "DE"},
		},
		SavedSpeakers: []SavedSpeakerData{
			{SpeakerID: 12, Name: "Hao", Language: "Chinese", Flag: "🇨🇳", AvatarSeed: "Hao"},
		},
		Chats: []ChatData{{
			ID:          "chat_12_1700000000000",
			SpeakerID:   12,
			SpeakerName: "Hao",
			Messages: []MessageData{
				{ID: 1, SenderID: "12", Content: "你好！", TimestampMs: 1_700_000_000_000},
			},
			LastMessageMs: 1_700_000_000_000,
		}},
		User: &UserSnapshotData{
			Profile:  ProfileData{ID: "user_001", Name: "Alex Johnson"},
			Settings: SettingsData{ThemeMode: "system", SpeechSpeed: 1.0, FontSize: "medium"},
			Stats:    StatsData{CurrentStreak: 7, LongestStreak: 12},
			Achievements: []AchievementData{
				{ID: "first_chat", Title: "First Chat", Unlocked: true, UnlockedMs: &unlocked},
				{ID: "polyglot", Title: "Polyglot"},
			},
		},
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.Nil(t, snap, "expected nil snapshot when none exist")

	now := time.Now().Truncate(time.Millisecond)
	err = repo.Save(ctx, &Snapshot{Sequence: 42, Timestamp: now, Data: sampleData()})
	require.NoError(t, err)

	snap, err = repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, int64(42), snap.Sequence)
	assert.True(t, snap.Timestamp.Equal(now))
	assert.Equal(t, sampleData(), snap.Data)
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		data := sampleData()
		data.AppVersion = []string{"v1.0.0", "v1.1.0", "v1.2.0"}[i]
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      data,
		})
		require.NoError(t, err)
	}

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), snap.Sequence)
	assert.Equal(t, "v1.2.0", snap.Data.AppVersion)
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: SnapshotVersion},
		})
		require.NoError(t, err)
	}

	require.NoError(t, repo.Prune(ctx, 5))

	var count int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count))
	assert.Equal(t, 5, count)

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), snap.Sequence, "newest snapshot must survive pruning")

	// Pruning with more room than rows is a no-op.
	require.NoError(t, repo.Prune(ctx, 10))
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count))
	assert.Equal(t, 5, count)
}

func TestSnapshotClear(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &Snapshot{Sequence: 1, Data: sampleData()}))
	require.NoError(t, repo.Clear(ctx))

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSnapshotLatestRejectsInvalidData(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"missing version", `{"languages":[]}`},
		{"bad theme mode", `{"version":1,"user":{"profile":{},"settings":{"theme_mode":"dark"},"stats":{}}}`},
		{"speech speed out of range", `{"version":1,"user":{"profile":{},"settings":{"speech_speed":3.5},"stats":{}}}`},
		{"message id zero", `{"version":1,"chats":[{"id":"c","speaker_id":1,"messages":[{"id":0,"sender_id":"user","content":"x"}]}]}`},
		{"future version", `{"version":99}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.DB().Exec("DELETE FROM snapshots")
			require.NoError(t, err)
			_, err = s.DB().Exec(
				"INSERT INTO snapshots (sequence, timestamp, data) VALUES (?, ?, ?)",
				1, time.Now().UnixMilli(), tt.data)
			require.NoError(t, err)

			_, err = s.SnapshotRepo().Latest(ctx)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSnapshot), "got %v", err)

			var invErr *InvalidSnapshotError
			assert.True(t, errors.As(err, &invErr))
		})
	}
}

func TestActivityAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []ActivityEventData{
		{SessionID: "s1", Source: "language", Op: "add", Subject: "ES", Version: 1},
		{SessionID: "s1", Source: "chat", Op: "start_chat", Subject: "12", Version: 1},
		{SessionID: "s1", Source: "chat", Op: "add_message", Subject: "chat_12_1", Version: 2},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendActivity(ctx, e))
	}

	all, err := repo.QueryActivity(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first, dense sequence.
	assert.Equal(t, int64(3), all[0].Sequence)
	assert.Equal(t, "add_message", all[0].Op)
	assert.Equal(t, uint64(2), all[0].Version)
	assert.Equal(t, int64(1), all[2].Sequence)

	chatOnly, err := repo.QueryActivity(ctx, QueryOpts{Source: "chat"})
	require.NoError(t, err)
	assert.Len(t, chatOnly, 2)

	limited, err := repo.QueryActivity(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, int64(3), limited[0].Sequence)

	after, err := repo.QueryActivity(ctx, QueryOpts{After: 1})
	require.NoError(t, err)
	assert.Len(t, after, 2)

	counts, total, err := repo.ActivityCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, map[string]int{"language": 1, "chat": 2}, counts)

	seq, err := repo.LatestSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), seq)
}

func TestLatestSequenceEmpty(t *testing.T) {
	s := openTestStore(t)
	seq, err := s.EventRepo().LatestSequence(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), seq)
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		p := filepath.Join(dir, "custom", "db.sqlite")
		t.Setenv("QUICKSPEAK_DB", p)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, p, got)
		assert.DirExists(t, filepath.Dir(p))
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("QUICKSPEAK_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "quickspeak", "quickspeak.db"), got)
	})
}
