// Package app constructs the stores, wires their dependencies and moves
// their state to and from the snapshot database.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/mod/semver"

	"github.com/abhisek/quickspeak/internal/chat"
	"github.com/abhisek/quickspeak/internal/language"
	"github.com/abhisek/quickspeak/internal/logger"
	"github.com/abhisek/quickspeak/internal/notify"
	"github.com/abhisek/quickspeak/internal/speaker"
	"github.com/abhisek/quickspeak/internal/store"
	"github.com/abhisek/quickspeak/internal/user"
)

// Options configures New. Snapshots and Events may be nil, in which case
// state lives only in memory.
type Options struct {
	Snapshots store.SnapshotRepo
	Events    store.EventRepo
	Logger    *logger.Logger
	Clock     func() time.Time

	// DemoData seeds bookmarks and chats when no snapshot exists.
	DemoData bool
	// AppVersion is recorded in snapshots, e.g. "v0.3.1".
	AppVersion string
	// SessionID tags every activity event written by this process.
	SessionID string
	// SnapshotKeep bounds how many snapshots survive a save. 0 keeps all.
	SnapshotKeep int
}

// App owns one instance of every store.
type App struct {
	Languages *language.Store
	Catalog   *speaker.Catalog
	Chats     *chat.Store
	User      *user.Store

	opts Options
	log  *logger.Logger

	mu       sync.Mutex
	pending  []store.ActivityEventData
	dirty    bool
	restored bool
	cancels  []func()
}

// New builds the stores and restores the latest snapshot. Without a usable
// snapshot the stores start from their defaults.
func New(ctx context.Context, opts Options) (*App, error) {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	a := &App{
		opts: opts,
		log:  opts.Logger.With("session", opts.SessionID),
	}

	snap, err := a.latest(ctx)
	if err != nil {
		return nil, err
	}

	a.Languages = language.NewStore()
	a.Catalog = speaker.DefaultCatalog()

	chatOpts := []chat.Option{chat.WithClock(opts.Clock)}
	if snap == nil && opts.DemoData {
		chatOpts = append(chatOpts, chat.WithDemoData())
	}
	a.Chats = chat.NewStore(a.Catalog, a.Languages, chatOpts...)

	a.User = user.NewStore(
		user.WithClock(opts.Clock),
		user.WithLanguages(a.Languages),
		user.WithSavedCounter(a.Chats),
	)

	if snap != nil {
		a.restore(snap.Data)
		a.restored = true
		a.log.Debug("restored snapshot", "id", snap.ID, "taken", snap.Timestamp)
	} else {
		// Seeded state has never been written; the first Save persists it.
		a.dirty = true
	}

	a.cancels = []func(){
		a.Languages.Subscribe(a.record),
		a.Chats.Subscribe(a.record),
		a.User.Subscribe(a.record),
	}
	return a, nil
}

// latest loads the newest snapshot. An invalid snapshot is logged and
// ignored so a corrupt database never blocks startup.
func (a *App) latest(ctx context.Context) (*store.Snapshot, error) {
	if a.opts.Snapshots == nil {
		return nil, nil
	}
	snap, err := a.opts.Snapshots.Latest(ctx)
	if errors.Is(err, store.ErrInvalidSnapshot) {
		a.log.Warn("ignoring unreadable snapshot", "error", err)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if snap != nil && newerThan(snap.Data.AppVersion, a.opts.AppVersion) {
		a.log.Warn("snapshot written by a newer version",
			"snapshot_version", snap.Data.AppVersion, "app_version", a.opts.AppVersion)
	}
	return snap, nil
}

// Restored reports whether state came from a snapshot.
func (a *App) Restored() bool {
	return a.restored
}

// record queues one store change for the activity log.
func (a *App) record(c notify.Change) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dirty = true
	a.pending = append(a.pending, store.ActivityEventData{
		SessionID: a.opts.SessionID,
		Source:    c.Source,
		Op:        c.Op,
		Subject:   c.Subject,
		Version:   c.Version,
	})
}

// Dirty reports whether any store changed since the last Save.
func (a *App) Dirty() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dirty
}

// Save writes queued activity events and, if anything changed, a new
// snapshot. Old snapshots beyond SnapshotKeep are pruned.
func (a *App) Save(ctx context.Context) error {
	a.mu.Lock()
	pending := a.pending
	dirty := a.dirty
	a.pending = nil
	a.dirty = false
	a.mu.Unlock()

	if a.opts.Events != nil {
		for i, ev := range pending {
			if err := a.opts.Events.AppendActivity(ctx, ev); err != nil {
				a.requeue(pending[i:], dirty)
				return fmt.Errorf("append activity: %w", err)
			}
		}
	}

	if !dirty || a.opts.Snapshots == nil {
		return nil
	}

	snap := &store.Snapshot{
		Timestamp: a.opts.Clock(),
		Data:      a.Snapshot(),
	}
	if a.opts.Events != nil {
		seq, err := a.opts.Events.LatestSequence(ctx)
		if err != nil {
			a.log.Warn("read activity sequence failed", "error", err)
		}
		snap.Sequence = seq
	}
	if err := a.opts.Snapshots.Save(ctx, snap); err != nil {
		a.requeue(nil, true)
		return fmt.Errorf("save snapshot: %w", err)
	}
	a.log.Debug("saved snapshot", "events", len(pending))

	if a.opts.SnapshotKeep > 0 {
		if err := a.opts.Snapshots.Prune(ctx, a.opts.SnapshotKeep); err != nil {
			a.log.Warn("prune snapshots failed", "error", err)
		}
	}
	return nil
}

func (a *App) requeue(events []store.ActivityEventData, dirty bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = append(append([]store.ActivityEventData(nil), events...), a.pending...)
	a.dirty = a.dirty || dirty
}

// Close detaches the app from the stores. Unsaved changes are dropped.
func (a *App) Close() {
	for _, cancel := range a.cancels {
		cancel()
	}
	a.cancels = nil
	a.log.Sync()
}

// Snapshot captures the state of every store.
func (a *App) Snapshot() store.SnapshotData {
	saved, chats := a.Chats.SnapshotData()
	u := a.User.SnapshotData()
	return store.SnapshotData{
		Version:       store.SnapshotVersion,
		AppVersion:    a.opts.AppVersion,
		Languages:     a.Languages.SnapshotData(),
		SavedSpeakers: saved,
		Chats:         chats,
		User:          &u,
	}
}

func (a *App) restore(data store.SnapshotData) {
	a.Languages.Restore(data.Languages)
	a.Chats.Restore(data.SavedSpeakers, data.Chats)
	if data.User != nil {
		a.User.Restore(*data.User)
	}
}

// Discover lists speakers the user is learning the language of and has not
// saved yet, optionally narrowed to active languages.
func (a *App) Discover(active []string) []speaker.Speaker {
	return a.Catalog.Discover(speaker.DiscoverFilter{
		IsLearning: a.Languages.IsLearning,
		IsSaved:    a.Chats.IsSaved,
		Active:     active,
	})
}

// newerThan reports whether version a is a valid semantic version greater
// than b. Unparseable versions such as "(devel)" never compare as newer.
func newerThan(a, b string) bool {
	a, b = canonical(a), canonical(b)
	if !semver.IsValid(a) || !semver.IsValid(b) {
		return false
	}
	return semver.Compare(a, b) > 0
}

func canonical(v string) string {
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
