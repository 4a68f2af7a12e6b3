// Package language owns the user's learning set and native language.
package language

import (
	"strings"
	"sync"

	"github.com/abhisek/quickspeak/internal/notify"
	"github.com/abhisek/quickspeak/internal/outcome"
	"github.com/abhisek/quickspeak/internal/store"
)

// Store holds the ordered learning set. Insertion order is display order.
// At most one entry is native and no two entries share a country code.
type Store struct {
	mu       sync.Mutex
	learning []Language
	changes  *notify.Notifier
}

// NewStore creates a Store seeded with the default learning set
// (English native, Portuguese, German).
func NewStore() *Store {
	return &Store{
		learning: defaultLearning(),
		changes:  notify.New("language"),
	}
}

// Subscribe registers fn for every applied change.
func (s *Store) Subscribe(fn func(notify.Change)) (cancel func()) {
	return s.changes.Subscribe(fn)
}

// Version returns the number of applied changes.
func (s *Store) Version() uint64 {
	return s.changes.Version()
}

// Learning returns a copy of the learning set in display order.
func (s *Store) Learning() []Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Language, len(s.learning))
	copy(out, s.learning)
	return out
}

// Count returns the size of the learning set, native included.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.learning)
}

// Add appends lang to the learning set. A language whose country code is
// already present is left alone and AlreadyExists is returned. New entries
// are never native; use SetNative for that.
func (s *Store) Add(lang Language) outcome.Result {
	s.mu.Lock()
	if s.indexOf(lang.CountryCode) >= 0 {
		s.mu.Unlock()
		return outcome.AlreadyExists
	}
	lang.Native = false
	s.learning = append(s.learning, lang)
	s.mu.Unlock()

	s.changes.Publish("add", lang.CountryCode)
	return outcome.OK
}

// Remove drops every entry with lang's country code. The native language is
// never removed.
func (s *Store) Remove(lang Language) outcome.Result {
	s.mu.Lock()
	i := s.indexOf(lang.CountryCode)
	if lang.Native || (i >= 0 && s.learning[i].Native) {
		s.mu.Unlock()
		return outcome.RefusedNative
	}
	if i < 0 {
		s.mu.Unlock()
		return outcome.NotFound
	}
	kept := s.learning[:0]
	for _, l := range s.learning {
		if !equalCode(l.CountryCode, lang.CountryCode) {
			kept = append(kept, l)
		}
	}
	s.learning = kept
	s.mu.Unlock()

	s.changes.Publish("remove", lang.CountryCode)
	return outcome.OK
}

// SetNative clears the native flag on every entry and sets it on the entry
// matching lang's country code.
//
// If lang is not in the learning set the flags stay cleared and NotFound is
// returned; the learning set is then left without a native language.
func (s *Store) SetNative(lang Language) outcome.Result {
	s.mu.Lock()
	found := false
	for i := range s.learning {
		match := equalCode(s.learning[i].CountryCode, lang.CountryCode)
		s.learning[i].Native = match
		found = found || match
	}
	s.mu.Unlock()

	s.changes.Publish("set_native", lang.CountryCode)
	if !found {
		return outcome.NotFound
	}
	return outcome.OK
}

// Native returns the native language, if one is set.
func (s *Store) Native() (Language, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.learning {
		if l.Native {
			return l, true
		}
	}
	return Language{}, false
}

// CanRemove reports whether lang may be removed from the learning set.
func (s *Store) CanRemove(lang Language) bool {
	if lang.Native {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(lang.CountryCode)
	return i < 0 || !s.learning[i].Native
}

// Find returns the learning-set entry with the given country code.
func (s *Store) Find(countryCode string) (Language, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(countryCode); i >= 0 {
		return s.learning[i], true
	}
	return Language{}, false
}

// Available returns the master list minus languages already being learned,
// in master-list order.
func (s *Store) Available() []Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Language
	for _, l := range masterList {
		if s.indexOf(l.CountryCode) < 0 {
			out = append(out, l)
		}
	}
	return out
}

// IsLearning reports whether a language with the given display name is in
// the learning set. The native language counts.
func (s *Store) IsLearning(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.learning {
		if l.Name == name {
			return true
		}
	}
	return false
}

// LearningNames returns the display names of the learning set.
func (s *Store) LearningNames(includeNative bool) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.learning))
	for _, l := range s.learning {
		if l.Native && !includeNative {
			continue
		}
		names = append(names, l.Name)
	}
	return names
}

// SnapshotData builds the learning set for snapshot persistence.
func (s *Store) SnapshotData() []store.LanguageData {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]store.LanguageData, len(s.learning))
	for i, l := range s.learning {
		out[i] = store.LanguageData{Name: l.Name, CountryCode: l.CountryCode, Native: l.Native}
	}
	return out
}

// Restore replaces the learning set with persisted data. Duplicate country
// codes are dropped and only the first native entry keeps its flag.
func (s *Store) Restore(data []store.LanguageData) {
	restored := make([]Language, 0, len(data))
	seen := make(map[string]bool, len(data))
	nativeSeen := false
	for _, d := range data {
		key := strings.ToUpper(d.CountryCode)
		if seen[key] {
			continue
		}
		seen[key] = true
		native := d.Native && !nativeSeen
		nativeSeen = nativeSeen || native
		restored = append(restored, Language{Name: d.Name, CountryCode: d.CountryCode, Native: native})
	}

	s.mu.Lock()
	s.learning = restored
	s.mu.Unlock()
}

// indexOf returns the position of countryCode in the learning set, or -1.
// Callers must hold s.mu.
func (s *Store) indexOf(countryCode string) int {
	for i, l := range s.learning {
		if equalCode(l.CountryCode, countryCode) {
			return i
		}
	}
	return -1
}

func equalCode(a, b string) bool {
	return strings.EqualFold(a, b)
}
