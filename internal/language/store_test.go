package language

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quickspeak/internal/notify"
	"github.com/abhisek/quickspeak/internal/outcome"
	"github.com/abhisek/quickspeak/internal/store"
)

func mustLookup(t *testing.T, code string) Language {
	t.Helper()
	l, ok := Lookup(code)
	require.True(t, ok, "language %s missing from master list", code)
	return l
}

func nativeCount(langs []Language) int {
	n := 0
	for _, l := range langs {
		if l.Native {
			n++
		}
	}
	return n
}

func TestDefaults(t *testing.T) {
	s := NewStore()
	got := s.Learning()
	require.Len(t, got, 3)
	assert.Equal(t, Language{Name: "English", CountryCode: "US", Native: true}, got[0])
	assert.Equal(t, "BR", got[1].CountryCode)
	assert.Equal(t, "DE", got[2].CountryCode)

	native, ok := s.Native()
	require.True(t, ok)
	assert.Equal(t, "English", native.Name)
	assert.Equal(t, uint64(0), s.Version())
}

func TestMasterList(t *testing.T) {
	list := MasterList()
	assert.Len(t, list, 21)
	assert.Equal(t, "English", list[0].Name)
	assert.Equal(t, "Irish", list[len(list)-1].Name)

	seen := map[string]bool{}
	for _, l := range list {
		assert.False(t, seen[l.CountryCode], "duplicate country code %s", l.CountryCode)
		seen[l.CountryCode] = true
		assert.False(t, l.Native)
	}

	list[0].Name = "changed"
	assert.Equal(t, "English", MasterList()[0].Name)
}

func TestLookupCaseInsensitive(t *testing.T) {
	l, ok := Lookup("es")
	require.True(t, ok)
	assert.Equal(t, "Spanish", l.Name)

	_, ok = Lookup("XX")
	assert.False(t, ok)
}

// Scenario: adding Spanish grows the set and hides it from Available.
func TestAddToLearning(t *testing.T) {
	s := NewStore()
	spanish := mustLookup(t, "ES")

	assert.Equal(t, outcome.OK, s.Add(spanish))
	assert.Equal(t, 4, s.Count())

	got, ok := s.Find("ES")
	require.True(t, ok)
	assert.False(t, got.Native)

	for _, l := range s.Available() {
		assert.NotEqual(t, "ES", l.CountryCode)
	}
	assert.Len(t, s.Available(), 21-4)
}

func TestAddDuplicateIsRefused(t *testing.T) {
	s := NewStore()
	assert.Equal(t, outcome.AlreadyExists, s.Add(Language{Name: "Portuguese", CountryCode: "BR"}))
	assert.Equal(t, outcome.AlreadyExists, s.Add(Language{Name: "Whatever", CountryCode: "br"}))
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, uint64(0), s.Version())
}

func TestAddForcesNonNative(t *testing.T) {
	s := NewStore()
	assert.Equal(t, outcome.OK, s.Add(Language{Name: "French", CountryCode: "FR", Native: true}))
	assert.Equal(t, 1, nativeCount(s.Learning()))

	native, _ := s.Native()
	assert.Equal(t, "US", native.CountryCode)
}

// Scenario: SetNative moves the flag.
func TestSetNative(t *testing.T) {
	s := NewStore()
	require.Equal(t, outcome.OK, s.SetNative(Language{Name: "Portuguese", CountryCode: "BR"}))

	for _, l := range s.Learning() {
		assert.Equal(t, l.CountryCode == "BR", l.Native, l.Name)
	}
}

func TestSetNativeAbsentClearsAll(t *testing.T) {
	s := NewStore()
	assert.Equal(t, outcome.NotFound, s.SetNative(mustLookup(t, "JP")))
	_, ok := s.Native()
	assert.False(t, ok)
	assert.Equal(t, 0, nativeCount(s.Learning()))
	assert.Equal(t, 3, s.Count())
}

func TestNativeExclusivity(t *testing.T) {
	s := NewStore()
	for _, code := range []string{"ES", "FR", "JP"} {
		s.Add(mustLookup(t, code))
	}
	for _, code := range []string{"BR", "ES", "XX", "US", "JP", "DE"} {
		s.SetNative(Language{CountryCode: code})
		assert.LessOrEqual(t, nativeCount(s.Learning()), 1, "after SetNative(%s)", code)
	}
}

// Scenario: removing the native language is refused.
func TestRemoveNativeRefused(t *testing.T) {
	s := NewStore()
	s.Add(mustLookup(t, "ES"))

	english := Language{Name: "English", CountryCode: "US"}
	assert.Equal(t, outcome.RefusedNative, s.Remove(english))
	assert.Equal(t, 4, s.Count())
	assert.False(t, s.CanRemove(english))

	english.Native = true
	assert.Equal(t, outcome.RefusedNative, s.Remove(english))
	assert.Equal(t, 4, s.Count())
}

func TestRemove(t *testing.T) {
	s := NewStore()
	german := Language{Name: "German", CountryCode: "DE"}
	assert.True(t, s.CanRemove(german))
	assert.Equal(t, outcome.OK, s.Remove(german))
	assert.Equal(t, 2, s.Count())
	assert.False(t, s.IsLearning("German"))

	assert.Equal(t, outcome.NotFound, s.Remove(german))
	assert.Equal(t, 2, s.Count())
}

func TestRemoveAfterNativeMoves(t *testing.T) {
	s := NewStore()
	s.SetNative(Language{CountryCode: "DE"})
	assert.Equal(t, outcome.OK, s.Remove(Language{Name: "English", CountryCode: "US"}))
	assert.Equal(t, outcome.RefusedNative, s.Remove(Language{Name: "German", CountryCode: "DE"}))
}

func TestLearningNames(t *testing.T) {
	s := NewStore()
	assert.Equal(t, []string{"English", "Portuguese", "German"}, s.LearningNames(true))
	assert.Equal(t, []string{"Portuguese", "German"}, s.LearningNames(false))
	assert.True(t, s.IsLearning("English"))
	assert.False(t, s.IsLearning("english"))
}

func TestFlagURL(t *testing.T) {
	l := Language{Name: "German", CountryCode: "DE"}
	assert.Equal(t, "https://hatscripts.github.io/circle-flags/flags/de.svg", l.FlagURL())
}

func TestSubscribe(t *testing.T) {
	s := NewStore()
	var got []notify.Change
	cancel := s.Subscribe(func(c notify.Change) { got = append(got, c) })

	s.Add(mustLookup(t, "ES"))
	s.Add(mustLookup(t, "ES"))
	s.Remove(Language{CountryCode: "US"})
	s.Remove(Language{CountryCode: "ES"})
	cancel()
	s.Add(mustLookup(t, "FR"))

	require.Len(t, got, 2)
	assert.Equal(t, notify.Change{Source: "language", Op: "add", Subject: "ES", Version: 1}, got[0])
	assert.Equal(t, "remove", got[1].Op)
	assert.Equal(t, uint64(3), s.Version())
}

func TestSnapshotRestore(t *testing.T) {
	s := NewStore()
	s.Add(mustLookup(t, "ES"))
	s.SetNative(Language{CountryCode: "BR"})
	data := s.SnapshotData()

	r := NewStore()
	r.Restore(data)
	assert.Equal(t, s.Learning(), r.Learning())
}

func TestRestoreRepairsInvariants(t *testing.T) {
	s := NewStore()
	s.Restore([]store.LanguageData{
		{Name: "German", CountryCode: "DE", Native: true},
		{Name: "French", CountryCode: "FR", Native: true},
		{Name: "German", CountryCode: "de"},
	})

	got := s.Learning()
	require.Len(t, got, 2)
	assert.True(t, got[0].Native)
	assert.False(t, got[1].Native)
}

func TestConcurrentMutations(t *testing.T) {
	s := NewStore()
	var natives, extra []Language
	for _, code := range []string{"US", "BR", "DE"} {
		natives = append(natives, mustLookup(t, code))
	}
	for _, code := range []string{"ES", "FR", "JP", "KR"} {
		extra = append(extra, mustLookup(t, code))
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				l := extra[(g+i)%len(extra)]
				s.Add(l)
				s.SetNative(natives[(g+i)%len(natives)])
				assert.Equal(t, 1, nativeCount(s.Learning()))
				s.Available()
				s.SnapshotData()
				s.Remove(l)
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, 1, nativeCount(s.Learning()))
	for _, l := range natives {
		_, ok := s.Find(l.CountryCode)
		assert.True(t, ok, "default %s should survive", l.CountryCode)
	}
}
