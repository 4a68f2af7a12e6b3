package speaker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	all := c.All()
	require.Len(t, all, 15)
	assert.Equal(t, 15, c.Len())

	for i, s := range all {
		assert.Equal(t, i+1, s.ID)
		assert.Equal(t, s.Name, s.AvatarSeed)
		assert.NotEmpty(t, s.Flag)
		assert.Len(t, s.Personality, 2, s.Name)
		assert.Len(t, s.Interests, 3, s.Name)
		for _, color := range []string{s.Theme.Background, s.Theme.CardBackground, s.Theme.Text, s.Theme.Border} {
			assert.Regexp(t, `^#[0-9A-F]{6}$`, color, s.Name)
		}
	}
}

func TestByID(t *testing.T) {
	c := DefaultCatalog()

	hao, ok := c.ByID(12)
	require.True(t, ok)
	assert.Equal(t, "Hao", hao.Name)
	assert.Equal(t, "Chinese", hao.Language)
	assert.Equal(t, "#E11D48", hao.Theme.Background)
	assert.Equal(t, "https://api.dicebear.com/9.x/avataaars/svg?seed=Hao", hao.AvatarURL())

	_, ok = c.ByID(99)
	assert.False(t, ok)
}

func TestByLanguage(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		language string
		want     []string
	}{
		{"German", []string{"Burkhart"}},
		{"Portuguese", []string{"Sofia"}},
		{"german", nil},
		{"Klingon", nil},
	}
	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			got := c.ByLanguage(tt.language)
			assert.NotNil(t, got)
			var names []string
			for _, s := range got {
				names = append(names, s.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestByLanguageSharedLanguage(t *testing.T) {
	c, err := NewCatalog([]Speaker{
		{ID: 1, Name: "A", Language: "German"},
		{ID: 2, Name: "B", Language: "French"},
		{ID: 3, Name: "C", Language: "German"},
	})
	require.NoError(t, err)

	got := c.ByLanguage("German")
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "C", got[1].Name)
	assert.Equal(t, []string{"French", "German"}, c.Languages())
}

func TestLanguagesSorted(t *testing.T) {
	got := DefaultCatalog().Languages()
	assert.Len(t, got, 15)
	assert.IsNonDecreasing(t, got)
	assert.Equal(t, "Arabic", got[0])
	assert.Equal(t, "Swedish", got[len(got)-1])
}

func TestNewCatalogRejectsDuplicateIDs(t *testing.T) {
	_, err := NewCatalog([]Speaker{{ID: 1, Name: "A"}, {ID: 1, Name: "B"}})
	assert.Error(t, err)
}

func TestCatalogIsImmutable(t *testing.T) {
	c := DefaultCatalog()
	s, _ := c.ByID(1)
	s.Name = "Changed"
	s.Interests[0] = "changed"

	again, _ := c.ByID(1)
	assert.Equal(t, "Burkhart", again.Name)
	assert.Equal(t, "🎸 Metal Music", again.Interests[0])
}

func TestDiscover(t *testing.T) {
	c := DefaultCatalog()
	learning := map[string]bool{"English": true, "Portuguese": true, "German": true, "Spanish": true}
	saved := map[int]bool{1: true}

	f := DiscoverFilter{
		IsLearning: func(l string) bool { return learning[l] },
		IsSaved:    func(id int) bool { return saved[id] },
	}

	names := func(ss []Speaker) []string {
		out := []string{}
		for _, s := range ss {
			out = append(out, s.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Marta", "Sofia", "Chloe"}, names(c.Discover(f)))

	f.Active = []string{"Spanish", "German"}
	assert.Equal(t, []string{"Marta"}, names(c.Discover(f)))

	assert.Len(t, c.Discover(DiscoverFilter{}), 15)
}
