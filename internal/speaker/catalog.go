// Package speaker holds the read-only persona catalog.
package speaker

import (
	"fmt"
	"sort"
)

// Catalog is an immutable, ordered set of speakers. It is safe for
// concurrent use without locking.
type Catalog struct {
	speakers []Speaker
	byID     map[int]int
}

// NewCatalog builds a catalog from speakers, keeping their order.
// Speaker IDs must be unique.
func NewCatalog(speakers []Speaker) (*Catalog, error) {
	c := &Catalog{
		speakers: make([]Speaker, 0, len(speakers)),
		byID:     make(map[int]int, len(speakers)),
	}
	for _, s := range speakers {
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate speaker id %d (%s)", s.ID, s.Name)
		}
		c.byID[s.ID] = len(c.speakers)
		c.speakers = append(c.speakers, s.clone())
	}
	return c, nil
}

// DefaultCatalog returns the built-in fifteen-persona catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(seedSpeakers)
	if err != nil {
		panic(err)
	}
	return c
}

// All returns every speaker in catalog order.
func (c *Catalog) All() []Speaker {
	out := make([]Speaker, len(c.speakers))
	for i, s := range c.speakers {
		out[i] = s.clone()
	}
	return out
}

// Len returns the number of speakers.
func (c *Catalog) Len() int { return len(c.speakers) }

// ByID looks up a speaker by id.
func (c *Catalog) ByID(id int) (Speaker, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Speaker{}, false
	}
	return c.speakers[i].clone(), true
}

// ByLanguage returns the speakers whose language exactly matches name
// (case-sensitive), in catalog order. No match yields an empty slice.
func (c *Catalog) ByLanguage(name string) []Speaker {
	out := []Speaker{}
	for _, s := range c.speakers {
		if s.Language == name {
			out = append(out, s.clone())
		}
	}
	return out
}

// Languages returns the distinct speaker languages, sorted alphabetically.
func (c *Catalog) Languages() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range c.speakers {
		if !seen[s.Language] {
			seen[s.Language] = true
			out = append(out, s.Language)
		}
	}
	sort.Strings(out)
	return out
}

// DiscoverFilter narrows the catalog for the discovery view.
type DiscoverFilter struct {
	// IsLearning reports whether a language is in the learning set.
	// Nil admits every language.
	IsLearning func(language string) bool
	// IsSaved reports whether a speaker is already saved. Nil admits all.
	IsSaved func(id int) bool
	// Active restricts results to these languages when non-empty.
	Active []string
}

// Discover returns the speakers the user could start chatting with: being
// learned, not yet saved, and within the active languages if any are given.
func (c *Catalog) Discover(f DiscoverFilter) []Speaker {
	active := make(map[string]bool, len(f.Active))
	for _, l := range f.Active {
		active[l] = true
	}

	out := []Speaker{}
	for _, s := range c.speakers {
		if f.IsLearning != nil && !f.IsLearning(s.Language) {
			continue
		}
		if f.IsSaved != nil && f.IsSaved(s.ID) {
			continue
		}
		if len(active) > 0 && !active[s.Language] {
			continue
		}
		out = append(out, s.clone())
	}
	return out
}
