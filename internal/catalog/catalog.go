package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

//go:embed languages.toml
var languagesData []byte

// Language is a selectable language with its display title
type Language struct {
	ID    string
	Title string
}

// Entry is a source language together with the targets it can be
// translated into
type Entry struct {
	ID      string
	Title   string
	Targets []Language
}

// Catalog is an immutable table of source languages and allowed targets
type Catalog struct {
	detectTitle string
	entries     []Entry
	index       map[string]int
	titles      map[string]string
	defaults    []Language
}

// file mirrors the layout of languages.toml
type file struct {
	DetectTitle    string   `toml:"detect_title"`
	DefaultTargets []string `toml:"default_targets"`
	Languages      []struct {
		ID    string `toml:"id"`
		Title string `toml:"title"`
	} `toml:"language"`
	Sources []struct {
		ID      string   `toml:"id"`
		Targets []string `toml:"targets"`
	} `toml:"source"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog built from the embedded language table.
// It is parsed on first use only.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(languagesData)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded language table is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load parses a TOML language table
func Load(data []byte) (*Catalog, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse language table: %w", err)
	}

	c := &Catalog{
		detectTitle: f.DetectTitle,
		index:       make(map[string]int, len(f.Sources)),
		titles:      make(map[string]string, len(f.Languages)),
	}

	for _, l := range f.Languages {
		if l.ID == "" {
			return nil, fmt.Errorf("language with empty id")
		}
		c.titles[l.ID] = l.Title
	}

	resolve := func(ids []string) ([]Language, error) {
		out := make([]Language, 0, len(ids))
		for _, id := range ids {
			title, ok := c.titles[id]
			if !ok {
				return nil, fmt.Errorf("unknown language %q", id)
			}
			out = append(out, Language{ID: id, Title: title})
		}
		return out, nil
	}

	for _, s := range f.Sources {
		if _, dup := c.index[s.ID]; dup {
			return nil, fmt.Errorf("duplicate source %q", s.ID)
		}
		title, ok := c.titles[s.ID]
		if !ok {
			return nil, fmt.Errorf("unknown source language %q", s.ID)
		}
		targets, err := resolve(s.Targets)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", s.ID, err)
		}
		c.index[s.ID] = len(c.entries)
		c.entries = append(c.entries, Entry{ID: s.ID, Title: title, Targets: targets})
	}

	defaults, err := resolve(f.DefaultTargets)
	if err != nil {
		return nil, fmt.Errorf("default targets: %w", err)
	}
	c.defaults = defaults

	return c, nil
}

// DetectTitle is the label shown for the unset ("detect language") source
func (c *Catalog) DetectTitle() string {
	return c.detectTitle
}

// Entries returns every source language in display order
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		out[i] = Entry{ID: e.ID, Title: e.Title, Targets: copyLanguages(e.Targets)}
	}
	return out
}

// TargetsFor returns the allowed targets for sourceID. An empty sourceID
// yields the default targets, an unknown one yields an empty slice.
func (c *Catalog) TargetsFor(sourceID string) []Language {
	if sourceID == "" {
		return c.DefaultTargets()
	}
	i, ok := c.index[sourceID]
	if !ok {
		return []Language{}
	}
	return copyLanguages(c.entries[i].Targets)
}

// DefaultTargets returns the targets offered while the source is unset
func (c *Catalog) DefaultTargets() []Language {
	return copyLanguages(c.defaults)
}

// Lookup returns the language registered under id
func (c *Catalog) Lookup(id string) (Language, bool) {
	title, ok := c.titles[id]
	if !ok {
		return Language{}, false
	}
	return Language{ID: id, Title: title}, true
}

// Allowed reports whether target may be chosen for source
func (c *Catalog) Allowed(source, target string) bool {
	for _, l := range c.TargetsFor(source) {
		if l.ID == target {
			return true
		}
	}
	return false
}

// DisplayName renders the name of language id in the given locale, falling
// back to id itself when either tag cannot be parsed
func DisplayName(id, locale string) string {
	tag, err := language.Parse(id)
	if err != nil {
		return id
	}
	in, err := language.Parse(locale)
	if err != nil {
		return display.Self.Name(tag)
	}
	if name := display.Tags(in).Name(tag); name != "" {
		return name
	}
	return id
}

func copyLanguages(in []Language) []Language {
	out := make([]Language, len(in))
	copy(out, in)
	return out
}
