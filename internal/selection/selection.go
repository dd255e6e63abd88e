// Package selection holds the user's current source/target language choice
// and keeps the target inside the set the language catalog allows for the
// chosen source.
package selection

import (
	"fmt"
	"sync"

	"codeberg.org/snonux/livetrans/internal/catalog"
)

// Unset is the source value meaning "detect the language on the next request"
const Unset = ""

// Selection is a source/target language pair
type Selection struct {
	Source string
	Target string
}

// Detect reports whether the source language is still to be detected
func (s Selection) Detect() bool {
	return s.Source == Unset
}

// Model is the selection state shared between the selection UI and the
// translation session
type Model struct {
	catalog       *catalog.Catalog
	initialTarget string

	mu        sync.RWMutex
	current   Selection
	listeners []func(Selection)
}

// New creates a model with an unset source and the given target. A target
// that is not among the default targets is replaced by the first of them.
func New(c *catalog.Catalog, target string) *Model {
	if !c.Allowed(Unset, target) {
		if defaults := c.DefaultTargets(); len(defaults) > 0 {
			target = defaults[0].ID
		}
	}
	return &Model{
		catalog:       c,
		initialTarget: target,
		current:       Selection{Source: Unset, Target: target},
	}
}

// Selection returns the current pair
func (m *Model) Selection() Selection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Targets returns the targets allowed for the current source
func (m *Model) Targets() []catalog.Language {
	return m.catalog.TargetsFor(m.Selection().Source)
}

// OnChange registers fn to be called after every change of the selection
func (m *Model) OnChange(fn func(Selection)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// SetSource changes the source language. Unset switches back to detection.
// If the current target is not allowed for the new source, the first allowed
// target is chosen.
func (m *Model) SetSource(id string) error {
	if id != Unset {
		if _, ok := m.catalog.Lookup(id); !ok {
			return fmt.Errorf("unknown source language %q", id)
		}
	}
	targets := m.catalog.TargetsFor(id)
	if len(targets) == 0 {
		return fmt.Errorf("source language %q has no targets", id)
	}

	m.mu.Lock()
	next := Selection{Source: id, Target: m.current.Target}
	if !m.catalog.Allowed(id, next.Target) {
		next.Target = targets[0].ID
	}
	return m.commitLocked(next)
}

// SetTarget changes the target language
func (m *Model) SetTarget(id string) error {
	m.mu.Lock()
	if !m.catalog.Allowed(m.current.Source, id) {
		source := m.current.Source
		m.mu.Unlock()
		return fmt.Errorf("target %q is not available for source %q", id, source)
	}
	return m.commitLocked(Selection{Source: m.current.Source, Target: id})
}

// Set replaces the whole pair
func (m *Model) Set(sel Selection) error {
	if !m.catalog.Allowed(sel.Source, sel.Target) {
		return fmt.Errorf("target %q is not available for source %q", sel.Target, sel.Source)
	}
	m.mu.Lock()
	return m.commitLocked(sel)
}

// Reset restores detection with the initial target
func (m *Model) Reset() {
	m.mu.Lock()
	m.commitLocked(Selection{Source: Unset, Target: m.initialTarget})
}

// commitLocked stores next and notifies listeners after releasing the lock
func (m *Model) commitLocked(next Selection) error {
	changed := next != m.current
	m.current = next
	listeners := append(([]func(Selection))(nil), m.listeners...)
	m.mu.Unlock()

	if changed {
		for _, fn := range listeners {
			fn(next)
		}
	}
	return nil
}
