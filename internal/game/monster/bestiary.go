package monster

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Bestiary holds stat blocks keyed by index.
type Bestiary struct {
	monsters map[string]*Monster
}

// NewBestiary builds a Bestiary from already-validated stat blocks.
//
// Postcondition: Returns an error on a duplicate index.
func NewBestiary(monsters []*Monster) (*Bestiary, error) {
	b := &Bestiary{monsters: make(map[string]*Monster, len(monsters))}
	for _, m := range monsters {
		if _, dup := b.monsters[m.Index]; dup {
			return nil, fmt.Errorf("duplicate monster index %q", m.Index)
		}
		b.monsters[m.Index] = m
	}
	return b, nil
}

// Get returns the stat block for index, matched case-insensitively.
func (b *Bestiary) Get(index string) (*Monster, bool) {
	m, ok := b.monsters[strings.ToLower(strings.TrimSpace(index))]
	return m, ok
}

// Len returns the number of stat blocks.
func (b *Bestiary) Len() int { return len(b.monsters) }

// Indexes returns every index in sorted order.
func (b *Bestiary) Indexes() []string {
	out := make([]string, 0, len(b.monsters))
	for idx := range b.monsters {
		out = append(out, idx)
	}
	sort.Strings(out)
	return out
}

// LoadFromBytes parses a single stat block from YAML.
//
// Postcondition: Returns a validated *Monster with a lowercase Index, or an error.
func LoadFromBytes(data []byte) (*Monster, error) {
	var m Monster
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing monster YAML: %w", err)
	}
	m.Index = strings.ToLower(m.Index)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadBestiary reads all *.yaml files in dir.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a Bestiary or an error on the first parse, validate,
// or duplicate-index failure.
func LoadBestiary(dir string) (*Bestiary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading bestiary dir %q: %w", dir, err)
	}

	var monsters []*Monster
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		m, err := LoadFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		monsters = append(monsters, m)
	}
	return NewBestiary(monsters)
}
