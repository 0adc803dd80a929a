package condition

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Def is the reference text for a condition kind, loaded from YAML.
type Def struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Effects     []string `yaml:"effects"`
	// Kind is resolved from ID at load time.
	Kind Kind `yaml:"-"`
}

// Registry holds the reference Def for each known Kind.
type Registry struct {
	defs map[Kind]*Def
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[Kind]*Def)}
}

// Register adds def, overwriting any existing entry for the same Kind.
// Precondition: def must not be nil.
func (r *Registry) Register(def *Def) {
	r.defs[def.Kind] = def
}

// Get returns the Def for k, or (nil, false) if none was loaded.
func (r *Registry) Get(k Kind) (*Def, bool) {
	d, ok := r.defs[k]
	return d, ok
}

// All returns the registered Defs ordered by Kind.
func (r *Registry) All() []*Def {
	out := make([]*Def, 0, len(r.defs))
	for _, k := range Kinds() {
		if d, ok := r.defs[k]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Missing returns the kinds that have no Def, in declaration order.
func (r *Registry) Missing() []Kind {
	var out []Kind
	for _, k := range Kinds() {
		if _, ok := r.defs[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

// LoadDefFromBytes parses one Def and resolves its Kind from the id field.
//
// Postcondition: Returns a Def whose Kind matches its ID, or an error.
func LoadDefFromBytes(data []byte) (*Def, error) {
	var def Def
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("parsing condition YAML: %w", err)
	}
	if def.ID == "" {
		return nil, fmt.Errorf("condition definition: id must not be empty")
	}
	kind, err := ParseKind(def.ID)
	if err != nil {
		return nil, fmt.Errorf("condition definition: %w", err)
	}
	def.Kind = kind
	if def.Name == "" {
		def.Name = kind.String()
	}
	return &def, nil
}

// LoadDirectory reads every *.yaml file in dir into a Registry.
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error if any file fails to parse.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading condition dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		def, err := LoadDefFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		reg.Register(def)
	}
	return reg, nil
}
